package handler

import (
	"github.com/gin-gonic/gin"
	procurementapp "github.com/supplypulse/backend/internal/application/procurement"
)

// SlaHandler handles SLA definition and compliance dashboard endpoints
type SlaHandler struct {
	BaseHandler
	slaService *procurementapp.SlaService
}

// NewSlaHandler creates a new SlaHandler
func NewSlaHandler(slaService *procurementapp.SlaService) *SlaHandler {
	return &SlaHandler{slaService: slaService}
}

// RegisterRoutes registers SLA routes on the API group
func (h *SlaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sla/dashboard", h.Dashboard)
	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("/:id/sla", h.GetDefinition)
		suppliers.PUT("/:id/sla", h.SetDefinition)
	}
}

// GetDefinition returns a supplier's SLA targets
func (h *SlaHandler) GetDefinition(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	supplierID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	definition, err := h.slaService.GetDefinition(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, definition)
}

// SetDefinition creates or replaces a supplier's SLA targets
func (h *SlaHandler) SetDefinition(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	supplierID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req procurementapp.SetSlaDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	definition, err := h.slaService.SetDefinition(c.Request.Context(), tenantID, supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, definition)
}

// Dashboard evaluates every supplier with an SLA definition over the
// lookback window and returns compliance entries plus recent breaches
func (h *SlaHandler) Dashboard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var filter procurementapp.SlaDashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	dashboard, err := h.slaService.GetDashboard(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
