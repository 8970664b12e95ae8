package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/supplypulse/backend/internal/application/procurement"
)

// MetricsHandler handles supplier reliability metric endpoints
type MetricsHandler struct {
	BaseHandler
	metricsService *procurementapp.MetricsService
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(metricsService *procurementapp.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// RegisterRoutes registers metric routes on the API group
func (h *MetricsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("/metrics", h.List)
		suppliers.POST("/metrics/refresh", h.Refresh)
		suppliers.GET("/:id/metrics", h.Get)
	}
}

// Get computes reliability metrics for one supplier over the requested
// window (default trailing 90 days)
func (h *MetricsHandler) Get(c *gin.Context) {
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

	var filter procurementapp.MetricsWindowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	metrics, err := h.metricsService.GetSupplierMetrics(c.Request.Context(), tenantID, supplierID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, metrics)
}

// List computes metrics for every supplier of the tenant, best score
// first, with tenant-wide averages
func (h *MetricsHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var filter procurementapp.MetricsWindowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	metrics, err := h.metricsService.ListSupplierMetrics(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, metrics)
}

// RefreshMetricsRequest optionally narrows the refresh to one supplier;
// without a supplier_id every supplier of the tenant is refreshed
type RefreshMetricsRequest struct {
	SupplierID string `json:"supplier_id" binding:"omitempty,uuid"`
}

// Refresh recomputes reliability scores over the default window and
// persists them on the supplier records. An empty body refreshes all
// suppliers of the tenant
func (h *MetricsHandler) Refresh(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req RefreshMetricsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	if req.SupplierID == "" {
		result, err := h.metricsService.RefreshAllSupplierMetrics(c.Request.Context(), tenantID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, result)
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	metrics, err := h.metricsService.RefreshSupplierMetrics(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, metrics)
}
