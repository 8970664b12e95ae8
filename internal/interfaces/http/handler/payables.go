package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/supplypulse/backend/internal/application/procurement"
)

// PayablesHandler handles outstanding-payables reporting endpoints
type PayablesHandler struct {
	BaseHandler
	payablesService *procurementapp.PayablesService
}

// NewPayablesHandler creates a new PayablesHandler
func NewPayablesHandler(payablesService *procurementapp.PayablesService) *PayablesHandler {
	return &PayablesHandler{payablesService: payablesService}
}

// RegisterRoutes registers payables routes on the API group
func (h *PayablesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payables := rg.Group("/payables")
	{
		payables.GET("", h.List)
		payables.GET("/aging", h.Aging)
		payables.GET("/summary", h.Summary)
	}
	rg.GET("/suppliers/credit-status", h.CreditStatus)
}

// List returns outstanding purchase orders, paginated
func (h *PayablesHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var filter procurementapp.PayablesListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	payables, total, err := h.payablesService.ListPayables(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, payables, total, page, pageSize)
}

// Aging returns the five fixed aging buckets of outstanding balances
func (h *PayablesHandler) Aging(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	aging, err := h.payablesService.GetAging(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, aging)
}

// Summary returns aggregate payables figures for the tenant
func (h *PayablesHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	summary, err := h.payablesService.GetSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// CreditStatus returns credit exposure for one supplier when supplier_id
// is given, otherwise for every supplier of the tenant
func (h *PayablesHandler) CreditStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	if raw := c.Query("supplier_id"); raw != "" {
		supplierID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		credit, err := h.payablesService.GetSupplierCredit(c.Request.Context(), tenantID, supplierID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, credit)
		return
	}

	credits, err := h.payablesService.ListSupplierCredit(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, credits)
}
