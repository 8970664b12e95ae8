package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/supplypulse/backend/internal/application/procurement"
)

// PaymentHandler handles supplier payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *procurementapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *procurementapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes on the API group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.Record)
}

// RecordPaymentRequest represents a request to record a supplier payment
type RecordPaymentRequest struct {
	PurchaseOrderID string `json:"purchase_order_id" binding:"required,uuid"`
	procurementapp.RecordPaymentRequest
}

// Record applies a payment against a purchase order's outstanding
// balance and returns the ledger entry with the updated order state
func (h *PaymentHandler) Record(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	orderID, err := uuid.Parse(req.PurchaseOrderID)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	// recorded-by is advisory; callers that front an identity layer pass it through
	if raw := c.GetHeader("X-User-ID"); raw != "" {
		if userID, err := uuid.Parse(raw); err == nil {
			req.RecordedBy = &userID
		}
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), tenantID, orderID, req.RecordPaymentRequest)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}
