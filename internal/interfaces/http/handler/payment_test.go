package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	procurementapp "github.com/supplypulse/backend/internal/application/procurement"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/domain/shared"
	"github.com/supplypulse/backend/internal/interfaces/http/middleware"
)

// MockSupplierPaymentRepository implements procurement.SupplierPaymentRepository for testing
type MockSupplierPaymentRepository struct {
	mock.Mock
	onOrder *procurement.PurchaseOrder
}

func (m *MockSupplierPaymentRepository) RecordPayment(ctx context.Context, tenantID, orderID uuid.UUID, apply procurement.ApplyPaymentFunc) (*procurement.SupplierPayment, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return apply(m.onOrder, "PAY-2026-00001")
}

func (m *MockSupplierPaymentRepository) SumPaidSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func setupPaymentTestRouter(order *procurement.PurchaseOrder) (*gin.Engine, *MockSupplierPaymentRepository) {
	gin.SetMode(gin.TestMode)

	mockRepo := &MockSupplierPaymentRepository{onOrder: order}
	service := procurementapp.NewPaymentService(mockRepo)
	handler := NewPaymentHandler(service)

	router := gin.New()
	router.Use(middleware.Tenant())
	handler.RegisterRoutes(router.Group("/api/v1"))

	return router, mockRepo
}

func payableOrder(tenantID uuid.UUID, total float64) *procurement.PurchaseOrder {
	return &procurement.PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         "PO-2026-00042",
		SupplierID:          uuid.New(),
		SupplierName:        "Acme Traders",
		Status:              procurement.PurchaseOrderStatusConfirmed,
		TotalAmount:         decimal.NewFromFloat(total),
		PaidAmount:          decimal.Zero,
		PaymentStatus:       procurement.PaymentStatusPending,
	}
}

func postPayment(router *gin.Engine, tenantID string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_Record(t *testing.T) {
	t.Run("records a full payment", func(t *testing.T) {
		tenantID := uuid.New()
		order := payableOrder(tenantID, 1000)
		router, mockRepo := setupPaymentTestRouter(order)

		mockRepo.On("RecordPayment", mock.Anything, tenantID, order.ID).Return(nil, nil)

		w := postPayment(router, tenantID.String(), gin.H{
			"purchase_order_id": order.ID.String(),
			"amount":            "1000",
			"mode":              "BANK_TRANSFER",
			"reference":         "NEFT-1234",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))
		data := response["data"].(map[string]any)
		assert.Equal(t, "PAY-2026-00001", data["payment_number"])
		assert.Equal(t, "PAID", data["payment_status"])

		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects overpayment with 400", func(t *testing.T) {
		tenantID := uuid.New()
		order := payableOrder(tenantID, 1000)
		router, mockRepo := setupPaymentTestRouter(order)

		mockRepo.On("RecordPayment", mock.Anything, tenantID, order.ID).Return(nil, nil)

		w := postPayment(router, tenantID.String(), gin.H{
			"purchase_order_id": order.ID.String(),
			"amount":            "1500",
			"mode":              "UPI",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	})

	t.Run("returns 404 for unknown order", func(t *testing.T) {
		tenantID := uuid.New()
		router, mockRepo := setupPaymentTestRouter(nil)

		orderID := uuid.New()
		mockRepo.On("RecordPayment", mock.Anything, tenantID, orderID).Return(nil, shared.ErrNotFound)

		w := postPayment(router, tenantID.String(), gin.H{
			"purchase_order_id": orderID.String(),
			"amount":            "100",
			"mode":              "CASH",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		tenantID := uuid.New()
		router, mockRepo := setupPaymentTestRouter(nil)

		w := postPayment(router, tenantID.String(), gin.H{
			"amount": "100",
			"mode":   "CASH",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "RecordPayment")
	})

	t.Run("rejects missing tenant header", func(t *testing.T) {
		router, _ := setupPaymentTestRouter(nil)

		w := postPayment(router, "", gin.H{
			"purchase_order_id": uuid.New().String(),
			"amount":            "100",
			"mode":              "CASH",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
