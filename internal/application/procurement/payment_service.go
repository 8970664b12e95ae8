package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/infrastructure/logger"
)

// PaymentService records supplier payments against purchase orders.
// All balance validation runs inside the repository transaction against
// the row-locked order, so two concurrent payments can never overdraw
// the outstanding balance.
type PaymentService struct {
	paymentRepo procurement.SupplierPaymentRepository
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo procurement.SupplierPaymentRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

// RecordPayment applies a payment to the order's outstanding balance and
// appends the ledger entry in the same transaction
func (s *PaymentService) RecordPayment(ctx context.Context, tenantID, orderID uuid.UUID,
	req RecordPaymentRequest) (*PaymentResponse, error) {

	now := s.now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	mode := procurement.PaymentMode(req.Mode)

	var updated *procurement.PurchaseOrder
	payment, err := s.paymentRepo.RecordPayment(ctx, tenantID, orderID,
		func(order *procurement.PurchaseOrder, paymentNumber string) (*procurement.SupplierPayment, error) {
			if err := order.ApplyPayment(req.Amount, now); err != nil {
				return nil, err
			}
			entry, err := procurement.NewSupplierPayment(tenantID, paymentNumber, order.ID,
				order.SupplierID, req.Amount, paymentDate, mode)
			if err != nil {
				return nil, err
			}
			if req.Reference != "" {
				entry.SetReference(req.Reference)
			}
			if req.Notes != "" {
				entry.SetNotes(req.Notes)
			}
			if req.RecordedBy != nil {
				entry.SetRecordedBy(*req.RecordedBy)
			}
			updated = order
			return entry, nil
		})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Supplier payment recorded",
		zap.String("order_id", orderID.String()),
		zap.String("payment_number", payment.PaymentNumber),
		zap.String("amount", req.Amount.String()),
		zap.String("payment_status", string(updated.PaymentStatus)))

	response := ToPaymentResponse(payment, updated)
	return &response, nil
}
