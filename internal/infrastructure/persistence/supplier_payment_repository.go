package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSupplierPaymentRepository implements SupplierPaymentRepository using GORM
type GormSupplierPaymentRepository struct {
	db *gorm.DB
}

// NewGormSupplierPaymentRepository creates a new GormSupplierPaymentRepository
func NewGormSupplierPaymentRepository(db *gorm.DB) *GormSupplierPaymentRepository {
	return &GormSupplierPaymentRepository{db: db}
}

// RecordPayment atomically applies a payment to a purchase order. The
// order row is locked with SELECT ... FOR UPDATE so the balance check in
// apply runs against current data; the ledger insert and the order update
// commit together or not at all.
func (r *GormSupplierPaymentRepository) RecordPayment(ctx context.Context, tenantID, orderID uuid.UUID,
	apply procurement.ApplyPaymentFunc) (*procurement.SupplierPayment, error) {

	var payment *procurement.SupplierPayment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order procurement.PurchaseOrder
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND id = ?", tenantID, orderID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		paymentNumber, err := nextPaymentNumber(tx, tenantID)
		if err != nil {
			return err
		}

		entry, err := apply(&order, paymentNumber)
		if err != nil {
			return err
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		if err := tx.Model(&procurement.PurchaseOrder{}).
			Where("tenant_id = ? AND id = ?", tenantID, orderID).
			Updates(map[string]any{
				"paid_amount":    order.PaidAmount,
				"payment_status": order.PaymentStatus,
				"updated_at":     order.UpdatedAt,
				"version":        order.Version,
			}).Error; err != nil {
			return err
		}

		payment = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// nextPaymentNumber generates a sequential payment number of the form
// PAY-YYYY-NNNNN per tenant and year. Payments against the same order
// serialize on the locked order row; payments against different orders
// of the tenant can still race on the scan, in which case the unique
// index on (tenant_id, payment_number) fails the later transaction and
// the caller retries.
func nextPaymentNumber(tx *gorm.DB, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("PAY-%d-", year)

	var last procurement.SupplierPayment
	err := tx.
		Where("tenant_id = ? AND payment_number LIKE ?", tenantID, prefix+"%").
		Order("payment_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.PaymentNumber != "" {
		parts := strings.Split(last.PaymentNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// SumPaidSince sums payment amounts dated on or after the given time
func (r *GormSupplierPaymentRepository) SumPaidSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&procurement.SupplierPayment{}).
		Select("SUM(amount)").
		Where("tenant_id = ? AND payment_date >= ?", tenantID, since).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
