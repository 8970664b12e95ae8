package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/shared"
	"github.com/supplypulse/backend/internal/domain/shared/valueobject"
)

// PaymentMode represents how a payment was made
type PaymentMode string

const (
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeCheque       PaymentMode = "CHEQUE"
	PaymentModeCash         PaymentMode = "CASH"
)

// IsValid checks if the mode is a valid PaymentMode
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeBankTransfer, PaymentModeUPI, PaymentModeCheque, PaymentModeCash:
		return true
	}
	return false
}

// SupplierPayment is an append-only ledger entry for a payment applied
// against a purchase order. It is never updated or deleted; the order's
// paid amount is kept consistent with it inside one transaction.
type SupplierPayment struct {
	shared.TenantAggregateRoot
	PaymentNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_payment_tenant_number,priority:2"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentDate   time.Time       `gorm:"not null;index"`
	Mode          PaymentMode     `gorm:"type:varchar(20);not null"`
	Reference     string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:varchar(500)"`
	RecordedBy    *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SupplierPayment) TableName() string {
	return "supplier_payments"
}

// NewSupplierPayment creates a new payment ledger entry
func NewSupplierPayment(tenantID uuid.UUID, paymentNumber string, orderID, supplierID uuid.UUID,
	amount decimal.Decimal, paymentDate time.Time, mode PaymentMode) (*SupplierPayment, error) {
	if paymentNumber == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NUMBER", "Payment number cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode is not valid")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &SupplierPayment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PaymentNumber:       paymentNumber,
		OrderID:             orderID,
		SupplierID:          supplierID,
		Amount:              amount,
		PaymentDate:         paymentDate,
		Mode:                mode,
	}, nil
}

// SetReference sets the external payment reference
func (p *SupplierPayment) SetReference(reference string) {
	p.Reference = reference
}

// SetNotes sets free-form notes
func (p *SupplierPayment) SetNotes(notes string) {
	p.Notes = notes
}

// SetRecordedBy sets the user who recorded the payment
func (p *SupplierPayment) SetRecordedBy(userID uuid.UUID) {
	p.RecordedBy = &userID
}

// GetAmountMoney returns the amount as Money
func (p *SupplierPayment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Amount)
}
