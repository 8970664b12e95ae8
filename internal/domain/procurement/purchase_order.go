package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/shared"
	"github.com/supplypulse/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderStatus represents the lifecycle status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft           PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusConfirmed       PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderStatusPartialReceived PurchaseOrderStatus = "PARTIAL_RECEIVED"
	PurchaseOrderStatusReceived        PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusClosed          PurchaseOrderStatus = "CLOSED"
	PurchaseOrderStatusCancelled       PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusConfirmed, PurchaseOrderStatusPartialReceived,
		PurchaseOrderStatusReceived, PurchaseOrderStatusClosed, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// DeliveredStatuses are the statuses considered for SLA compliance evaluation
func DeliveredStatuses() []PurchaseOrderStatus {
	return []PurchaseOrderStatus{
		PurchaseOrderStatusReceived,
		PurchaseOrderStatusPartialReceived,
		PurchaseOrderStatusClosed,
	}
}

// PaymentStatus is derived from paid amount, total and due date.
// It is never set independently.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// IsOutstanding returns true for statuses with an unpaid balance
func (s PaymentStatus) IsOutstanding() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial || s == PaymentStatusOverdue
}

// PaymentTolerance absorbs floating-point rounding when comparing paid
// amount against the order total.
var PaymentTolerance = decimal.NewFromFloat(0.01)

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// Amount returns ordered quantity times unit cost
func (i *PurchaseOrderItem) Amount() decimal.Decimal {
	return i.OrderedQuantity.Mul(i.UnitCost)
}

// PurchaseOrder is the aggregate the analytics engine computes over.
// Its lifecycle and items are owned by the procurement subsystem; the
// only mutation performed here is payment application.
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	OrderNumber   string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_po_tenant_number,priority:2"`
	SupplierID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName  string              `gorm:"type:varchar(200);not null"`
	Status        PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	TotalAmount   decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentStatus PaymentStatus       `gorm:"type:varchar(20);not null;default:'PENDING'"`
	DueDate       *time.Time          `gorm:"index"`
	Items         []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	Receipts      []GoodsReceipt      `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// Outstanding returns the unpaid balance (total minus paid)
func (o *PurchaseOrder) Outstanding() decimal.Decimal {
	return o.TotalAmount.Sub(o.PaidAmount)
}

// CanAcceptPayment returns true if payments may be recorded against this order
func (o *PurchaseOrder) CanAcceptPayment() bool {
	return o.Status != PurchaseOrderStatusDraft && o.Status != PurchaseOrderStatusCancelled
}

// IsPayable returns true if the order carries an unpaid balance that
// belongs in accounts-payable reporting
func (o *PurchaseOrder) IsPayable() bool {
	return o.CanAcceptPayment() && o.PaymentStatus.IsOutstanding()
}

// ApplyPayment applies a payment amount against the outstanding balance
// and recomputes the derived payment status. The caller must persist the
// order and the payment record in one transaction.
func (o *PurchaseOrder) ApplyPayment(amount decimal.Decimal, now time.Time) error {
	if !o.CanAcceptPayment() {
		return shared.NewDomainErrorf("INVALID_STATE", "Cannot record payment against a %s purchase order", o.Status)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	outstanding := o.Outstanding()
	if amount.GreaterThan(outstanding) {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "Payment amount %s exceeds outstanding balance %s",
			amount.StringFixed(2), outstanding.StringFixed(2))
	}

	o.PaidAmount = o.PaidAmount.Add(amount)
	o.RecomputePaymentStatus(now)
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// RecomputePaymentStatus derives PaymentStatus from paid amount, total and
// due date. PAID wins within PaymentTolerance of the total; an unpaid
// balance past the due date is always reported OVERDUE.
func (o *PurchaseOrder) RecomputePaymentStatus(now time.Time) {
	diff := o.TotalAmount.Sub(o.PaidAmount).Abs()
	switch {
	case diff.LessThanOrEqual(PaymentTolerance):
		o.PaymentStatus = PaymentStatusPaid
	case o.PaidAmount.IsPositive():
		o.PaymentStatus = PaymentStatusPartial
	default:
		o.PaymentStatus = PaymentStatusPending
	}

	if o.PaymentStatus != PaymentStatusPaid && o.DueDate != nil && o.DueDate.Before(now) {
		o.PaymentStatus = PaymentStatusOverdue
	}
}

// IsFullyPaid returns true if the paid amount covers the total within tolerance
func (o *PurchaseOrder) IsFullyPaid() bool {
	return o.TotalAmount.Sub(o.PaidAmount).Abs().LessThanOrEqual(PaymentTolerance)
}

// IsOverdue returns true if an unpaid balance exists past the due date
func (o *PurchaseOrder) IsOverdue(now time.Time) bool {
	return !o.IsFullyPaid() && o.DueDate != nil && o.DueDate.Before(now)
}

// DaysPastDue returns whole days past the due date, 0 when not overdue
func (o *PurchaseOrder) DaysPastDue(now time.Time) int {
	if !o.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(*o.DueDate).Hours() / 24)
}

// HasCompletedReceipt returns true if at least one goods receipt has been
// completed; such orders count as completed for metric purposes.
func (o *PurchaseOrder) HasCompletedReceipt() bool {
	for i := range o.Receipts {
		if o.Receipts[i].IsCompleted() {
			return true
		}
	}
	return false
}

// FirstCompletedReceipt returns the completed receipt with the earliest
// completion timestamp, or nil when none exists.
func (o *PurchaseOrder) FirstCompletedReceipt() *GoodsReceipt {
	var first *GoodsReceipt
	for i := range o.Receipts {
		r := &o.Receipts[i]
		if !r.IsCompleted() {
			continue
		}
		if first == nil || r.CompletedAt.Before(*first.CompletedAt) {
			first = r
		}
	}
	return first
}

// LeadTimeDays returns the whole days between order creation and the
// earliest completed receipt. The second return value is false when the
// order has no completed receipt or the elapsed time is not positive.
func (o *PurchaseOrder) LeadTimeDays() (int, bool) {
	first := o.FirstCompletedReceipt()
	if first == nil {
		return 0, false
	}
	days := int(first.CompletedAt.Sub(o.CreatedAt).Hours() / 24)
	if days <= 0 {
		return 0, false
	}
	return days, true
}

// Value returns the order value as the sum of unit cost times ordered
// quantity over all line items.
func (o *PurchaseOrder) Value() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Amount())
	}
	return total
}

// ValueMoney returns the order value as Money
func (o *PurchaseOrder) ValueMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.Value())
}

// OrderedQuantity returns the total ordered quantity across line items
func (o *PurchaseOrder) OrderedQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].OrderedQuantity)
	}
	return total
}

// ReceivedQuantity returns the total received quantity across line items
func (o *PurchaseOrder) ReceivedQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].ReceivedQuantity)
	}
	return total
}

// ItemFillRatePct returns received/ordered as a percentage over the
// order's own line items, or nil when nothing was ordered.
func (o *PurchaseOrder) ItemFillRatePct() *decimal.Decimal {
	ordered := o.OrderedQuantity()
	if ordered.IsZero() {
		return nil
	}
	rate := o.ReceivedQuantity().Div(ordered).Mul(decimal.NewFromInt(100))
	return &rate
}
