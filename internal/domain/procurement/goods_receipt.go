package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoodsReceiptStatus represents the completion status of a goods receipt
type GoodsReceiptStatus string

const (
	GoodsReceiptStatusPending   GoodsReceiptStatus = "PENDING"
	GoodsReceiptStatusCompleted GoodsReceiptStatus = "COMPLETED"
)

// GoodsReceiptLine is a single line on a goods receipt
type GoodsReceiptLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExpectedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RejectedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GoodsReceiptLine) TableName() string {
	return "goods_receipt_lines"
}

// AcceptedQuantity returns received minus rejected quantity
func (l *GoodsReceiptLine) AcceptedQuantity() decimal.Decimal {
	return l.ReceivedQuantity.Sub(l.RejectedQuantity)
}

// GoodsReceipt records goods physically received against a purchase order.
// It is written by the procurement subsystem and immutable once completed;
// CompletedAt is the lead-time anchor for all supplier metrics.
type GoodsReceipt struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	ReceiptNumber string             `gorm:"type:varchar(50);not null"`
	Status        GoodsReceiptStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CompletedAt   *time.Time         `gorm:"index"`
	Lines         []GoodsReceiptLine `gorm:"foreignKey:ReceiptID;references:ID"`
	CreatedAt     time.Time          `gorm:"not null"`
	UpdatedAt     time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// IsCompleted returns true if the receipt has been completed
func (r *GoodsReceipt) IsCompleted() bool {
	return r.Status == GoodsReceiptStatusCompleted && r.CompletedAt != nil
}

// TotalExpected returns the total expected quantity across all lines
func (r *GoodsReceipt) TotalExpected() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.ExpectedQuantity)
	}
	return total
}

// TotalReceived returns the total received quantity across all lines
func (r *GoodsReceipt) TotalReceived() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.ReceivedQuantity)
	}
	return total
}

// TotalRejected returns the total rejected quantity across all lines
func (r *GoodsReceipt) TotalRejected() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.RejectedQuantity)
	}
	return total
}
