package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayablesFilter narrows payable purchase-order queries
type PayablesFilter struct {
	SupplierID    *uuid.UUID
	PaymentStatus *PaymentStatus
	Page          int
	PageSize      int
}

// SupplierRepository provides access to supplier master data
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Supplier, error)
	// UpdateReliability persists only the cached metric fields of the supplier
	UpdateReliability(ctx context.Context, supplier *Supplier) error
}

// PurchaseOrderRepository provides read access to purchase-order history
// with receipts and line items preloaded
type PurchaseOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	// FindBySupplierInWindow returns orders created within [from, to]
	FindBySupplierInWindow(ctx context.Context, tenantID, supplierID uuid.UUID, from, to time.Time) ([]PurchaseOrder, error)
	// FindDeliveredInWindow returns orders in SLA-relevant statuses created within [from, to]
	FindDeliveredInWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]PurchaseOrder, error)
	// FindPayables returns outstanding orders matching the filter plus the unpaginated total
	FindPayables(ctx context.Context, tenantID uuid.UUID, filter PayablesFilter) ([]PurchaseOrder, int64, error)
	// FindRecentlyPaid returns the most recently updated fully paid orders with a due date
	FindRecentlyPaid(ctx context.Context, tenantID uuid.UUID, limit int) ([]PurchaseOrder, error)
}

// ApplyPaymentFunc mutates the locked purchase order and builds the
// payment ledger entry to insert in the same transaction. The generated
// sequential payment number is passed in.
type ApplyPaymentFunc func(order *PurchaseOrder, paymentNumber string) (*SupplierPayment, error)

// SupplierPaymentRepository owns the append-only payment ledger
type SupplierPaymentRepository interface {
	// RecordPayment loads the order inside a transaction with a row lock,
	// invokes apply, and persists both the payment and the updated order
	// atomically. Returns shared.ErrNotFound when the order is absent.
	RecordPayment(ctx context.Context, tenantID, orderID uuid.UUID, apply ApplyPaymentFunc) (*SupplierPayment, error)
	// SumPaidSince sums payment amounts dated on or after the given time
	SumPaidSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (decimal.Decimal, error)
}

// SlaDefinitionRepository stores per-supplier SLA configuration
type SlaDefinitionRepository interface {
	GetForSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (*SlaDefinition, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]SlaDefinition, error)
	// Upsert inserts or replaces the definition keyed by tenant+supplier
	Upsert(ctx context.Context, def *SlaDefinition) error
}
