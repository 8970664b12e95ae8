package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM.
// Reads preload line items and goods receipts; all writes go through the
// payment repository's transaction.
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

func (r *GormPurchaseOrderRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items").
		Preload("Receipts").
		Preload("Receipts.Lines")
}

// FindByIDForTenant finds a purchase order by ID within a tenant
func (r *GormPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindBySupplierInWindow returns a supplier's orders created within [from, to]
func (r *GormPurchaseOrderRepository) FindBySupplierInWindow(ctx context.Context, tenantID, supplierID uuid.UUID,
	from, to time.Time) ([]procurement.PurchaseOrder, error) {

	var orders []procurement.PurchaseOrder
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("tenant_id = ? AND supplier_id = ? AND created_at >= ? AND created_at <= ?",
			tenantID, supplierID, from, to).
		Where("status <> ?", procurement.PurchaseOrderStatusCancelled).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindDeliveredInWindow returns orders in delivery-relevant statuses created
// within [from, to], across all suppliers of the tenant
func (r *GormPurchaseOrderRepository) FindDeliveredInWindow(ctx context.Context, tenantID uuid.UUID,
	from, to time.Time) ([]procurement.PurchaseOrder, error) {

	var orders []procurement.PurchaseOrder
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("tenant_id = ? AND created_at >= ? AND created_at <= ?", tenantID, from, to).
		Where("status IN ?", procurement.DeliveredStatuses()).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// outstandingStatuses are the payment statuses carrying an unpaid balance
var outstandingStatuses = []procurement.PaymentStatus{
	procurement.PaymentStatusPending,
	procurement.PaymentStatusPartial,
	procurement.PaymentStatusOverdue,
}

// FindPayables returns outstanding orders matching the filter plus the
// unpaginated total count. Results are ordered oldest due date first.
func (r *GormPurchaseOrderRepository) FindPayables(ctx context.Context, tenantID uuid.UUID,
	filter procurement.PayablesFilter) ([]procurement.PurchaseOrder, int64, error) {

	query := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("tenant_id = ?", tenantID).
		Where("status NOT IN ?", []procurement.PurchaseOrderStatus{
			procurement.PurchaseOrderStatusDraft,
			procurement.PurchaseOrderStatusCancelled,
		})

	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	} else {
		query = query.Where("payment_status IN ?", outstandingStatuses)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var orders []procurement.PurchaseOrder
	if err := query.
		Order("due_date ASC NULLS LAST").
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindRecentlyPaid returns the most recently settled orders, newest
// first. Orders without a due date are excluded since days-to-pay
// cannot be derived for them.
func (r *GormPurchaseOrderRepository) FindRecentlyPaid(ctx context.Context, tenantID uuid.UUID, limit int) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND payment_status = ? AND due_date IS NOT NULL", tenantID, procurement.PaymentStatusPaid).
		Order("updated_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
