package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByIDForTenant finds a supplier by ID within a tenant
func (r *GormSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Supplier, error) {
	var supplier procurement.Supplier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAllForTenant finds all suppliers for a tenant ordered by name
func (r *GormSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]procurement.Supplier, error) {
	var suppliers []procurement.Supplier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// UpdateReliability persists only the cached metric fields of the supplier
func (r *GormSupplierRepository) UpdateReliability(ctx context.Context, supplier *procurement.Supplier) error {
	result := r.db.WithContext(ctx).
		Model(&procurement.Supplier{}).
		Where("tenant_id = ? AND id = ?", supplier.TenantID, supplier.ID).
		Updates(map[string]any{
			"avg_lead_time_days": supplier.AvgLeadTimeDays,
			"reliability_score":  supplier.ReliabilityScore,
			"score_updated_at":   supplier.ScoreUpdatedAt,
			"updated_at":         supplier.UpdatedAt,
			"version":            supplier.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
