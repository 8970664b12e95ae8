package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlaDefinitionRepository implements SlaDefinitionRepository using GORM
type GormSlaDefinitionRepository struct {
	db *gorm.DB
}

// NewGormSlaDefinitionRepository creates a new GormSlaDefinitionRepository
func NewGormSlaDefinitionRepository(db *gorm.DB) *GormSlaDefinitionRepository {
	return &GormSlaDefinitionRepository{db: db}
}

// GetForSupplier returns the SLA definition for a supplier within a tenant
func (r *GormSlaDefinitionRepository) GetForSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (*procurement.SlaDefinition, error) {
	var def procurement.SlaDefinition
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID).
		First(&def).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &def, nil
}

// FindAllForTenant returns every SLA definition of a tenant
func (r *GormSlaDefinitionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]procurement.SlaDefinition, error) {
	var defs []procurement.SlaDefinition
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// Upsert inserts or replaces the definition keyed by tenant+supplier
func (r *GormSlaDefinitionRepository) Upsert(ctx context.Context, def *procurement.SlaDefinition) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "supplier_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"max_lead_time_days",
				"min_fill_rate_pct",
				"max_defect_rate_pct",
				"penalty_pct",
				"schema_version",
				"updated_at",
				"version",
			}),
		}).
		Create(def).Error
}
