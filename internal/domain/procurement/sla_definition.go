package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/shared"
)

// SlaSchemaVersion is the current schema version for SLA definitions.
// Stored per row so older rows can be migrated if the target shape changes.
const SlaSchemaVersion = 1

// SlaDefinition is a per-supplier service-level configuration record.
// One row per tenant+supplier, updated via keyed upsert. Suppliers
// without a definition are excluded from compliance reporting.
type SlaDefinition struct {
	shared.TenantAggregateRoot
	SupplierID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_sla_tenant_supplier,priority:2"`
	MaxLeadTimeDays  int             `gorm:"not null"`
	MinFillRatePct   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	MaxDefectRatePct decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	PenaltyPct       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	SchemaVersion    int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (SlaDefinition) TableName() string {
	return "sla_definitions"
}

// NewSlaDefinition creates a new SLA definition for a supplier
func NewSlaDefinition(tenantID, supplierID uuid.UUID, maxLeadTimeDays int,
	minFillRatePct, maxDefectRatePct, penaltyPct decimal.Decimal) (*SlaDefinition, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if err := validateSlaTargets(maxLeadTimeDays, minFillRatePct, maxDefectRatePct, penaltyPct); err != nil {
		return nil, err
	}

	return &SlaDefinition{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierID:          supplierID,
		MaxLeadTimeDays:     maxLeadTimeDays,
		MinFillRatePct:      minFillRatePct,
		MaxDefectRatePct:    maxDefectRatePct,
		PenaltyPct:          penaltyPct,
		SchemaVersion:       SlaSchemaVersion,
	}, nil
}

// UpdateTargets replaces the SLA targets in place
func (d *SlaDefinition) UpdateTargets(maxLeadTimeDays int, minFillRatePct, maxDefectRatePct, penaltyPct decimal.Decimal) error {
	if err := validateSlaTargets(maxLeadTimeDays, minFillRatePct, maxDefectRatePct, penaltyPct); err != nil {
		return err
	}
	d.MaxLeadTimeDays = maxLeadTimeDays
	d.MinFillRatePct = minFillRatePct
	d.MaxDefectRatePct = maxDefectRatePct
	d.PenaltyPct = penaltyPct
	d.SchemaVersion = SlaSchemaVersion
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

func validateSlaTargets(maxLeadTimeDays int, minFillRatePct, maxDefectRatePct, penaltyPct decimal.Decimal) error {
	hundred := decimal.NewFromInt(100)
	if maxLeadTimeDays <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Max lead time must be a positive number of days")
	}
	if minFillRatePct.IsNegative() || minFillRatePct.GreaterThan(hundred) {
		return shared.NewDomainError("VALIDATION_ERROR", "Min fill rate must be between 0 and 100")
	}
	if maxDefectRatePct.IsNegative() || maxDefectRatePct.GreaterThan(hundred) {
		return shared.NewDomainError("VALIDATION_ERROR", "Max defect rate must be between 0 and 100")
	}
	if penaltyPct.IsNegative() || penaltyPct.GreaterThan(hundred) {
		return shared.NewDomainError("VALIDATION_ERROR", "Penalty percentage must be between 0 and 100")
	}
	return nil
}
