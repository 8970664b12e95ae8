package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/shared"
)

// SupplierStatus represents the lifecycle status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "ACTIVE"
	SupplierStatusInactive SupplierStatus = "INACTIVE"
)

// Supplier represents a supplier master record.
// The analytics engine reads it and writes back only the cached
// reliability metrics via UpdateReliability.
type Supplier struct {
	shared.TenantAggregateRoot
	Code             string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_tenant_code,priority:2"`
	Name             string           `gorm:"type:varchar(200);not null"`
	ContactName      string           `gorm:"type:varchar(100)"`
	Phone            string           `gorm:"type:varchar(50)"`
	Email            string           `gorm:"type:varchar(200)"`
	Status           SupplierStatus   `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	AvgLeadTimeDays  *int             // declared average lead time from master data
	CreditLimit      *decimal.Decimal `gorm:"type:decimal(18,2)"`
	ReliabilityScore *decimal.Decimal `gorm:"type:decimal(5,1)"` // cached last computation
	ScoreUpdatedAt   *time.Time
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, code, name string) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Status:              SupplierStatusActive,
	}, nil
}

// PromisedLeadTimeDays returns the supplier's declared average lead time,
// or the given fallback when none is declared.
func (s *Supplier) PromisedLeadTimeDays(fallback int) int {
	if s.AvgLeadTimeDays != nil && *s.AvgLeadTimeDays > 0 {
		return *s.AvgLeadTimeDays
	}
	return fallback
}

// HasCreditLimit returns true if a positive credit limit is configured
func (s *Supplier) HasCreditLimit() bool {
	return s.CreditLimit != nil && s.CreditLimit.IsPositive()
}

// UpdateReliability stores the computed average lead time and reliability
// score on the supplier record. Idempotent for identical inputs.
func (s *Supplier) UpdateReliability(avgLeadTimeDays int, score decimal.Decimal, at time.Time) error {
	if score.IsNegative() || score.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_SCORE", "Reliability score must be between 0 and 100")
	}
	lead := avgLeadTimeDays
	s.AvgLeadTimeDays = &lead
	s.ReliabilityScore = &score
	s.ScoreUpdatedAt = &at
	s.UpdatedAt = at
	s.IncrementVersion()
	return nil
}
