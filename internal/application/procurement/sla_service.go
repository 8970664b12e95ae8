package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/supplypulse/backend/internal/domain/analytics"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/domain/shared"
	"github.com/supplypulse/backend/internal/infrastructure/logger"
)

// SlaService manages SLA definitions and evaluates supplier compliance
type SlaService struct {
	slaRepo      procurement.SlaDefinitionRepository
	supplierRepo procurement.SupplierRepository
	orderRepo    procurement.PurchaseOrderRepository
	now          func() time.Time
}

// NewSlaService creates a new SlaService
func NewSlaService(slaRepo procurement.SlaDefinitionRepository, supplierRepo procurement.SupplierRepository,
	orderRepo procurement.PurchaseOrderRepository) *SlaService {
	return &SlaService{
		slaRepo:      slaRepo,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		now:          time.Now,
	}
}

// GetDefinition returns the SLA definition for a supplier
func (s *SlaService) GetDefinition(ctx context.Context, tenantID, supplierID uuid.UUID) (*SlaDefinitionResponse, error) {
	def, err := s.slaRepo.GetForSupplier(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSlaDefinitionResponse(def)
	return &response, nil
}

// SetDefinition creates or replaces a supplier's SLA targets. The write
// is a keyed upsert: one definition per supplier.
func (s *SlaService) SetDefinition(ctx context.Context, tenantID, supplierID uuid.UUID,
	req SetSlaDefinitionRequest) (*SlaDefinitionResponse, error) {

	// the supplier must exist before accepting targets for it
	if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
		return nil, err
	}

	def, err := s.slaRepo.GetForSupplier(ctx, tenantID, supplierID)
	switch {
	case err == nil:
		if err := def.UpdateTargets(req.MaxLeadTimeDays, req.MinFillRatePct, req.MaxDefectRatePct, req.PenaltyPct); err != nil {
			return nil, err
		}
	case shared.IsCode(err, shared.ErrNotFound.Code):
		def, err = procurement.NewSlaDefinition(tenantID, supplierID, req.MaxLeadTimeDays,
			req.MinFillRatePct, req.MaxDefectRatePct, req.PenaltyPct)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.slaRepo.Upsert(ctx, def); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("SLA definition set",
		zap.String("supplier_id", supplierID.String()),
		zap.Int("max_lead_time_days", def.MaxLeadTimeDays),
		zap.String("penalty_pct", def.PenaltyPct.String()))

	response := ToSlaDefinitionResponse(def)
	return &response, nil
}

// GetDashboard evaluates every supplier with an SLA definition against
// its delivered orders in the lookback window. Suppliers without a
// definition are excluded.
func (s *SlaService) GetDashboard(ctx context.Context, tenantID uuid.UUID,
	filter SlaDashboardFilter) (*SlaDashboardResponse, error) {

	lookback := filter.LookbackDays
	if lookback <= 0 {
		lookback = analytics.DefaultLookbackDays
	}
	end := s.now()
	start := end.AddDate(0, 0, -lookback)

	response := &SlaDashboardResponse{
		WindowStart:    start,
		WindowEnd:      end,
		Suppliers:      []SupplierComplianceResponse{},
		RecentBreaches: []BreachEventResponse{},
		TotalPenalty:   decimal.Zero,
	}

	defs, err := s.slaRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return response, nil
	}

	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(suppliers))
	for i := range suppliers {
		names[suppliers[i].ID] = suppliers[i].Name
	}

	orders, err := s.orderRepo.FindDeliveredInWindow(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	bySupplier := make(map[uuid.UUID][]procurement.PurchaseOrder)
	for _, order := range orders {
		bySupplier[order.SupplierID] = append(bySupplier[order.SupplierID], order)
	}

	entries := make([]analytics.SupplierCompliance, 0, len(defs))
	var allBreaches []analytics.BreachEvent
	for i := range defs {
		def := &defs[i]
		compliance, breaches := analytics.EvaluateSupplierCompliance(def, names[def.SupplierID], bySupplier[def.SupplierID])
		entries = append(entries, compliance)
		allBreaches = append(allBreaches, breaches...)
		response.TotalPenalty = response.TotalPenalty.Add(compliance.PenaltyTotal)
	}

	analytics.SortCompliance(entries)
	for _, e := range entries {
		response.Suppliers = append(response.Suppliers, ToSupplierComplianceResponse(e))
	}
	for _, b := range analytics.SortBreachesRecentFirst(allBreaches) {
		response.RecentBreaches = append(response.RecentBreaches, ToBreachEventResponse(b))
	}

	if len(allBreaches) > 0 {
		logger.L(ctx).Info("SLA breaches detected",
			zap.Int("suppliers_evaluated", len(defs)),
			zap.Int("breach_count", len(allBreaches)),
			zap.String("total_penalty", response.TotalPenalty.String()))
	}

	return response, nil
}
