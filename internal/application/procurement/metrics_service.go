package procurement

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/supplypulse/backend/internal/domain/analytics"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/infrastructure/logger"
)

// MetricsService computes supplier reliability metrics over purchase-order
// history
type MetricsService struct {
	supplierRepo procurement.SupplierRepository
	orderRepo    procurement.PurchaseOrderRepository
	now          func() time.Time
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(supplierRepo procurement.SupplierRepository, orderRepo procurement.PurchaseOrderRepository) *MetricsService {
	return &MetricsService{
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		now:          time.Now,
	}
}

// resolveWindow applies the trailing default window for unset bounds
func (s *MetricsService) resolveWindow(filter MetricsWindowFilter) (time.Time, time.Time) {
	end := s.now()
	if filter.EndDate != nil {
		end = *filter.EndDate
	}
	start := end.AddDate(0, 0, -analytics.DefaultWindowDays)
	if filter.StartDate != nil {
		start = *filter.StartDate
	}
	return start, end
}

// GetSupplierMetrics computes metrics for one supplier in the window
func (s *MetricsService) GetSupplierMetrics(ctx context.Context, tenantID, supplierID uuid.UUID,
	filter MetricsWindowFilter) (*SupplierMetricsResponse, error) {

	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	start, end := s.resolveWindow(filter)
	orders, err := s.orderRepo.FindBySupplierInWindow(ctx, tenantID, supplierID, start, end)
	if err != nil {
		return nil, err
	}

	metrics := analytics.ComputeSupplierMetrics(supplier, orders, start, end)
	response := ToSupplierMetricsResponse(metrics)
	response.ScoreUpdatedAt = supplier.ScoreUpdatedAt
	return &response, nil
}

// ListSupplierMetrics computes metrics for every supplier of the tenant
// plus cross-supplier averages. Suppliers are ranked best-first by
// reliability score, ties broken by name.
func (s *MetricsService) ListSupplierMetrics(ctx context.Context, tenantID uuid.UUID,
	filter MetricsWindowFilter) (*TenantMetricsResponse, error) {

	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	start, end := s.resolveWindow(filter)

	all := make([]analytics.SupplierMetrics, 0, len(suppliers))
	for i := range suppliers {
		supplier := &suppliers[i]
		orders, err := s.orderRepo.FindBySupplierInWindow(ctx, tenantID, supplier.ID, start, end)
		if err != nil {
			return nil, err
		}
		all = append(all, analytics.ComputeSupplierMetrics(supplier, orders, start, end))
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].ReliabilityScore.Equal(all[j].ReliabilityScore) {
			return all[i].ReliabilityScore.GreaterThan(all[j].ReliabilityScore)
		}
		return all[i].SupplierName < all[j].SupplierName
	})

	response := &TenantMetricsResponse{
		WindowStart: start,
		WindowEnd:   end,
		Suppliers:   make([]SupplierMetricsResponse, 0, len(all)),
		Summary:     ToTenantMetricsSummaryResponse(analytics.ComputeTenantAverages(all)),
	}
	for _, m := range all {
		response.Suppliers = append(response.Suppliers, ToSupplierMetricsResponse(m))
	}
	return response, nil
}

// RefreshSupplierMetrics recomputes a supplier's metrics over the default
// window and caches the reliability score on the supplier record. A
// supplier with no completed orders in the window is not written.
// Idempotent: refreshing twice without new order activity writes the
// same values.
func (s *MetricsService) RefreshSupplierMetrics(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierMetricsResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	end := s.now()
	start := end.AddDate(0, 0, -analytics.DefaultWindowDays)
	metrics, _, err := s.refreshSupplier(ctx, tenantID, supplier, start, end)
	if err != nil {
		return nil, err
	}

	response := ToSupplierMetricsResponse(metrics)
	response.ScoreUpdatedAt = supplier.ScoreUpdatedAt
	return &response, nil
}

// RefreshAllSupplierMetrics recomputes metrics for every supplier of the
// tenant over the default window. Suppliers without completed orders in
// the window keep their cached values and are counted as skipped.
func (s *MetricsService) RefreshAllSupplierMetrics(ctx context.Context, tenantID uuid.UUID) (*RefreshAllMetricsResponse, error) {
	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	end := s.now()
	start := end.AddDate(0, 0, -analytics.DefaultWindowDays)

	response := &RefreshAllMetricsResponse{
		WindowStart: start,
		WindowEnd:   end,
		Suppliers:   []SupplierMetricsResponse{},
	}
	for i := range suppliers {
		supplier := &suppliers[i]
		metrics, refreshed, err := s.refreshSupplier(ctx, tenantID, supplier, start, end)
		if err != nil {
			return nil, err
		}
		if !refreshed {
			response.Skipped++
			continue
		}
		response.Refreshed++
		entry := ToSupplierMetricsResponse(metrics)
		entry.ScoreUpdatedAt = supplier.ScoreUpdatedAt
		response.Suppliers = append(response.Suppliers, entry)
	}
	return response, nil
}

// refreshSupplier recomputes one supplier's metrics and, when the window
// has completed deliveries, persists the rounded lead time and score.
// A window with no completed deliveries carries no signal; the cached
// score and declared lead time stay untouched.
func (s *MetricsService) refreshSupplier(ctx context.Context, tenantID uuid.UUID,
	supplier *procurement.Supplier, start, end time.Time) (analytics.SupplierMetrics, bool, error) {

	orders, err := s.orderRepo.FindBySupplierInWindow(ctx, tenantID, supplier.ID, start, end)
	if err != nil {
		return analytics.SupplierMetrics{}, false, err
	}

	metrics := analytics.ComputeSupplierMetrics(supplier, orders, start, end)
	if !metrics.HasCompletedOrders() {
		return metrics, false, nil
	}

	lead := supplier.PromisedLeadTimeDays(analytics.DefaultPromisedLeadTimeDays)
	if metrics.AvgLeadTimeDays != nil {
		lead = int(metrics.AvgLeadTimeDays.Round(0).IntPart())
	}
	if err := supplier.UpdateReliability(lead, metrics.ReliabilityScore, end); err != nil {
		return analytics.SupplierMetrics{}, false, err
	}
	if err := s.supplierRepo.UpdateReliability(ctx, supplier); err != nil {
		return analytics.SupplierMetrics{}, false, err
	}

	logger.L(ctx).Info("Supplier metrics refreshed",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("reliability_score", metrics.ReliabilityScore.String()),
		zap.Int("lead_time_days", lead),
		zap.Int("orders_in_window", len(orders)))

	return metrics, true, nil
}
