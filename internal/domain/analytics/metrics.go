package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/procurement"
)

// Metric window and fallback constants. Kept as named values so callers
// and tests can assert against them directly.
const (
	// DefaultWindowDays is the trailing window applied when the caller
	// supplies no explicit date range.
	DefaultWindowDays = 90
	// DefaultPromisedLeadTimeDays is assumed when a supplier declares no
	// average lead time.
	DefaultPromisedLeadTimeDays = 7
)

// Reliability score component weights. They sum to 1.
var (
	WeightOnTime  = decimal.NewFromFloat(0.4)
	WeightQuality = decimal.NewFromFloat(0.4)
	WeightFill    = decimal.NewFromFloat(0.2)
)

var hundred = decimal.NewFromInt(100)

// SupplierMetrics is the computed reliability profile of one supplier
// over a date window. Rate fields are nil when the window holds no data
// to compute them from; ReliabilityScore is always set and is 0 for a
// supplier with no completed orders.
type SupplierMetrics struct {
	SupplierID       uuid.UUID        `json:"supplier_id"`
	SupplierName     string           `json:"supplier_name"`
	WindowStart      time.Time        `json:"window_start"`
	WindowEnd        time.Time        `json:"window_end"`
	TotalOrders      int              `json:"total_orders"`
	CompletedOrders  int              `json:"completed_orders"`
	AvgLeadTimeDays  *decimal.Decimal `json:"avg_lead_time_days"`
	OnTimeRatePct    *decimal.Decimal `json:"on_time_rate_pct"`
	QualityScorePct  *decimal.Decimal `json:"quality_score_pct"`
	FillRatePct      *decimal.Decimal `json:"fill_rate_pct"`
	ReliabilityScore decimal.Decimal  `json:"reliability_score"`
}

// HasCompletedOrders reports whether any order in the window completed delivery
func (m SupplierMetrics) HasCompletedOrders() bool {
	return m.CompletedOrders > 0
}

// ComputeSupplierMetrics derives the full metric set for one supplier
// from its purchase orders in the window. Pure; safe to call concurrently.
func ComputeSupplierMetrics(supplier *procurement.Supplier, orders []procurement.PurchaseOrder,
	windowStart, windowEnd time.Time) SupplierMetrics {

	metrics := SupplierMetrics{
		SupplierID:       supplier.ID,
		SupplierName:     supplier.Name,
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
		TotalOrders:      len(orders),
		ReliabilityScore: decimal.Zero,
	}

	promised := supplier.PromisedLeadTimeDays(DefaultPromisedLeadTimeDays)

	completed := 0
	onTime := 0
	leadTimeSum := 0
	leadTimeCount := 0
	totalExpected := decimal.Zero
	totalReceived := decimal.Zero
	totalRejected := decimal.Zero

	for i := range orders {
		order := &orders[i]
		if !order.HasCompletedReceipt() {
			continue
		}
		completed++

		if days, ok := order.LeadTimeDays(); ok {
			leadTimeSum += days
			leadTimeCount++
			if days <= promised {
				onTime++
			}
		}

		for j := range order.Receipts {
			receipt := &order.Receipts[j]
			if !receipt.IsCompleted() {
				continue
			}
			totalExpected = totalExpected.Add(receipt.TotalExpected())
			totalReceived = totalReceived.Add(receipt.TotalReceived())
			totalRejected = totalRejected.Add(receipt.TotalRejected())
		}
	}

	metrics.CompletedOrders = completed
	if completed == 0 {
		return metrics
	}

	if leadTimeCount > 0 {
		avg := decimal.NewFromInt(int64(leadTimeSum)).
			Div(decimal.NewFromInt(int64(leadTimeCount))).Round(1)
		metrics.AvgLeadTimeDays = &avg
	}

	onTimeRate := decimal.NewFromInt(int64(onTime)).
		Div(decimal.NewFromInt(int64(completed))).Mul(hundred).Round(1)
	metrics.OnTimeRatePct = &onTimeRate

	if totalReceived.IsPositive() {
		quality := totalReceived.Sub(totalRejected).Div(totalReceived).Mul(hundred).Round(1)
		metrics.QualityScorePct = &quality
	}
	if totalExpected.IsPositive() {
		fill := totalReceived.Div(totalExpected).Mul(hundred).Round(1)
		metrics.FillRatePct = &fill
	}

	metrics.ReliabilityScore = compositeScore(metrics.OnTimeRatePct, metrics.QualityScorePct, metrics.FillRatePct)

	return metrics
}

// compositeScore blends the three rate components, substituting zero for
// missing ones, and clamps the result to [0, 100].
func compositeScore(onTime, quality, fill *decimal.Decimal) decimal.Decimal {
	score := WeightOnTime.Mul(orZero(onTime)).
		Add(WeightQuality.Mul(orZero(quality))).
		Add(WeightFill.Mul(orZero(fill))).
		Round(1)
	if score.IsNegative() {
		return decimal.Zero
	}
	if score.GreaterThan(hundred) {
		return hundred
	}
	return score
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// TenantAverages summarizes metrics across the suppliers of a tenant
// that have at least one completed order in the window.
type TenantAverages struct {
	Suppliers           int              `json:"suppliers"`
	ActiveSuppliers     int              `json:"active_suppliers"`
	AvgLeadTimeDays     *decimal.Decimal `json:"avg_lead_time_days"`
	AvgOnTimeRatePct    *decimal.Decimal `json:"avg_on_time_rate_pct"`
	AvgQualityPct       *decimal.Decimal `json:"avg_quality_pct"`
	AvgReliabilityScore *decimal.Decimal `json:"avg_reliability_score"`
}

// ComputeTenantAverages averages metric values over suppliers with
// completed orders; suppliers without activity are counted but excluded
// from every average.
func ComputeTenantAverages(all []SupplierMetrics) TenantAverages {
	summary := TenantAverages{Suppliers: len(all)}

	leadSum, leadN := decimal.Zero, 0
	onTimeSum, onTimeN := decimal.Zero, 0
	qualitySum, qualityN := decimal.Zero, 0
	scoreSum := decimal.Zero

	for _, m := range all {
		if !m.HasCompletedOrders() {
			continue
		}
		summary.ActiveSuppliers++
		scoreSum = scoreSum.Add(m.ReliabilityScore)
		if m.AvgLeadTimeDays != nil {
			leadSum = leadSum.Add(*m.AvgLeadTimeDays)
			leadN++
		}
		if m.OnTimeRatePct != nil {
			onTimeSum = onTimeSum.Add(*m.OnTimeRatePct)
			onTimeN++
		}
		if m.QualityScorePct != nil {
			qualitySum = qualitySum.Add(*m.QualityScorePct)
			qualityN++
		}
	}

	if summary.ActiveSuppliers == 0 {
		return summary
	}

	if leadN > 0 {
		avg := leadSum.Div(decimal.NewFromInt(int64(leadN))).Round(1)
		summary.AvgLeadTimeDays = &avg
	}
	if onTimeN > 0 {
		avg := onTimeSum.Div(decimal.NewFromInt(int64(onTimeN))).Round(1)
		summary.AvgOnTimeRatePct = &avg
	}
	if qualityN > 0 {
		avg := qualitySum.Div(decimal.NewFromInt(int64(qualityN))).Round(1)
		summary.AvgQualityPct = &avg
	}
	avgScore := scoreSum.Div(decimal.NewFromInt(int64(summary.ActiveSuppliers))).Round(1)
	summary.AvgReliabilityScore = &avgScore

	return summary
}
