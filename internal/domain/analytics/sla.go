package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/procurement"
)

// SLA evaluation constants.
const (
	// DefaultLookbackDays is the compliance evaluation window when the
	// caller supplies none.
	DefaultLookbackDays = 180
	// RecentBreachLimit caps the breach events returned on the dashboard.
	RecentBreachLimit = 20
	// BreachedScoreThreshold: compliance scores below it are BREACHED.
	BreachedScoreThreshold = 60
	// AtRiskScoreThreshold: scores below it (but not BREACHED) are AT_RISK.
	AtRiskScoreThreshold = 80
)

// Compliance score component weights. They sum to 1.
var (
	ComplianceWeightOnTime     = decimal.NewFromFloat(0.4)
	ComplianceWeightFill       = decimal.NewFromFloat(0.4)
	ComplianceWeightBreachFree = decimal.NewFromFloat(0.2)
)

// ComplianceStatus classifies a supplier's SLA compliance
type ComplianceStatus string

const (
	ComplianceStatusCompliant ComplianceStatus = "COMPLIANT"
	ComplianceStatusAtRisk    ComplianceStatus = "AT_RISK"
	ComplianceStatusBreached  ComplianceStatus = "BREACHED"
)

// BreachType identifies which SLA target a purchase order violated
type BreachType string

const (
	BreachTypeLeadTime BreachType = "LEAD_TIME"
	BreachTypeFillRate BreachType = "FILL_RATE"
)

// BreachEvent records one SLA violation with its financial penalty.
// Penalty is rounded to the nearest whole currency unit.
type BreachEvent struct {
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	Type         BreachType      `json:"type"`
	Target       decimal.Decimal `json:"target"`
	Actual       decimal.Decimal `json:"actual"`
	BreachDate   time.Time       `json:"breach_date"`
	Penalty      decimal.Decimal `json:"penalty"`
}

// SupplierCompliance aggregates SLA performance for one supplier
type SupplierCompliance struct {
	SupplierID      uuid.UUID        `json:"supplier_id"`
	SupplierName    string           `json:"supplier_name"`
	TotalOrders     int              `json:"total_orders"`
	OnTimePct       decimal.Decimal  `json:"on_time_pct"`
	AvgLeadTimeDays decimal.Decimal  `json:"avg_lead_time_days"`
	AvgFillRatePct  decimal.Decimal  `json:"avg_fill_rate_pct"`
	BreachCount     int              `json:"breach_count"`
	PenaltyTotal    decimal.Decimal  `json:"penalty_total"`
	ComplianceScore decimal.Decimal  `json:"compliance_score"`
	Status          ComplianceStatus `json:"status"`
}

// EvaluateSupplierCompliance scores one supplier's orders against its SLA
// definition and returns the aggregate plus every breach event found.
//
// An order without a completed receipt is evaluated with the SLA's own
// max lead time as its actual lead time, so in-flight orders never raise
// a lead-time breach. This mirrors the upstream policy of not penalizing
// orders still being delivered.
func EvaluateSupplierCompliance(def *procurement.SlaDefinition, supplierName string,
	orders []procurement.PurchaseOrder) (SupplierCompliance, []BreachEvent) {

	compliance := SupplierCompliance{
		SupplierID:   def.SupplierID,
		SupplierName: supplierName,
		TotalOrders:  len(orders),
		PenaltyTotal: decimal.Zero,
	}

	if len(orders) == 0 {
		// absence of activity is not penalized
		compliance.OnTimePct = hundred
		compliance.AvgFillRatePct = hundred
		compliance.ComplianceScore = hundred
		compliance.Status = ComplianceStatusCompliant
		return compliance, nil
	}

	var breaches []BreachEvent
	maxLead := decimal.NewFromInt(int64(def.MaxLeadTimeDays))

	onTime := 0
	leadSum := decimal.Zero
	fillSum := decimal.Zero

	for i := range orders {
		order := &orders[i]

		leadDays, ok := order.LeadTimeDays()
		if !ok {
			leadDays = def.MaxLeadTimeDays
		}
		lead := decimal.NewFromInt(int64(leadDays))
		leadSum = leadSum.Add(lead)
		if leadDays <= def.MaxLeadTimeDays {
			onTime++
		}

		fill := hundred
		if rate := order.ItemFillRatePct(); rate != nil {
			fill = *rate
		}
		fillSum = fillSum.Add(fill)

		value := order.Value()
		penalty := value.Mul(def.PenaltyPct).Div(hundred).Round(0)
		breachDate := order.CreatedAt
		if first := order.FirstCompletedReceipt(); first != nil {
			breachDate = *first.CompletedAt
		}

		if leadDays > def.MaxLeadTimeDays {
			breaches = append(breaches, BreachEvent{
				SupplierID:   def.SupplierID,
				SupplierName: supplierName,
				OrderID:      order.ID,
				OrderNumber:  order.OrderNumber,
				Type:         BreachTypeLeadTime,
				Target:       maxLead,
				Actual:       lead,
				BreachDate:   breachDate,
				Penalty:      penalty,
			})
		}
		if fill.LessThan(def.MinFillRatePct) {
			breaches = append(breaches, BreachEvent{
				SupplierID:   def.SupplierID,
				SupplierName: supplierName,
				OrderID:      order.ID,
				OrderNumber:  order.OrderNumber,
				Type:         BreachTypeFillRate,
				Target:       def.MinFillRatePct,
				Actual:       fill.Round(1),
				BreachDate:   breachDate,
				Penalty:      penalty,
			})
		}
	}

	total := decimal.NewFromInt(int64(len(orders)))
	compliance.OnTimePct = decimal.NewFromInt(int64(onTime)).Div(total).Mul(hundred).Round(1)
	compliance.AvgLeadTimeDays = leadSum.Div(total).Round(1)
	compliance.AvgFillRatePct = fillSum.Div(total).Round(1)
	compliance.BreachCount = len(breaches)
	for _, b := range breaches {
		compliance.PenaltyTotal = compliance.PenaltyTotal.Add(b.Penalty)
	}

	compliance.ComplianceScore = complianceScore(compliance.OnTimePct, compliance.AvgFillRatePct,
		compliance.BreachCount, len(orders))
	compliance.Status = statusForScore(compliance.ComplianceScore)

	return compliance, breaches
}

// complianceScore blends on-time, fill-rate and breach-free percentages,
// rounded to the nearest whole number.
func complianceScore(onTimePct, avgFillPct decimal.Decimal, breachCount, totalOrders int) decimal.Decimal {
	breachFree := hundred.Sub(decimal.NewFromInt(int64(breachCount)).
		Div(decimal.NewFromInt(int64(totalOrders))).Mul(hundred))
	if breachFree.IsNegative() {
		breachFree = decimal.Zero
	}
	return ComplianceWeightOnTime.Mul(onTimePct).
		Add(ComplianceWeightFill.Mul(avgFillPct)).
		Add(ComplianceWeightBreachFree.Mul(breachFree)).
		Round(0)
}

func statusForScore(score decimal.Decimal) ComplianceStatus {
	switch {
	case score.LessThan(decimal.NewFromInt(BreachedScoreThreshold)):
		return ComplianceStatusBreached
	case score.LessThan(decimal.NewFromInt(AtRiskScoreThreshold)):
		return ComplianceStatusAtRisk
	default:
		return ComplianceStatusCompliant
	}
}

// SortCompliance orders suppliers worst-first by compliance score,
// breaking ties by supplier name.
func SortCompliance(entries []SupplierCompliance) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].ComplianceScore.Equal(entries[j].ComplianceScore) {
			return entries[i].ComplianceScore.LessThan(entries[j].ComplianceScore)
		}
		return entries[i].SupplierName < entries[j].SupplierName
	})
}

// SortBreachesRecentFirst orders breach events newest-first and caps the
// slice at RecentBreachLimit.
func SortBreachesRecentFirst(breaches []BreachEvent) []BreachEvent {
	sort.SliceStable(breaches, func(i, j int) bool {
		return breaches[i].BreachDate.After(breaches[j].BreachDate)
	})
	if len(breaches) > RecentBreachLimit {
		breaches = breaches[:RecentBreachLimit]
	}
	return breaches
}
