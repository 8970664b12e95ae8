package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/procurement"
)

// Aging bucket layout. Five fixed buckets partition payables by whole
// days past due; a payable with no due date or a future due date is
// "Current".
const (
	AgingBucketCount = 5
	// DaysToPaySampleSize caps how many recently paid orders feed the
	// average days-to-pay statistic.
	DaysToPaySampleSize = 100
	// PaidWindowDays is the trailing window for the "paid recently" summary figure.
	PaidWindowDays = 30
)

// AgingBucketLabels are the display labels, index-aligned with the buckets.
var AgingBucketLabels = [AgingBucketCount]string{
	"Current",
	"1-30 Days",
	"31-60 Days",
	"61-90 Days",
	"90+ Days",
}

// AgingBucket is a derived view of outstanding amounts grouped by age.
// Never persisted.
type AgingBucket struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// BuildAgingBuckets distributes outstanding purchase-order balances over
// the five aging buckets as of now. Bucket amounts are rounded to two
// decimal places. Buckets are exhaustive and disjoint: every payable
// lands in exactly one.
func BuildAgingBuckets(orders []procurement.PurchaseOrder, now time.Time) []AgingBucket {
	buckets := make([]AgingBucket, AgingBucketCount)
	for i := range buckets {
		buckets[i] = AgingBucket{Label: AgingBucketLabels[i], Amount: decimal.Zero}
	}

	for i := range orders {
		order := &orders[i]
		if !order.IsPayable() {
			continue
		}
		idx := agingBucketIndex(order, now)
		buckets[idx].Amount = buckets[idx].Amount.Add(order.Outstanding())
		buckets[idx].Count++
	}

	for i := range buckets {
		buckets[i].Amount = buckets[i].Amount.Round(2)
	}
	return buckets
}

func agingBucketIndex(order *procurement.PurchaseOrder, now time.Time) int {
	if order.DueDate == nil || !order.DueDate.Before(now) {
		return 0
	}
	daysPast := int(now.Sub(*order.DueDate).Hours() / 24)
	switch {
	case daysPast <= 30:
		return 1
	case daysPast <= 60:
		return 2
	case daysPast <= 90:
		return 3
	default:
		return 4
	}
}

// TotalOutstanding sums all bucket amounts
func TotalOutstanding(buckets []AgingBucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Amount)
	}
	return total
}

// TotalOverdue sums every bucket except Current
func TotalOverdue(buckets []AgingBucket) decimal.Decimal {
	total := decimal.Zero
	for i, b := range buckets {
		if i == 0 {
			continue
		}
		total = total.Add(b.Amount)
	}
	return total
}

// AvgDaysToPay returns the mean of whole days between creation and last
// update over fully paid orders, rounded to one decimal place. Returns
// zero when the sample is empty.
func AvgDaysToPay(paidOrders []procurement.PurchaseOrder) decimal.Decimal {
	sum := 0
	count := 0
	for i := range paidOrders {
		order := &paidOrders[i]
		days := int(order.UpdatedAt.Sub(order.CreatedAt).Hours() / 24)
		if days < 0 {
			continue
		}
		sum += days
		count++
	}
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(count))).Round(1)
}

// CreditUtilizationPct returns outstanding/limit as a percentage rounded
// to two decimal places, or zero when no positive limit is configured.
func CreditUtilizationPct(outstanding decimal.Decimal, creditLimit *decimal.Decimal) decimal.Decimal {
	if creditLimit == nil || !creditLimit.IsPositive() {
		return decimal.Zero
	}
	return outstanding.Div(*creditLimit).Mul(hundred).Round(2)
}
