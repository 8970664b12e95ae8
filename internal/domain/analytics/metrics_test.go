package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/domain/shared"
)

var testWindowStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
var testWindowEnd = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

func testSupplier(t *testing.T) *procurement.Supplier {
	t.Helper()
	supplier, err := procurement.NewSupplier(uuid.New(), "SUP-001", "Acme Traders")
	require.NoError(t, err)
	return supplier
}

// completedOrder builds an order created at a fixed time with one receipt
// completed leadDays later.
func completedOrder(leadDays int) procurement.PurchaseOrder {
	created := testWindowStart.Add(24 * time.Hour)
	done := created.Add(time.Duration(leadDays) * 24 * time.Hour)
	return procurement.PurchaseOrder{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{ID: uuid.New(), CreatedAt: created, UpdatedAt: created},
			},
		},
		Status: procurement.PurchaseOrderStatusReceived,
		Receipts: []procurement.GoodsReceipt{
			{ID: uuid.New(), Status: procurement.GoodsReceiptStatusCompleted, CompletedAt: &done},
		},
	}
}

func TestComputeSupplierMetricsLeadTimeExample(t *testing.T) {
	// four completed orders with lead times [5,6,8,20] against a 7 day promise
	supplier := testSupplier(t)
	orders := []procurement.PurchaseOrder{
		completedOrder(5), completedOrder(6), completedOrder(8), completedOrder(20),
	}

	m := ComputeSupplierMetrics(supplier, orders, testWindowStart, testWindowEnd)

	assert.Equal(t, 4, m.CompletedOrders)
	require.NotNil(t, m.OnTimeRatePct)
	assert.Equal(t, "50.0", m.OnTimeRatePct.StringFixed(1))
	require.NotNil(t, m.AvgLeadTimeDays)
	assert.Equal(t, "9.8", m.AvgLeadTimeDays.StringFixed(1))
}

func TestComputeSupplierMetricsQualityAndFill(t *testing.T) {
	supplier := testSupplier(t)
	order := completedOrder(5)
	order.Receipts[0].Lines = []procurement.GoodsReceiptLine{
		{
			ExpectedQuantity: decimal.NewFromInt(100),
			ReceivedQuantity: decimal.NewFromInt(90),
			RejectedQuantity: decimal.NewFromInt(5),
		},
	}

	m := ComputeSupplierMetrics(supplier, []procurement.PurchaseOrder{order}, testWindowStart, testWindowEnd)

	require.NotNil(t, m.FillRatePct)
	assert.Equal(t, "90.0", m.FillRatePct.StringFixed(1))
	require.NotNil(t, m.QualityScorePct)
	assert.Equal(t, "94.4", m.QualityScorePct.StringFixed(1))
}

func TestComputeSupplierMetricsComposite(t *testing.T) {
	supplier := testSupplier(t)
	orders := []procurement.PurchaseOrder{
		completedOrder(5), completedOrder(6), completedOrder(8), completedOrder(20),
	}
	orders[0].Receipts[0].Lines = []procurement.GoodsReceiptLine{
		{
			ExpectedQuantity: decimal.NewFromInt(100),
			ReceivedQuantity: decimal.NewFromInt(90),
			RejectedQuantity: decimal.NewFromInt(5),
		},
	}

	m := ComputeSupplierMetrics(supplier, orders, testWindowStart, testWindowEnd)

	// 0.4*50.0 + 0.4*94.4 + 0.2*90.0 = 75.76 -> 75.8
	assert.Equal(t, "75.8", m.ReliabilityScore.StringFixed(1))
	assert.True(t, m.ReliabilityScore.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, m.ReliabilityScore.LessThanOrEqual(decimal.NewFromInt(100)))
}

func TestComputeSupplierMetricsEmptyWindow(t *testing.T) {
	supplier := testSupplier(t)

	m := ComputeSupplierMetrics(supplier, nil, testWindowStart, testWindowEnd)

	assert.Nil(t, m.AvgLeadTimeDays)
	assert.Nil(t, m.OnTimeRatePct)
	assert.Nil(t, m.QualityScorePct)
	assert.Nil(t, m.FillRatePct)
	assert.True(t, m.ReliabilityScore.IsZero())
	assert.False(t, m.HasCompletedOrders())
}

func TestComputeSupplierMetricsIgnoresIncompleteOrders(t *testing.T) {
	supplier := testSupplier(t)
	pending := procurement.PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(uuid.New()),
		Status:              procurement.PurchaseOrderStatusConfirmed,
		Receipts: []procurement.GoodsReceipt{
			{ID: uuid.New(), Status: procurement.GoodsReceiptStatusPending},
		},
	}

	m := ComputeSupplierMetrics(supplier, []procurement.PurchaseOrder{pending}, testWindowStart, testWindowEnd)

	assert.Equal(t, 1, m.TotalOrders)
	assert.Equal(t, 0, m.CompletedOrders)
	assert.True(t, m.ReliabilityScore.IsZero())
}

func TestComputeSupplierMetricsUsesDeclaredLeadTime(t *testing.T) {
	supplier := testSupplier(t)
	declared := 10
	supplier.AvgLeadTimeDays = &declared

	// 8 days is late against the 7 day default but on time against 10
	m := ComputeSupplierMetrics(supplier, []procurement.PurchaseOrder{completedOrder(8)}, testWindowStart, testWindowEnd)

	require.NotNil(t, m.OnTimeRatePct)
	assert.Equal(t, "100.0", m.OnTimeRatePct.StringFixed(1))
}

func TestComputeTenantAverages(t *testing.T) {
	score1 := decimal.NewFromFloat(80.0)
	lead1 := decimal.NewFromFloat(5.0)
	score2 := decimal.NewFromFloat(60.0)
	lead2 := decimal.NewFromFloat(9.0)

	all := []SupplierMetrics{
		{CompletedOrders: 2, ReliabilityScore: score1, AvgLeadTimeDays: &lead1},
		{CompletedOrders: 3, ReliabilityScore: score2, AvgLeadTimeDays: &lead2},
		{CompletedOrders: 0, ReliabilityScore: decimal.Zero}, // excluded from averages
	}

	summary := ComputeTenantAverages(all)

	assert.Equal(t, 3, summary.Suppliers)
	assert.Equal(t, 2, summary.ActiveSuppliers)
	require.NotNil(t, summary.AvgReliabilityScore)
	assert.Equal(t, "70.0", summary.AvgReliabilityScore.StringFixed(1))
	require.NotNil(t, summary.AvgLeadTimeDays)
	assert.Equal(t, "7.0", summary.AvgLeadTimeDays.StringFixed(1))
}

func TestComputeTenantAveragesEmpty(t *testing.T) {
	summary := ComputeTenantAverages(nil)
	assert.Equal(t, 0, summary.ActiveSuppliers)
	assert.Nil(t, summary.AvgReliabilityScore)
}
