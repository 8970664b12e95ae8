package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/supplypulse/backend/internal/domain/procurement"
	"github.com/supplypulse/backend/internal/domain/shared"
)

func outstandingOrder(tenantID uuid.UUID, total float64, daysPastDue int) procurement.PurchaseOrder {
	order := procurement.PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         "PO-2026-00042",
		SupplierID:          uuid.New(),
		SupplierName:        "Acme Traders",
		Status:              procurement.PurchaseOrderStatusConfirmed,
		TotalAmount:         decimal.NewFromFloat(total),
		PaidAmount:          decimal.Zero,
		PaymentStatus:       procurement.PaymentStatusPending,
	}
	if daysPastDue > 0 {
		due := fixedNow.Add(-time.Duration(daysPastDue) * 24 * time.Hour)
		order.DueDate = &due
		order.PaymentStatus = procurement.PaymentStatusOverdue
	}
	return order
}

func newPayablesServiceUnderTest(orderRepo *MockPurchaseOrderRepository, supplierRepo *MockSupplierRepository,
	paymentRepo *MockSupplierPaymentRepository) *PayablesService {
	service := NewPayablesService(orderRepo, supplierRepo, paymentRepo)
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestPayablesServiceListDefaults(t *testing.T) {
	tenantID := uuid.New()
	orderRepo := new(MockPurchaseOrderRepository)
	service := newPayablesServiceUnderTest(orderRepo, new(MockSupplierRepository), new(MockSupplierPaymentRepository))

	order := outstandingOrder(tenantID, 1000, 10)
	expectedFilter := procurement.PayablesFilter{Page: 1, PageSize: 20}
	orderRepo.On("FindPayables", mock.Anything, tenantID, expectedFilter).
		Return([]procurement.PurchaseOrder{order}, int64(1), nil)

	results, total, err := service.ListPayables(context.Background(), tenantID, PayablesListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "1000", results[0].Outstanding.String())
	assert.Equal(t, "OVERDUE", results[0].PaymentStatus)
	assert.Equal(t, 10, results[0].DaysPastDue)
	orderRepo.AssertExpectations(t)
}

func TestPayablesServiceListStatusFilter(t *testing.T) {
	tenantID := uuid.New()
	orderRepo := new(MockPurchaseOrderRepository)
	service := newPayablesServiceUnderTest(orderRepo, new(MockSupplierRepository), new(MockSupplierPaymentRepository))

	status := "PARTIAL"
	domainStatus := procurement.PaymentStatusPartial
	expectedFilter := procurement.PayablesFilter{PaymentStatus: &domainStatus, Page: 2, PageSize: 10}
	orderRepo.On("FindPayables", mock.Anything, tenantID, mock.MatchedBy(func(f procurement.PayablesFilter) bool {
		return f.Page == expectedFilter.Page && f.PageSize == expectedFilter.PageSize &&
			f.PaymentStatus != nil && *f.PaymentStatus == domainStatus
	})).Return([]procurement.PurchaseOrder{}, int64(0), nil)

	_, _, err := service.ListPayables(context.Background(), tenantID,
		PayablesListFilter{PaymentStatus: &status, Page: 2, PageSize: 10})

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestPayablesServiceGetAging(t *testing.T) {
	tenantID := uuid.New()
	orderRepo := new(MockPurchaseOrderRepository)
	service := newPayablesServiceUnderTest(orderRepo, new(MockSupplierRepository), new(MockSupplierPaymentRepository))

	orders := []procurement.PurchaseOrder{
		outstandingOrder(tenantID, 100, 0),
		outstandingOrder(tenantID, 200, 10),
		outstandingOrder(tenantID, 300, 95),
	}
	orderRepo.On("FindPayables", mock.Anything, tenantID, procurement.PayablesFilter{}).
		Return(orders, int64(3), nil)

	result, err := service.GetAging(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, fixedNow, result.AsOf)
	require.Len(t, result.Buckets, 5)
	assert.Equal(t, "Current", result.Buckets[0].Label)
	assert.Equal(t, "100", result.Buckets[0].Amount.String())
	assert.Equal(t, "200", result.Buckets[1].Amount.String())
	assert.Equal(t, "300", result.Buckets[4].Amount.String())
	assert.Equal(t, "600", result.TotalOutstanding.String())
	assert.Equal(t, "500", result.TotalOverdue.String())
}

func TestPayablesServiceGetSummary(t *testing.T) {
	tenantID := uuid.New()
	orderRepo := new(MockPurchaseOrderRepository)
	paymentRepo := new(MockSupplierPaymentRepository)
	service := newPayablesServiceUnderTest(orderRepo, new(MockSupplierRepository), paymentRepo)

	orderRepo.On("FindPayables", mock.Anything, tenantID, procurement.PayablesFilter{}).
		Return([]procurement.PurchaseOrder{outstandingOrder(tenantID, 500, 15)}, int64(1), nil)

	paid := outstandingOrder(tenantID, 0, 0)
	paid.CreatedAt = fixedNow.AddDate(0, 0, -20)
	paid.UpdatedAt = paid.CreatedAt.Add(12 * 24 * time.Hour)
	orderRepo.On("FindRecentlyPaid", mock.Anything, tenantID, 100).
		Return([]procurement.PurchaseOrder{paid}, nil)

	paymentRepo.On("SumPaidSince", mock.Anything, tenantID, fixedNow.AddDate(0, 0, -30)).
		Return(decimal.NewFromInt(7500), nil)

	result, err := service.GetSummary(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, "500", result.TotalOutstanding.String())
	assert.Equal(t, "500", result.TotalOverdue.String())
	assert.Equal(t, 1, result.OverdueOrders)
	assert.Equal(t, "12.0", result.AvgDaysToPay.StringFixed(1))
	assert.Equal(t, "7500", result.PaidLast30Days.String())
}

func TestPayablesServiceGetSupplierCredit(t *testing.T) {
	tenantID := uuid.New()
	supplier := newTestSupplier(t, tenantID)
	limit := decimal.NewFromInt(100000)
	supplier.CreditLimit = &limit
	orderRepo := new(MockPurchaseOrderRepository)
	supplierRepo := new(MockSupplierRepository)
	service := newPayablesServiceUnderTest(orderRepo, supplierRepo, new(MockSupplierPaymentRepository))

	supplierRepo.On("FindByIDForTenant", mock.Anything, tenantID, supplier.ID).Return(supplier, nil)
	orderRepo.On("FindPayables", mock.Anything, tenantID, procurement.PayablesFilter{SupplierID: &supplier.ID}).
		Return([]procurement.PurchaseOrder{
			outstandingOrder(tenantID, 15000, 0),
			outstandingOrder(tenantID, 10000, 5),
		}, int64(2), nil)

	result, err := service.GetSupplierCredit(context.Background(), tenantID, supplier.ID)

	require.NoError(t, err)
	assert.Equal(t, "25000.00", result.Outstanding.StringFixed(2))
	assert.Equal(t, "25.00", result.UtilizationPct.StringFixed(2))
	assert.Equal(t, 2, result.OpenOrders)
}

func TestPayablesServiceGetSupplierCreditNoLimit(t *testing.T) {
	tenantID := uuid.New()
	supplier := newTestSupplier(t, tenantID)
	orderRepo := new(MockPurchaseOrderRepository)
	supplierRepo := new(MockSupplierRepository)
	service := newPayablesServiceUnderTest(orderRepo, supplierRepo, new(MockSupplierPaymentRepository))

	supplierRepo.On("FindByIDForTenant", mock.Anything, tenantID, supplier.ID).Return(supplier, nil)
	orderRepo.On("FindPayables", mock.Anything, tenantID, mock.Anything).
		Return([]procurement.PurchaseOrder{outstandingOrder(tenantID, 5000, 0)}, int64(1), nil)

	result, err := service.GetSupplierCredit(context.Background(), tenantID, supplier.ID)

	require.NoError(t, err)
	assert.Nil(t, result.CreditLimit)
	assert.True(t, result.UtilizationPct.IsZero())
}
