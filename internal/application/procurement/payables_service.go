package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/analytics"
	"github.com/supplypulse/backend/internal/domain/procurement"
)

// PayablesService reports on outstanding purchase-order balances
type PayablesService struct {
	orderRepo    procurement.PurchaseOrderRepository
	supplierRepo procurement.SupplierRepository
	paymentRepo  procurement.SupplierPaymentRepository
	now          func() time.Time
}

// NewPayablesService creates a new PayablesService
func NewPayablesService(orderRepo procurement.PurchaseOrderRepository, supplierRepo procurement.SupplierRepository,
	paymentRepo procurement.SupplierPaymentRepository) *PayablesService {
	return &PayablesService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		paymentRepo:  paymentRepo,
		now:          time.Now,
	}
}

// ListPayables returns outstanding orders matching the filter, paginated,
// with the unpaginated total count
func (s *PayablesService) ListPayables(ctx context.Context, tenantID uuid.UUID,
	filter PayablesListFilter) ([]PayableOrderResponse, int64, error) {

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := procurement.PayablesFilter{
		SupplierID: filter.SupplierID,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	if filter.PaymentStatus != nil {
		status := procurement.PaymentStatus(*filter.PaymentStatus)
		domainFilter.PaymentStatus = &status
	}

	orders, total, err := s.orderRepo.FindPayables(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]PayableOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPayableOrderResponse(&orders[i], now))
	}
	return responses, total, nil
}

// GetAging distributes all outstanding balances over the five aging buckets
func (s *PayablesService) GetAging(ctx context.Context, tenantID uuid.UUID) (*PayablesAgingResponse, error) {
	orders, _, err := s.orderRepo.FindPayables(ctx, tenantID, procurement.PayablesFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	buckets := analytics.BuildAgingBuckets(orders, now)

	return &PayablesAgingResponse{
		AsOf:             now,
		Buckets:          ToAgingBucketResponses(buckets),
		TotalOutstanding: analytics.TotalOutstanding(buckets),
		TotalOverdue:     analytics.TotalOverdue(buckets),
	}, nil
}

// GetSummary returns the headline payables figures: total and overdue
// outstanding, average days to pay, and the amount paid in the trailing
// month
func (s *PayablesService) GetSummary(ctx context.Context, tenantID uuid.UUID) (*PayablesSummaryResponse, error) {
	orders, _, err := s.orderRepo.FindPayables(ctx, tenantID, procurement.PayablesFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	buckets := analytics.BuildAgingBuckets(orders, now)

	overdueOrders := 0
	for i := range orders {
		if orders[i].IsOverdue(now) {
			overdueOrders++
		}
	}

	paidOrders, err := s.orderRepo.FindRecentlyPaid(ctx, tenantID, analytics.DaysToPaySampleSize)
	if err != nil {
		return nil, err
	}

	paidRecently, err := s.paymentRepo.SumPaidSince(ctx, tenantID, now.AddDate(0, 0, -analytics.PaidWindowDays))
	if err != nil {
		return nil, err
	}

	return &PayablesSummaryResponse{
		TotalOutstanding: analytics.TotalOutstanding(buckets),
		TotalOverdue:     analytics.TotalOverdue(buckets),
		OverdueOrders:    overdueOrders,
		AvgDaysToPay:     analytics.AvgDaysToPay(paidOrders),
		PaidLast30Days:   paidRecently,
	}, nil
}

// ListSupplierCredit returns the credit exposure of every supplier of the
// tenant, ordered by supplier name
func (s *PayablesService) ListSupplierCredit(ctx context.Context, tenantID uuid.UUID) ([]SupplierCreditResponse, error) {
	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	orders, _, err := s.orderRepo.FindPayables(ctx, tenantID, procurement.PayablesFilter{})
	if err != nil {
		return nil, err
	}

	outstandingBySupplier := make(map[uuid.UUID]decimal.Decimal)
	openBySupplier := make(map[uuid.UUID]int)
	for i := range orders {
		id := orders[i].SupplierID
		outstandingBySupplier[id] = outstandingBySupplier[id].Add(orders[i].Outstanding())
		openBySupplier[id]++
	}

	responses := make([]SupplierCreditResponse, 0, len(suppliers))
	for i := range suppliers {
		supplier := &suppliers[i]
		outstanding := outstandingBySupplier[supplier.ID]
		responses = append(responses, SupplierCreditResponse{
			SupplierID:     supplier.ID,
			SupplierName:   supplier.Name,
			CreditLimit:    supplier.CreditLimit,
			Outstanding:    outstanding.Round(2),
			UtilizationPct: analytics.CreditUtilizationPct(outstanding, supplier.CreditLimit),
			OpenOrders:     openBySupplier[supplier.ID],
		})
	}
	return responses, nil
}

// GetSupplierCredit returns a supplier's outstanding exposure against its
// configured credit limit
func (s *PayablesService) GetSupplierCredit(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierCreditResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	orders, _, err := s.orderRepo.FindPayables(ctx, tenantID, procurement.PayablesFilter{SupplierID: &supplierID})
	if err != nil {
		return nil, err
	}

	outstanding := decimal.Zero
	for i := range orders {
		outstanding = outstanding.Add(orders[i].Outstanding())
	}

	return &SupplierCreditResponse{
		SupplierID:     supplier.ID,
		SupplierName:   supplier.Name,
		CreditLimit:    supplier.CreditLimit,
		Outstanding:    outstanding.Round(2),
		UtilizationPct: analytics.CreditUtilizationPct(outstanding, supplier.CreditLimit),
		OpenOrders:     len(orders),
	}, nil
}
