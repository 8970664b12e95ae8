package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/supplypulse/backend/internal/domain/procurement"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]procurement.Supplier, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) UpdateReliability(ctx context.Context, supplier *procurement.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindBySupplierInWindow(ctx context.Context, tenantID, supplierID uuid.UUID, from, to time.Time) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, supplierID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindDeliveredInWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindPayables(ctx context.Context, tenantID uuid.UUID, filter procurement.PayablesFilter) ([]procurement.PurchaseOrder, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseOrderRepository) FindRecentlyPaid(ctx context.Context, tenantID uuid.UUID, limit int) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

// MockSupplierPaymentRepository is a mock implementation of SupplierPaymentRepository.
// RecordPayment runs the apply callback against the order configured via
// onOrder, mirroring the transactional load-lock-apply flow.
type MockSupplierPaymentRepository struct {
	mock.Mock
	onOrder       *procurement.PurchaseOrder
	paymentNumber string
}

func (m *MockSupplierPaymentRepository) RecordPayment(ctx context.Context, tenantID, orderID uuid.UUID, apply procurement.ApplyPaymentFunc) (*procurement.SupplierPayment, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	number := m.paymentNumber
	if number == "" {
		number = "PAY-2026-00001"
	}
	return apply(m.onOrder, number)
}

func (m *MockSupplierPaymentRepository) SumPaidSince(ctx context.Context, tenantID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockSlaDefinitionRepository is a mock implementation of SlaDefinitionRepository
type MockSlaDefinitionRepository struct {
	mock.Mock
}

func (m *MockSlaDefinitionRepository) GetForSupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (*procurement.SlaDefinition, error) {
	args := m.Called(ctx, tenantID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.SlaDefinition), args.Error(1)
}

func (m *MockSlaDefinitionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]procurement.SlaDefinition, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.SlaDefinition), args.Error(1)
}

func (m *MockSlaDefinitionRepository) Upsert(ctx context.Context, def *procurement.SlaDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}
