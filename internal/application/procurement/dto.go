package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplypulse/backend/internal/domain/analytics"
	"github.com/supplypulse/backend/internal/domain/procurement"
)

// ==================== Metrics DTOs ====================

// MetricsWindowFilter selects the date window for metric computation.
// When omitted the trailing default window ending now is used.
type MetricsWindowFilter struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// SupplierMetricsResponse represents computed reliability metrics for one supplier
type SupplierMetricsResponse struct {
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
	ScoreUpdatedAt   *time.Time       `json:"score_updated_at,omitempty"`
}

// TenantMetricsSummaryResponse represents cross-supplier metric averages
type TenantMetricsSummaryResponse struct {
	Suppliers           int              `json:"suppliers"`
	ActiveSuppliers     int              `json:"active_suppliers"`
	AvgLeadTimeDays     *decimal.Decimal `json:"avg_lead_time_days"`
	AvgOnTimeRatePct    *decimal.Decimal `json:"avg_on_time_rate_pct"`
	AvgQualityPct       *decimal.Decimal `json:"avg_quality_pct"`
	AvgReliabilityScore *decimal.Decimal `json:"avg_reliability_score"`
}

// TenantMetricsResponse bundles per-supplier metrics with tenant averages
type TenantMetricsResponse struct {
	WindowStart time.Time                    `json:"window_start"`
	WindowEnd   time.Time                    `json:"window_end"`
	Suppliers   []SupplierMetricsResponse    `json:"suppliers"`
	Summary     TenantMetricsSummaryResponse `json:"summary"`
}

// RefreshAllMetricsResponse reports the outcome of a tenant-wide metrics refresh
type RefreshAllMetricsResponse struct {
	WindowStart time.Time                 `json:"window_start"`
	WindowEnd   time.Time                 `json:"window_end"`
	Refreshed   int                       `json:"refreshed"`
	Skipped     int                       `json:"skipped"`
	Suppliers   []SupplierMetricsResponse `json:"suppliers"`
}

// ToSupplierMetricsResponse converts computed metrics to a response DTO
func ToSupplierMetricsResponse(m analytics.SupplierMetrics) SupplierMetricsResponse {
	return SupplierMetricsResponse{
		SupplierID:       m.SupplierID,
		SupplierName:     m.SupplierName,
		WindowStart:      m.WindowStart,
		WindowEnd:        m.WindowEnd,
		TotalOrders:      m.TotalOrders,
		CompletedOrders:  m.CompletedOrders,
		AvgLeadTimeDays:  m.AvgLeadTimeDays,
		OnTimeRatePct:    m.OnTimeRatePct,
		QualityScorePct:  m.QualityScorePct,
		FillRatePct:      m.FillRatePct,
		ReliabilityScore: m.ReliabilityScore,
	}
}

// ToTenantMetricsSummaryResponse converts tenant averages to a response DTO
func ToTenantMetricsSummaryResponse(a analytics.TenantAverages) TenantMetricsSummaryResponse {
	return TenantMetricsSummaryResponse{
		Suppliers:           a.Suppliers,
		ActiveSuppliers:     a.ActiveSuppliers,
		AvgLeadTimeDays:     a.AvgLeadTimeDays,
		AvgOnTimeRatePct:    a.AvgOnTimeRatePct,
		AvgQualityPct:       a.AvgQualityPct,
		AvgReliabilityScore: a.AvgReliabilityScore,
	}
}

// ==================== SLA DTOs ====================

// SetSlaDefinitionRequest creates or replaces a supplier's SLA targets
type SetSlaDefinitionRequest struct {
	MaxLeadTimeDays  int             `json:"max_lead_time_days" binding:"required,min=1"`
	MinFillRatePct   decimal.Decimal `json:"min_fill_rate_pct" binding:"required"`
	MaxDefectRatePct decimal.Decimal `json:"max_defect_rate_pct"`
	PenaltyPct       decimal.Decimal `json:"penalty_pct"`
}

// SlaDefinitionResponse represents a supplier's SLA configuration
type SlaDefinitionResponse struct {
	ID               uuid.UUID       `json:"id"`
	SupplierID       uuid.UUID       `json:"supplier_id"`
	MaxLeadTimeDays  int             `json:"max_lead_time_days"`
	MinFillRatePct   decimal.Decimal `json:"min_fill_rate_pct"`
	MaxDefectRatePct decimal.Decimal `json:"max_defect_rate_pct"`
	PenaltyPct       decimal.Decimal `json:"penalty_pct"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// SlaDashboardFilter selects the compliance evaluation window
type SlaDashboardFilter struct {
	LookbackDays int `form:"lookback_days" binding:"omitempty,min=1,max=730"`
}

// SupplierComplianceResponse represents one supplier's SLA compliance
type SupplierComplianceResponse struct {
	SupplierID      uuid.UUID       `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
	TotalOrders     int             `json:"total_orders"`
	OnTimePct       decimal.Decimal `json:"on_time_pct"`
	AvgLeadTimeDays decimal.Decimal `json:"avg_lead_time_days"`
	AvgFillRatePct  decimal.Decimal `json:"avg_fill_rate_pct"`
	BreachCount     int             `json:"breach_count"`
	PenaltyTotal    decimal.Decimal `json:"penalty_total"`
	ComplianceScore decimal.Decimal `json:"compliance_score"`
	Status          string          `json:"status"`
}

// BreachEventResponse represents one SLA violation
type BreachEventResponse struct {
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	Type         string          `json:"type"`
	Target       decimal.Decimal `json:"target"`
	Actual       decimal.Decimal `json:"actual"`
	BreachDate   time.Time       `json:"breach_date"`
	Penalty      decimal.Decimal `json:"penalty"`
}

// SlaDashboardResponse is the full compliance dashboard
type SlaDashboardResponse struct {
	WindowStart    time.Time                    `json:"window_start"`
	WindowEnd      time.Time                    `json:"window_end"`
	Suppliers      []SupplierComplianceResponse `json:"suppliers"`
	RecentBreaches []BreachEventResponse        `json:"recent_breaches"`
	TotalPenalty   decimal.Decimal              `json:"total_penalty"`
}

// ToSlaDefinitionResponse converts a definition to a response DTO
func ToSlaDefinitionResponse(def *procurement.SlaDefinition) SlaDefinitionResponse {
	return SlaDefinitionResponse{
		ID:               def.ID,
		SupplierID:       def.SupplierID,
		MaxLeadTimeDays:  def.MaxLeadTimeDays,
		MinFillRatePct:   def.MinFillRatePct,
		MaxDefectRatePct: def.MaxDefectRatePct,
		PenaltyPct:       def.PenaltyPct,
		UpdatedAt:        def.UpdatedAt,
	}
}

// ToSupplierComplianceResponse converts a compliance aggregate to a response DTO
func ToSupplierComplianceResponse(c analytics.SupplierCompliance) SupplierComplianceResponse {
	return SupplierComplianceResponse{
		SupplierID:      c.SupplierID,
		SupplierName:    c.SupplierName,
		TotalOrders:     c.TotalOrders,
		OnTimePct:       c.OnTimePct,
		AvgLeadTimeDays: c.AvgLeadTimeDays,
		AvgFillRatePct:  c.AvgFillRatePct,
		BreachCount:     c.BreachCount,
		PenaltyTotal:    c.PenaltyTotal,
		ComplianceScore: c.ComplianceScore,
		Status:          string(c.Status),
	}
}

// ToBreachEventResponse converts a breach event to a response DTO
func ToBreachEventResponse(b analytics.BreachEvent) BreachEventResponse {
	return BreachEventResponse{
		SupplierID:   b.SupplierID,
		SupplierName: b.SupplierName,
		OrderID:      b.OrderID,
		OrderNumber:  b.OrderNumber,
		Type:         string(b.Type),
		Target:       b.Target,
		Actual:       b.Actual,
		BreachDate:   b.BreachDate,
		Penalty:      b.Penalty,
	}
}

// ==================== Payables DTOs ====================

// PayablesListFilter represents filter options for the payables list
type PayablesListFilter struct {
	SupplierID    *uuid.UUID `form:"supplier_id"`
	PaymentStatus *string    `form:"payment_status" binding:"omitempty,oneof=PENDING PARTIAL OVERDUE"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PayableOrderResponse represents one outstanding purchase order
type PayableOrderResponse struct {
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	PaymentStatus string          `json:"payment_status"`
	DueDate       *time.Time      `json:"due_date"`
	DaysPastDue   int             `json:"days_past_due"`
}

// AgingBucketResponse represents one payables aging bucket
type AgingBucketResponse struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// PayablesAgingResponse represents the aging report
type PayablesAgingResponse struct {
	AsOf             time.Time             `json:"as_of"`
	Buckets          []AgingBucketResponse `json:"buckets"`
	TotalOutstanding decimal.Decimal       `json:"total_outstanding"`
	TotalOverdue     decimal.Decimal       `json:"total_overdue"`
}

// PayablesSummaryResponse represents headline payables figures
type PayablesSummaryResponse struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	TotalOverdue     decimal.Decimal `json:"total_overdue"`
	OverdueOrders    int             `json:"overdue_orders"`
	AvgDaysToPay     decimal.Decimal `json:"avg_days_to_pay"`
	PaidLast30Days   decimal.Decimal `json:"paid_last_30_days"`
}

// SupplierCreditResponse represents a supplier's credit exposure
type SupplierCreditResponse struct {
	SupplierID     uuid.UUID        `json:"supplier_id"`
	SupplierName   string           `json:"supplier_name"`
	CreditLimit    *decimal.Decimal `json:"credit_limit"`
	Outstanding    decimal.Decimal  `json:"outstanding"`
	UtilizationPct decimal.Decimal  `json:"utilization_pct"`
	OpenOrders     int              `json:"open_orders"`
}

// ToPayableOrderResponse converts an outstanding order to a response DTO
func ToPayableOrderResponse(order *procurement.PurchaseOrder, now time.Time) PayableOrderResponse {
	return PayableOrderResponse{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		SupplierID:    order.SupplierID,
		SupplierName:  order.SupplierName,
		TotalAmount:   order.TotalAmount,
		PaidAmount:    order.PaidAmount,
		Outstanding:   order.Outstanding(),
		PaymentStatus: string(order.PaymentStatus),
		DueDate:       order.DueDate,
		DaysPastDue:   order.DaysPastDue(now),
	}
}

// ToAgingBucketResponses converts aging buckets to response DTOs
func ToAgingBucketResponses(buckets []analytics.AgingBucket) []AgingBucketResponse {
	out := make([]AgingBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = AgingBucketResponse{Label: b.Label, Amount: b.Amount, Count: b.Count}
	}
	return out
}

// ==================== Payment DTOs ====================

// RecordPaymentRequest records a payment against a purchase order
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *time.Time      `json:"payment_date"`
	Mode        string          `json:"mode" binding:"required,oneof=BANK_TRANSFER UPI CHEQUE CASH"`
	Reference   string          `json:"reference" binding:"omitempty,max=100"`
	Notes       string          `json:"notes" binding:"omitempty,max=500"`
	RecordedBy  *uuid.UUID      `json:"-"`
}

// PaymentResponse represents a recorded payment with the resulting order state
type PaymentResponse struct {
	PaymentID     uuid.UUID       `json:"payment_id"`
	PaymentNumber string          `json:"payment_number"`
	OrderID       uuid.UUID       `json:"order_id"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Mode          string          `json:"mode"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	PaymentStatus string          `json:"payment_status"`
}

// ToPaymentResponse converts a payment and its updated order to a response DTO
func ToPaymentResponse(payment *procurement.SupplierPayment, order *procurement.PurchaseOrder) PaymentResponse {
	return PaymentResponse{
		PaymentID:     payment.ID,
		PaymentNumber: payment.PaymentNumber,
		OrderID:       payment.OrderID,
		SupplierID:    payment.SupplierID,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate,
		Mode:          string(payment.Mode),
		Reference:     payment.Reference,
		Notes:         payment.Notes,
		PaidAmount:    order.PaidAmount,
		Outstanding:   order.Outstanding(),
		PaymentStatus: string(order.PaymentStatus),
	}
}
