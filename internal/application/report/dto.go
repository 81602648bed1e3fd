package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeriesPoint is one period of an income time series
type SeriesPoint struct {
	Period string          `json:"period"`
	Income decimal.Decimal `json:"income"`
}

// BreakdownRow is one row of the per-agent income breakdown
type BreakdownRow struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	TeamLeadName string          `json:"team_lead_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

// TeamRow is one row of the per-team-lead roll-up
type TeamRow struct {
	LeadID   *uuid.UUID      `json:"lead_id,omitempty"`
	LeadName string          `json:"lead_name"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary bundles headline numbers for the dashboard
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	MonthIncome  decimal.Decimal `json:"month_income"`
	PaymentCount int             `json:"payment_count"`
	ViewerIncome decimal.Decimal `json:"viewer_income"`
}
