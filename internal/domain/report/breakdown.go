package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgentTotal is one row of the per-agent income breakdown
type AgentTotal struct {
	UserID       uuid.UUID
	Name         string
	Role         string
	TeamLeadName string
	Amount       decimal.Decimal
}

// TeamTotal is one row of the per-team-lead roll-up. A nil LeadID marks
// the bucket for recipients with no manager and no team of their own.
type TeamTotal struct {
	LeadID   *uuid.UUID
	LeadName string
	Amount   decimal.Decimal
}

// UnassignedLabel names the roll-up bucket for recipients without a team lead
const UnassignedLabel = "unassigned"

// SortAgentTotals orders rows by amount descending, name ascending as a
// tiebreak so equal amounts render stably.
func SortAgentTotals(rows []AgentTotal) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].Name < rows[j].Name
	})
}

// SortTeamTotals orders roll-up rows by amount descending
func SortTeamTotals(rows []TeamTotal) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].LeadName < rows[j].LeadName
	})
}
