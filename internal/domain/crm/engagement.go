package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investkaro/backend/internal/domain/shared"
)

// EngagementStatus is the call disposition an agent records against a client
type EngagementStatus string

const (
	StatusBusy            EngagementStatus = "busy"
	StatusNotInterested   EngagementStatus = "NI"
	StatusDoNotDisturb    EngagementStatus = "DND"
	StatusNotReachable    EngagementStatus = "not_reachable"
	StatusWrongNumber     EngagementStatus = "wrong_number"
	StatusSwitchOff       EngagementStatus = "switch_off"
	StatusCallNotReceived EngagementStatus = "call_not_received"
	StatusWaiting         EngagementStatus = "waiting"
	StatusTrader          EngagementStatus = "trader"
	StatusNotTrader       EngagementStatus = "not_trader"
)

// IsValid checks if the status is a known disposition
func (s EngagementStatus) IsValid() bool {
	switch s {
	case StatusBusy, StatusNotInterested, StatusDoNotDisturb, StatusNotReachable,
		StatusWrongNumber, StatusSwitchOff, StatusCallNotReceived, StatusWaiting,
		StatusTrader, StatusNotTrader:
		return true
	}
	return false
}

// IsDead reports dispositions after which the client is not worth recalling
func (s EngagementStatus) IsDead() bool {
	switch s {
	case StatusDoNotDisturb, StatusWrongNumber, StatusNotInterested, StatusNotTrader:
		return true
	}
	return false
}

// Segment is the market segment a client trades in
type Segment string

const (
	SegmentCash      Segment = "Cash"
	SegmentFnO       Segment = "F&O"
	SegmentCommodity Segment = "Commodity"
)

// IsValid checks if the segment is a known value
func (s Segment) IsValid() bool {
	switch s {
	case SegmentCash, SegmentFnO, SegmentCommodity:
		return true
	}
	return false
}

// Engagement is the working copy of a client on an agent's desk:
// the assignment plus everything the agent has learned about them.
type Engagement struct {
	shared.BaseEntity
	ClientID   uuid.UUID
	AgentID    uuid.UUID
	Status     EngagementStatus
	Note       string
	Segment    Segment
	State      string
	FundAmount decimal.Decimal
	AssignedAt time.Time
}

// NewEngagement assigns a client to an agent
func NewEngagement(clientID, agentID uuid.UUID) *Engagement {
	return &Engagement{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		AgentID:    agentID,
		Status:     StatusWaiting,
		AssignedAt: time.Now(),
	}
}

// UpdateDisposition records the latest call outcome
func (e *Engagement) UpdateDisposition(status EngagementStatus, note string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "unknown engagement status: "+string(status))
	}
	e.Status = status
	e.Note = note
	e.Touch()
	return nil
}

// UpdateTradingProfile records what the agent learned about the client's trading
func (e *Engagement) UpdateTradingProfile(segment Segment, state string, fundAmount decimal.Decimal) error {
	if segment != "" && !segment.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "unknown segment: "+string(segment))
	}
	if fundAmount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "fund amount cannot be negative")
	}
	e.Segment = segment
	e.State = state
	e.FundAmount = fundAmount
	e.Touch()
	return nil
}

// Transfer moves the engagement to another agent
func (e *Engagement) Transfer(agentID uuid.UUID) {
	e.AgentID = agentID
	e.AssignedAt = time.Now()
	e.Touch()
}
