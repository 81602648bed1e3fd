package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investkaro/backend/internal/domain/crm"
)

// CreateClientInput contains fields for adding a client to the pool
type CreateClientInput struct {
	Name   string
	Mobile string
	Email  string
	City   string
}

// ClientResponse is a client in API responses
type ClientResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Mobile     string    `json:"mobile"`
	Email      string    `json:"email,omitempty"`
	City       string    `json:"city,omitempty"`
	IsAssigned bool      `json:"is_assigned"`
	CreatedAt  time.Time `json:"created_at"`
}

// BulkAssignInput assigns a batch of pool clients to one agent
type BulkAssignInput struct {
	ClientIDs []uuid.UUID
	AgentID   uuid.UUID
}

// AssignFailure names one client that could not be assigned
type AssignFailure struct {
	ClientID uuid.UUID `json:"client_id"`
	Reason   string    `json:"reason"`
}

// BulkAssignResult reports the outcome of a bulk assignment. Failures
// leave a retryable remainder; already assigned clients stay assigned.
type BulkAssignResult struct {
	Requested int             `json:"requested"`
	Assigned  int             `json:"assigned"`
	Failures  []AssignFailure `json:"failures,omitempty"`
}

// UpdateEngagementInput updates the disposition and trading profile
type UpdateEngagementInput struct {
	Status     string
	Note       string
	Segment    string
	State      string
	FundAmount decimal.Decimal
}

// EngagementResponse is an engagement in API responses
type EngagementResponse struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"client_id"`
	ClientName   string          `json:"client_name,omitempty"`
	ClientMobile string          `json:"client_mobile,omitempty"`
	AgentID      uuid.UUID       `json:"agent_id"`
	AgentName    string          `json:"agent_name,omitempty"`
	Status       string          `json:"status"`
	Note         string          `json:"note,omitempty"`
	Segment      string          `json:"segment,omitempty"`
	State        string          `json:"state,omitempty"`
	FundAmount   decimal.Decimal `json:"fund_amount"`
	AssignedAt   time.Time       `json:"assigned_at"`
}

// ToClientResponse maps a domain client to its response shape
func ToClientResponse(c *crm.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Mobile:     c.Mobile,
		Email:      c.Email,
		City:       c.City,
		IsAssigned: c.IsAssigned,
		CreatedAt:  c.CreatedAt,
	}
}

// ToEngagementResponse maps a domain engagement to its response shape
func ToEngagementResponse(e *crm.Engagement) EngagementResponse {
	return EngagementResponse{
		ID:         e.ID,
		ClientID:   e.ClientID,
		AgentID:    e.AgentID,
		Status:     string(e.Status),
		Note:       e.Note,
		Segment:    string(e.Segment),
		State:      e.State,
		FundAmount: e.FundAmount,
		AssignedAt: e.AssignedAt,
	}
}
