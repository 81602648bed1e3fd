package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investkaro/backend/internal/domain/collection"
)

// SplitInput is one requested split on a new payment
type SplitInput struct {
	RecipientUserID uuid.UUID
	Percentage      decimal.Decimal
}

// CreatePaymentInput contains fields for recording a payment
type CreatePaymentInput struct {
	ClientID    uuid.UUID
	OwnerUserID *uuid.UUID // admin may record on behalf of an agent
	Amount      decimal.Decimal
	Date        time.Time
	AccountRef  string
	Splits      []SplitInput
}

// SplitInfo is a split in API responses
type SplitInfo struct {
	RecipientUserID uuid.UUID       `json:"recipient_user_id"`
	RecipientName   string          `json:"recipient_name"`
	Percentage      decimal.Decimal `json:"percentage"`
	Amount          decimal.Decimal `json:"amount"`
}

// PaymentResponse is a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	ClientName  string          `json:"client_name,omitempty"`
	OwnerUserID uuid.UUID       `json:"owner_user_id"`
	OwnerName   string          `json:"owner_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	AccountRef  string          `json:"account_ref"`
	Status      string          `json:"status"`
	RejectNote  string          `json:"reject_note,omitempty"`
	Splits      []SplitInfo     `json:"splits,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ClientHistoryEntry is one payment in a client's history with the
// viewer's resolved cut of it.
type ClientHistoryEntry struct {
	Payment     PaymentResponse `json:"payment"`
	ViewerShare decimal.Decimal `json:"viewer_share"`
}

// ClientHistoryResult is a client's payment history
type ClientHistoryResult struct {
	Entries          []ClientHistoryEntry `json:"entries"`
	TotalVerified    decimal.Decimal      `json:"total_verified"`
	ViewerShareTotal decimal.Decimal      `json:"viewer_share_total"`
}

// ToPaymentResponse maps a domain payment to its response shape
func ToPaymentResponse(p *collection.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		OwnerUserID: p.OwnerUserID,
		Amount:      p.Amount,
		Date:        p.Date,
		AccountRef:  p.AccountRef,
		Status:      string(p.Status),
		RejectNote:  p.RejectNote,
		CreatedAt:   p.CreatedAt,
	}
}
