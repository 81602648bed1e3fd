package collection

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investkaro/backend/internal/domain/shared"
)

var hundred = decimal.NewFromInt(100)

// Split grants a recipient a percentage of one payment. The rupee amount
// is computed once at creation and persisted, so later reads never
// recompute it from a possibly edited percentage.
type Split struct {
	shared.BaseEntity
	PaymentID       uuid.UUID
	RecipientUserID uuid.UUID
	Percentage      decimal.Decimal
	Amount          decimal.Decimal
}

// NewSplit creates a split for the given payment, snapshotting the amount
func NewSplit(payment *Payment, recipientUserID uuid.UUID, percentage decimal.Decimal) (*Split, error) {
	if recipientUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "split recipient is required")
	}
	if !percentage.IsPositive() || percentage.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_INPUT", "split percentage must be in (0, 100]")
	}
	return &Split{
		BaseEntity:      shared.NewBaseEntity(),
		PaymentID:       payment.ID,
		RecipientUserID: recipientUserID,
		Percentage:      percentage,
		Amount:          payment.Amount.Mul(percentage).Div(hundred),
	}, nil
}

// ValidateSplitSet checks the invariants that hold across a payment's
// whole split set: percentages sum to at most 100 and no recipient
// appears twice.
func ValidateSplitSet(splits []*Split) error {
	sum := decimal.Zero
	seen := make(map[uuid.UUID]bool, len(splits))
	for _, s := range splits {
		if seen[s.RecipientUserID] {
			return shared.NewDomainError("INVALID_INPUT", "duplicate split recipient")
		}
		seen[s.RecipientUserID] = true
		sum = sum.Add(s.Percentage)
	}
	if sum.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_INPUT", "split percentages exceed 100")
	}
	return nil
}
