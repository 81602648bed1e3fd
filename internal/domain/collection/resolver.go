package collection

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// residualFloor is the smallest owner residual worth attributing.
// Anything below it is treated as a rounding artifact and dropped.
var residualFloor = decimal.RequireFromString("0.01")

// ResolvedShare is one beneficiary's cut of a payment after settlement
type ResolvedShare struct {
	UserID     uuid.UUID
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	FromSplit  bool
}

// ResolveShares settles one payment into per-beneficiary shares.
// It is a pure function over the payment and its split set:
//
//   - with no splits the owner keeps the full amount;
//   - each split contributes its persisted amount, never a recomputed one;
//   - the owner receives the unallocated residual only when they are not
//     themselves a split recipient. An owner who appears in the split set
//     has opted into an explicit cut and forfeits the remainder;
//   - residuals below one paisa are dropped as rounding noise.
//
// Unknown recipient ids pass through untouched; attributing them to a
// placeholder profile is the caller's concern.
func ResolveShares(payment *Payment, splits []*Split) []ResolvedShare {
	if len(splits) == 0 {
		return []ResolvedShare{{
			UserID:     payment.OwnerUserID,
			Amount:     payment.Amount,
			Percentage: hundred,
		}}
	}

	shares := make([]ResolvedShare, 0, len(splits)+1)
	allocated := decimal.Zero
	ownerIsRecipient := false
	for _, s := range splits {
		shares = append(shares, ResolvedShare{
			UserID:     s.RecipientUserID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
			FromSplit:  true,
		})
		allocated = allocated.Add(s.Percentage)
		if s.RecipientUserID == payment.OwnerUserID {
			ownerIsRecipient = true
		}
	}

	if !ownerIsRecipient {
		remaining := hundred.Sub(allocated)
		residual := payment.Amount.Mul(remaining).Div(hundred)
		if residual.GreaterThanOrEqual(residualFloor) {
			shares = append(shares, ResolvedShare{
				UserID:     payment.OwnerUserID,
				Amount:     residual,
				Percentage: remaining,
			})
		}
	}
	return shares
}

// ShareFor returns the total amount resolved to one user across the
// given shares. Zero when the user has no share.
func ShareFor(shares []ResolvedShare, userID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		if s.UserID == userID {
			total = total.Add(s.Amount)
		}
	}
	return total
}
