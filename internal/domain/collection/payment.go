package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investkaro/backend/internal/domain/shared"
)

// PaymentStatus represents the verification state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// IsValid checks if the status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusVerified, PaymentStatusRejected:
		return true
	}
	return false
}

// CanVerify checks if the payment can move to verified.
// Verified and rejected are terminal.
func (s PaymentStatus) CanVerify() bool {
	return s == PaymentStatusPending
}

// CanReject checks if the payment can move to rejected
func (s PaymentStatus) CanReject() bool {
	return s == PaymentStatusPending
}

// IsTerminal reports whether no further transition is possible
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusVerified || s == PaymentStatusRejected
}

// Payment is the collection aggregate root: money received from a client,
// recorded by the owning agent and awaiting admin verification.
// Payments are append-only; there is no delete path.
type Payment struct {
	shared.BaseEntity
	ClientID    uuid.UUID
	OwnerUserID uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	AccountRef  string
	Status      PaymentStatus
	VerifiedBy  *uuid.UUID
	VerifiedAt  *time.Time
	RejectNote  string
}

// NewPayment records a payment in pending state
func NewPayment(clientID, ownerUserID uuid.UUID, amount decimal.Decimal, date time.Time, accountRef string) (*Payment, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "client is required")
	}
	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "owner is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		ClientID:    clientID,
		OwnerUserID: ownerUserID,
		Amount:      amount,
		Date:        date,
		AccountRef:  accountRef,
		Status:      PaymentStatusPending,
	}, nil
}

// Verify moves the payment to verified. The caller is responsible for
// checking that the actor holds the admin role.
func (p *Payment) Verify(verifierID uuid.UUID) error {
	if !p.Status.CanVerify() {
		return shared.NewDomainError("INVALID_STATE",
			"payment in status "+string(p.Status)+" cannot be verified")
	}
	now := time.Now()
	p.Status = PaymentStatusVerified
	p.VerifiedBy = &verifierID
	p.VerifiedAt = &now
	p.Touch()
	return nil
}

// Reject moves the payment to rejected with an optional note
func (p *Payment) Reject(verifierID uuid.UUID, note string) error {
	if !p.Status.CanReject() {
		return shared.NewDomainError("INVALID_STATE",
			"payment in status "+string(p.Status)+" cannot be rejected")
	}
	now := time.Now()
	p.Status = PaymentStatusRejected
	p.VerifiedBy = &verifierID
	p.VerifiedAt = &now
	p.RejectNote = note
	p.Touch()
	return nil
}

// IsVerified reports whether the payment has been verified
func (p *Payment) IsVerified() bool {
	return p.Status == PaymentStatusVerified
}

// ReceiptWindow is how long after the payment date a receipt may be issued
const ReceiptWindow = 10 * 24 * time.Hour

// ReceiptEligible reports whether a receipt may still be issued at the
// given instant. Only verified payments within the window qualify.
func (p *Payment) ReceiptEligible(now time.Time) bool {
	return p.IsVerified() && now.Sub(p.Date) <= ReceiptWindow
}
