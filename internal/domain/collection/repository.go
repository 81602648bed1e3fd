package collection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/shared"
)

// PaymentRepository defines the persistence interface for payments.
// There is deliberately no Delete: payment rows are append-only.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Payment, error)
	FindByOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]Payment, error)
	FindByStatus(ctx context.Context, status PaymentStatus, filter shared.Filter) ([]Payment, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	// CreateWithSplits persists the payment and its splits in one
	// transaction. Either everything lands or nothing does.
	CreateWithSplits(ctx context.Context, payment *Payment, splits []*Split) error
}

// SplitRepository defines the read interface for splits. Splits are
// immutable and only ever created alongside their payment.
type SplitRepository interface {
	FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]Split, error)
	FindByPayments(ctx context.Context, paymentIDs []uuid.UUID) (map[uuid.UUID][]Split, error)
	FindByRecipient(ctx context.Context, recipientUserID uuid.UUID) ([]Split, error)
	FindPaymentIDsByRecipients(ctx context.Context, recipientUserIDs []uuid.UUID) ([]uuid.UUID, error)
}
