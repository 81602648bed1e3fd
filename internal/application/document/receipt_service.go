package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/domain/collection"
	"github.com/investkaro/backend/internal/domain/crm"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/domain/shared/valueobject"
)

var gstDivisor = decimal.RequireFromString("1.18")

// ReceiptService builds client-facing tax receipts for verified payments
type ReceiptService struct {
	payments collection.PaymentRepository
	splits   collection.SplitRepository
	profiles identity.ProfileRepository
	clients  crm.ClientRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	payments collection.PaymentRepository,
	splits collection.SplitRepository,
	profiles identity.ProfileRepository,
	clients crm.ClientRepository,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		payments: payments,
		splits:   splits,
		profiles: profiles,
		clients:  clients,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate builds the receipt for one payment. The payment must be
// verified and still inside the receipt window; a verified payment past
// the window is refused with WINDOW_EXPIRED, which is permanent and
// distinct from any transient failure.
func (s *ReceiptService) Generate(ctx context.Context, viewer identity.Viewer, paymentID uuid.UUID) (*Receipt, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := s.authorize(ctx, viewer, payment); err != nil {
		return nil, err
	}

	if !payment.IsVerified() {
		return nil, shared.NewDomainError("INVALID_STATE", "only verified payments can be receipted")
	}
	if !payment.ReceiptEligible(s.now()) {
		return nil, shared.ErrWindowExpired
	}

	// The paid amount is GST-inclusive; extract the taxable base
	total := valueobject.NewMoneyINR(payment.Amount)
	taxable, err := total.Divide(gstDivisor)
	if err != nil {
		return nil, err
	}
	gst := total.MustSubtract(taxable)

	receipt := &Receipt{
		PaymentID:     payment.ID,
		ReceiptNumber: ReceiptNumberFor(payment.ID, payment.Date),
		Date:          payment.Date,
		AccountRef:    payment.AccountRef,
		TaxableAmount: taxable.Amount(),
		GST:           gst.Amount(),
		Total:         total.Amount(),

		TaxableDisplay: FormatINR(taxable),
		GSTDisplay:     FormatINR(gst),
		TotalDisplay:   FormatINR(total),
	}

	if client, err := s.clients.FindByID(ctx, payment.ClientID); err == nil {
		receipt.ClientName = client.Name
		receipt.ClientMobile = client.Mobile
	}
	if owner, err := s.profiles.FindByID(ctx, payment.OwnerUserID); err == nil {
		receipt.AgentName = owner.DisplayName
	}

	s.logger.Info("Receipt generated",
		zap.String("payment_id", payment.ID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber))

	return receipt, nil
}

// authorize allows admins, the owning agent, and split recipients
func (s *ReceiptService) authorize(ctx context.Context, viewer identity.Viewer, payment *collection.Payment) error {
	if viewer.IsAdmin() || payment.OwnerUserID == viewer.ID {
		return nil
	}
	splits, err := s.splits.FindByPayment(ctx, payment.ID)
	if err != nil {
		return err
	}
	for _, sp := range splits {
		if sp.RecipientUserID == viewer.ID {
			return nil
		}
	}
	return shared.ErrForbidden
}
