package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appidentity "github.com/investkaro/backend/internal/application/identity"
	"github.com/investkaro/backend/internal/domain/collection"
	"github.com/investkaro/backend/internal/domain/crm"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
)

// PaymentService handles payment recording, listing and verification
type PaymentService struct {
	payments  collection.PaymentRepository
	splits    collection.SplitRepository
	profiles  identity.ProfileRepository
	clients   crm.ClientRepository
	directory *appidentity.TeamDirectory
	logger    *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	payments collection.PaymentRepository,
	splits collection.SplitRepository,
	profiles identity.ProfileRepository,
	clients crm.ClientRepository,
	directory *appidentity.TeamDirectory,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		splits:    splits,
		profiles:  profiles,
		clients:   clients,
		directory: directory,
		logger:    logger,
	}
}

// Create records a payment together with its splits in one transaction.
// Payments recorded by an admin are born verified; everyone else's
// start pending.
func (s *PaymentService) Create(ctx context.Context, viewer identity.Viewer, input CreatePaymentInput) (*PaymentResponse, error) {
	owner := viewer.ID
	if input.OwnerUserID != nil && *input.OwnerUserID != viewer.ID {
		if !viewer.IsAdmin() {
			return nil, shared.ErrForbidden
		}
		owner = *input.OwnerUserID
	}

	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "client does not exist")
	}

	payment, err := collection.NewPayment(input.ClientID, owner, input.Amount, input.Date, input.AccountRef)
	if err != nil {
		return nil, err
	}

	domainSplits := make([]*collection.Split, 0, len(input.Splits))
	for _, in := range input.Splits {
		if _, err := s.profiles.FindByID(ctx, in.RecipientUserID); err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "split recipient does not exist")
		}
		split, err := collection.NewSplit(payment, in.RecipientUserID, in.Percentage)
		if err != nil {
			return nil, err
		}
		domainSplits = append(domainSplits, split)
	}
	if err := collection.ValidateSplitSet(domainSplits); err != nil {
		return nil, err
	}

	if viewer.IsAdmin() {
		if err := payment.Verify(viewer.ID); err != nil {
			return nil, err
		}
	}

	if err := s.payments.CreateWithSplits(ctx, payment, domainSplits); err != nil {
		s.logger.Error("Failed to persist payment with splits",
			zap.String("client_id", input.ClientID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("owner_id", owner.String()),
		zap.String("amount", payment.Amount.String()),
		zap.Int("splits", len(domainSplits)),
		zap.String("status", string(payment.Status)))

	resp := s.toResponse(ctx, payment, domainSplits)
	return &resp, nil
}

// Verify moves a pending payment to verified. Admin only, terminal.
func (s *PaymentService) Verify(ctx context.Context, viewer identity.Viewer, paymentID uuid.UUID) (*PaymentResponse, error) {
	return s.transition(ctx, viewer, paymentID, func(p *collection.Payment) error {
		return p.Verify(viewer.ID)
	})
}

// Reject moves a pending payment to rejected. Admin only, terminal.
func (s *PaymentService) Reject(ctx context.Context, viewer identity.Viewer, paymentID uuid.UUID, note string) (*PaymentResponse, error) {
	return s.transition(ctx, viewer, paymentID, func(p *collection.Payment) error {
		return p.Reject(viewer.ID, note)
	})
}

func (s *PaymentService) transition(ctx context.Context, viewer identity.Viewer, paymentID uuid.UUID, fn func(*collection.Payment) error) (*PaymentResponse, error) {
	if !viewer.Role.CanVerifyPayments() {
		return nil, shared.ErrForbidden
	}

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := fn(payment); err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Payment status changed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(payment.Status)),
		zap.String("by", viewer.ID.String()))

	resp := s.toResponse(ctx, payment, nil)
	return &resp, nil
}

// Get returns one payment with its splits, if the viewer may see it
func (s *PaymentService) Get(ctx context.Context, viewer identity.Viewer, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	splits, err := s.splits.FindByPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if !s.canSee(ctx, viewer, payment, splits) {
		return nil, shared.ErrForbidden
	}

	splitPtrs := make([]*collection.Split, len(splits))
	for i := range splits {
		splitPtrs[i] = &splits[i]
	}
	resp := s.toResponse(ctx, payment, splitPtrs)
	return &resp, nil
}

// ListPending returns payments awaiting verification. Admin only.
func (s *PaymentService) ListPending(ctx context.Context, viewer identity.Viewer, filter shared.Filter) ([]PaymentResponse, error) {
	if !viewer.Role.CanVerifyPayments() {
		return nil, shared.ErrForbidden
	}
	payments, err := s.payments.FindByStatus(ctx, collection.PaymentStatusPending, filter)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, payments), nil
}

// List returns the payments visible to the viewer: admins see all,
// managers their team's owned-or-received payments, users their own.
func (s *PaymentService) List(ctx context.Context, viewer identity.Viewer, filter shared.Filter) ([]PaymentResponse, error) {
	visible, all, err := s.directory.VisibleUserIDs(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if all {
		payments, err := s.payments.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		return s.toResponses(ctx, payments), nil
	}

	// Zero bounds mean an unbounded date range
	payments, err := s.payments.FindByOwners(ctx, visible, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	// A teammate can hold a split on a payment owned outside the team
	recipientPaymentIDs, err := s.splits.FindPaymentIDsByRecipients(ctx, visible)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(payments))
	for _, p := range payments {
		seen[p.ID] = true
	}
	for _, id := range recipientPaymentIDs {
		if seen[id] {
			continue
		}
		p, err := s.payments.FindByID(ctx, id)
		if err != nil {
			continue
		}
		payments = append(payments, *p)
		seen[id] = true
	}

	return s.toResponses(ctx, payments), nil
}

// ClientHistory returns a client's payments with the viewer's resolved
// share of each. Share totals count verified payments only.
func (s *PaymentService) ClientHistory(ctx context.Context, viewer identity.Viewer, clientID uuid.UUID) (*ClientHistoryResult, error) {
	payments, err := s.payments.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(payments))
	for i, p := range payments {
		ids[i] = p.ID
	}
	splitsByPayment, err := s.splits.FindByPayments(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &ClientHistoryResult{
		Entries:          make([]ClientHistoryEntry, 0, len(payments)),
		TotalVerified:    decimal.Zero,
		ViewerShareTotal: decimal.Zero,
	}
	for i := range payments {
		p := &payments[i]
		splits := splitsByPayment[p.ID]
		splitPtrs := make([]*collection.Split, len(splits))
		for j := range splits {
			splitPtrs[j] = &splits[j]
		}

		entry := ClientHistoryEntry{
			Payment:     s.toResponse(ctx, p, splitPtrs),
			ViewerShare: decimal.Zero,
		}
		if p.IsVerified() {
			result.TotalVerified = result.TotalVerified.Add(p.Amount)
			shares := collection.ResolveShares(p, splitPtrs)
			entry.ViewerShare = collection.ShareFor(shares, viewer.ID)
			result.ViewerShareTotal = result.ViewerShareTotal.Add(entry.ViewerShare)
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// canSee applies the role visibility rule to a single payment
func (s *PaymentService) canSee(ctx context.Context, viewer identity.Viewer, p *collection.Payment, splits []collection.Split) bool {
	visible, all, err := s.directory.VisibleUserIDs(ctx, viewer)
	if err != nil {
		return false
	}
	if all {
		return true
	}
	allowed := make(map[uuid.UUID]bool, len(visible))
	for _, id := range visible {
		allowed[id] = true
	}
	if allowed[p.OwnerUserID] {
		return true
	}
	for _, sp := range splits {
		if allowed[sp.RecipientUserID] {
			return true
		}
	}
	return false
}

func (s *PaymentService) toResponses(ctx context.Context, payments []collection.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, s.toResponse(ctx, &payments[i], nil))
	}
	return out
}

func (s *PaymentService) toResponse(ctx context.Context, p *collection.Payment, splits []*collection.Split) PaymentResponse {
	resp := ToPaymentResponse(p)
	if client, err := s.clients.FindByID(ctx, p.ClientID); err == nil {
		resp.ClientName = client.Name
	}
	if owner, err := s.profiles.FindByID(ctx, p.OwnerUserID); err == nil {
		resp.OwnerName = owner.DisplayName
	}
	for _, sp := range splits {
		info := SplitInfo{
			RecipientUserID: sp.RecipientUserID,
			Percentage:      sp.Percentage,
			Amount:          sp.Amount,
		}
		if recipient, err := s.profiles.FindByID(ctx, sp.RecipientUserID); err == nil {
			info.RecipientName = recipient.DisplayName
		} else {
			info.RecipientName = "Unknown"
		}
		resp.Splits = append(resp.Splits, info)
	}
	return resp
}
