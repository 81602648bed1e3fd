package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appidentity "github.com/investkaro/backend/internal/application/identity"
	"github.com/investkaro/backend/internal/domain/collection"
	"github.com/investkaro/backend/internal/domain/crm"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/domain/shared/valueobject"
)

// GSTRate is the fixed GST rate applied to commissions and receipts
var GSTRate = decimal.RequireFromString("0.18")

// SlipService builds monthly income slips from resolved shares
type SlipService struct {
	payments  collection.PaymentRepository
	splits    collection.SplitRepository
	profiles  identity.ProfileRepository
	clients   crm.ClientRepository
	directory *appidentity.TeamDirectory
	logger    *zap.Logger
}

// NewSlipService creates a new SlipService
func NewSlipService(
	payments collection.PaymentRepository,
	splits collection.SplitRepository,
	profiles identity.ProfileRepository,
	clients crm.ClientRepository,
	directory *appidentity.TeamDirectory,
	logger *zap.Logger,
) *SlipService {
	return &SlipService{
		payments:  payments,
		splits:    splits,
		profiles:  profiles,
		clients:   clients,
		directory: directory,
		logger:    logger,
	}
}

// MonthlySlip builds the income slip for one agent and one month.
// Only verified payments contribute. Admins may pull any agent's slip,
// managers their team's, users only their own.
func (s *SlipService) MonthlySlip(ctx context.Context, viewer identity.Viewer, agentID uuid.UUID, year int, month time.Month) (*IncomeSlip, error) {
	if err := s.authorize(ctx, viewer, agentID); err != nil {
		return nil, err
	}

	agent, err := s.profiles.FindByID(ctx, agentID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	payments, err := s.payments.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		if p.IsVerified() {
			ids = append(ids, p.ID)
		}
	}
	splitsByPayment, err := s.splits.FindByPayments(ctx, ids)
	if err != nil {
		return nil, err
	}

	slip := &IncomeSlip{
		AgentID:     agentID,
		AgentName:   agent.DisplayName,
		PeriodLabel: from.Format("Jan 2006"),
		LineItems:   []SlipLineItem{},
		TotalAmount: decimal.Zero,
	}

	for i := range payments {
		p := &payments[i]
		if !p.IsVerified() {
			continue
		}
		splits := splitsByPayment[p.ID]
		splitPtrs := make([]*collection.Split, len(splits))
		for j := range splits {
			splitPtrs[j] = &splits[j]
		}
		shares := collection.ResolveShares(p, splitPtrs)
		for _, share := range shares {
			if share.UserID != agentID {
				continue
			}
			item := SlipLineItem{
				Date:         p.Date,
				AccountRef:   p.AccountRef,
				GrossAmount:  p.Amount,
				SharePercent: share.Percentage,
				ShareAmount:  share.Amount,
			}
			if client, err := s.clients.FindByID(ctx, p.ClientID); err == nil {
				item.Client = client.Name
				item.Mobile = client.Mobile
			}
			slip.LineItems = append(slip.LineItems, item)
			slip.TotalAmount = slip.TotalAmount.Add(share.Amount)
		}
	}

	gross := valueobject.NewMoneyINR(slip.TotalAmount)
	gst := gross.Multiply(GSTRate)
	net := gross.MustSubtract(gst)

	slip.GST = gst.Amount()
	slip.NetPayable = net.Amount()
	slip.TotalDisplay = FormatINR(gross)
	slip.GSTDisplay = FormatINR(gst)
	slip.NetDisplay = FormatINR(net)

	return slip, nil
}

// TeamSlips builds the slips for every agent visible to the viewer for
// one month, skipping agents with no income in the period.
func (s *SlipService) TeamSlips(ctx context.Context, viewer identity.Viewer, year int, month time.Month) ([]IncomeSlip, error) {
	visible, all, err := s.directory.VisibleUserIDs(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if all {
		visible, err = s.directory.AllUserIDs(ctx)
		if err != nil {
			return nil, err
		}
	}

	slips := make([]IncomeSlip, 0, len(visible))
	for _, id := range visible {
		slip, err := s.MonthlySlip(ctx, viewer, id, year, month)
		if err != nil {
			s.logger.Warn("Skipping slip", zap.String("agent_id", id.String()), zap.Error(err))
			continue
		}
		if len(slip.LineItems) == 0 {
			continue
		}
		slips = append(slips, *slip)
	}
	return slips, nil
}

func (s *SlipService) authorize(ctx context.Context, viewer identity.Viewer, agentID uuid.UUID) error {
	if viewer.IsAdmin() || viewer.ID == agentID {
		return nil
	}
	if viewer.IsManager() {
		members, err := s.directory.TeamMemberIDs(ctx, viewer.ID)
		if err != nil {
			return err
		}
		for _, id := range members {
			if id == agentID {
				return nil
			}
		}
	}
	return shared.ErrForbidden
}

// ReceiptNumberFor derives a stable receipt number from payment identity
func ReceiptNumberFor(paymentID uuid.UUID, date time.Time) string {
	short := paymentID.String()[:8]
	return fmt.Sprintf("RCPT-%s-%s", date.Format("20060102"), short)
}
