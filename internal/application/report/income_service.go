package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appidentity "github.com/investkaro/backend/internal/application/identity"
	"github.com/investkaro/backend/internal/domain/collection"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/report"
)

// IncomeService folds resolved shares into the series and breakdowns
// the dashboard renders. All queries are role-scoped: the scope narrows
// the payment set silently, it never errors.
type IncomeService struct {
	payments       collection.PaymentRepository
	splits         collection.SplitRepository
	profiles       identity.ProfileRepository
	directory      *appidentity.TeamDirectory
	trailingMonths int
	logger         *zap.Logger
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(
	payments collection.PaymentRepository,
	splits collection.SplitRepository,
	profiles identity.ProfileRepository,
	directory *appidentity.TeamDirectory,
	trailingMonths int,
	logger *zap.Logger,
) *IncomeService {
	if trailingMonths <= 0 {
		trailingMonths = 6
	}
	return &IncomeService{
		payments:       payments,
		splits:         splits,
		profiles:       profiles,
		directory:      directory,
		trailingMonths: trailingMonths,
		logger:         logger,
	}
}

// resolvedPayment pairs a payment with its resolved shares
type resolvedPayment struct {
	payment *collection.Payment
	shares  []collection.ResolvedShare
}

// scopedShares loads the verified payments the viewer may see in the
// given window and settles each through the resolver.
//
// Scope rules: admin sees every payment; a manager sees payments owned
// by the team plus payments where a team member holds a split; a user
// sees payments they own or receive a split of.
func (s *IncomeService) scopedShares(ctx context.Context, viewer identity.Viewer, from, to time.Time) ([]resolvedPayment, error) {
	visible, all, err := s.directory.VisibleUserIDs(ctx, viewer)
	if err != nil {
		return nil, err
	}

	var payments []collection.Payment
	if all {
		payments, err = s.payments.FindByDateRange(ctx, from, to)
		if err != nil {
			return nil, err
		}
	} else {
		payments, err = s.payments.FindByOwners(ctx, visible, from, to)
		if err != nil {
			return nil, err
		}
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
			if !from.IsZero() && p.Date.Before(from) {
				continue
			}
			if !to.IsZero() && !p.Date.Before(to) {
				continue
			}
			payments = append(payments, *p)
			seen[id] = true
		}
	}

	// Only verified payments contribute to income
	verified := payments[:0]
	for _, p := range payments {
		if p.IsVerified() {
			verified = append(verified, p)
		}
	}

	ids := make([]uuid.UUID, len(verified))
	for i, p := range verified {
		ids[i] = p.ID
	}
	splitsByPayment, err := s.splits.FindByPayments(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make([]resolvedPayment, 0, len(verified))
	for i := range verified {
		p := &verified[i]
		splits := splitsByPayment[p.ID]
		splitPtrs := make([]*collection.Split, len(splits))
		for j := range splits {
			splitPtrs[j] = &splits[j]
		}
		resolved = append(resolved, resolvedPayment{
			payment: p,
			shares:  collection.ResolveShares(p, splitPtrs),
		})
	}
	return resolved, nil
}

// WeeklySeries returns the current month's income in weekly buckets
func (s *IncomeService) WeeklySeries(ctx context.Context, viewer identity.Viewer, now time.Time) ([]SeriesPoint, error) {
	buckets := report.WeeklyBuckets(now)
	from := buckets[0].Start
	to := buckets[len(buckets)-1].End

	resolved, err := s.scopedShares(ctx, viewer, from, to)
	if err != nil {
		return nil, err
	}

	for _, rp := range resolved {
		for _, share := range rp.shares {
			report.Accumulate(buckets, rp.payment.Date, share.Amount)
		}
	}
	return toSeries(buckets), nil
}

// MonthlySeries returns income for the trailing months, oldest first
func (s *IncomeService) MonthlySeries(ctx context.Context, viewer identity.Viewer, now time.Time) ([]SeriesPoint, error) {
	buckets := report.MonthlyBuckets(now, s.trailingMonths)
	from := buckets[0].Start
	to := buckets[len(buckets)-1].End

	resolved, err := s.scopedShares(ctx, viewer, from, to)
	if err != nil {
		return nil, err
	}

	for _, rp := range resolved {
		for _, share := range rp.shares {
			report.Accumulate(buckets, rp.payment.Date, share.Amount)
		}
	}
	return toSeries(buckets), nil
}

// BreakdownByAgent groups resolved shares by recipient across the given
// window, sorted by amount descending. Recipients whose profile no
// longer resolves are reported under the "Unknown" placeholder.
func (s *IncomeService) BreakdownByAgent(ctx context.Context, viewer identity.Viewer, from, to time.Time) ([]BreakdownRow, error) {
	resolved, err := s.scopedShares(ctx, viewer, from, to)
	if err != nil {
		return nil, err
	}

	amounts := make(map[uuid.UUID]decimal.Decimal)
	for _, rp := range resolved {
		for _, share := range rp.shares {
			prev, ok := amounts[share.UserID]
			if !ok {
				prev = decimal.Zero
			}
			amounts[share.UserID] = prev.Add(share.Amount)
		}
	}

	ids := make([]uuid.UUID, 0, len(amounts))
	for id := range amounts {
		ids = append(ids, id)
	}
	profiles, err := s.directory.ProfileNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	leadNames := s.leadNames(ctx, profiles)

	totals := make([]report.AgentTotal, 0, len(amounts))
	for id, amount := range amounts {
		total := report.AgentTotal{UserID: id, Amount: amount, Name: "Unknown"}
		if p, ok := profiles[id]; ok {
			total.Name = p.DisplayName
			total.Role = string(p.Role)
			if p.ManagerID != nil {
				total.TeamLeadName = leadNames[*p.ManagerID]
			}
		}
		totals = append(totals, total)
	}
	report.SortAgentTotals(totals)

	rows := make([]BreakdownRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, BreakdownRow{
			ID:           t.UserID,
			Name:         t.Name,
			Role:         t.Role,
			TeamLeadName: t.TeamLeadName,
			Amount:       t.Amount,
		})
	}
	return rows, nil
}

// BreakdownByTeamLead rolls resolved shares up to each recipient's team
// lead. A manager's own shares count under their own leadership; users
// without a manager land in the unassigned bucket.
func (s *IncomeService) BreakdownByTeamLead(ctx context.Context, viewer identity.Viewer, from, to time.Time) ([]TeamRow, error) {
	resolved, err := s.scopedShares(ctx, viewer, from, to)
	if err != nil {
		return nil, err
	}

	amounts := make(map[uuid.UUID]decimal.Decimal)
	for _, rp := range resolved {
		for _, share := range rp.shares {
			prev, ok := amounts[share.UserID]
			if !ok {
				prev = decimal.Zero
			}
			amounts[share.UserID] = prev.Add(share.Amount)
		}
	}

	ids := make([]uuid.UUID, 0, len(amounts))
	for id := range amounts {
		ids = append(ids, id)
	}
	profiles, err := s.directory.ProfileNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	leadNames := s.leadNames(ctx, profiles)

	type leadKey struct {
		id   uuid.UUID
		none bool
	}
	leadAmounts := make(map[leadKey]decimal.Decimal)
	for id, amount := range amounts {
		key := leadKey{none: true}
		if p, ok := profiles[id]; ok {
			switch {
			case p.Role == identity.RoleManager || p.Role == identity.RoleAdmin:
				key = leadKey{id: p.ID}
			case p.ManagerID != nil:
				key = leadKey{id: *p.ManagerID}
			}
		}
		prev, ok := leadAmounts[key]
		if !ok {
			prev = decimal.Zero
		}
		leadAmounts[key] = prev.Add(amount)
	}

	totals := make([]report.TeamTotal, 0, len(leadAmounts))
	for key, amount := range leadAmounts {
		if key.none {
			totals = append(totals, report.TeamTotal{LeadName: report.UnassignedLabel, Amount: amount})
			continue
		}
		id := key.id
		name := leadNames[id]
		if name == "" {
			if p, ok := profiles[id]; ok {
				name = p.DisplayName
			} else {
				name = "Unknown"
			}
		}
		totals = append(totals, report.TeamTotal{LeadID: &id, LeadName: name, Amount: amount})
	}
	report.SortTeamTotals(totals)

	rows := make([]TeamRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, TeamRow{LeadID: t.LeadID, LeadName: t.LeadName, Amount: t.Amount})
	}
	return rows, nil
}

// Summarize returns the dashboard headline numbers for the viewer
func (s *IncomeService) Summarize(ctx context.Context, viewer identity.Viewer, now time.Time) (*Summary, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	resolved, err := s.scopedShares(ctx, viewer, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalIncome:  decimal.Zero,
		MonthIncome:  decimal.Zero,
		ViewerIncome: decimal.Zero,
		PaymentCount: len(resolved),
	}
	for _, rp := range resolved {
		inMonth := !rp.payment.Date.Before(monthStart) && rp.payment.Date.Before(monthEnd)
		for _, share := range rp.shares {
			summary.TotalIncome = summary.TotalIncome.Add(share.Amount)
			if inMonth {
				summary.MonthIncome = summary.MonthIncome.Add(share.Amount)
			}
			if share.UserID == viewer.ID {
				summary.ViewerIncome = summary.ViewerIncome.Add(share.Amount)
			}
		}
	}
	return summary, nil
}

// leadNames resolves display names for every manager referenced by the
// given profiles, including managers outside the share set.
func (s *IncomeService) leadNames(ctx context.Context, profiles map[uuid.UUID]identity.Profile) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	var missing []uuid.UUID
	for _, p := range profiles {
		names[p.ID] = p.DisplayName
		if p.ManagerID != nil {
			if _, ok := profiles[*p.ManagerID]; !ok {
				missing = append(missing, *p.ManagerID)
			}
		}
	}
	if len(missing) > 0 {
		if extra, err := s.directory.ProfileNames(ctx, missing); err == nil {
			for id, p := range extra {
				names[id] = p.DisplayName
			}
		} else {
			s.logger.Warn("Failed to resolve team lead names", zap.Error(err))
		}
	}
	return names
}

func toSeries(buckets []report.Bucket) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, SeriesPoint{Period: b.Label, Income: b.Income})
	}
	return points
}
