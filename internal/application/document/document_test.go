package document

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/investkaro/backend/internal/application/identity"
	"github.com/investkaro/backend/internal/domain/collection"
	"github.com/investkaro/backend/internal/domain/crm"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/domain/shared/valueobject"
)

type fakeProfiles struct {
	items map[uuid.UUID]*identity.Profile
}

func (r *fakeProfiles) FindByID(_ context.Context, id uuid.UUID) (*identity.Profile, error) {
	if p, ok := r.items[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProfiles) FindAll(_ context.Context, _ shared.Filter) ([]identity.Profile, error) {
	out := make([]identity.Profile, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProfiles) Save(_ context.Context, p *identity.Profile) error {
	r.items[p.ID] = p
	return nil
}

func (r *fakeProfiles) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeProfiles) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeProfiles) FindByUsername(_ context.Context, username string) (*identity.Profile, error) {
	for _, p := range r.items {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProfiles) FindByManager(_ context.Context, managerID uuid.UUID) ([]identity.Profile, error) {
	var out []identity.Profile
	for _, p := range r.items {
		if p.ManagerID != nil && *p.ManagerID == managerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProfiles) FindByRole(_ context.Context, role identity.Role) ([]identity.Profile, error) {
	var out []identity.Profile
	for _, p := range r.items {
		if p.Role == role {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProfiles) FindByIDs(_ context.Context, ids []uuid.UUID) ([]identity.Profile, error) {
	var out []identity.Profile
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeClients struct {
	items map[uuid.UUID]*crm.Client
}

func (r *fakeClients) FindByID(_ context.Context, id uuid.UUID) (*crm.Client, error) {
	if c, ok := r.items[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeClients) FindAll(_ context.Context, _ shared.Filter) ([]crm.Client, error) {
	out := make([]crm.Client, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClients) Save(_ context.Context, c *crm.Client) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeClients) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeClients) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeClients) FindByMobile(_ context.Context, mobile string) (*crm.Client, error) {
	for _, c := range r.items {
		if c.Mobile == mobile {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeClients) FindUnassigned(_ context.Context, _ shared.Filter) ([]crm.Client, error) {
	return nil, nil
}

func (r *fakeClients) FindByIDs(_ context.Context, ids []uuid.UUID) ([]crm.Client, error) {
	var out []crm.Client
	for _, id := range ids {
		if c, ok := r.items[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakePayments struct {
	items map[uuid.UUID]*collection.Payment
}

func (r *fakePayments) FindByID(_ context.Context, id uuid.UUID) (*collection.Payment, error) {
	if p, ok := r.items[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePayments) FindAll(_ context.Context, _ shared.Filter) ([]collection.Payment, error) {
	out := make([]collection.Payment, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePayments) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakePayments) FindByClient(_ context.Context, clientID uuid.UUID) ([]collection.Payment, error) {
	var out []collection.Payment
	for _, p := range r.items {
		if p.ClientID == clientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePayments) FindByOwners(_ context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]collection.Payment, error) {
	owners := make(map[uuid.UUID]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	var out []collection.Payment
	for _, p := range r.items {
		if owners[p.OwnerUserID] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePayments) FindByStatus(_ context.Context, status collection.PaymentStatus, _ shared.Filter) ([]collection.Payment, error) {
	var out []collection.Payment
	for _, p := range r.items {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePayments) FindByDateRange(_ context.Context, from, to time.Time) ([]collection.Payment, error) {
	var out []collection.Payment
	for _, p := range r.items {
		if !from.IsZero() && p.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !p.Date.Before(to) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePayments) Save(_ context.Context, p *collection.Payment) error {
	r.items[p.ID] = p
	return nil
}

func (r *fakePayments) CreateWithSplits(_ context.Context, p *collection.Payment, _ []*collection.Split) error {
	r.items[p.ID] = p
	return nil
}

type fakeSplits struct {
	items []collection.Split
}

func (r *fakeSplits) FindByPayment(_ context.Context, paymentID uuid.UUID) ([]collection.Split, error) {
	var out []collection.Split
	for _, s := range r.items {
		if s.PaymentID == paymentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSplits) FindByPayments(_ context.Context, paymentIDs []uuid.UUID) (map[uuid.UUID][]collection.Split, error) {
	want := make(map[uuid.UUID]bool, len(paymentIDs))
	for _, id := range paymentIDs {
		want[id] = true
	}
	out := make(map[uuid.UUID][]collection.Split)
	for _, s := range r.items {
		if want[s.PaymentID] {
			out[s.PaymentID] = append(out[s.PaymentID], s)
		}
	}
	return out, nil
}

func (r *fakeSplits) FindByRecipient(_ context.Context, recipientUserID uuid.UUID) ([]collection.Split, error) {
	var out []collection.Split
	for _, s := range r.items {
		if s.RecipientUserID == recipientUserID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSplits) FindPaymentIDsByRecipients(_ context.Context, recipientUserIDs []uuid.UUID) ([]uuid.UUID, error) {
	want := make(map[uuid.UUID]bool, len(recipientUserIDs))
	for _, id := range recipientUserIDs {
		want[id] = true
	}
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, s := range r.items {
		if want[s.RecipientUserID] && !seen[s.PaymentID] {
			seen[s.PaymentID] = true
			out = append(out, s.PaymentID)
		}
	}
	return out, nil
}

type documentFixture struct {
	slips    *SlipService
	receipts *ReceiptService
	payments *fakePayments
	splits   *fakeSplits

	admin  identity.Viewer
	lead   identity.Viewer
	agent  identity.Viewer
	other  identity.Viewer
	client *crm.Client
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()

	profiles := &fakeProfiles{items: make(map[uuid.UUID]*identity.Profile)}
	clients := &fakeClients{items: make(map[uuid.UUID]*crm.Client)}
	payments := &fakePayments{items: make(map[uuid.UUID]*collection.Payment)}
	splits := &fakeSplits{}

	admin, err := identity.NewProfile("boss", "Boss", "hash", identity.RoleAdmin, nil)
	require.NoError(t, err)
	lead, err := identity.NewProfile("lead", "Lead", "hash", identity.RoleManager, nil)
	require.NoError(t, err)
	agent, err := identity.NewProfile("agent", "Agent", "hash", identity.RoleUser, &lead.ID)
	require.NoError(t, err)
	other, err := identity.NewProfile("other", "Other", "hash", identity.RoleUser, nil)
	require.NoError(t, err)
	for _, p := range []*identity.Profile{admin, lead, agent, other} {
		require.NoError(t, profiles.Save(context.Background(), p))
	}

	client, err := crm.NewClient("Ravi Kumar", "9876543210", "", "Indore")
	require.NoError(t, err)
	require.NoError(t, clients.Save(context.Background(), client))

	directory := appidentity.NewTeamDirectory(profiles)
	logger := zap.NewNop()

	return &documentFixture{
		slips:    NewSlipService(payments, splits, profiles, clients, directory, logger),
		receipts: NewReceiptService(payments, splits, profiles, clients, logger),
		payments: payments,
		splits:   splits,
		admin:    identity.Viewer{ID: admin.ID, Role: identity.RoleAdmin},
		lead:     identity.Viewer{ID: lead.ID, Role: identity.RoleManager},
		agent:    identity.Viewer{ID: agent.ID, Role: identity.RoleUser, ManagerID: &lead.ID},
		other:    identity.Viewer{ID: other.ID, Role: identity.RoleUser},
		client:   client,
	}
}

func (f *documentFixture) addVerified(t *testing.T, owner uuid.UUID, amount int64, date time.Time, splitPcts map[uuid.UUID]int64) *collection.Payment {
	t.Helper()
	p, err := collection.NewPayment(f.client.ID, owner, decimal.NewFromInt(amount), date, "HDFC-1")
	require.NoError(t, err)
	require.NoError(t, p.Verify(f.admin.ID))
	require.NoError(t, f.payments.Save(context.Background(), p))
	for recipient, pct := range splitPcts {
		s, err := collection.NewSplit(p, recipient, decimal.NewFromInt(pct))
		require.NoError(t, err)
		f.splits.items = append(f.splits.items, *s)
	}
	return p
}

func TestSlipServiceMonthlySlip(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.Local)

	t.Run("slip sums the agent share and deducts GST", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.addVerified(t, f.lead.ID, 10000, date, map[uuid.UUID]int64{f.agent.ID: 40})

		slip, err := f.slips.MonthlySlip(ctx, f.admin, f.agent.ID, 2026, time.August)
		require.NoError(t, err)

		require.Len(t, slip.LineItems, 1)
		assert.Equal(t, "Aug 2026", slip.PeriodLabel)
		assert.True(t, slip.TotalAmount.Equal(decimal.NewFromInt(4000)))
		assert.True(t, slip.GST.Equal(decimal.NewFromInt(720)), "gst %s", slip.GST)
		assert.True(t, slip.NetPayable.Equal(decimal.NewFromInt(3280)), "net %s", slip.NetPayable)
		assert.Equal(t, "Ravi Kumar", slip.LineItems[0].Client)
	})

	t.Run("pending payments never reach a slip", func(t *testing.T) {
		f := newDocumentFixture(t)
		p, err := collection.NewPayment(f.client.ID, f.agent.ID, decimal.NewFromInt(500), date, "")
		require.NoError(t, err)
		require.NoError(t, f.payments.Save(ctx, p))

		slip, err := f.slips.MonthlySlip(ctx, f.agent, f.agent.ID, 2026, time.August)
		require.NoError(t, err)
		assert.Empty(t, slip.LineItems)
		assert.True(t, slip.TotalAmount.IsZero())
	})

	t.Run("users cannot pull another agent's slip", func(t *testing.T) {
		f := newDocumentFixture(t)
		_, err := f.slips.MonthlySlip(ctx, f.other, f.agent.ID, 2026, time.August)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("managers pull their team's slips", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.addVerified(t, f.agent.ID, 1000, date, nil)

		slips, err := f.slips.TeamSlips(ctx, f.lead, 2026, time.August)
		require.NoError(t, err)
		require.Len(t, slips, 1)
		assert.Equal(t, "Agent", slips[0].AgentName)
	})

	t.Run("admin slips cover the whole roster", func(t *testing.T) {
		f := newDocumentFixture(t)
		f.addVerified(t, f.other.ID, 1000, date, nil)

		slips, err := f.slips.TeamSlips(ctx, f.admin, 2026, time.August)
		require.NoError(t, err)
		require.Len(t, slips, 1)
		assert.Equal(t, "Other", slips[0].AgentName)
	})
}

func TestReceiptServiceGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("receipt extracts GST from the inclusive amount", func(t *testing.T) {
		f := newDocumentFixture(t)
		now := time.Now()
		p := f.addVerified(t, f.agent.ID, 1180, now.AddDate(0, 0, -2), nil)

		receipt, err := f.receipts.Generate(ctx, f.agent, p.ID)
		require.NoError(t, err)

		assert.Equal(t, "Ravi Kumar", receipt.ClientName)
		assert.True(t, receipt.TaxableAmount.Round(2).Equal(decimal.NewFromInt(1000)),
			"taxable %s", receipt.TaxableAmount)
		assert.True(t, receipt.GST.Round(2).Equal(decimal.NewFromInt(180)),
			"gst %s", receipt.GST)
		assert.True(t, receipt.Total.Equal(decimal.NewFromInt(1180)))
		assert.Contains(t, receipt.ReceiptNumber, "RCPT-")
	})

	t.Run("window expiry is permanent", func(t *testing.T) {
		f := newDocumentFixture(t)
		p := f.addVerified(t, f.agent.ID, 1000, time.Now().AddDate(0, 0, -11), nil)

		_, err := f.receipts.Generate(ctx, f.agent, p.ID)
		assert.ErrorIs(t, err, shared.ErrWindowExpired)
	})

	t.Run("pending payments cannot be receipted", func(t *testing.T) {
		f := newDocumentFixture(t)
		p, err := collection.NewPayment(f.client.ID, f.agent.ID, decimal.NewFromInt(1000), time.Now(), "")
		require.NoError(t, err)
		require.NoError(t, f.payments.Save(ctx, p))

		_, err = f.receipts.Generate(ctx, f.agent, p.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("split recipients may pull the receipt", func(t *testing.T) {
		f := newDocumentFixture(t)
		p := f.addVerified(t, f.agent.ID, 1000, time.Now(), map[uuid.UUID]int64{f.other.ID: 20})

		_, err := f.receipts.Generate(ctx, f.other, p.ID)
		require.NoError(t, err)
	})

	t.Run("unrelated users are refused", func(t *testing.T) {
		f := newDocumentFixture(t)
		p := f.addVerified(t, f.agent.ID, 1000, time.Now(), nil)

		_, err := f.receipts.Generate(ctx, f.other, p.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"1234.5", "₹1,234.50"},
		{"100000", "₹1,00,000.00"},
		{"12345678.9", "₹1,23,45,678.90"},
	}
	for _, tc := range cases {
		got := FormatINR(valueobject.NewMoneyINR(decimal.RequireFromString(tc.in)))
		assert.Equal(t, tc.want, got, "input %s", tc.in)
	}
}
