package strategy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
)

type fakeProfiles struct {
	items map[uuid.UUID]*identity.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{items: make(map[uuid.UUID]*identity.Profile)}
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

type fakeStrategies struct {
	items map[uuid.UUID]*identity.Strategy
}

func newFakeStrategies() *fakeStrategies {
	return &fakeStrategies{items: make(map[uuid.UUID]*identity.Strategy)}
}

func (r *fakeStrategies) FindByID(_ context.Context, id uuid.UUID) (*identity.Strategy, error) {
	if s, ok := r.items[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStrategies) FindAll(_ context.Context, _ shared.Filter) ([]identity.Strategy, error) {
	out := make([]identity.Strategy, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeStrategies) FindCompanyWide(_ context.Context) ([]identity.Strategy, error) {
	var out []identity.Strategy
	for _, s := range r.items {
		if s.Scope == identity.ScopeCompany {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStrategies) FindForTeam(_ context.Context, teamID uuid.UUID) ([]identity.Strategy, error) {
	var out []identity.Strategy
	for _, s := range r.items {
		if s.Scope == identity.ScopeTeam && s.TargetTeamID != nil && *s.TargetTeamID == teamID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStrategies) Save(_ context.Context, s *identity.Strategy) error {
	r.items[s.ID] = s
	return nil
}

func (r *fakeStrategies) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type strategyFixture struct {
	service    *Service
	strategies *fakeStrategies
	admin      identity.Viewer
	manager    identity.Viewer
	agent      identity.Viewer
	otherLead  identity.Viewer
}

func newStrategyFixture(t *testing.T) *strategyFixture {
	t.Helper()

	profiles := newFakeProfiles()
	admin, err := identity.NewProfile("boss", "Boss", "hash", identity.RoleAdmin, nil)
	require.NoError(t, err)
	manager, err := identity.NewProfile("lead", "Lead", "hash", identity.RoleManager, nil)
	require.NoError(t, err)
	otherLead, err := identity.NewProfile("lead2", "Other Lead", "hash", identity.RoleManager, nil)
	require.NoError(t, err)
	agent, err := identity.NewProfile("agent", "Agent", "hash", identity.RoleUser, &manager.ID)
	require.NoError(t, err)
	for _, p := range []*identity.Profile{admin, manager, otherLead, agent} {
		require.NoError(t, profiles.Save(context.Background(), p))
	}

	strategies := newFakeStrategies()
	return &strategyFixture{
		service:    NewService(strategies, profiles, zap.NewNop()),
		strategies: strategies,
		admin:      identity.Viewer{ID: admin.ID, Role: identity.RoleAdmin},
		manager:    identity.Viewer{ID: manager.ID, Role: identity.RoleManager},
		agent:      identity.Viewer{ID: agent.ID, Role: identity.RoleUser, ManagerID: &manager.ID},
		otherLead:  identity.Viewer{ID: otherLead.ID, Role: identity.RoleManager},
	}
}

func TestStrategyPost(t *testing.T) {
	ctx := context.Background()

	t.Run("admin posts company wide", func(t *testing.T) {
		f := newStrategyFixture(t)
		entry, err := f.service.Post(ctx, f.admin, PostInput{Message: "book profits", Scope: "company"})
		require.NoError(t, err)
		assert.Equal(t, "company", entry.Scope)
		assert.Equal(t, "Boss", entry.AuthorName)
		assert.Nil(t, entry.TargetTeamID)
	})

	t.Run("manager posts to their own team regardless of input", func(t *testing.T) {
		f := newStrategyFixture(t)
		foreign := f.otherLead.ID
		entry, err := f.service.Post(ctx, f.manager, PostInput{
			Message: "call the renewal list", Scope: "team", TargetTeamID: &foreign,
		})
		require.NoError(t, err)
		require.NotNil(t, entry.TargetTeamID)
		assert.Equal(t, f.manager.ID, *entry.TargetTeamID)
	})

	t.Run("manager may not post company wide", func(t *testing.T) {
		f := newStrategyFixture(t)
		_, err := f.service.Post(ctx, f.manager, PostInput{Message: "x", Scope: "company"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("user may not post at all", func(t *testing.T) {
		f := newStrategyFixture(t)
		_, err := f.service.Post(ctx, f.agent, PostInput{Message: "x", Scope: "team"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("unknown scope is refused", func(t *testing.T) {
		f := newStrategyFixture(t)
		_, err := f.service.Post(ctx, f.admin, PostInput{Message: "x", Scope: "global"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestStrategyFeed(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, f *strategyFixture) {
		t.Helper()
		_, err := f.service.Post(ctx, f.admin, PostInput{Message: "book profits", Scope: "company"})
		require.NoError(t, err)
		_, err = f.service.Post(ctx, f.manager, PostInput{Message: "call the renewal list", Scope: "team"})
		require.NoError(t, err)
		_, err = f.service.Post(ctx, f.otherLead, PostInput{Message: "push the new SIP plan", Scope: "team"})
		require.NoError(t, err)
	}

	t.Run("agent sees company entries plus own team's", func(t *testing.T) {
		f := newStrategyFixture(t)
		seed(t, f)
		entries, err := f.service.Feed(ctx, f.agent)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		messages := []string{entries[0].Message, entries[1].Message}
		assert.ElementsMatch(t, []string{"book profits", "call the renewal list"}, messages)
	})

	t.Run("manager sees company entries plus own postings", func(t *testing.T) {
		f := newStrategyFixture(t)
		seed(t, f)
		entries, err := f.service.Feed(ctx, f.manager)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		f := newStrategyFixture(t)
		seed(t, f)
		entries, err := f.service.Feed(ctx, f.admin)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestStrategyDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes own entry", func(t *testing.T) {
		f := newStrategyFixture(t)
		entry, err := f.service.Post(ctx, f.manager, PostInput{Message: "x", Scope: "team"})
		require.NoError(t, err)
		require.NoError(t, f.service.Delete(ctx, f.manager, entry.ID))
		assert.Empty(t, f.strategies.items)
	})

	t.Run("admin deletes anyone's entry", func(t *testing.T) {
		f := newStrategyFixture(t)
		entry, err := f.service.Post(ctx, f.manager, PostInput{Message: "x", Scope: "team"})
		require.NoError(t, err)
		require.NoError(t, f.service.Delete(ctx, f.admin, entry.ID))
	})

	t.Run("others may not delete", func(t *testing.T) {
		f := newStrategyFixture(t)
		entry, err := f.service.Post(ctx, f.manager, PostInput{Message: "x", Scope: "team"})
		require.NoError(t, err)
		err = f.service.Delete(ctx, f.otherLead, entry.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("missing entry maps to NOT_FOUND", func(t *testing.T) {
		f := newStrategyFixture(t)
		err := f.service.Delete(ctx, f.admin, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
