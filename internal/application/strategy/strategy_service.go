package strategy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
)

// PostInput is a new strategy feed entry
type PostInput struct {
	Message      string
	Scope        string
	TargetTeamID *uuid.UUID
}

// Entry is a strategy in API responses
type Entry struct {
	ID           uuid.UUID  `json:"id"`
	AuthorID     uuid.UUID  `json:"author_id"`
	AuthorName   string     `json:"author_name,omitempty"`
	Message      string     `json:"message"`
	Scope        string     `json:"scope"`
	TargetTeamID *uuid.UUID `json:"target_team_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Service manages the dashboard strategy feed
type Service struct {
	strategies identity.StrategyRepository
	profiles   identity.ProfileRepository
	logger     *zap.Logger
}

// NewService creates a new strategy Service
func NewService(strategies identity.StrategyRepository, profiles identity.ProfileRepository, logger *zap.Logger) *Service {
	return &Service{strategies: strategies, profiles: profiles, logger: logger}
}

// Post publishes a feed entry. Admins may address the whole company;
// managers address their own team only.
func (s *Service) Post(ctx context.Context, viewer identity.Viewer, input PostInput) (*Entry, error) {
	scope := identity.StrategyScope(input.Scope)
	switch scope {
	case identity.ScopeCompany:
		if !viewer.Role.CanPostCompanyStrategy() {
			return nil, shared.ErrForbidden
		}
	case identity.ScopeTeam:
		if !viewer.Role.CanPostTeamStrategy() {
			return nil, shared.ErrForbidden
		}
		// A manager's team is keyed by their own profile id
		if viewer.IsManager() {
			id := viewer.ID
			input.TargetTeamID = &id
		}
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown strategy scope: "+input.Scope)
	}

	strategy, err := identity.NewStrategy(viewer.ID, input.Message, scope, input.TargetTeamID)
	if err != nil {
		return nil, err
	}
	if err := s.strategies.Save(ctx, strategy); err != nil {
		return nil, err
	}

	s.logger.Info("Strategy posted",
		zap.String("author_id", viewer.ID.String()),
		zap.String("scope", string(scope)))

	entry := s.toEntry(ctx, strategy)
	return &entry, nil
}

// Feed returns the entries visible to the viewer: company-wide entries
// plus the viewer's own team's entries.
func (s *Service) Feed(ctx context.Context, viewer identity.Viewer) ([]Entry, error) {
	entries, err := s.strategies.FindCompanyWide(ctx)
	if err != nil {
		return nil, err
	}

	teamID := viewer.ManagerID
	if viewer.IsManager() {
		id := viewer.ID
		teamID = &id
	}
	if teamID != nil {
		teamEntries, err := s.strategies.FindForTeam(ctx, *teamID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, teamEntries...)
	}
	if viewer.IsAdmin() {
		all, err := s.strategies.FindAll(ctx, shared.DefaultFilter())
		if err != nil {
			return nil, err
		}
		entries = all
	}

	out := make([]Entry, 0, len(entries))
	for i := range entries {
		out = append(out, s.toEntry(ctx, &entries[i]))
	}
	return out, nil
}

// Delete removes a feed entry. Only the author or an admin may.
func (s *Service) Delete(ctx context.Context, viewer identity.Viewer, strategyID uuid.UUID) error {
	strategy, err := s.strategies.FindByID(ctx, strategyID)
	if err != nil {
		return shared.ErrNotFound
	}
	if !viewer.IsAdmin() && strategy.AuthorID != viewer.ID {
		return shared.ErrForbidden
	}
	return s.strategies.Delete(ctx, strategyID)
}

func (s *Service) toEntry(ctx context.Context, st *identity.Strategy) Entry {
	entry := Entry{
		ID:           st.ID,
		AuthorID:     st.AuthorID,
		Message:      st.Message,
		Scope:        string(st.Scope),
		TargetTeamID: st.TargetTeamID,
		CreatedAt:    st.CreatedAt,
	}
	if author, err := s.profiles.FindByID(ctx, st.AuthorID); err == nil {
		entry.AuthorName = author.DisplayName
	}
	return entry
}
