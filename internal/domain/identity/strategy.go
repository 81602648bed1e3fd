package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/shared"
)

// StrategyScope says who a strategy note is addressed to
type StrategyScope string

const (
	ScopeCompany StrategyScope = "company"
	ScopeTeam    StrategyScope = "team"
)

// IsValid checks if the scope is a known value
func (s StrategyScope) IsValid() bool {
	return s == ScopeCompany || s == ScopeTeam
}

// Strategy is a broadcast note on the dashboard feed. Admins address the
// whole company, managers address their own team.
type Strategy struct {
	shared.BaseEntity
	AuthorID     uuid.UUID
	Message      string
	Scope        StrategyScope
	TargetTeamID *uuid.UUID
}

// NewStrategy creates a feed entry. Team-scoped entries must name the
// target team (the lead's profile id); company-scoped entries must not.
func NewStrategy(authorID uuid.UUID, message string, scope StrategyScope, targetTeamID *uuid.UUID) (*Strategy, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "strategy message is required")
	}
	if !scope.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown strategy scope: "+string(scope))
	}
	if scope == ScopeTeam && targetTeamID == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "team strategies need a target team")
	}
	if scope == ScopeCompany && targetTeamID != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "company strategies cannot target a team")
	}
	return &Strategy{
		BaseEntity:   shared.NewBaseEntity(),
		AuthorID:     authorID,
		Message:      message,
		Scope:        scope,
		TargetTeamID: targetTeamID,
	}, nil
}

// VisibleTo reports whether a viewer in the given team sees this entry.
// Company entries reach everyone; team entries reach the targeted team's
// lead and members.
func (s *Strategy) VisibleTo(viewerID uuid.UUID, viewerTeamID *uuid.UUID) bool {
	if s.Scope == ScopeCompany {
		return true
	}
	if s.AuthorID == viewerID {
		return true
	}
	if s.TargetTeamID == nil {
		return false
	}
	if *s.TargetTeamID == viewerID {
		return true
	}
	return viewerTeamID != nil && *viewerTeamID == *s.TargetTeamID
}

// StrategyRepository defines the persistence interface for the feed
type StrategyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Strategy, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Strategy, error)
	FindCompanyWide(ctx context.Context) ([]Strategy, error)
	FindForTeam(ctx context.Context, teamID uuid.UUID) ([]Strategy, error)
	Save(ctx context.Context, s *Strategy) error
	Delete(ctx context.Context, id uuid.UUID) error
}
