package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appidentity "github.com/investkaro/backend/internal/application/identity"
	"github.com/investkaro/backend/internal/domain/crm"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
)

// EngagementService manages assigned client engagements
type EngagementService struct {
	engagements crm.EngagementRepository
	clients     crm.ClientRepository
	profiles    identity.ProfileRepository
	directory   *appidentity.TeamDirectory
	logger      *zap.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	engagements crm.EngagementRepository,
	clients crm.ClientRepository,
	profiles identity.ProfileRepository,
	directory *appidentity.TeamDirectory,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		engagements: engagements,
		clients:     clients,
		profiles:    profiles,
		directory:   directory,
		logger:      logger,
	}
}

// List returns the engagements visible to the viewer: admins all,
// managers their team's desks, users their own desk.
func (s *EngagementService) List(ctx context.Context, viewer identity.Viewer, filter shared.Filter) ([]EngagementResponse, error) {
	visible, all, err := s.directory.VisibleUserIDs(ctx, viewer)
	if err != nil {
		return nil, err
	}

	var engagements []crm.Engagement
	if all {
		engagements, err = s.engagements.FindAll(ctx, filter)
	} else {
		engagements, err = s.engagements.FindByAgents(ctx, visible, filter)
	}
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, engagements), nil
}

// Update records the latest disposition and trading profile on one
// engagement. Only the owning agent, their manager, or an admin may.
func (s *EngagementService) Update(ctx context.Context, viewer identity.Viewer, engagementID uuid.UUID, input UpdateEngagementInput) (*EngagementResponse, error) {
	engagement, err := s.engagements.FindByID(ctx, engagementID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := s.authorize(ctx, viewer, engagement.AgentID); err != nil {
		return nil, err
	}

	if input.Status != "" {
		if err := engagement.UpdateDisposition(crm.EngagementStatus(input.Status), input.Note); err != nil {
			return nil, err
		}
	} else if input.Note != "" {
		engagement.Note = input.Note
		engagement.Touch()
	}

	if input.Segment != "" || input.State != "" || !input.FundAmount.IsZero() {
		if err := engagement.UpdateTradingProfile(crm.Segment(input.Segment), input.State, input.FundAmount); err != nil {
			return nil, err
		}
	}

	if err := s.engagements.Save(ctx, engagement); err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, engagement)
	return &resp, nil
}

// Transfer moves an engagement to another agent. Admin or the current
// agent's manager only.
func (s *EngagementService) Transfer(ctx context.Context, viewer identity.Viewer, engagementID, newAgentID uuid.UUID) (*EngagementResponse, error) {
	if !viewer.Role.CanViewTeam() {
		return nil, shared.ErrForbidden
	}

	engagement, err := s.engagements.FindByID(ctx, engagementID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := s.authorize(ctx, viewer, engagement.AgentID); err != nil {
		return nil, err
	}

	if _, err := s.profiles.FindByID(ctx, newAgentID); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "agent does not exist")
	}

	engagement.Transfer(newAgentID)
	if err := s.engagements.Save(ctx, engagement); err != nil {
		return nil, err
	}

	s.logger.Info("Engagement transferred",
		zap.String("engagement_id", engagementID.String()),
		zap.String("to_agent", newAgentID.String()))

	resp := s.toResponse(ctx, engagement)
	return &resp, nil
}

func (s *EngagementService) authorize(ctx context.Context, viewer identity.Viewer, agentID uuid.UUID) error {
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

func (s *EngagementService) toResponses(ctx context.Context, engagements []crm.Engagement) []EngagementResponse {
	out := make([]EngagementResponse, 0, len(engagements))
	for i := range engagements {
		out = append(out, s.toResponse(ctx, &engagements[i]))
	}
	return out
}

func (s *EngagementService) toResponse(ctx context.Context, e *crm.Engagement) EngagementResponse {
	resp := ToEngagementResponse(e)
	if client, err := s.clients.FindByID(ctx, e.ClientID); err == nil {
		resp.ClientName = client.Name
		resp.ClientMobile = client.Mobile
	}
	if agent, err := s.profiles.FindByID(ctx, e.AgentID); err == nil {
		resp.AgentName = agent.DisplayName
	}
	return resp
}
