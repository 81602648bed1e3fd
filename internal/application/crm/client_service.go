package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/domain/crm"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
)

// ClientService manages the master client pool
type ClientService struct {
	clients     crm.ClientRepository
	engagements crm.EngagementRepository
	profiles    identity.ProfileRepository
	logger      *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	clients crm.ClientRepository,
	engagements crm.EngagementRepository,
	profiles identity.ProfileRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clients:     clients,
		engagements: engagements,
		profiles:    profiles,
		logger:      logger,
	}
}

// Create adds a client to the pool, deduping on mobile
func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*ClientResponse, error) {
	client, err := crm.NewClient(input.Name, input.Mobile, input.Email, input.City)
	if err != nil {
		return nil, err
	}

	if existing, err := s.clients.FindByMobile(ctx, client.Mobile); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this mobile already exists")
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// Get returns one client
func (s *ClientService) Get(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// List returns pool clients with pagination; unassignedOnly narrows to
// clients still waiting for an agent.
func (s *ClientService) List(ctx context.Context, filter shared.Filter, unassignedOnly bool) ([]ClientResponse, int64, error) {
	var (
		clients []crm.Client
		err     error
	)
	if unassignedOnly {
		clients, err = s.clients.FindUnassigned(ctx, filter)
	} else {
		clients, err = s.clients.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.clients.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, ToClientResponse(&clients[i]))
	}
	return out, total, nil
}

// BulkAssign hands a batch of pool clients to an agent, one engagement
// at a time. Each client is assigned independently: a failure is
// reported and the loop continues, so a retry with the failed ids
// completes the batch (at-least-once, never all-or-nothing).
func (s *ClientService) BulkAssign(ctx context.Context, viewer identity.Viewer, input BulkAssignInput) (*BulkAssignResult, error) {
	if !viewer.Role.CanViewTeam() {
		return nil, shared.ErrForbidden
	}

	if _, err := s.profiles.FindByID(ctx, input.AgentID); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "agent does not exist")
	}

	result := &BulkAssignResult{Requested: len(input.ClientIDs)}
	for _, clientID := range input.ClientIDs {
		client, err := s.clients.FindByID(ctx, clientID)
		if err != nil {
			result.Failures = append(result.Failures, AssignFailure{ClientID: clientID, Reason: "client not found"})
			continue
		}

		engagement := crm.NewEngagement(clientID, input.AgentID)
		if err := s.engagements.Save(ctx, engagement); err != nil {
			s.logger.Warn("Bulk assign: engagement save failed",
				zap.String("client_id", clientID.String()),
				zap.Error(err))
			result.Failures = append(result.Failures, AssignFailure{ClientID: clientID, Reason: err.Error()})
			continue
		}

		client.MarkAssigned()
		if err := s.clients.Save(ctx, client); err != nil {
			// Engagement exists but the flag didn't stick; the retry
			// path re-marks the client without duplicating income data.
			s.logger.Warn("Bulk assign: client flag update failed",
				zap.String("client_id", clientID.String()),
				zap.Error(err))
			result.Failures = append(result.Failures, AssignFailure{ClientID: clientID, Reason: "engagement created but client flag not updated; retry"})
			continue
		}

		result.Assigned++
	}

	s.logger.Info("Bulk assignment finished",
		zap.String("agent_id", input.AgentID.String()),
		zap.Int("requested", result.Requested),
		zap.Int("assigned", result.Assigned),
		zap.Int("failed", len(result.Failures)))

	return result, nil
}
