package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/shared"
)

// ClientRepository defines the persistence interface for the master pool
type ClientRepository interface {
	shared.Repository[Client]
	FindByMobile(ctx context.Context, mobile string) (*Client, error)
	FindUnassigned(ctx context.Context, filter shared.Filter) ([]Client, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Client, error)
}

// EngagementRepository defines the persistence interface for engagements
type EngagementRepository interface {
	shared.Repository[Engagement]
	FindByAgent(ctx context.Context, agentID uuid.UUID, filter shared.Filter) ([]Engagement, error)
	FindByAgents(ctx context.Context, agentIDs []uuid.UUID, filter shared.Filter) ([]Engagement, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Engagement, error)
	CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error)
}
