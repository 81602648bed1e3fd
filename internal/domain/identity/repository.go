package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/shared"
)

// ProfileRepository defines the persistence interface for profiles
type ProfileRepository interface {
	shared.Repository[Profile]
	FindByUsername(ctx context.Context, username string) (*Profile, error)
	FindByManager(ctx context.Context, managerID uuid.UUID) ([]Profile, error)
	FindByRole(ctx context.Context, role Role) ([]Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Profile, error)
}
