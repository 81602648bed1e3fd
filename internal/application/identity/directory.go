package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
)

// TeamDirectory answers org-structure questions the reporting and
// collection services need: who is on whose team, and which user ids a
// viewer's role lets them see.
type TeamDirectory struct {
	profiles identity.ProfileRepository
}

// NewTeamDirectory creates a new TeamDirectory
func NewTeamDirectory(profiles identity.ProfileRepository) *TeamDirectory {
	return &TeamDirectory{profiles: profiles}
}

// TeamMemberIDs returns the ids of every profile reporting to the given
// manager, the manager included.
func (d *TeamDirectory) TeamMemberIDs(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	members, err := d.profiles.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members)+1)
	ids = append(ids, managerID)
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// allUserIDsPageSize bounds each page fetched by AllUserIDs
const allUserIDsPageSize = 500

// AllUserIDs returns the id of every profile, paging through the
// repository so rosters larger than one page are still fully covered.
func (d *TeamDirectory) AllUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for page := 1; ; page++ {
		profiles, err := d.profiles.FindAll(ctx, shared.Filter{
			Page:     page,
			PageSize: allUserIDsPageSize,
			OrderBy:  "created_at",
			OrderDir: "asc",
		})
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			ids = append(ids, p.ID)
		}
		if len(profiles) < allUserIDsPageSize {
			return ids, nil
		}
	}
}

// VisibleUserIDs resolves the set of user ids whose payments and shares
// the viewer may see. The second return value is true when the viewer
// sees everything (admin) and the id list should be ignored.
func (d *TeamDirectory) VisibleUserIDs(ctx context.Context, viewer identity.Viewer) ([]uuid.UUID, bool, error) {
	switch {
	case viewer.IsAdmin():
		return nil, true, nil
	case viewer.IsManager():
		ids, err := d.TeamMemberIDs(ctx, viewer.ID)
		return ids, false, err
	default:
		return []uuid.UUID{viewer.ID}, false, nil
	}
}

// ProfileNames resolves display names, roles and team leads for a set of
// user ids. Ids that resolve to no profile map to the placeholder name.
func (d *TeamDirectory) ProfileNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]identity.Profile, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]identity.Profile{}, nil
	}
	profiles, err := d.profiles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]identity.Profile, len(profiles))
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out, nil
}
