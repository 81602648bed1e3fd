package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/auth"
)

// UserService handles admin-side user management
type UserService struct {
	profiles identity.ProfileRepository
	hasher   auth.PasswordHasher
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(profiles identity.ProfileRepository, hasher auth.PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{
		profiles: profiles,
		hasher:   hasher,
		logger:   logger,
	}
}

// Create creates a new profile. Admin only.
func (s *UserService) Create(ctx context.Context, viewer identity.Viewer, input CreateUserInput) (*ProfileInfo, error) {
	if !viewer.Role.CanManageUsers() {
		return nil, shared.ErrForbidden
	}

	if input.Password == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "password is required")
	}

	if existing, err := s.profiles.FindByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	if input.ManagerID != nil {
		mgr, err := s.profiles.FindByID(ctx, *input.ManagerID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "manager does not exist")
		}
		if mgr.Role != identity.RoleManager && mgr.Role != identity.RoleAdmin {
			return nil, shared.NewDomainError("INVALID_INPUT", "assigned manager must hold the manager role")
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	profile, err := identity.NewProfile(input.Username, input.DisplayName, hash, identity.Role(input.Role), input.ManagerID)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", profile.Username),
		zap.String("role", string(profile.Role)),
		zap.String("created_by", viewer.ID.String()))

	info := ToProfileInfo(profile)
	return &info, nil
}

// ChangeRole changes a profile's role and manager assignment. Admin only.
func (s *UserService) ChangeRole(ctx context.Context, viewer identity.Viewer, input ChangeRoleInput) (*ProfileInfo, error) {
	if !viewer.Role.CanManageUsers() {
		return nil, shared.ErrForbidden
	}

	profile, err := s.profiles.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := profile.ChangeRole(identity.Role(input.Role), input.ManagerID); err != nil {
		return nil, err
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("User role changed",
		zap.String("user_id", profile.ID.String()),
		zap.String("role", string(profile.Role)))

	info := ToProfileInfo(profile)
	return &info, nil
}

// Reassign moves a profile under a different manager. Admin only.
func (s *UserService) Reassign(ctx context.Context, viewer identity.Viewer, userID uuid.UUID, managerID *uuid.UUID) (*ProfileInfo, error) {
	if !viewer.Role.CanManageUsers() {
		return nil, shared.ErrForbidden
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if managerID != nil {
		if _, err := s.profiles.FindByID(ctx, *managerID); err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "manager does not exist")
		}
	}

	if err := profile.Reassign(managerID); err != nil {
		return nil, err
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	info := ToProfileInfo(profile)
	return &info, nil
}

// Deactivate disables a profile. Admin only; self-deactivation is refused
// so an org cannot lock out its last admin by accident.
func (s *UserService) Deactivate(ctx context.Context, viewer identity.Viewer, userID uuid.UUID) error {
	if !viewer.Role.CanManageUsers() {
		return shared.ErrForbidden
	}
	if userID == viewer.ID {
		return shared.NewDomainError("INVALID_INPUT", "you cannot deactivate your own account")
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return shared.ErrNotFound
	}

	profile.Deactivate()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return err
	}

	s.logger.Info("User deactivated",
		zap.String("user_id", userID.String()),
		zap.String("by", viewer.ID.String()))
	return nil
}

// List returns all profiles with their manager names resolved.
// Admins see everyone; managers see themselves plus their team.
func (s *UserService) List(ctx context.Context, viewer identity.Viewer, filter shared.Filter) ([]ProfileInfo, error) {
	var profiles []identity.Profile
	var err error

	switch {
	case viewer.IsAdmin():
		profiles, err = s.profiles.FindAll(ctx, filter)
	case viewer.IsManager():
		profiles, err = s.profiles.FindByManager(ctx, viewer.ID)
		if err == nil {
			if self, selfErr := s.profiles.FindByID(ctx, viewer.ID); selfErr == nil {
				profiles = append([]identity.Profile{*self}, profiles...)
			}
		}
	default:
		return nil, shared.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	for _, p := range profiles {
		names[p.ID] = p.DisplayName
	}

	infos := make([]ProfileInfo, 0, len(profiles))
	for i := range profiles {
		info := ToProfileInfo(&profiles[i])
		if profiles[i].ManagerID != nil {
			if name, ok := names[*profiles[i].ManagerID]; ok {
				info.ManagerName = name
			} else if mgr, err := s.profiles.FindByID(ctx, *profiles[i].ManagerID); err == nil {
				names[mgr.ID] = mgr.DisplayName
				info.ManagerName = mgr.DisplayName
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Managers returns every profile holding the manager role, for
// assignment dropdowns.
func (s *UserService) Managers(ctx context.Context) ([]ProfileInfo, error) {
	managers, err := s.profiles.FindByRole(ctx, identity.RoleManager)
	if err != nil {
		return nil, err
	}
	infos := make([]ProfileInfo, 0, len(managers))
	for i := range managers {
		infos = append(infos, ToProfileInfo(&managers[i]))
	}
	return infos, nil
}
