package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/persistence/models"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID finds a profile by its ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all profiles matching the filter
func (r *GormProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Profile, error) {
	var profileModels []models.ProfileModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ProfileModel{}), filter, "username ILIKE ? OR display_name ILIKE ?", 2,
		"username", "display_name", "role", "created_at")

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}
	return profilesToDomain(profileModels), nil
}

// FindByUsername finds a profile by its login username
func (r *GormProfileRepository) FindByUsername(ctx context.Context, username string) (*identity.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByManager finds every profile reporting to the given manager
func (r *GormProfileRepository) FindByManager(ctx context.Context, managerID uuid.UUID) ([]identity.Profile, error) {
	var profileModels []models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("display_name ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}
	return profilesToDomain(profileModels), nil
}

// FindByRole finds every profile holding the given role
func (r *GormProfileRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.Profile, error) {
	var profileModels []models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("display_name ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}
	return profilesToDomain(profileModels), nil
}

// FindByIDs finds multiple profiles by their IDs
func (r *GormProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Profile, error) {
	if len(ids) == 0 {
		return []identity.Profile{}, nil
	}
	var profileModels []models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&profileModels).Error; err != nil {
		return nil, err
	}
	return profilesToDomain(profileModels), nil
}

// Save creates or updates a profile
func (r *GormProfileRepository) Save(ctx context.Context, profile *identity.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a profile
func (r *GormProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProfileModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts profiles matching the filter
func (r *GormProfileRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProfileModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func profilesToDomain(profileModels []models.ProfileModel) []identity.Profile {
	profiles := make([]identity.Profile, len(profileModels))
	for i, model := range profileModels {
		profiles[i] = *model.ToDomain()
	}
	return profiles
}

var _ identity.ProfileRepository = (*GormProfileRepository)(nil)
