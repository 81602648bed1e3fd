package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/investkaro/backend/internal/domain/crm"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/persistence/models"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Client, error) {
	var clientModels []models.ClientModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ClientModel{}), filter,
		"name ILIKE ? OR mobile ILIKE ? OR email ILIKE ? OR city ILIKE ?", 4,
		"name", "mobile", "city", "created_at")

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}
	return clientsToDomain(clientModels), nil
}

// FindByMobile finds a client by its normalized mobile number
func (r *GormClientRepository) FindByMobile(ctx context.Context, mobile string) (*crm.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("mobile = ?", mobile).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnassigned finds clients still sitting in the pool
func (r *GormClientRepository) FindUnassigned(ctx context.Context, filter shared.Filter) ([]crm.Client, error) {
	var clientModels []models.ClientModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("is_assigned = ?", false),
		filter, "name ILIKE ? OR mobile ILIKE ?", 2,
		"name", "mobile", "city", "created_at")

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}
	return clientsToDomain(clientModels), nil
}

// FindByIDs finds multiple clients by their IDs
func (r *GormClientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]crm.Client, error) {
	if len(ids) == 0 {
		return []crm.Client{}, nil
	}
	var clientModels []models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&clientModels).Error; err != nil {
		return nil, err
	}
	return clientsToDomain(clientModels), nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *crm.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ClientModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR mobile ILIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func clientsToDomain(clientModels []models.ClientModel) []crm.Client {
	clients := make([]crm.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients
}

var _ crm.ClientRepository = (*GormClientRepository)(nil)
