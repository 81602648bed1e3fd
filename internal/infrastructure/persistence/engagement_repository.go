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

// GormEngagementRepository implements EngagementRepository using GORM
type GormEngagementRepository struct {
	db *gorm.DB
}

// NewGormEngagementRepository creates a new GormEngagementRepository
func NewGormEngagementRepository(db *gorm.DB) *GormEngagementRepository {
	return &GormEngagementRepository{db: db}
}

// FindByID finds an engagement by its ID
func (r *GormEngagementRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Engagement, error) {
	var model models.EngagementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all engagements matching the filter
func (r *GormEngagementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Engagement, error) {
	var engagementModels []models.EngagementModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.EngagementModel{}), filter, "", 0,
		"status", "segment", "fund_amount", "assigned_at", "created_at")
	query = applyEngagementFilters(query, filter)

	if err := query.Find(&engagementModels).Error; err != nil {
		return nil, err
	}
	return engagementsToDomain(engagementModels), nil
}

// FindByAgent finds the engagements on one agent's desk
func (r *GormEngagementRepository) FindByAgent(ctx context.Context, agentID uuid.UUID, filter shared.Filter) ([]crm.Engagement, error) {
	return r.FindByAgents(ctx, []uuid.UUID{agentID}, filter)
}

// FindByAgents finds the engagements across a set of agents
func (r *GormEngagementRepository) FindByAgents(ctx context.Context, agentIDs []uuid.UUID, filter shared.Filter) ([]crm.Engagement, error) {
	if len(agentIDs) == 0 {
		return []crm.Engagement{}, nil
	}
	var engagementModels []models.EngagementModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.EngagementModel{}).Where("agent_id IN ?", agentIDs),
		filter, "", 0,
		"status", "segment", "fund_amount", "assigned_at", "created_at")
	query = applyEngagementFilters(query, filter)

	if err := query.Find(&engagementModels).Error; err != nil {
		return nil, err
	}
	return engagementsToDomain(engagementModels), nil
}

// FindByClient finds every engagement a client has ever had
func (r *GormEngagementRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]crm.Engagement, error) {
	var engagementModels []models.EngagementModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("assigned_at DESC").
		Find(&engagementModels).Error; err != nil {
		return nil, err
	}
	return engagementsToDomain(engagementModels), nil
}

// CountByAgent counts the engagements on one agent's desk
func (r *GormEngagementRepository) CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EngagementModel{}).
		Where("agent_id = ?", agentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an engagement
func (r *GormEngagementRepository) Save(ctx context.Context, engagement *crm.Engagement) error {
	model := models.EngagementModelFromDomain(engagement)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an engagement
func (r *GormEngagementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EngagementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts engagements matching the filter
func (r *GormEngagementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyEngagementFilters(r.db.WithContext(ctx).Model(&models.EngagementModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyEngagementFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "segment":
			query = query.Where("segment = ?", value)
		case "state":
			query = query.Where("state = ?", value)
		}
	}
	return query
}

func engagementsToDomain(engagementModels []models.EngagementModel) []crm.Engagement {
	engagements := make([]crm.Engagement, len(engagementModels))
	for i, model := range engagementModels {
		engagements[i] = *model.ToDomain()
	}
	return engagements
}

var _ crm.EngagementRepository = (*GormEngagementRepository)(nil)
