package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/persistence/models"
)

// GormStrategyRepository implements StrategyRepository using GORM
type GormStrategyRepository struct {
	db *gorm.DB
}

// NewGormStrategyRepository creates a new GormStrategyRepository
func NewGormStrategyRepository(db *gorm.DB) *GormStrategyRepository {
	return &GormStrategyRepository{db: db}
}

// FindByID finds a strategy by its ID
func (r *GormStrategyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Strategy, error) {
	var model models.StrategyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all strategies, newest first
func (r *GormStrategyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Strategy, error) {
	var strategyModels []models.StrategyModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.StrategyModel{}), filter, "message ILIKE ?", 1,
		"scope", "created_at")

	if err := query.Find(&strategyModels).Error; err != nil {
		return nil, err
	}
	return strategiesToDomain(strategyModels), nil
}

// FindCompanyWide finds every company-scoped strategy, newest first
func (r *GormStrategyRepository) FindCompanyWide(ctx context.Context) ([]identity.Strategy, error) {
	var strategyModels []models.StrategyModel
	if err := r.db.WithContext(ctx).
		Where("scope = ?", identity.ScopeCompany).
		Order("created_at DESC").
		Find(&strategyModels).Error; err != nil {
		return nil, err
	}
	return strategiesToDomain(strategyModels), nil
}

// FindForTeam finds the strategies addressed to one team, newest first
func (r *GormStrategyRepository) FindForTeam(ctx context.Context, teamID uuid.UUID) ([]identity.Strategy, error) {
	var strategyModels []models.StrategyModel
	if err := r.db.WithContext(ctx).
		Where("scope = ? AND target_team_id = ?", identity.ScopeTeam, teamID).
		Order("created_at DESC").
		Find(&strategyModels).Error; err != nil {
		return nil, err
	}
	return strategiesToDomain(strategyModels), nil
}

// Save creates or updates a strategy
func (r *GormStrategyRepository) Save(ctx context.Context, strategy *identity.Strategy) error {
	model := models.StrategyModelFromDomain(strategy)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a strategy
func (r *GormStrategyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StrategyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func strategiesToDomain(strategyModels []models.StrategyModel) []identity.Strategy {
	strategies := make([]identity.Strategy, len(strategyModels))
	for i, model := range strategyModels {
		strategies[i] = *model.ToDomain()
	}
	return strategies
}

var _ identity.StrategyRepository = (*GormStrategyRepository)(nil)
