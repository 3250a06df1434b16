package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"atrium/internal/domain/license"
	"atrium/internal/infrastructure/persistence/mappers"
	"atrium/internal/infrastructure/persistence/models"
	shareddb "atrium/internal/shared/db"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(
	db *gorm.DB,
	logger logger.Interface,
) license.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db)
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, planEntity *license.Plan) error {
	model, err := r.mapper.ToModel(planEntity)
	if err != nil {
		return fmt.Errorf("failed to map plan entity: %w", err)
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan in database", "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := planEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set plan ID: %w", err)
	}

	r.logger.Infow("plan created", "id", model.ID, "name", model.Name)
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*license.Plan, error) {
	var model models.PlanModel

	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		r.logger.Errorw("failed to get plan by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*license.Plan, error) {
	if len(ids) == 0 {
		return map[uint]*license.Plan{}, nil
	}

	var planModels []*models.PlanModel
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to get plans by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}

	entities, err := r.mapper.ToEntities(planModels)
	if err != nil {
		return nil, fmt.Errorf("failed to map plans: %w", err)
	}

	result := make(map[uint]*license.Plan, len(entities))
	for _, entity := range entities {
		result[entity.ID()] = entity
	}
	return result, nil
}

func (r *PlanRepositoryImpl) GetAllActive(ctx context.Context) ([]*license.Plan, error) {
	var planModels []*models.PlanModel

	if err := r.conn(ctx).
		Where("status = ?", string(license.PlanStatusActive)).
		Order("amount ASC").
		Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to get active plans", "error", err)
		return nil, fmt.Errorf("failed to get active plans: %w", err)
	}

	return r.mapper.ToEntities(planModels)
}
