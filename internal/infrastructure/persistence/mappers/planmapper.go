package mappers

import (
	"fmt"

	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	"atrium/internal/infrastructure/persistence/models"
	"atrium/internal/shared/mapper"
)

type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*license.Plan, error)
	ToModel(entity *license.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*license.Plan, error)
}

type PlanMapperImpl struct{}

func NewPlanMapper() PlanMapper {
	return &PlanMapperImpl{}
}

func (m *PlanMapperImpl) ToEntity(model *models.PlanModel) (*license.Plan, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := license.ReconstructPlan(
		model.ID,
		model.Name,
		model.Amount,
		model.AmountAnnual,
		company.Type(model.TargetType),
		license.PlanStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}

	return entity, nil
}

func (m *PlanMapperImpl) ToModel(entity *license.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PlanModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Amount:       entity.Amount(),
		AmountAnnual: entity.AmountAnnual(),
		TargetType:   entity.TargetType().String(),
		Status:       string(entity.Status()),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *PlanMapperImpl) ToEntities(planModels []*models.PlanModel) ([]*license.Plan, error) {
	return mapper.MapSlicePtrWithID(planModels, m.ToEntity, func(mo *models.PlanModel) uint {
		return mo.ID
	})
}
