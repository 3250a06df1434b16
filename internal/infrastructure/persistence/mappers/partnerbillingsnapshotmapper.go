package mappers

import (
	"fmt"

	"atrium/internal/domain/billing"
	"atrium/internal/infrastructure/persistence/models"
	"atrium/internal/shared/biztime"
	"atrium/internal/shared/mapper"
)

type PartnerBillingSnapshotMapper interface {
	ToEntity(model *models.PartnerBillingSnapshotModel) (*billing.PartnerBillingSnapshot, error)
	ToModel(entity *billing.PartnerBillingSnapshot) (*models.PartnerBillingSnapshotModel, error)
	ToEntities(models []*models.PartnerBillingSnapshotModel) ([]*billing.PartnerBillingSnapshot, error)
}

type PartnerBillingSnapshotMapperImpl struct{}

func NewPartnerBillingSnapshotMapper() PartnerBillingSnapshotMapper {
	return &PartnerBillingSnapshotMapperImpl{}
}

func (m *PartnerBillingSnapshotMapperImpl) ToEntity(model *models.PartnerBillingSnapshotModel) (*billing.PartnerBillingSnapshot, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructPartnerBillingSnapshot(
		model.ID,
		model.PartnerID,
		biztime.DateOf(model.PeriodStart),
		biztime.DateOf(model.PeriodEnd),
		model.ChildCompaniesCount,
		model.ActiveLicensesCount,
		model.TotalAmountDue,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct snapshot entity: %w", err)
	}

	return entity, nil
}

func (m *PartnerBillingSnapshotMapperImpl) ToModel(entity *billing.PartnerBillingSnapshot) (*models.PartnerBillingSnapshotModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PartnerBillingSnapshotModel{
		ID:                  entity.ID(),
		PartnerID:           entity.PartnerID(),
		PeriodStart:         entity.PeriodStart().Time(),
		PeriodEnd:           entity.PeriodEnd().Time(),
		ChildCompaniesCount: entity.ChildCompaniesCount(),
		ActiveLicensesCount: entity.ActiveLicensesCount(),
		TotalAmountDue:      entity.TotalAmountDue(),
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}, nil
}

func (m *PartnerBillingSnapshotMapperImpl) ToEntities(snapshotModels []*models.PartnerBillingSnapshotModel) ([]*billing.PartnerBillingSnapshot, error) {
	return mapper.MapSlicePtrWithID(snapshotModels, m.ToEntity, func(mo *models.PartnerBillingSnapshotModel) uint {
		return mo.ID
	})
}
