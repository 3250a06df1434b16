package mappers

import (
	"fmt"

	"atrium/internal/domain/company"
	"atrium/internal/infrastructure/persistence/models"
	"atrium/internal/shared/mapper"
)

type CompanyMapper interface {
	ToEntity(model *models.CompanyModel) (*company.Company, error)
	ToModel(entity *company.Company) (*models.CompanyModel, error)
	ToEntities(models []*models.CompanyModel) ([]*company.Company, error)
}

type CompanyMapperImpl struct{}

func NewCompanyMapper() CompanyMapper {
	return &CompanyMapperImpl{}
}

func (m *CompanyMapperImpl) ToEntity(model *models.CompanyModel) (*company.Company, error) {
	if model == nil {
		return nil, nil
	}

	companyType := company.Type(model.CompanyType)
	if !company.ValidTypes[companyType] {
		return nil, fmt.Errorf("invalid company type: %s", model.CompanyType)
	}

	entity, err := company.ReconstructCompany(
		model.ID,
		model.Name,
		model.Email,
		companyType,
		model.ParentCompanyID,
		model.AccessBlockedByParent,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct company entity: %w", err)
	}

	return entity, nil
}

func (m *CompanyMapperImpl) ToModel(entity *company.Company) (*models.CompanyModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.CompanyModel{
		ID:                    entity.ID(),
		Name:                  entity.Name(),
		Email:                 entity.Email(),
		CompanyType:           entity.CompanyType().String(),
		ParentCompanyID:       entity.ParentCompanyID(),
		AccessBlockedByParent: entity.AccessBlockedByParent(),
		CreatedAt:             entity.CreatedAt(),
		UpdatedAt:             entity.UpdatedAt(),
	}, nil
}

func (m *CompanyMapperImpl) ToEntities(companyModels []*models.CompanyModel) ([]*company.Company, error) {
	return mapper.MapSlicePtrWithID(companyModels, m.ToEntity, func(mo *models.CompanyModel) uint {
		return mo.ID
	})
}
