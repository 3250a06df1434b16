package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"atrium/internal/domain/license"
	"atrium/internal/infrastructure/persistence/models"
	"atrium/internal/shared/mapper"
)

type LicenseMapper interface {
	ToEntity(model *models.LicenseModel) (*license.License, error)
	ToModel(entity *license.License) (*models.LicenseModel, error)
	ToEntities(models []*models.LicenseModel) ([]*license.License, error)
}

type LicenseMapperImpl struct{}

func NewLicenseMapper() LicenseMapper {
	return &LicenseMapperImpl{}
}

func (m *LicenseMapperImpl) ToEntity(model *models.LicenseModel) (*license.License, error) {
	if model == nil {
		return nil, nil
	}

	status := license.Status(model.Status)
	if !license.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid license status: %s", model.Status)
	}

	recurrence := license.Recurrence(model.Recurrence)
	if !license.ValidRecurrences[recurrence] {
		return nil, fmt.Errorf("invalid license recurrence: %s", model.Recurrence)
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entity, err := license.ReconstructLicense(
		model.ID,
		model.CompanyID,
		model.PlanID,
		status,
		model.StartDate,
		model.EndDate,
		recurrence,
		model.Amount,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct license entity: %w", err)
	}

	return entity, nil
}

func (m *LicenseMapperImpl) ToModel(entity *license.License) (*models.LicenseModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadataJSON datatypes.JSON
	if metadata := entity.Metadata(); len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = data
	}

	return &models.LicenseModel{
		ID:         entity.ID(),
		CompanyID:  entity.CompanyID(),
		PlanID:     entity.PlanID(),
		Status:     entity.Status().String(),
		StartDate:  entity.StartDate(),
		EndDate:    entity.EndDate(),
		Recurrence: entity.Recurrence().String(),
		Amount:     entity.Amount(),
		Metadata:   metadataJSON,
		Version:    entity.Version(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

func (m *LicenseMapperImpl) ToEntities(licenseModels []*models.LicenseModel) ([]*license.License, error) {
	return mapper.MapSlicePtrWithID(licenseModels, m.ToEntity, func(mo *models.LicenseModel) uint {
		return mo.ID
	})
}
