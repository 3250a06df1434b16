package mappers

import (
	"atrium/internal/domain/company"
	"atrium/internal/infrastructure/persistence/models"
)

type CompanySettingsMapper interface {
	ToEntity(model *models.CompanySettingsModel) *company.Settings
}

type CompanySettingsMapperImpl struct{}

func NewCompanySettingsMapper() CompanySettingsMapper {
	return &CompanySettingsMapperImpl{}
}

func (m *CompanySettingsMapperImpl) ToEntity(model *models.CompanySettingsModel) *company.Settings {
	if model == nil {
		return nil
	}
	return company.ReconstructSettings(
		model.CompanyID,
		model.LicenseWarningDays,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
