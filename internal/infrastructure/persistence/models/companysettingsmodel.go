package models

import (
	"time"

	"gorm.io/datatypes"

	"atrium/internal/shared/constants"
)

// CompanySettingsModel represents the database persistence model for
// per-company settings. Metadata carries the settings fields the licensing
// domain does not model.
type CompanySettingsModel struct {
	ID                 uint `gorm:"primarykey"`
	CompanyID          uint `gorm:"uniqueIndex;not null"`
	LicenseWarningDays *int
	Metadata           datatypes.JSON
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (CompanySettingsModel) TableName() string {
	return constants.TableCompaniesSettings
}
