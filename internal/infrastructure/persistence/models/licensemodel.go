package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"atrium/internal/shared/constants"
)

// LicenseModel represents the database persistence model for licenses
// This is the anti-corruption layer between domain and database
type LicenseModel struct {
	ID         uint      `gorm:"primarykey"`
	CompanyID  uint      `gorm:"not null;index:idx_company_license"`
	PlanID     uint      `gorm:"not null;index:idx_plan_license"`
	Status     string    `gorm:"not null;size:20;index:idx_license_status"`
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time `gorm:"not null;index:idx_license_end_date"`
	Recurrence string    `gorm:"not null;size:10"`
	Amount     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Metadata   datatypes.JSON
	Version    int `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (LicenseModel) TableName() string {
	return constants.TableLicenses
}

// BeforeCreate hook for GORM
func (l *LicenseModel) BeforeCreate(tx *gorm.DB) error {
	if l.Version == 0 {
		l.Version = 1
	}
	return nil
}
