package models

import (
	"time"

	"gorm.io/gorm"

	"atrium/internal/shared/constants"
)

// CompanyModel represents the database persistence model for companies
// This is the anti-corruption layer between domain and database
type CompanyModel struct {
	ID                    uint   `gorm:"primarykey"`
	Name                  string `gorm:"not null;size:255"`
	Email                 string `gorm:"size:255"`
	CompanyType           string `gorm:"not null;size:20;index:idx_company_type"`
	ParentCompanyID       *uint  `gorm:"index:idx_parent_company"`
	AccessBlockedByParent bool   `gorm:"not null;default:false"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (CompanyModel) TableName() string {
	return constants.TableCompanies
}
