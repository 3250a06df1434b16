package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"atrium/internal/shared/constants"
)

// PlanModel represents the database persistence model for plans
type PlanModel struct {
	ID           uint            `gorm:"primarykey"`
	Name         string          `gorm:"not null;size:255"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	AmountAnnual decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TargetType   string          `gorm:"not null;size:20;index:idx_plan_target_type"`
	Status       string          `gorm:"not null;size:20;default:active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}
