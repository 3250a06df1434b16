package models

import (
	"time"

	"github.com/shopspring/decimal"

	"atrium/internal/shared/constants"
)

// PartnerBillingSnapshotModel represents the database persistence model for
// partner billing snapshots. The unique index over partner and period is what
// makes the recompute upsert idempotent.
type PartnerBillingSnapshotModel struct {
	ID                  uint            `gorm:"primarykey"`
	PartnerID           uint            `gorm:"not null;uniqueIndex:idx_partner_period,priority:1"`
	PeriodStart         time.Time       `gorm:"type:date;not null;uniqueIndex:idx_partner_period,priority:2"`
	PeriodEnd           time.Time       `gorm:"type:date;not null;uniqueIndex:idx_partner_period,priority:3"`
	ChildCompaniesCount int             `gorm:"not null;default:0"`
	ActiveLicensesCount int             `gorm:"not null;default:0"`
	TotalAmountDue      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for GORM
func (PartnerBillingSnapshotModel) TableName() string {
	return constants.TablePartnerBillingSnapshots
}
