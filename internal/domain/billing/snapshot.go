package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"atrium/internal/shared/biztime"
)

// PartnerBillingSnapshot is the per-partner, per-period aggregate of amounts
// owed to the platform. The (partnerID, periodStart, periodEnd) triple is the
// natural key; recomputation upserts on it, so a period never has more than
// one row per partner.
type PartnerBillingSnapshot struct {
	id                  uint
	partnerID           uint
	periodStart         biztime.DateOnly
	periodEnd           biztime.DateOnly
	childCompaniesCount int
	activeLicensesCount int
	totalAmountDue      decimal.Decimal
	createdAt           time.Time
	updatedAt           time.Time
}

// NewPartnerBillingSnapshot creates a snapshot for one partner and period.
// The total is rounded to 2 decimal places.
func NewPartnerBillingSnapshot(
	partnerID uint,
	periodStart, periodEnd biztime.DateOnly,
	childCompaniesCount, activeLicensesCount int,
	totalAmountDue decimal.Decimal,
) (*PartnerBillingSnapshot, error) {
	if partnerID == 0 {
		return nil, fmt.Errorf("partner ID is required")
	}
	if periodStart.IsZero() || periodEnd.IsZero() {
		return nil, fmt.Errorf("billing period is required")
	}
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("period end must not be before period start")
	}
	if childCompaniesCount < 0 || activeLicensesCount < 0 {
		return nil, fmt.Errorf("counts cannot be negative")
	}
	if totalAmountDue.IsNegative() {
		return nil, fmt.Errorf("total amount due cannot be negative")
	}

	now := time.Now().UTC()
	return &PartnerBillingSnapshot{
		partnerID:           partnerID,
		periodStart:         periodStart,
		periodEnd:           periodEnd,
		childCompaniesCount: childCompaniesCount,
		activeLicensesCount: activeLicensesCount,
		totalAmountDue:      totalAmountDue.Round(2),
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

// ReconstructPartnerBillingSnapshot reconstructs a snapshot from persistence.
func ReconstructPartnerBillingSnapshot(
	id, partnerID uint,
	periodStart, periodEnd biztime.DateOnly,
	childCompaniesCount, activeLicensesCount int,
	totalAmountDue decimal.Decimal,
	createdAt, updatedAt time.Time,
) (*PartnerBillingSnapshot, error) {
	if id == 0 {
		return nil, fmt.Errorf("snapshot ID cannot be zero")
	}
	if partnerID == 0 {
		return nil, fmt.Errorf("partner ID is required")
	}
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("period end must not be before period start")
	}

	return &PartnerBillingSnapshot{
		id:                  id,
		partnerID:           partnerID,
		periodStart:         periodStart,
		periodEnd:           periodEnd,
		childCompaniesCount: childCompaniesCount,
		activeLicensesCount: activeLicensesCount,
		totalAmountDue:      totalAmountDue,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (s *PartnerBillingSnapshot) ID() uint {
	return s.id
}

func (s *PartnerBillingSnapshot) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("snapshot ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("snapshot ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *PartnerBillingSnapshot) PartnerID() uint {
	return s.partnerID
}

func (s *PartnerBillingSnapshot) PeriodStart() biztime.DateOnly {
	return s.periodStart
}

func (s *PartnerBillingSnapshot) PeriodEnd() biztime.DateOnly {
	return s.periodEnd
}

func (s *PartnerBillingSnapshot) ChildCompaniesCount() int {
	return s.childCompaniesCount
}

func (s *PartnerBillingSnapshot) ActiveLicensesCount() int {
	return s.activeLicensesCount
}

func (s *PartnerBillingSnapshot) TotalAmountDue() decimal.Decimal {
	return s.totalAmountDue
}

func (s *PartnerBillingSnapshot) CreatedAt() time.Time {
	return s.createdAt
}

func (s *PartnerBillingSnapshot) UpdatedAt() time.Time {
	return s.updatedAt
}
