package license

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"atrium/internal/domain/company"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// Plan is the pricing template licenses are issued against. Amount is the
// monthly price; AmountAnnual the yearly price (zero when the plan has no
// annual option). TargetType restricts which company level may use the plan.
type Plan struct {
	id           uint
	name         string
	amount       decimal.Decimal
	amountAnnual decimal.Decimal
	targetType   company.Type
	status       PlanStatus
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlan creates a new plan.
func NewPlan(name string, amount, amountAnnual decimal.Decimal, targetType company.Type) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if amount.IsNegative() || amountAnnual.IsNegative() {
		return nil, fmt.Errorf("plan prices cannot be negative")
	}
	if !company.ValidTypes[targetType] {
		return nil, fmt.Errorf("invalid plan target type: %s", targetType)
	}

	now := time.Now().UTC()
	return &Plan{
		name:         name,
		amount:       amount,
		amountAnnual: amountAnnual,
		targetType:   targetType,
		status:       PlanStatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(
	id uint,
	name string,
	amount, amountAnnual decimal.Decimal,
	targetType company.Type,
	status PlanStatus,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if status != PlanStatusActive && status != PlanStatusInactive {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}
	if !company.ValidTypes[targetType] {
		return nil, fmt.Errorf("invalid plan target type: %s", targetType)
	}

	return &Plan{
		id:           id,
		name:         name,
		amount:       amount,
		amountAnnual: amountAnnual,
		targetType:   targetType,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) ID() uint {
	return p.id
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) Name() string {
	return p.name
}

// Amount returns the monthly price
func (p *Plan) Amount() decimal.Decimal {
	return p.amount
}

// AmountAnnual returns the yearly price, zero when not offered
func (p *Plan) AmountAnnual() decimal.Decimal {
	return p.amountAnnual
}

// TargetType returns the company type the plan is sold to
func (p *Plan) TargetType() company.Type {
	return p.targetType
}

func (p *Plan) Status() PlanStatus {
	return p.status
}

func (p *Plan) IsActive() bool {
	return p.status == PlanStatusActive
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

// BillableAmount resolves the price a license on this plan owes for the
// period: the annual price for annual recurrences when the plan offers one,
// else the monthly price, else the override captured on the license, else
// zero. The plan receiver may be nil (deleted plan rows).
func (p *Plan) BillableAmount(recurrence Recurrence, override *decimal.Decimal) decimal.Decimal {
	if p != nil {
		if recurrence == RecurrenceAnnual && p.amountAnnual.IsPositive() {
			return p.amountAnnual
		}
		if p.amount.IsPositive() {
			return p.amount
		}
	}
	if override != nil {
		return *override
	}
	return decimal.Zero
}
