package license

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"atrium/internal/shared/biztime"
)

// Status is the lifecycle state of a license. A canceled license is simply
// absent from the table; only active and overdue rows exist.
type Status string

const (
	StatusActive  Status = "active"
	StatusOverdue Status = "overdue"
)

// ValidStatuses enumerates the accepted license statuses.
var ValidStatuses = map[Status]bool{
	StatusActive:  true,
	StatusOverdue: true,
}

func (s Status) String() string {
	return string(s)
}

// Recurrence selects which plan price applies to the license.
// The wire values are inherited from the billing provider integration.
type Recurrence string

const (
	RecurrenceMonthly Recurrence = "MENSAL"
	RecurrenceAnnual  Recurrence = "ANUAL"
)

// ValidRecurrences enumerates the accepted recurrence values.
var ValidRecurrences = map[Recurrence]bool{
	RecurrenceMonthly: true,
	RecurrenceAnnual:  true,
}

func (r Recurrence) String() string {
	return string(r)
}

// License is the licensing aggregate root. Expiry comparisons are date-only:
// endDate is truncated to its UTC calendar day before any comparison.
type License struct {
	id         uint
	companyID  uint
	planID     uint
	status     Status
	startDate  time.Time
	endDate    time.Time
	recurrence Recurrence
	amount     *decimal.Decimal
	metadata   map[string]interface{}
	version    int
	createdAt  time.Time
	updatedAt  time.Time
}

// NewLicense creates a new active license.
func NewLicense(companyID, planID uint, startDate, endDate time.Time, recurrence Recurrence, amount *decimal.Decimal) (*License, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}
	if !ValidRecurrences[recurrence] {
		return nil, fmt.Errorf("invalid recurrence: %s", recurrence)
	}
	if amount != nil && amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	now := time.Now().UTC()
	return &License{
		companyID:  companyID,
		planID:     planID,
		status:     StatusActive,
		startDate:  startDate,
		endDate:    endDate,
		recurrence: recurrence,
		amount:     amount,
		metadata:   make(map[string]interface{}),
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructLicense reconstructs a license from persistence.
func ReconstructLicense(
	id, companyID, planID uint,
	status Status,
	startDate, endDate time.Time,
	recurrence Recurrence,
	amount *decimal.Decimal,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*License, error) {
	if id == 0 {
		return nil, fmt.Errorf("license ID cannot be zero")
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !ValidStatuses[status] {
		return nil, fmt.Errorf("invalid license status: %s", status)
	}
	if !ValidRecurrences[recurrence] {
		return nil, fmt.Errorf("invalid recurrence: %s", recurrence)
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &License{
		id:         id,
		companyID:  companyID,
		planID:     planID,
		status:     status,
		startDate:  startDate,
		endDate:    endDate,
		recurrence: recurrence,
		amount:     amount,
		metadata:   metadata,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

// ID returns the license ID
func (l *License) ID() uint {
	return l.id
}

// SetID sets the license ID (only for persistence layer use)
func (l *License) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("license ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("license ID cannot be zero")
	}
	l.id = id
	return nil
}

// CompanyID returns the owning company ID
func (l *License) CompanyID() uint {
	return l.companyID
}

// PlanID returns the plan the license was issued against
func (l *License) PlanID() uint {
	return l.planID
}

// Status returns the license status
func (l *License) Status() Status {
	return l.status
}

// StartDate returns when the license period started
func (l *License) StartDate() time.Time {
	return l.startDate
}

// EndDate returns when the license period ends
func (l *License) EndDate() time.Time {
	return l.endDate
}

// Recurrence returns the billing recurrence
func (l *License) Recurrence() Recurrence {
	return l.recurrence
}

// Amount returns the price override captured at issuance, if any
func (l *License) Amount() *decimal.Decimal {
	return l.amount
}

// Metadata returns the license metadata
func (l *License) Metadata() map[string]interface{} {
	return l.metadata
}

// Version returns the aggregate version for optimistic locking
func (l *License) Version() int {
	return l.version
}

func (l *License) CreatedAt() time.Time {
	return l.createdAt
}

func (l *License) UpdatedAt() time.Time {
	return l.updatedAt
}

// ExpiresOn returns the UTC calendar day the license expires.
func (l *License) ExpiresOn() biztime.DateOnly {
	return biztime.DateOf(l.endDate)
}

// IsExpired reports whether the license end date has passed relative to the
// given calendar day. A license expiring today is still valid.
func (l *License) IsExpired(today biztime.DateOnly) bool {
	return l.ExpiresOn().Before(today)
}

// DaysUntilExpiry returns whole days from today until the expiry day.
// Zero means the license expires today; negative means already expired.
func (l *License) DaysUntilExpiry(today biztime.DateOnly) int {
	return today.DaysUntil(l.ExpiresOn())
}

// MarkOverdue transitions an active license to overdue. The nightly sweep is
// the only caller; the reverse transition requires an explicit renewal.
func (l *License) MarkOverdue() error {
	if l.status == StatusOverdue {
		return nil
	}
	if l.status != StatusActive {
		return fmt.Errorf("cannot mark license as overdue with status %s", l.status)
	}

	l.status = StatusOverdue
	l.updatedAt = time.Now().UTC()
	l.version++
	return nil
}

// Renew extends the license to a new end date and reactivates it.
func (l *License) Renew(endDate time.Time) error {
	if endDate.Before(l.endDate) {
		return fmt.Errorf("new end date must be after current end date")
	}

	l.endDate = endDate
	l.status = StatusActive
	l.updatedAt = time.Now().UTC()
	l.version++
	return nil
}
