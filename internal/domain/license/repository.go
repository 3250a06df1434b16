package license

import (
	"context"
	"time"
)

type LicenseRepository interface {
	Create(ctx context.Context, license *License) error
	GetByID(ctx context.Context, id uint) (*License, error)
	GetActiveByCompanyID(ctx context.Context, companyID uint) ([]*License, error)
	Update(ctx context.Context, license *License) error

	// FindOverdueCandidates returns active licenses whose end date falls
	// strictly before the cutoff instant (pass UTC midnight of today to get
	// date-only semantics).
	FindOverdueCandidates(ctx context.Context, cutoff time.Time) ([]*License, error)
	// FindAllActive returns every active license. The warning sweep filters
	// the result per-company because warning windows vary by company.
	FindAllActive(ctx context.Context) ([]*License, error)
	// FindByCompanyIDs returns licenses of the given companies filtered by
	// status, keyed by company ID.
	FindByCompanyIDs(ctx context.Context, companyIDs []uint, statuses []Status) (map[uint][]*License, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	// GetByIDs returns plans keyed by ID; missing plans are absent from the map.
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Plan, error)
	GetAllActive(ctx context.Context) ([]*Plan, error)
}
