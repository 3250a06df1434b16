package billing

import (
	"context"

	"atrium/internal/shared/biztime"
)

type SnapshotRepository interface {
	// Upsert writes the snapshot, replacing any existing row with the same
	// (partnerID, periodStart, periodEnd) key in a single atomic statement.
	Upsert(ctx context.Context, snapshot *PartnerBillingSnapshot) error
	GetByPartnerAndPeriod(ctx context.Context, partnerID uint, periodStart, periodEnd biztime.DateOnly) (*PartnerBillingSnapshot, error)
	ListByPeriod(ctx context.Context, periodStart, periodEnd biztime.DateOnly) ([]*PartnerBillingSnapshot, error)
}
