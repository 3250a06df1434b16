package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"atrium/internal/domain/billing"
	"atrium/internal/infrastructure/persistence/mappers"
	"atrium/internal/infrastructure/persistence/models"
	"atrium/internal/shared/biztime"
	shareddb "atrium/internal/shared/db"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

type PartnerBillingSnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PartnerBillingSnapshotMapper
	logger logger.Interface
}

func NewPartnerBillingSnapshotRepository(
	db *gorm.DB,
	logger logger.Interface,
) billing.SnapshotRepository {
	return &PartnerBillingSnapshotRepositoryImpl{
		db:     db,
		mapper: mappers.NewPartnerBillingSnapshotMapper(),
		logger: logger,
	}
}

func (r *PartnerBillingSnapshotRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db)
}

// Upsert writes the snapshot in a single INSERT ... ON CONFLICT statement on
// the (partner_id, period_start, period_end) unique key, so concurrent
// recomputes for the same period cannot produce duplicate rows.
func (r *PartnerBillingSnapshotRepositoryImpl) Upsert(ctx context.Context, snapshot *billing.PartnerBillingSnapshot) error {
	model, err := r.mapper.ToModel(snapshot)
	if err != nil {
		return fmt.Errorf("failed to map snapshot entity: %w", err)
	}

	if err := r.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "partner_id"},
			{Name: "period_start"},
			{Name: "period_end"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"child_companies_count",
			"active_licenses_count",
			"total_amount_due",
			"updated_at",
		}),
	}).Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert billing snapshot",
			"partner_id", model.PartnerID,
			"period_start", model.PeriodStart,
			"error", err,
		)
		return fmt.Errorf("failed to upsert billing snapshot: %w", err)
	}

	if snapshot.ID() == 0 && model.ID != 0 {
		if err := snapshot.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set snapshot ID: %w", err)
		}
	}
	return nil
}

func (r *PartnerBillingSnapshotRepositoryImpl) GetByPartnerAndPeriod(ctx context.Context, partnerID uint, periodStart, periodEnd biztime.DateOnly) (*billing.PartnerBillingSnapshot, error) {
	var model models.PartnerBillingSnapshotModel

	if err := r.conn(ctx).
		Where("partner_id = ? AND period_start = ? AND period_end = ?", partnerID, periodStart.Time(), periodEnd.Time()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("billing snapshot not found")
		}
		r.logger.Errorw("failed to get billing snapshot", "partner_id", partnerID, "error", err)
		return nil, fmt.Errorf("failed to get billing snapshot: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PartnerBillingSnapshotRepositoryImpl) ListByPeriod(ctx context.Context, periodStart, periodEnd biztime.DateOnly) ([]*billing.PartnerBillingSnapshot, error) {
	var snapshotModels []*models.PartnerBillingSnapshotModel

	if err := r.conn(ctx).
		Where("period_start = ? AND period_end = ?", periodStart.Time(), periodEnd.Time()).
		Order("partner_id ASC").
		Find(&snapshotModels).Error; err != nil {
		r.logger.Errorw("failed to list billing snapshots", "period_start", periodStart.String(), "error", err)
		return nil, fmt.Errorf("failed to list billing snapshots: %w", err)
	}

	return r.mapper.ToEntities(snapshotModels)
}
