package usecases

import (
	"context"
	"fmt"
	"time"

	"atrium/internal/domain/license"
	"atrium/internal/shared/biztime"
	"atrium/internal/shared/logger"
)

// MarkOverdueLicensesUseCase handles the nightly overdue sweep. Any active
// license whose end date (UTC calendar day) has passed is flipped to overdue.
// The job is idempotent; rerunning it after a partial failure only touches
// the licenses still active.
type MarkOverdueLicensesUseCase struct {
	licenseRepo license.LicenseRepository
	logger      logger.Interface
	now         func() time.Time
}

// NewMarkOverdueLicensesUseCase creates a new MarkOverdueLicensesUseCase
func NewMarkOverdueLicensesUseCase(
	licenseRepo license.LicenseRepository,
	logger logger.Interface,
) *MarkOverdueLicensesUseCase {
	return &MarkOverdueLicensesUseCase{
		licenseRepo: licenseRepo,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

// Execute finds and marks all expired licenses.
// Returns the number of licenses marked overdue.
func (uc *MarkOverdueLicensesUseCase) Execute(ctx context.Context) (int, error) {
	// A license expiring today is still valid, so the cutoff is today's
	// midnight and the query is strictly-before.
	candidates, err := uc.licenseRepo.FindOverdueCandidates(ctx, biztime.StartOfDayUTC(uc.now()))
	if err != nil {
		return 0, fmt.Errorf("failed to find overdue candidates: %w", err)
	}

	if len(candidates) == 0 {
		return 0, nil
	}

	uc.logger.Infow("found expired licenses to process", "count", len(candidates))

	markedCount := 0
	for _, lic := range candidates {
		if err := lic.MarkOverdue(); err != nil {
			uc.logger.Warnw("failed to mark license as overdue",
				"license_id", lic.ID(),
				"company_id", lic.CompanyID(),
				"current_status", lic.Status().String(),
				"error", err,
			)
			continue
		}

		if err := uc.licenseRepo.Update(ctx, lic); err != nil {
			uc.logger.Errorw("failed to update overdue license",
				"license_id", lic.ID(),
				"company_id", lic.CompanyID(),
				"error", err,
			)
			continue
		}

		markedCount++
		uc.logger.Debugw("license marked as overdue",
			"license_id", lic.ID(),
			"company_id", lic.CompanyID(),
			"end_date", lic.ExpiresOn().String(),
		)
	}

	return markedCount, nil
}
