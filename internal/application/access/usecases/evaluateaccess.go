package usecases

import (
	"context"
	"fmt"
	"time"

	"atrium/internal/domain/access"
	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	"atrium/internal/shared/biztime"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

// EvaluateCompanyAccessUseCase resolves whether a company may use the system.
// The evaluation walks the tenant hierarchy: the platform owner is always
// allowed, a direct company under a whitelabel partner inherits the partner's
// license state (plus the partner's manual block flag), and everyone else is
// judged by their own licenses.
type EvaluateCompanyAccessUseCase struct {
	companyRepo       company.Repository
	licenseRepo       license.LicenseRepository
	platformCompanyID uint
	logger            logger.Interface
	now               func() time.Time
}

// NewEvaluateCompanyAccessUseCase creates a new EvaluateCompanyAccessUseCase
func NewEvaluateCompanyAccessUseCase(
	companyRepo company.Repository,
	licenseRepo license.LicenseRepository,
	platformCompanyID uint,
	logger logger.Interface,
) *EvaluateCompanyAccessUseCase {
	return &EvaluateCompanyAccessUseCase{
		companyRepo:       companyRepo,
		licenseRepo:       licenseRepo,
		platformCompanyID: platformCompanyID,
		logger:            logger,
		now:               biztime.NowUTC,
	}
}

// Execute evaluates access for the given company. A denial is a normal
// outcome returned in the decision; errors are reserved for lookup failures.
func (uc *EvaluateCompanyAccessUseCase) Execute(ctx context.Context, companyID uint) (access.Decision, error) {
	if companyID == uc.platformCompanyID {
		return access.Granted(), nil
	}

	comp, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return access.Denied(access.ReasonBlockedPlatform), apperrors.NewNotFoundError("company not found")
		}
		return access.Decision{}, fmt.Errorf("failed to get company: %w", err)
	}

	today := biztime.DateOf(uc.now())

	if comp.IsDirect() {
		// The manual block wins over any license state.
		if comp.AccessBlockedByParent() {
			uc.logger.Debugw("access denied by parent block", "company_id", companyID)
			return access.Denied(access.ReasonBlockedPartner), nil
		}
		if comp.HasParent() {
			return uc.evaluateLicenses(ctx, *comp.ParentCompanyID(), today)
		}
	}

	return uc.evaluateLicenses(ctx, companyID, today)
}

// evaluateLicenses checks whether the license-bearing company holds at least
// one license whose end date has not passed. Status is not consulted here;
// the date comparison is authoritative so a stale overdue flag cannot lock
// out a renewed company, and a stale active flag cannot keep one in.
func (uc *EvaluateCompanyAccessUseCase) evaluateLicenses(ctx context.Context, companyID uint, today biztime.DateOnly) (access.Decision, error) {
	licenses, err := uc.licenseRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return access.Decision{}, fmt.Errorf("failed to get licenses for company %d: %w", companyID, err)
	}

	if len(licenses) == 0 {
		uc.logger.Debugw("access denied, no licenses", "company_id", companyID)
		return access.Denied(access.ReasonBlockedPlatform), nil
	}

	for _, lic := range licenses {
		if !lic.IsExpired(today) {
			return access.Granted(), nil
		}
	}

	uc.logger.Debugw("access denied, all licenses expired",
		"company_id", companyID,
		"license_count", len(licenses),
	)
	return access.Denied(access.ReasonBlockedPlatform), nil
}
