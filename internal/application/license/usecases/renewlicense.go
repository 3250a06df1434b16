package usecases

import (
	"context"
	"fmt"
	"time"

	"atrium/internal/domain/license"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

type RenewLicenseInput struct {
	RequesterCompanyID uint
	LicenseID          uint
	NewEndDate         time.Time
}

// RenewLicenseUseCase extends a license and reactivates it when it was
// overdue. Renewal is a platform-owner action; partners and direct clients
// renew through the commercial flow, not this API.
type RenewLicenseUseCase struct {
	licenseRepo       license.LicenseRepository
	txMgr             transactionManager
	platformCompanyID uint
	logger            logger.Interface
}

func NewRenewLicenseUseCase(
	licenseRepo license.LicenseRepository,
	txMgr transactionManager,
	platformCompanyID uint,
	logger logger.Interface,
) *RenewLicenseUseCase {
	return &RenewLicenseUseCase{
		licenseRepo:       licenseRepo,
		txMgr:             txMgr,
		platformCompanyID: platformCompanyID,
		logger:            logger,
	}
}

// Execute renews the license inside a transaction so the read-check-write
// cannot interleave with the overdue sweep flipping the same row.
func (uc *RenewLicenseUseCase) Execute(ctx context.Context, input RenewLicenseInput) (*license.License, error) {
	if input.RequesterCompanyID != uc.platformCompanyID {
		return nil, apperrors.NewForbiddenError("only the platform owner can renew licenses")
	}

	var lic *license.License
	var previousStatus license.Status
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		lic, err = uc.licenseRepo.GetByID(txCtx, input.LicenseID)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return err
			}
			return fmt.Errorf("failed to get license: %w", err)
		}

		previousStatus = lic.Status()
		if err := lic.Renew(input.NewEndDate); err != nil {
			return apperrors.NewValidationError("cannot renew license", err.Error())
		}

		if err := uc.licenseRepo.Update(txCtx, lic); err != nil {
			return fmt.Errorf("failed to update license: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("license renewed",
		"license_id", lic.ID(),
		"company_id", lic.CompanyID(),
		"previous_status", previousStatus,
		"new_end_date", lic.EndDate().UTC().Format(time.DateOnly),
	)

	return lic, nil
}
