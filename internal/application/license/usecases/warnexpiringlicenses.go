package usecases

import (
	"context"
	"fmt"
	"time"

	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	"atrium/internal/shared/biztime"
	"atrium/internal/shared/logger"
)

// WarnExpiringLicensesUseCase handles the daily expiry warning sweep. Each
// active license expiring within its company's warning window produces one
// mail to the company contact and one pub/sub event. Delivery failures are
// logged per item and never abort the sweep.
type WarnExpiringLicensesUseCase struct {
	licenseRepo        license.LicenseRepository
	companyRepo        company.Repository
	settingsRepo       company.SettingsRepository
	warningSender      ExpiryWarningSender
	eventPublisher     LicenseEventPublisher
	defaultWarningDays int
	logger             logger.Interface
	now                func() time.Time
}

// NewWarnExpiringLicensesUseCase creates a new WarnExpiringLicensesUseCase
func NewWarnExpiringLicensesUseCase(
	licenseRepo license.LicenseRepository,
	companyRepo company.Repository,
	settingsRepo company.SettingsRepository,
	warningSender ExpiryWarningSender,
	eventPublisher LicenseEventPublisher,
	defaultWarningDays int,
	logger logger.Interface,
) *WarnExpiringLicensesUseCase {
	return &WarnExpiringLicensesUseCase{
		licenseRepo:        licenseRepo,
		companyRepo:        companyRepo,
		settingsRepo:       settingsRepo,
		warningSender:      warningSender,
		eventPublisher:     eventPublisher,
		defaultWarningDays: defaultWarningDays,
		logger:             logger,
		now:                biztime.NowUTC,
	}
}

// Execute scans active licenses and emits warnings for those inside their
// company's warning window. Returns the number of warnings sent.
func (uc *WarnExpiringLicensesUseCase) Execute(ctx context.Context) (int, error) {
	licenses, err := uc.licenseRepo.FindAllActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to find active licenses: %w", err)
	}

	if len(licenses) == 0 {
		return 0, nil
	}

	companyIDs := make([]uint, 0, len(licenses))
	seen := make(map[uint]bool, len(licenses))
	for _, lic := range licenses {
		if !seen[lic.CompanyID()] {
			seen[lic.CompanyID()] = true
			companyIDs = append(companyIDs, lic.CompanyID())
		}
	}

	companies, err := uc.companyRepo.GetByIDs(ctx, companyIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to load companies: %w", err)
	}

	settings, err := uc.settingsRepo.GetByCompanyIDs(ctx, companyIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to load company settings: %w", err)
	}

	today := biztime.DateOf(uc.now())
	sentCount := 0

	for _, lic := range licenses {
		comp, ok := companies[lic.CompanyID()]
		if !ok {
			uc.logger.Warnw("license owner not found, skipping warning",
				"license_id", lic.ID(),
				"company_id", lic.CompanyID(),
			)
			continue
		}

		warningDays := settings[lic.CompanyID()].WarningDaysOrDefault(uc.defaultWarningDays)
		daysLeft := lic.DaysUntilExpiry(today)
		if daysLeft < 0 || daysLeft > warningDays {
			continue
		}

		if err := uc.warningSender.SendLicenseExpiryWarning(
			ctx, comp.Email(), comp.Name(), daysLeft, lic.EndDate(), lic.ID(),
		); err != nil {
			uc.logger.Errorw("failed to send expiry warning mail",
				"license_id", lic.ID(),
				"company_id", comp.ID(),
				"days_until_expiry", daysLeft,
				"error", err,
			)
			continue
		}

		// Event delivery is best-effort; a broker outage must not stop mail.
		if err := uc.eventPublisher.PublishExpiryWarning(ctx, lic, comp, daysLeft); err != nil {
			uc.logger.Warnw("failed to publish expiry warning event",
				"license_id", lic.ID(),
				"error", err,
			)
		}

		sentCount++
		uc.logger.Debugw("expiry warning sent",
			"license_id", lic.ID(),
			"company_id", comp.ID(),
			"days_until_expiry", daysLeft,
		)
	}

	return sentCount, nil
}
