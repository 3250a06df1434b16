package usecases

import (
	"context"
	"time"

	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
)

// ExpiryWarningSender delivers the expiry warning to the company contact.
type ExpiryWarningSender interface {
	SendLicenseExpiryWarning(ctx context.Context, to, companyName string, daysUntilExpiry int, endDate time.Time, licenseID uint) error
}

// LicenseEventPublisher publishes license lifecycle events for interested
// consumers (dashboards, toasts). Delivery is best-effort.
type LicenseEventPublisher interface {
	PublishExpiryWarning(ctx context.Context, lic *license.License, comp *company.Company, daysUntilExpiry int) error
}

type transactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
