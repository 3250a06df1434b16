package usecases

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

type fakeLicenseRepo struct {
	licenses   []*license.License
	findErr    error
	updateErr  map[uint]error
	updateSeen []uint
}

func (r *fakeLicenseRepo) Create(_ context.Context, _ *license.License) error { return nil }

func (r *fakeLicenseRepo) GetByID(_ context.Context, id uint) (*license.License, error) {
	for _, l := range r.licenses {
		if l.ID() == id {
			return l, nil
		}
	}
	return nil, apperrors.NewNotFoundError("license not found")
}

func (r *fakeLicenseRepo) GetActiveByCompanyID(_ context.Context, companyID uint) ([]*license.License, error) {
	var result []*license.License
	for _, l := range r.licenses {
		if l.CompanyID() == companyID && l.Status() == license.StatusActive {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeLicenseRepo) Update(_ context.Context, l *license.License) error {
	if err := r.updateErr[l.ID()]; err != nil {
		return err
	}
	r.updateSeen = append(r.updateSeen, l.ID())
	return nil
}

func (r *fakeLicenseRepo) FindOverdueCandidates(_ context.Context, cutoff time.Time) ([]*license.License, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var result []*license.License
	for _, l := range r.licenses {
		if l.Status() == license.StatusActive && l.EndDate().Before(cutoff) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeLicenseRepo) FindAllActive(_ context.Context) ([]*license.License, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var result []*license.License
	for _, l := range r.licenses {
		if l.Status() == license.StatusActive {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeLicenseRepo) FindByCompanyIDs(_ context.Context, companyIDs []uint, statuses []license.Status) (map[uint][]*license.License, error) {
	result := make(map[uint][]*license.License)
	for _, l := range r.licenses {
		for _, id := range companyIDs {
			if l.CompanyID() != id {
				continue
			}
			for _, s := range statuses {
				if l.Status() == s {
					result[id] = append(result[id], l)
				}
			}
		}
	}
	return result, nil
}

// fakeTxManager runs the function directly and records invocations.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeCompanyRepo struct {
	companies map[uint]*company.Company
}

func newFakeCompanyRepo(companies ...*company.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[uint]*company.Company)}
	for _, c := range companies {
		r.companies[c.ID()] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ context.Context, _ *company.Company) error { return nil }

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uint) (*company.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("company not found")
	}
	return c, nil
}

func (r *fakeCompanyRepo) GetByIDs(_ context.Context, ids []uint) (map[uint]*company.Company, error) {
	result := make(map[uint]*company.Company)
	for _, id := range ids {
		if c, ok := r.companies[id]; ok {
			result[id] = c
		}
	}
	return result, nil
}

func (r *fakeCompanyRepo) GetByType(_ context.Context, companyType company.Type) ([]*company.Company, error) {
	var result []*company.Company
	for _, c := range r.companies {
		if c.CompanyType() == companyType {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCompanyRepo) GetChildrenOfPartners(_ context.Context, partnerIDs []uint) ([]*company.Company, error) {
	var result []*company.Company
	for _, c := range r.companies {
		if c.ParentCompanyID() == nil {
			continue
		}
		for _, pid := range partnerIDs {
			if *c.ParentCompanyID() == pid {
				result = append(result, c)
			}
		}
	}
	return result, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *company.Company) error {
	r.companies[c.ID()] = c
	return nil
}

type fakeSettingsRepo struct {
	settings map[uint]*company.Settings
}

func (r *fakeSettingsRepo) GetByCompanyID(_ context.Context, companyID uint) (*company.Settings, error) {
	s, ok := r.settings[companyID]
	if !ok {
		return nil, apperrors.NewNotFoundError("settings not found")
	}
	return s, nil
}

func (r *fakeSettingsRepo) GetByCompanyIDs(_ context.Context, companyIDs []uint) (map[uint]*company.Settings, error) {
	result := make(map[uint]*company.Settings)
	for _, id := range companyIDs {
		if s, ok := r.settings[id]; ok {
			result[id] = s
		}
	}
	return result, nil
}

type sentWarning struct {
	to              string
	companyName     string
	daysUntilExpiry int
	licenseID       uint
}

type fakeWarningSender struct {
	sent    []sentWarning
	failFor map[uint]error
}

func (s *fakeWarningSender) SendLicenseExpiryWarning(_ context.Context, to, companyName string, daysUntilExpiry int, _ time.Time, licenseID uint) error {
	if err := s.failFor[licenseID]; err != nil {
		return err
	}
	s.sent = append(s.sent, sentWarning{to: to, companyName: companyName, daysUntilExpiry: daysUntilExpiry, licenseID: licenseID})
	return nil
}

type fakeEventPublisher struct {
	published []uint
	err       error
}

func (p *fakeEventPublisher) PublishExpiryWarning(_ context.Context, lic *license.License, _ *company.Company, _ int) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, lic.ID())
	return nil
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustCompany(t *testing.T, id uint, name string, companyType company.Type, parentID *uint) *company.Company {
	t.Helper()
	now := time.Now().UTC()
	c, err := company.ReconstructCompany(id, name, name+"@example.com", companyType, parentID, false, now, now)
	require.NoError(t, err)
	return c
}

func mustLicense(t *testing.T, id, companyID uint, status license.Status, endDate time.Time) *license.License {
	t.Helper()
	now := time.Now().UTC()
	l, err := license.ReconstructLicense(
		id, companyID, 1, status,
		endDate.AddDate(0, -1, 0), endDate,
		license.RecurrenceMonthly, nil, nil, 1, now, now,
	)
	require.NoError(t, err)
	return l
}
