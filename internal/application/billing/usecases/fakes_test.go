package usecases

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain/billing"
	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	"atrium/internal/shared/biztime"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

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

type fakeLicenseRepo struct {
	licenses []*license.License
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

func (r *fakeLicenseRepo) Update(_ context.Context, _ *license.License) error { return nil }

func (r *fakeLicenseRepo) FindOverdueCandidates(_ context.Context, cutoff time.Time) ([]*license.License, error) {
	var result []*license.License
	for _, l := range r.licenses {
		if l.Status() == license.StatusActive && l.EndDate().Before(cutoff) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeLicenseRepo) FindAllActive(_ context.Context) ([]*license.License, error) {
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

type fakePlanRepo struct {
	plans map[uint]*license.Plan
}

func (r *fakePlanRepo) Create(_ context.Context, _ *license.Plan) error { return nil }

func (r *fakePlanRepo) GetByID(_ context.Context, id uint) (*license.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("plan not found")
	}
	return p, nil
}

func (r *fakePlanRepo) GetByIDs(_ context.Context, ids []uint) (map[uint]*license.Plan, error) {
	result := make(map[uint]*license.Plan)
	for _, id := range ids {
		if p, ok := r.plans[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (r *fakePlanRepo) GetAllActive(_ context.Context) ([]*license.Plan, error) {
	var result []*license.Plan
	for _, p := range r.plans {
		if p.IsActive() {
			result = append(result, p)
		}
	}
	return result, nil
}

type snapshotKey struct {
	partnerID  uint
	start, end biztime.DateOnly
}

type fakeSnapshotRepo struct {
	snapshots map[snapshotKey]*billing.PartnerBillingSnapshot
	upserts   int
	failFor   map[uint]error
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: make(map[snapshotKey]*billing.PartnerBillingSnapshot)}
}

func (r *fakeSnapshotRepo) Upsert(_ context.Context, s *billing.PartnerBillingSnapshot) error {
	if err := r.failFor[s.PartnerID()]; err != nil {
		return err
	}
	r.upserts++
	r.snapshots[snapshotKey{s.PartnerID(), s.PeriodStart(), s.PeriodEnd()}] = s
	return nil
}

func (r *fakeSnapshotRepo) GetByPartnerAndPeriod(_ context.Context, partnerID uint, start, end biztime.DateOnly) (*billing.PartnerBillingSnapshot, error) {
	s, ok := r.snapshots[snapshotKey{partnerID, start, end}]
	if !ok {
		return nil, apperrors.NewNotFoundError("snapshot not found")
	}
	return s, nil
}

func (r *fakeSnapshotRepo) ListByPeriod(_ context.Context, start, end biztime.DateOnly) ([]*billing.PartnerBillingSnapshot, error) {
	var result []*billing.PartnerBillingSnapshot
	for k, s := range r.snapshots {
		if k.start == start && k.end == end {
			result = append(result, s)
		}
	}
	return result, nil
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func uintPtr(v uint) *uint { return &v }

func mustCompany(t *testing.T, id uint, name string, companyType company.Type, parentID *uint) *company.Company {
	t.Helper()
	now := time.Now().UTC()
	c, err := company.ReconstructCompany(id, name, name+"@example.com", companyType, parentID, false, now, now)
	require.NoError(t, err)
	return c
}

func mustLicense(t *testing.T, id, companyID, planID uint, status license.Status, recurrence license.Recurrence, amount *decimal.Decimal) *license.License {
	t.Helper()
	now := time.Now().UTC()
	l, err := license.ReconstructLicense(
		id, companyID, planID, status,
		now.AddDate(0, -1, 0), now.AddDate(0, 1, 0),
		recurrence, amount, nil, 1, now, now,
	)
	require.NoError(t, err)
	return l
}

func mustPlan(t *testing.T, id uint, name string, monthly, annual string) *license.Plan {
	t.Helper()
	now := time.Now().UTC()
	p, err := license.ReconstructPlan(
		id, name,
		decimal.RequireFromString(monthly), decimal.RequireFromString(annual),
		company.TypeDirect, license.PlanStatusActive, now, now,
	)
	require.NoError(t, err)
	return p
}
