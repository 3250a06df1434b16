package usecases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain/company"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

type fakeCompanyRepo struct {
	companies map[uint]*company.Company
	updated   []uint
	updateErr error
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

func (r *fakeCompanyRepo) GetChildrenOfPartners(_ context.Context, _ []uint) ([]*company.Company, error) {
	return nil, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *company.Company) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.companies[c.ID()] = c
	r.updated = append(r.updated, c.ID())
	return nil
}

// fakeTxManager runs the function directly and records invocations.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeBlockPublisher struct {
	events []bool
	err    error
}

func (p *fakeBlockPublisher) PublishAccessBlockChanged(_ context.Context, _ *company.Company, blocked bool) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, blocked)
	return nil
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func uintPtr(v uint) *uint { return &v }

func mustCompany(t *testing.T, id uint, companyType company.Type, parentID *uint, blocked bool) *company.Company {
	t.Helper()
	now := time.Now().UTC()
	c, err := company.ReconstructCompany(id, "acme", "acme@example.com", companyType, parentID, blocked, now, now)
	require.NoError(t, err)
	return c
}

func TestSetParentBlock_BlockChild(t *testing.T) {
	child := mustCompany(t, 3, company.TypeDirect, uintPtr(2), false)
	repo := newFakeCompanyRepo(child)
	publisher := &fakeBlockPublisher{}

	uc := NewSetParentBlockUseCase(repo, publisher, &fakeTxManager{}, testLogger())

	updated, err := uc.Execute(context.Background(), SetParentBlockInput{
		RequesterCompanyID: 2,
		TargetCompanyID:    3,
		Blocked:            true,
	})

	require.NoError(t, err)
	assert.True(t, updated.AccessBlockedByParent())
	assert.Equal(t, []uint{3}, repo.updated)
	assert.Equal(t, []bool{true}, publisher.events)
}

func TestSetParentBlock_UnblockChild(t *testing.T) {
	child := mustCompany(t, 3, company.TypeDirect, uintPtr(2), true)
	repo := newFakeCompanyRepo(child)

	uc := NewSetParentBlockUseCase(repo, &fakeBlockPublisher{}, &fakeTxManager{}, testLogger())

	updated, err := uc.Execute(context.Background(), SetParentBlockInput{
		RequesterCompanyID: 2,
		TargetCompanyID:    3,
		Blocked:            false,
	})

	require.NoError(t, err)
	assert.False(t, updated.AccessBlockedByParent())
}

func TestSetParentBlock_RequesterMustBeParent(t *testing.T) {
	child := mustCompany(t, 3, company.TypeDirect, uintPtr(2), false)

	uc := NewSetParentBlockUseCase(newFakeCompanyRepo(child), &fakeBlockPublisher{}, &fakeTxManager{}, testLogger())

	_, err := uc.Execute(context.Background(), SetParentBlockInput{
		RequesterCompanyID: 7,
		TargetCompanyID:    3,
		Blocked:            true,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestSetParentBlock_TargetWithoutParentRejected(t *testing.T) {
	standalone := mustCompany(t, 4, company.TypeDirect, nil, false)

	uc := NewSetParentBlockUseCase(newFakeCompanyRepo(standalone), &fakeBlockPublisher{}, &fakeTxManager{}, testLogger())

	_, err := uc.Execute(context.Background(), SetParentBlockInput{
		RequesterCompanyID: 2,
		TargetCompanyID:    4,
		Blocked:            true,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestSetParentBlock_TargetNotFound(t *testing.T) {
	uc := NewSetParentBlockUseCase(newFakeCompanyRepo(), &fakeBlockPublisher{}, &fakeTxManager{}, testLogger())

	_, err := uc.Execute(context.Background(), SetParentBlockInput{
		RequesterCompanyID: 2,
		TargetCompanyID:    99,
		Blocked:            true,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSetParentBlock_UpdateRunsInTransaction(t *testing.T) {
	child := mustCompany(t, 3, company.TypeDirect, uintPtr(2), false)
	repo := newFakeCompanyRepo(child)
	publisher := &fakeBlockPublisher{}
	txMgr := &fakeTxManager{}

	uc := NewSetParentBlockUseCase(repo, publisher, txMgr, testLogger())

	_, err := uc.Execute(context.Background(), SetParentBlockInput{
		RequesterCompanyID: 2,
		TargetCompanyID:    3,
		Blocked:            true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, txMgr.calls)
	assert.Equal(t, []uint{3}, repo.updated)
}

func TestSetParentBlock_UpdateFailureSuppressesEvent(t *testing.T) {
	child := mustCompany(t, 3, company.TypeDirect, uintPtr(2), false)
	repo := newFakeCompanyRepo(child)
	repo.updateErr = errors.New("deadlock")
	publisher := &fakeBlockPublisher{}

	uc := NewSetParentBlockUseCase(repo, publisher, &fakeTxManager{}, testLogger())

	_, err := uc.Execute(context.Background(), SetParentBlockInput{
		RequesterCompanyID: 2,
		TargetCompanyID:    3,
		Blocked:            true,
	})

	require.Error(t, err)
	assert.Empty(t, publisher.events, "event must not fire when the write fails")
}

func TestSetParentBlock_PublisherFailureIgnored(t *testing.T) {
	child := mustCompany(t, 3, company.TypeDirect, uintPtr(2), false)
	repo := newFakeCompanyRepo(child)
	publisher := &fakeBlockPublisher{err: errors.New("broker down")}

	uc := NewSetParentBlockUseCase(repo, publisher, &fakeTxManager{}, testLogger())

	updated, err := uc.Execute(context.Background(), SetParentBlockInput{
		RequesterCompanyID: 2,
		TargetCompanyID:    3,
		Blocked:            true,
	})

	require.NoError(t, err)
	assert.True(t, updated.AccessBlockedByParent())
	assert.Equal(t, []uint{3}, repo.updated)
}
