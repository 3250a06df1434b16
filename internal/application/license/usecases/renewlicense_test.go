package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain/license"
	apperrors "atrium/internal/shared/errors"
)

func TestRenewLicense_ReactivatesOverdue(t *testing.T) {
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	lic := mustLicense(t, 7, 10, license.StatusOverdue, end)
	repo := &fakeLicenseRepo{licenses: []*license.License{lic}}
	txMgr := &fakeTxManager{}

	uc := NewRenewLicenseUseCase(repo, txMgr, 1, testLogger())

	renewed, err := uc.Execute(context.Background(), RenewLicenseInput{
		RequesterCompanyID: 1,
		LicenseID:          7,
		NewEndDate:         end.AddDate(0, 1, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, license.StatusActive, renewed.Status())
	assert.Equal(t, []uint{7}, repo.updateSeen)
	assert.Equal(t, 1, txMgr.calls, "read-check-write runs in one transaction")
}

func TestRenewLicense_OnlyPlatformOwner(t *testing.T) {
	uc := NewRenewLicenseUseCase(&fakeLicenseRepo{}, &fakeTxManager{}, 1, testLogger())

	_, err := uc.Execute(context.Background(), RenewLicenseInput{
		RequesterCompanyID: 2,
		LicenseID:          7,
		NewEndDate:         time.Now().UTC().AddDate(0, 1, 0),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestRenewLicense_NotFound(t *testing.T) {
	uc := NewRenewLicenseUseCase(&fakeLicenseRepo{}, &fakeTxManager{}, 1, testLogger())

	_, err := uc.Execute(context.Background(), RenewLicenseInput{
		RequesterCompanyID: 1,
		LicenseID:          99,
		NewEndDate:         time.Now().UTC().AddDate(0, 1, 0),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestRenewLicense_CannotShorten(t *testing.T) {
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	lic := mustLicense(t, 7, 10, license.StatusActive, end)
	repo := &fakeLicenseRepo{licenses: []*license.License{lic}}

	uc := NewRenewLicenseUseCase(repo, &fakeTxManager{}, 1, testLogger())

	_, err := uc.Execute(context.Background(), RenewLicenseInput{
		RequesterCompanyID: 1,
		LicenseID:          7,
		NewEndDate:         end.AddDate(0, 0, -10),
	})

	require.Error(t, err)
	assert.Empty(t, repo.updateSeen)
}

func TestRenewLicense_UpdateFailurePropagates(t *testing.T) {
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	lic := mustLicense(t, 7, 10, license.StatusActive, end)
	repo := &fakeLicenseRepo{
		licenses:  []*license.License{lic},
		updateErr: map[uint]error{7: errors.New("lock wait timeout")},
	}

	uc := NewRenewLicenseUseCase(repo, &fakeTxManager{}, 1, testLogger())

	_, err := uc.Execute(context.Background(), RenewLicenseInput{
		RequesterCompanyID: 1,
		LicenseID:          7,
		NewEndDate:         end.AddDate(0, 1, 0),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock wait timeout")
}
