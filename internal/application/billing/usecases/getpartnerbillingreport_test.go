package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	apperrors "atrium/internal/shared/errors"
)

func TestGetPartnerBillingReport_RequesterMustBePlatformOwner(t *testing.T) {
	uc := NewGetPartnerBillingReportUseCase(
		newFakeCompanyRepo(), &fakeLicenseRepo{}, &fakePlanRepo{}, platformID, testLogger(),
	)

	_, err := uc.Execute(context.Background(), PartnerBillingReportInput{RequesterCompanyID: 5})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestGetPartnerBillingReport_AllPartners(t *testing.T) {
	partnerA := mustCompany(t, 2, "partner-a", company.TypeWhitelabel, nil)
	partnerB := mustCompany(t, 3, "partner-b", company.TypeWhitelabel, nil)
	childA := mustCompany(t, 4, "child-a", company.TypeDirect, uintPtr(2))

	licenseRepo := &fakeLicenseRepo{licenses: []*license.License{
		mustLicense(t, 1, 4, 10, license.StatusActive, license.RecurrenceMonthly, nil),
	}}
	planRepo := &fakePlanRepo{plans: map[uint]*license.Plan{
		10: mustPlan(t, 10, "basic", "100.00", "0"),
	}}

	uc := NewGetPartnerBillingReportUseCase(
		newFakeCompanyRepo(partnerA, partnerB, childA), licenseRepo, planRepo, platformID, testLogger(),
	)

	output, err := uc.Execute(context.Background(), PartnerBillingReportInput{RequesterCompanyID: platformID})

	require.NoError(t, err)
	require.Len(t, output.Partners, 2)

	byID := map[uint]PartnerBillingBreakdown{}
	for _, b := range output.Partners {
		byID[b.PartnerID] = b
	}

	a := byID[2]
	assert.Equal(t, 1, a.ChildCompaniesCount)
	assert.Equal(t, 1, a.ActiveLicensesCount)
	assert.True(t, a.TotalAmountDue.Equal(decimal.RequireFromString("100.00")))
	require.Len(t, a.Licenses, 1)
	assert.Equal(t, "child-a", a.Licenses[0].CompanyName)
	assert.Equal(t, "basic", a.Licenses[0].PlanName)
	assert.Positive(t, a.Licenses[0].DaysUntilExpiry)

	b := byID[3]
	assert.Equal(t, 0, b.ChildCompaniesCount)
	assert.True(t, b.TotalAmountDue.IsZero())
	assert.Empty(t, b.Licenses)
}

func TestGetPartnerBillingReport_SinglePartner(t *testing.T) {
	partnerA := mustCompany(t, 2, "partner-a", company.TypeWhitelabel, nil)
	partnerB := mustCompany(t, 3, "partner-b", company.TypeWhitelabel, nil)

	uc := NewGetPartnerBillingReportUseCase(
		newFakeCompanyRepo(partnerA, partnerB), &fakeLicenseRepo{}, &fakePlanRepo{}, platformID, testLogger(),
	)

	output, err := uc.Execute(context.Background(), PartnerBillingReportInput{
		RequesterCompanyID: platformID,
		PartnerID:          3,
	})

	require.NoError(t, err)
	require.Len(t, output.Partners, 1)
	assert.Equal(t, uint(3), output.Partners[0].PartnerID)
}

func TestGetPartnerBillingReport_NonPartnerRejected(t *testing.T) {
	direct := mustCompany(t, 5, "direct", company.TypeDirect, nil)

	uc := NewGetPartnerBillingReportUseCase(
		newFakeCompanyRepo(direct), &fakeLicenseRepo{}, &fakePlanRepo{}, platformID, testLogger(),
	)

	_, err := uc.Execute(context.Background(), PartnerBillingReportInput{
		RequesterCompanyID: platformID,
		PartnerID:          5,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
