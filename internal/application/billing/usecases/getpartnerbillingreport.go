package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	"atrium/internal/shared/biztime"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

// PartnerBillingReportInput carries the report request. PartnerID zero means
// all partners.
type PartnerBillingReportInput struct {
	RequesterCompanyID uint
	PartnerID          uint
}

// LicenseBillingLine is the license-level detail in the report.
type LicenseBillingLine struct {
	LicenseID       uint            `json:"license_id"`
	CompanyID       uint            `json:"company_id"`
	CompanyName     string          `json:"company_name"`
	PlanName        string          `json:"plan_name"`
	Status          string          `json:"status"`
	Recurrence      string          `json:"recurrence"`
	EndDate         string          `json:"end_date"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
	BillableAmount  decimal.Decimal `json:"billable_amount"`
}

// PartnerBillingBreakdown is the per-partner section of the report.
type PartnerBillingBreakdown struct {
	PartnerID           uint                 `json:"partner_id"`
	PartnerName         string               `json:"partner_name"`
	ChildCompaniesCount int                  `json:"child_companies_count"`
	ActiveLicensesCount int                  `json:"active_licenses_count"`
	TotalAmountDue      decimal.Decimal      `json:"total_amount_due"`
	Licenses            []LicenseBillingLine `json:"licenses"`
}

// PartnerBillingReportOutput is the full report.
type PartnerBillingReportOutput struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Partners    []PartnerBillingBreakdown `json:"partners"`
}

// GetPartnerBillingReportUseCase builds the live per-partner billing
// breakdown with license-level detail. Unlike the snapshot recompute this is
// a pure read; it never writes.
type GetPartnerBillingReportUseCase struct {
	companyRepo       company.Repository
	licenseRepo       license.LicenseRepository
	planRepo          license.PlanRepository
	platformCompanyID uint
	logger            logger.Interface
	now               func() time.Time
}

// NewGetPartnerBillingReportUseCase creates a new GetPartnerBillingReportUseCase
func NewGetPartnerBillingReportUseCase(
	companyRepo company.Repository,
	licenseRepo license.LicenseRepository,
	planRepo license.PlanRepository,
	platformCompanyID uint,
	logger logger.Interface,
) *GetPartnerBillingReportUseCase {
	return &GetPartnerBillingReportUseCase{
		companyRepo:       companyRepo,
		licenseRepo:       licenseRepo,
		planRepo:          planRepo,
		platformCompanyID: platformCompanyID,
		logger:            logger,
		now:               biztime.NowUTC,
	}
}

// Execute builds the report for one partner or all partners.
func (uc *GetPartnerBillingReportUseCase) Execute(ctx context.Context, input PartnerBillingReportInput) (*PartnerBillingReportOutput, error) {
	if input.RequesterCompanyID != uc.platformCompanyID {
		return nil, apperrors.NewForbiddenError("only the platform owner can view partner billing")
	}

	var partners []*company.Company
	if input.PartnerID != 0 {
		partner, err := uc.companyRepo.GetByID(ctx, input.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get partner: %w", err)
		}
		if !partner.IsWhitelabel() {
			return nil, apperrors.NewValidationError("company is not a whitelabel partner")
		}
		partners = []*company.Company{partner}
	} else {
		var err error
		partners, err = uc.companyRepo.GetByType(ctx, company.TypeWhitelabel)
		if err != nil {
			return nil, fmt.Errorf("failed to load partners: %w", err)
		}
	}

	generatedAt := uc.now().UTC()
	output := &PartnerBillingReportOutput{
		GeneratedAt: generatedAt,
		Partners:    make([]PartnerBillingBreakdown, 0, len(partners)),
	}
	if len(partners) == 0 {
		return output, nil
	}

	partnerIDs := make([]uint, 0, len(partners))
	for _, p := range partners {
		partnerIDs = append(partnerIDs, p.ID())
	}

	children, err := uc.companyRepo.GetChildrenOfPartners(ctx, partnerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load partner children: %w", err)
	}

	childrenByPartner := make(map[uint][]*company.Company)
	childIDs := make([]uint, 0, len(children))
	for _, child := range children {
		parentID := *child.ParentCompanyID()
		childrenByPartner[parentID] = append(childrenByPartner[parentID], child)
		childIDs = append(childIDs, child.ID())
	}

	licensesByCompany := make(map[uint][]*license.License)
	if len(childIDs) > 0 {
		licensesByCompany, err = uc.licenseRepo.FindByCompanyIDs(ctx, childIDs, billableStatuses)
		if err != nil {
			return nil, fmt.Errorf("failed to load child licenses: %w", err)
		}
	}

	planIDs := make([]uint, 0)
	seenPlans := make(map[uint]bool)
	for _, licenses := range licensesByCompany {
		for _, lic := range licenses {
			if !seenPlans[lic.PlanID()] {
				seenPlans[lic.PlanID()] = true
				planIDs = append(planIDs, lic.PlanID())
			}
		}
	}
	plans := map[uint]*license.Plan{}
	if len(planIDs) > 0 {
		plans, err = uc.planRepo.GetByIDs(ctx, planIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load plans: %w", err)
		}
	}

	today := biztime.DateOf(generatedAt)
	for _, partner := range partners {
		output.Partners = append(output.Partners, uc.buildBreakdown(partner, childrenByPartner[partner.ID()], licensesByCompany, plans, today))
	}
	return output, nil
}

func (uc *GetPartnerBillingReportUseCase) buildBreakdown(
	partner *company.Company,
	children []*company.Company,
	licensesByCompany map[uint][]*license.License,
	plans map[uint]*license.Plan,
	today biztime.DateOnly,
) PartnerBillingBreakdown {
	breakdown := PartnerBillingBreakdown{
		PartnerID:   partner.ID(),
		PartnerName: partner.Name(),
		Licenses:    make([]LicenseBillingLine, 0),
	}
	breakdown.ChildCompaniesCount = len(children)

	total := decimal.Zero
	for _, child := range children {
		for _, lic := range licensesByCompany[child.ID()] {
			plan := plans[lic.PlanID()]
			planName := ""
			if plan != nil {
				planName = plan.Name()
			}
			amount := plan.BillableAmount(lic.Recurrence(), lic.Amount())
			total = total.Add(amount)
			breakdown.ActiveLicensesCount++

			breakdown.Licenses = append(breakdown.Licenses, LicenseBillingLine{
				LicenseID:       lic.ID(),
				CompanyID:       child.ID(),
				CompanyName:     child.Name(),
				PlanName:        planName,
				Status:          lic.Status().String(),
				Recurrence:      lic.Recurrence().String(),
				EndDate:         lic.ExpiresOn().String(),
				DaysUntilExpiry: lic.DaysUntilExpiry(today),
				BillableAmount:  amount,
			})
		}
	}
	breakdown.TotalAmountDue = total.Round(2)
	return breakdown
}
