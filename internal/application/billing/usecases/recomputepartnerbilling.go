package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"atrium/internal/domain/billing"
	"atrium/internal/domain/company"
	"atrium/internal/domain/license"
	"atrium/internal/shared/biztime"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

// billableStatuses are the license states that count toward partner billing.
// An overdue license is still owed for the period; only deleted rows drop out.
var billableStatuses = []license.Status{license.StatusActive, license.StatusOverdue}

// RecomputePartnerBillingInput carries the recompute request. A zero period
// means the current UTC calendar month.
type RecomputePartnerBillingInput struct {
	RequesterCompanyID uint
	PeriodStart        biztime.DateOnly
	PeriodEnd          biztime.DateOnly
}

// RecomputePartnerBillingOutput reports the recompute result.
type RecomputePartnerBillingOutput struct {
	PeriodStart biztime.DateOnly
	PeriodEnd   biztime.DateOnly
	Created     int
	Snapshots   []*billing.PartnerBillingSnapshot
}

// RecomputePartnerBillingUseCase aggregates, per whitelabel partner, the
// amounts its child companies owe for a billing period and upserts one
// snapshot per partner. Only the platform owner may trigger it.
type RecomputePartnerBillingUseCase struct {
	companyRepo       company.Repository
	licenseRepo       license.LicenseRepository
	planRepo          license.PlanRepository
	snapshotRepo      billing.SnapshotRepository
	platformCompanyID uint
	logger            logger.Interface
	now               func() time.Time
}

// NewRecomputePartnerBillingUseCase creates a new RecomputePartnerBillingUseCase
func NewRecomputePartnerBillingUseCase(
	companyRepo company.Repository,
	licenseRepo license.LicenseRepository,
	planRepo license.PlanRepository,
	snapshotRepo billing.SnapshotRepository,
	platformCompanyID uint,
	logger logger.Interface,
) *RecomputePartnerBillingUseCase {
	return &RecomputePartnerBillingUseCase{
		companyRepo:       companyRepo,
		licenseRepo:       licenseRepo,
		planRepo:          planRepo,
		snapshotRepo:      snapshotRepo,
		platformCompanyID: platformCompanyID,
		logger:            logger,
		now:               biztime.NowUTC,
	}
}

// Execute recomputes partner billing snapshots for the period. Per-partner
// failures are isolated; a partner whose upsert fails is skipped and the rest
// of the run continues.
func (uc *RecomputePartnerBillingUseCase) Execute(ctx context.Context, input RecomputePartnerBillingInput) (*RecomputePartnerBillingOutput, error) {
	if input.RequesterCompanyID != uc.platformCompanyID {
		return nil, apperrors.NewForbiddenError("only the platform owner can recompute partner billing")
	}

	periodStart, periodEnd := input.PeriodStart, input.PeriodEnd
	if periodStart.IsZero() || periodEnd.IsZero() {
		periodStart, periodEnd = biztime.MonthPeriod(uc.now())
	}
	if periodEnd.Before(periodStart) {
		return nil, apperrors.NewValidationError("period end must not be before period start")
	}

	partners, err := uc.companyRepo.GetByType(ctx, company.TypeWhitelabel)
	if err != nil {
		return nil, fmt.Errorf("failed to load partners: %w", err)
	}

	output := &RecomputePartnerBillingOutput{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Snapshots:   make([]*billing.PartnerBillingSnapshot, 0, len(partners)),
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

	plans, err := uc.loadPlans(ctx, licensesByCompany)
	if err != nil {
		return nil, err
	}

	for _, partner := range partners {
		snapshot, err := uc.buildSnapshot(partner, periodStart, periodEnd, childrenByPartner[partner.ID()], licensesByCompany, plans)
		if err != nil {
			uc.logger.Errorw("failed to build partner billing snapshot",
				"partner_id", partner.ID(),
				"error", err,
			)
			continue
		}

		if err := uc.snapshotRepo.Upsert(ctx, snapshot); err != nil {
			uc.logger.Errorw("failed to upsert partner billing snapshot",
				"partner_id", partner.ID(),
				"period_start", periodStart.String(),
				"period_end", periodEnd.String(),
				"error", err,
			)
			continue
		}

		output.Created++
		output.Snapshots = append(output.Snapshots, snapshot)
		uc.logger.Debugw("partner billing snapshot upserted",
			"partner_id", partner.ID(),
			"total_amount_due", snapshot.TotalAmountDue().String(),
			"active_licenses", snapshot.ActiveLicensesCount(),
		)
	}

	uc.logger.Infow("partner billing recompute finished",
		"period_start", periodStart.String(),
		"period_end", periodEnd.String(),
		"partners", len(partners),
		"snapshots_written", output.Created,
	)
	return output, nil
}

func (uc *RecomputePartnerBillingUseCase) loadPlans(ctx context.Context, licensesByCompany map[uint][]*license.License) (map[uint]*license.Plan, error) {
	seen := make(map[uint]bool)
	planIDs := make([]uint, 0)
	for _, licenses := range licensesByCompany {
		for _, lic := range licenses {
			if !seen[lic.PlanID()] {
				seen[lic.PlanID()] = true
				planIDs = append(planIDs, lic.PlanID())
			}
		}
	}
	if len(planIDs) == 0 {
		return map[uint]*license.Plan{}, nil
	}

	plans, err := uc.planRepo.GetByIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	return plans, nil
}

func (uc *RecomputePartnerBillingUseCase) buildSnapshot(
	partner *company.Company,
	periodStart, periodEnd biztime.DateOnly,
	children []*company.Company,
	licensesByCompany map[uint][]*license.License,
	plans map[uint]*license.Plan,
) (*billing.PartnerBillingSnapshot, error) {
	total := decimal.Zero
	licenseCount := 0

	for _, child := range children {
		for _, lic := range licensesByCompany[child.ID()] {
			// plans[...] may be nil for a deleted plan; BillableAmount
			// falls back to the license's captured amount.
			amount := plans[lic.PlanID()].BillableAmount(lic.Recurrence(), lic.Amount())
			total = total.Add(amount)
			licenseCount++
		}
	}

	return billing.NewPartnerBillingSnapshot(
		partner.ID(),
		periodStart, periodEnd,
		len(children), licenseCount,
		total,
	)
}
