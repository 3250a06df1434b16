package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	billingusecases "atrium/internal/application/billing/usecases"
	"atrium/internal/domain/billing"
	"atrium/internal/shared/biztime"
	"atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
	"atrium/internal/shared/mapper"
	"atrium/internal/shared/utils"
)

type recomputePartnerBillingUseCase interface {
	Execute(ctx context.Context, input billingusecases.RecomputePartnerBillingInput) (*billingusecases.RecomputePartnerBillingOutput, error)
}

type getPartnerBillingReportUseCase interface {
	Execute(ctx context.Context, input billingusecases.PartnerBillingReportInput) (*billingusecases.PartnerBillingReportOutput, error)
}

type BillingHandler struct {
	recomputeUC recomputePartnerBillingUseCase
	reportUC    getPartnerBillingReportUseCase
	logger      logger.Interface
}

func NewBillingHandler(
	recomputeUC recomputePartnerBillingUseCase,
	reportUC getPartnerBillingReportUseCase,
) *BillingHandler {
	return &BillingHandler{
		recomputeUC: recomputeUC,
		reportUC:    reportUC,
		logger:      logger.NewLogger(),
	}
}

// RecomputeSnapshotsRequest optionally pins the billing period. Both dates
// must be given together; when absent the current calendar month is used.
type RecomputeSnapshotsRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

type snapshotResponse struct {
	ID                  uint            `json:"id"`
	PartnerID           uint            `json:"partner_id"`
	PeriodStart         string          `json:"period_start"`
	PeriodEnd           string          `json:"period_end"`
	ChildCompaniesCount int             `json:"child_companies_count"`
	ActiveLicensesCount int             `json:"active_licenses_count"`
	TotalAmountDue      decimal.Decimal `json:"total_amount_due"`
}

type recomputeSnapshotsResponse struct {
	PeriodStart string             `json:"period_start"`
	PeriodEnd   string             `json:"period_end"`
	Written     int                `json:"written"`
	Snapshots   []snapshotResponse `json:"snapshots"`
}

func toSnapshotResponse(s *billing.PartnerBillingSnapshot) snapshotResponse {
	return snapshotResponse{
		ID:                  s.ID(),
		PartnerID:           s.PartnerID(),
		PeriodStart:         s.PeriodStart().String(),
		PeriodEnd:           s.PeriodEnd().String(),
		ChildCompaniesCount: s.ChildCompaniesCount(),
		ActiveLicensesCount: s.ActiveLicensesCount(),
		TotalAmountDue:      s.TotalAmountDue(),
	}
}

// RecomputeSnapshots rebuilds the per-partner billing snapshots.
func (h *BillingHandler) RecomputeSnapshots(c *gin.Context) {
	requesterID, err := requesterCompanyID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecomputeSnapshotsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for recompute snapshots", "error", err)
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	input := billingusecases.RecomputePartnerBillingInput{
		RequesterCompanyID: requesterID,
	}

	if req.PeriodStart != "" || req.PeriodEnd != "" {
		start, err := biztime.ParseDate(req.PeriodStart)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid period_start", "expected YYYY-MM-DD"))
			return
		}
		end, err := biztime.ParseDate(req.PeriodEnd)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid period_end", "expected YYYY-MM-DD"))
			return
		}
		input.PeriodStart = start
		input.PeriodEnd = end
	}

	result, err := h.recomputeUC.Execute(c.Request.Context(), input)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := recomputeSnapshotsResponse{
		PeriodStart: result.PeriodStart.String(),
		PeriodEnd:   result.PeriodEnd.String(),
		Written:     result.Created,
		Snapshots:   mapper.MapSlice(result.Snapshots, toSnapshotResponse),
	}
	utils.OKResponse(c, resp)
}

// PartnerReport returns the billing breakdown for one partner or all of
// them when partner_id is omitted.
func (h *BillingHandler) PartnerReport(c *gin.Context) {
	requesterID, err := requesterCompanyID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	input := billingusecases.PartnerBillingReportInput{
		RequesterCompanyID: requesterID,
	}

	if partnerIDStr := c.Query("partner_id"); partnerIDStr != "" {
		partnerID, err := utils.ParseUintQuery(c, "partner_id")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		input.PartnerID = partnerID
	}

	result, err := h.reportUC.Execute(c.Request.Context(), input)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
