package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	licenseusecases "atrium/internal/application/license/usecases"
	"atrium/internal/domain/license"
	"atrium/internal/shared/biztime"
	"atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
	"atrium/internal/shared/utils"
)

type renewLicenseUseCase interface {
	Execute(ctx context.Context, input licenseusecases.RenewLicenseInput) (*license.License, error)
}

type LicenseHandler struct {
	renewUC renewLicenseUseCase
	logger  logger.Interface
}

func NewLicenseHandler(renewUC renewLicenseUseCase) *LicenseHandler {
	return &LicenseHandler{
		renewUC: renewUC,
		logger:  logger.NewLogger(),
	}
}

type RenewLicenseRequest struct {
	EndDate string `json:"end_date" binding:"required"`
}

type licenseResponse struct {
	ID         uint             `json:"id"`
	CompanyID  uint             `json:"company_id"`
	PlanID     uint             `json:"plan_id"`
	Status     string           `json:"status"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Recurrence string           `json:"recurrence"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
}

// RenewLicense extends a license to a new end date.
func (h *LicenseHandler) RenewLicense(c *gin.Context) {
	requesterID, err := requesterCompanyID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	licenseID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RenewLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for renew license",
			"license_id", licenseID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	endDate, err := biztime.ParseDate(req.EndDate)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid end_date", "expected YYYY-MM-DD"))
		return
	}

	result, err := h.renewUC.Execute(c.Request.Context(), licenseusecases.RenewLicenseInput{
		RequesterCompanyID: requesterID,
		LicenseID:          licenseID,
		NewEndDate:         endDate.Time(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, licenseResponse{
		ID:         result.ID(),
		CompanyID:  result.CompanyID(),
		PlanID:     result.PlanID(),
		Status:     string(result.Status()),
		StartDate:  result.StartDate().UTC().Format(time.DateOnly),
		EndDate:    result.EndDate().UTC().Format(time.DateOnly),
		Recurrence: string(result.Recurrence()),
		Amount:     result.Amount(),
	})
}
