package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	companyusecases "atrium/internal/application/company/usecases"
	"atrium/internal/domain/company"
	"atrium/internal/shared/logger"
	"atrium/internal/shared/utils"
)

type setParentBlockUseCase interface {
	Execute(ctx context.Context, input companyusecases.SetParentBlockInput) (*company.Company, error)
}

type CompanyHandler struct {
	setParentBlockUC setParentBlockUseCase
	logger           logger.Interface
}

func NewCompanyHandler(setParentBlockUC setParentBlockUseCase) *CompanyHandler {
	return &CompanyHandler{
		setParentBlockUC: setParentBlockUC,
		logger:           logger.NewLogger(),
	}
}

// SetParentBlockRequest toggles the partner-level block on a child company.
type SetParentBlockRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

type companyResponse struct {
	ID                    uint   `json:"id"`
	Name                  string `json:"name"`
	CompanyType           string `json:"company_type"`
	ParentCompanyID       *uint  `json:"parent_company_id,omitempty"`
	AccessBlockedByParent bool   `json:"access_blocked_by_parent"`
}

// SetParentBlock lets a whitelabel partner block or unblock one of its
// child companies.
func (h *CompanyHandler) SetParentBlock(c *gin.Context) {
	requesterID, err := requesterCompanyID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	targetID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetParentBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set parent block",
			"company_id", targetID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.setParentBlockUC.Execute(c.Request.Context(), companyusecases.SetParentBlockInput{
		RequesterCompanyID: requesterID,
		TargetCompanyID:    targetID,
		Blocked:            *req.Blocked,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, companyResponse{
		ID:                    result.ID(),
		Name:                  result.Name(),
		CompanyType:           string(result.CompanyType()),
		ParentCompanyID:       result.ParentCompanyID(),
		AccessBlockedByParent: result.AccessBlockedByParent(),
	})
}
