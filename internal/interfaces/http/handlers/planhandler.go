package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	licenseusecases "atrium/internal/application/license/usecases"
	"atrium/internal/shared/logger"
	"atrium/internal/shared/utils"
)

type listActivePlansUseCase interface {
	Execute(ctx context.Context) ([]licenseusecases.PlanView, error)
}

type PlanHandler struct {
	listPlansUC listActivePlansUseCase
	logger      logger.Interface
}

func NewPlanHandler(listPlansUC listActivePlansUseCase) *PlanHandler {
	return &PlanHandler{
		listPlansUC: listPlansUC,
		logger:      logger.NewLogger(),
	}
}

// ListPlans returns the active plans.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	result, err := h.listPlansUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list plans", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
