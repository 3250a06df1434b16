package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"atrium/internal/domain/access"
	"atrium/internal/shared/logger"
	"atrium/internal/shared/utils"
)

type evaluateAccessUseCase interface {
	Execute(ctx context.Context, companyID uint) (access.Decision, error)
}

// AccessHandler exposes the access evaluation consumed by the login flow of
// downstream services.
type AccessHandler struct {
	evaluateUC evaluateAccessUseCase
	logger     logger.Interface
}

func NewAccessHandler(evaluateUC evaluateAccessUseCase) *AccessHandler {
	return &AccessHandler{
		evaluateUC: evaluateUC,
		logger:     logger.NewLogger(),
	}
}

// CheckAccess evaluates whether a company may access the platform.
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	companyID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	decision, err := h.evaluateUC.Execute(c.Request.Context(), companyID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, decision)
}
