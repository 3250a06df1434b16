package handlers

import (
	"github.com/gin-gonic/gin"

	"atrium/internal/shared/constants"
	"atrium/internal/shared/errors"
	"atrium/internal/shared/utils"
)

// requesterCompanyID resolves the calling company from the X-Company-ID
// header. The upstream gateway authenticates the caller and injects the
// header; a missing header means an unauthenticated request.
func requesterCompanyID(c *gin.Context) (uint, error) {
	id, err := utils.ParseUintHeader(c, constants.HeaderXCompanyID)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.NewUnauthorizedError("missing " + constants.HeaderXCompanyID + " header")
	}
	return id, nil
}
