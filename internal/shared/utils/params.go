package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"atrium/internal/shared/errors"
)

// ParseUintParam parses a path parameter as an unsigned integer ID.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, errors.NewValidationError("invalid "+name, "must be a positive integer")
	}
	return uint(value), nil
}

// ParseUintQuery parses a query parameter as an unsigned integer ID.
func ParseUintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, errors.NewValidationError("invalid "+name, "must be a positive integer")
	}
	return uint(value), nil
}

// ParseUintHeader parses a request header as an unsigned integer ID.
// Returns 0 without error when the header is absent.
func ParseUintHeader(c *gin.Context, name string) (uint, error) {
	raw := c.GetHeader(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("invalid "+name+" header", "must be a positive integer")
	}
	return uint(value), nil
}
