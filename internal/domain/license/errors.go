package license

import "errors"

var (
	ErrLicenseNotFound         = errors.New("license not found")
	ErrLicenseOverdue          = errors.New("license overdue")
	ErrInvalidStatusTransition = errors.New("invalid license status transition")
	ErrInvalidRecurrence       = errors.New("invalid license recurrence")
	ErrPlanNotFound            = errors.New("plan not found")
	ErrPlanInactive            = errors.New("plan inactive")
)
