package billing

import "errors"

var (
	ErrSnapshotNotFound = errors.New("partner billing snapshot not found")
	ErrInvalidPeriod    = errors.New("invalid billing period")
)
