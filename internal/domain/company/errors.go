package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrInvalidCompanyType = errors.New("invalid company type")
	ErrParentNotWhitelabel = errors.New("parent company is not a whitelabel partner")
	ErrNotParentOfCompany  = errors.New("requester is not the parent of the company")
	ErrSettingsNotFound    = errors.New("company settings not found")
)
