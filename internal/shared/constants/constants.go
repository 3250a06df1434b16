package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXCompanyID    = "X-Company-ID"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyCompanyID = "company_id"
	ContextKeyRequestID = "request_id"

	// Company types
	CompanyTypePlatform   = "platform"
	CompanyTypeWhitelabel = "whitelabel"
	CompanyTypeDirect     = "direct"

	// License status
	LicenseStatusActive  = "active"
	LicenseStatusOverdue = "overdue"

	// Database table names
	TableCompanies               = "companies"
	TableCompaniesSettings       = "companies_settings"
	TableLicenses                = "licenses"
	TablePlans                   = "plans"
	TablePartnerBillingSnapshots = "partner_billing_snapshots"

	// Defaults
	DefaultPlatformCompanyID  = 1
	DefaultLicenseWarningDays = 7

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
