package company

import "time"

// Settings is the per-company configuration record. Only the fields relevant
// to licensing are modeled; the remainder lives in an opaque metadata blob
// at the persistence layer.
type Settings struct {
	companyID          uint
	licenseWarningDays *int
	createdAt          time.Time
	updatedAt          time.Time
}

// ReconstructSettings reconstructs company settings from persistence.
func ReconstructSettings(companyID uint, licenseWarningDays *int, createdAt, updatedAt time.Time) *Settings {
	return &Settings{
		companyID:          companyID,
		licenseWarningDays: licenseWarningDays,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (s *Settings) CompanyID() uint {
	return s.companyID
}

// LicenseWarningDays returns the per-company expiry-warning window,
// nil when the company uses the global default.
func (s *Settings) LicenseWarningDays() *int {
	return s.licenseWarningDays
}

// WarningDaysOrDefault resolves the effective warning window.
func (s *Settings) WarningDaysOrDefault(fallback int) int {
	if s != nil && s.licenseWarningDays != nil && *s.licenseWarningDays > 0 {
		return *s.licenseWarningDays
	}
	return fallback
}

func (s *Settings) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Settings) UpdatedAt() time.Time {
	return s.updatedAt
}
