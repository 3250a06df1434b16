package company

import "context"

type Repository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id uint) (*Company, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Company, error)
	GetByType(ctx context.Context, companyType Type) ([]*Company, error)
	// GetChildrenOfPartners returns the direct companies whose parent is one
	// of the given whitelabel partners.
	GetChildrenOfPartners(ctx context.Context, partnerIDs []uint) ([]*Company, error)
	Update(ctx context.Context, company *Company) error
}

type SettingsRepository interface {
	GetByCompanyID(ctx context.Context, companyID uint) (*Settings, error)
	// GetByCompanyIDs returns settings keyed by company ID. Companies without
	// a settings row are absent from the map.
	GetByCompanyIDs(ctx context.Context, companyIDs []uint) (map[uint]*Settings, error)
}
