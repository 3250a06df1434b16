package company

import (
	"fmt"
	"time"
)

// Type discriminates the three levels of the tenant hierarchy.
type Type string

const (
	// TypePlatform is the single platform-owner company.
	TypePlatform Type = "platform"
	// TypeWhitelabel is a reseller partner reporting directly to the platform.
	TypeWhitelabel Type = "whitelabel"
	// TypeDirect is an end-customer company, either a child of a whitelabel
	// partner or a direct customer of the platform.
	TypeDirect Type = "direct"
)

// ValidTypes enumerates the accepted company types.
var ValidTypes = map[Type]bool{
	TypePlatform:   true,
	TypeWhitelabel: true,
	TypeDirect:     true,
}

func (t Type) String() string {
	return string(t)
}

// Company is the tenant aggregate root. The parent reference encodes the
// hierarchy: whitelabel and platform companies have no parent; a direct
// company may reference the whitelabel partner it belongs to.
type Company struct {
	id                    uint
	name                  string
	email                 string
	companyType           Type
	parentCompanyID       *uint
	accessBlockedByParent bool
	createdAt             time.Time
	updatedAt             time.Time
}

// NewCompany creates a new company, enforcing the hierarchy invariants.
func NewCompany(name, email string, companyType Type, parentCompanyID *uint) (*Company, error) {
	if name == "" {
		return nil, fmt.Errorf("company name is required")
	}
	if !ValidTypes[companyType] {
		return nil, fmt.Errorf("invalid company type: %s", companyType)
	}
	if companyType != TypeDirect && parentCompanyID != nil {
		return nil, fmt.Errorf("%s company cannot have a parent", companyType)
	}
	if parentCompanyID != nil && *parentCompanyID == 0 {
		return nil, fmt.Errorf("parent company ID cannot be zero")
	}

	now := time.Now().UTC()
	return &Company{
		name:            name,
		email:           email,
		companyType:     companyType,
		parentCompanyID: parentCompanyID,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructCompany reconstructs a company from persistence.
func ReconstructCompany(
	id uint,
	name, email string,
	companyType Type,
	parentCompanyID *uint,
	accessBlockedByParent bool,
	createdAt, updatedAt time.Time,
) (*Company, error) {
	if id == 0 {
		return nil, fmt.Errorf("company ID cannot be zero")
	}
	if !ValidTypes[companyType] {
		return nil, fmt.Errorf("invalid company type: %s", companyType)
	}
	if companyType != TypeDirect && parentCompanyID != nil {
		return nil, fmt.Errorf("%s company cannot have a parent", companyType)
	}

	return &Company{
		id:                    id,
		name:                  name,
		email:                 email,
		companyType:           companyType,
		parentCompanyID:       parentCompanyID,
		accessBlockedByParent: accessBlockedByParent,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}, nil
}

// ID returns the company ID
func (c *Company) ID() uint {
	return c.id
}

// SetID sets the company ID (only for persistence layer use)
func (c *Company) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("company ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("company ID cannot be zero")
	}
	c.id = id
	return nil
}

// Name returns the company name
func (c *Company) Name() string {
	return c.name
}

// Email returns the billing/contact email
func (c *Company) Email() string {
	return c.email
}

// CompanyType returns the hierarchy level of the company
func (c *Company) CompanyType() Type {
	return c.companyType
}

// ParentCompanyID returns the parent reference, nil for top-level companies
func (c *Company) ParentCompanyID() *uint {
	return c.parentCompanyID
}

// AccessBlockedByParent reports the manual block flag set by the parent
func (c *Company) AccessBlockedByParent() bool {
	return c.accessBlockedByParent
}

func (c *Company) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Company) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsPlatform reports whether the company is the platform owner level.
func (c *Company) IsPlatform() bool {
	return c.companyType == TypePlatform
}

// IsWhitelabel reports whether the company is a reseller partner.
func (c *Company) IsWhitelabel() bool {
	return c.companyType == TypeWhitelabel
}

// IsDirect reports whether the company is an end customer.
func (c *Company) IsDirect() bool {
	return c.companyType == TypeDirect
}

// HasParent reports whether the company belongs to a whitelabel partner.
func (c *Company) HasParent() bool {
	return c.parentCompanyID != nil
}

// BlockByParent sets the manual access block. Only meaningful for direct
// companies; the caller is responsible for verifying it acts as the parent.
func (c *Company) BlockByParent() error {
	if !c.IsDirect() {
		return fmt.Errorf("cannot block %s company by parent", c.companyType)
	}
	if c.accessBlockedByParent {
		return nil
	}
	c.accessBlockedByParent = true
	c.updatedAt = time.Now().UTC()
	return nil
}

// UnblockByParent clears the manual access block.
func (c *Company) UnblockByParent() error {
	if !c.IsDirect() {
		return fmt.Errorf("cannot unblock %s company by parent", c.companyType)
	}
	if !c.accessBlockedByParent {
		return nil
	}
	c.accessBlockedByParent = false
	c.updatedAt = time.Now().UTC()
	return nil
}
