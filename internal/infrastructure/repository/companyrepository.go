package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"atrium/internal/domain/company"
	"atrium/internal/infrastructure/persistence/mappers"
	"atrium/internal/infrastructure/persistence/models"
	shareddb "atrium/internal/shared/db"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

type CompanyRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CompanyMapper
	logger logger.Interface
}

func NewCompanyRepository(
	db *gorm.DB,
	logger logger.Interface,
) company.Repository {
	return &CompanyRepositoryImpl{
		db:     db,
		mapper: mappers.NewCompanyMapper(),
		logger: logger,
	}
}

// conn resolves the connection, honoring an ambient transaction when one is
// carried in the context.
func (r *CompanyRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db)
}

func (r *CompanyRepositoryImpl) Create(ctx context.Context, companyEntity *company.Company) error {
	model, err := r.mapper.ToModel(companyEntity)
	if err != nil {
		return fmt.Errorf("failed to map company entity: %w", err)
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create company in database", "error", err)
		return fmt.Errorf("failed to create company: %w", err)
	}

	if err := companyEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set company ID: %w", err)
	}

	r.logger.Infow("company created", "id", model.ID, "type", model.CompanyType)
	return nil
}

func (r *CompanyRepositoryImpl) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	var model models.CompanyModel

	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("company not found")
		}
		r.logger.Errorw("failed to get company by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CompanyRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*company.Company, error) {
	if len(ids) == 0 {
		return map[uint]*company.Company{}, nil
	}

	var companyModels []*models.CompanyModel
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&companyModels).Error; err != nil {
		r.logger.Errorw("failed to get companies by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}

	entities, err := r.mapper.ToEntities(companyModels)
	if err != nil {
		return nil, fmt.Errorf("failed to map companies: %w", err)
	}

	result := make(map[uint]*company.Company, len(entities))
	for _, entity := range entities {
		result[entity.ID()] = entity
	}
	return result, nil
}

func (r *CompanyRepositoryImpl) GetByType(ctx context.Context, companyType company.Type) ([]*company.Company, error) {
	var companyModels []*models.CompanyModel

	if err := r.conn(ctx).
		Where("company_type = ?", companyType.String()).
		Order("id ASC").
		Find(&companyModels).Error; err != nil {
		r.logger.Errorw("failed to get companies by type", "type", companyType.String(), "error", err)
		return nil, fmt.Errorf("failed to get companies by type: %w", err)
	}

	return r.mapper.ToEntities(companyModels)
}

func (r *CompanyRepositoryImpl) GetChildrenOfPartners(ctx context.Context, partnerIDs []uint) ([]*company.Company, error) {
	if len(partnerIDs) == 0 {
		return nil, nil
	}

	var companyModels []*models.CompanyModel
	if err := r.conn(ctx).
		Where("parent_company_id IN ? AND company_type = ?", partnerIDs, company.TypeDirect.String()).
		Order("id ASC").
		Find(&companyModels).Error; err != nil {
		r.logger.Errorw("failed to get partner children", "partner_count", len(partnerIDs), "error", err)
		return nil, fmt.Errorf("failed to get partner children: %w", err)
	}

	return r.mapper.ToEntities(companyModels)
}

func (r *CompanyRepositoryImpl) Update(ctx context.Context, companyEntity *company.Company) error {
	model, err := r.mapper.ToModel(companyEntity)
	if err != nil {
		return fmt.Errorf("failed to map company entity: %w", err)
	}

	result := r.conn(ctx).Model(&models.CompanyModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":                     model.Name,
			"email":                    model.Email,
			"access_blocked_by_parent": model.AccessBlockedByParent,
			"updated_at":               model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update company", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update company: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("company not found")
	}

	return nil
}
