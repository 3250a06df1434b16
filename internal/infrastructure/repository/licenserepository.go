package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"atrium/internal/domain/license"
	"atrium/internal/infrastructure/persistence/mappers"
	"atrium/internal/infrastructure/persistence/models"
	shareddb "atrium/internal/shared/db"
	apperrors "atrium/internal/shared/errors"
	"atrium/internal/shared/logger"
)

type LicenseRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.LicenseMapper
	logger logger.Interface
}

func NewLicenseRepository(
	db *gorm.DB,
	logger logger.Interface,
) license.LicenseRepository {
	return &LicenseRepositoryImpl{
		db:     db,
		mapper: mappers.NewLicenseMapper(),
		logger: logger,
	}
}

func (r *LicenseRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db)
}

func (r *LicenseRepositoryImpl) Create(ctx context.Context, licenseEntity *license.License) error {
	model, err := r.mapper.ToModel(licenseEntity)
	if err != nil {
		return fmt.Errorf("failed to map license entity: %w", err)
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create license in database", "error", err)
		return fmt.Errorf("failed to create license: %w", err)
	}

	if err := licenseEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set license ID: %w", err)
	}

	r.logger.Infow("license created", "id", model.ID, "company_id", model.CompanyID, "plan_id", model.PlanID)
	return nil
}

func (r *LicenseRepositoryImpl) GetByID(ctx context.Context, id uint) (*license.License, error) {
	var model models.LicenseModel

	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("license not found")
		}
		r.logger.Errorw("failed to get license by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get license: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *LicenseRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID uint) ([]*license.License, error) {
	var licenseModels []*models.LicenseModel

	if err := r.conn(ctx).
		Where("company_id = ? AND status = ?", companyID, license.StatusActive.String()).
		Find(&licenseModels).Error; err != nil {
		r.logger.Errorw("failed to get active licenses", "company_id", companyID, "error", err)
		return nil, fmt.Errorf("failed to get active licenses: %w", err)
	}

	return r.mapper.ToEntities(licenseModels)
}

// Update persists the license using its version for optimistic locking.
// A concurrent update makes RowsAffected zero and surfaces as a conflict.
func (r *LicenseRepositoryImpl) Update(ctx context.Context, licenseEntity *license.License) error {
	model, err := r.mapper.ToModel(licenseEntity)
	if err != nil {
		return fmt.Errorf("failed to map license entity: %w", err)
	}

	result := r.conn(ctx).Model(&models.LicenseModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"end_date":   model.EndDate,
			"amount":     model.Amount,
			"metadata":   model.Metadata,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update license", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update license: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("license was modified concurrently")
	}

	return nil
}

func (r *LicenseRepositoryImpl) FindOverdueCandidates(ctx context.Context, cutoff time.Time) ([]*license.License, error) {
	var licenseModels []*models.LicenseModel

	if err := r.conn(ctx).
		Where("status = ? AND end_date < ?", license.StatusActive.String(), cutoff).
		Find(&licenseModels).Error; err != nil {
		r.logger.Errorw("failed to find overdue candidates", "cutoff", cutoff, "error", err)
		return nil, fmt.Errorf("failed to find overdue candidates: %w", err)
	}

	return r.mapper.ToEntities(licenseModels)
}

func (r *LicenseRepositoryImpl) FindAllActive(ctx context.Context) ([]*license.License, error) {
	var licenseModels []*models.LicenseModel

	// The join bypasses the model-level soft delete filter on companies, so
	// licenses owned by soft-deleted companies are excluded explicitly.
	if err := r.conn(ctx).
		Joins("JOIN companies ON companies.id = licenses.company_id").
		Scopes(shareddb.NotDeletedWithAlias("companies")).
		Where("licenses.status = ?", license.StatusActive.String()).
		Find(&licenseModels).Error; err != nil {
		r.logger.Errorw("failed to find active licenses", "error", err)
		return nil, fmt.Errorf("failed to find active licenses: %w", err)
	}

	return r.mapper.ToEntities(licenseModels)
}

func (r *LicenseRepositoryImpl) FindByCompanyIDs(ctx context.Context, companyIDs []uint, statuses []license.Status) (map[uint][]*license.License, error) {
	if len(companyIDs) == 0 {
		return map[uint][]*license.License{}, nil
	}

	statusStrings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrings = append(statusStrings, s.String())
	}

	var licenseModels []*models.LicenseModel
	query := r.conn(ctx).Where("company_id IN ?", companyIDs)
	if len(statusStrings) > 0 {
		query = query.Where("status IN ?", statusStrings)
	}
	if err := query.Find(&licenseModels).Error; err != nil {
		r.logger.Errorw("failed to find licenses by company IDs", "count", len(companyIDs), "error", err)
		return nil, fmt.Errorf("failed to find licenses: %w", err)
	}

	entities, err := r.mapper.ToEntities(licenseModels)
	if err != nil {
		return nil, fmt.Errorf("failed to map licenses: %w", err)
	}

	result := make(map[uint][]*license.License)
	for _, entity := range entities {
		result[entity.CompanyID()] = append(result[entity.CompanyID()], entity)
	}
	return result, nil
}
