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

type CompanySettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CompanySettingsMapper
	logger logger.Interface
}

func NewCompanySettingsRepository(
	db *gorm.DB,
	logger logger.Interface,
) company.SettingsRepository {
	return &CompanySettingsRepositoryImpl{
		db:     db,
		mapper: mappers.NewCompanySettingsMapper(),
		logger: logger,
	}
}

func (r *CompanySettingsRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db)
}

func (r *CompanySettingsRepositoryImpl) GetByCompanyID(ctx context.Context, companyID uint) (*company.Settings, error) {
	var model models.CompanySettingsModel

	if err := r.conn(ctx).Where("company_id = ?", companyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("company settings not found")
		}
		r.logger.Errorw("failed to get company settings", "company_id", companyID, "error", err)
		return nil, fmt.Errorf("failed to get company settings: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

func (r *CompanySettingsRepositoryImpl) GetByCompanyIDs(ctx context.Context, companyIDs []uint) (map[uint]*company.Settings, error) {
	if len(companyIDs) == 0 {
		return map[uint]*company.Settings{}, nil
	}

	var settingsModels []*models.CompanySettingsModel
	if err := r.conn(ctx).Where("company_id IN ?", companyIDs).Find(&settingsModels).Error; err != nil {
		r.logger.Errorw("failed to get company settings by IDs", "count", len(companyIDs), "error", err)
		return nil, fmt.Errorf("failed to get company settings: %w", err)
	}

	result := make(map[uint]*company.Settings, len(settingsModels))
	for _, model := range settingsModels {
		result[model.CompanyID] = r.mapper.ToEntity(model)
	}
	return result, nil
}
