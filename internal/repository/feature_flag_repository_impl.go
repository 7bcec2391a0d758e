package repository

import (
	"context"
	"errors"

	"go-clinic-management/internal/domain/entity"
	domainRepo "go-clinic-management/internal/domain/repository"

	"gorm.io/gorm"
)

type featureFlagRepository struct {
	db *gorm.DB
}

func NewFeatureFlagRepository(db *gorm.DB) domainRepo.FeatureFlagRepository {
	return &featureFlagRepository{db: db}
}

func (r *featureFlagRepository) Create(ctx context.Context, flag *entity.FeatureFlag) error {
	return r.db.WithContext(ctx).Create(flag).Error
}

func (r *featureFlagRepository) FindByKey(ctx context.Context, key string) (*entity.FeatureFlag, error) {
	var flag entity.FeatureFlag
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&flag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flag, nil
}

func (r *featureFlagRepository) FindGlobalActive(ctx context.Context) ([]entity.FeatureFlag, error) {
	var flags []entity.FeatureFlag
	err := r.db.WithContext(ctx).Where("is_global = ? AND is_active = ?", true, true).Find(&flags).Error
	return flags, err
}

func (r *featureFlagRepository) FindEnabledByRole(ctx context.Context, roleID int) ([]entity.FeatureFlag, error) {
	var flags []entity.FeatureFlag
	err := r.db.WithContext(ctx).
		Joins("JOIN role_feature_flags ON role_feature_flags.feature_flag_id = feature_flags.id").
		Where("role_feature_flags.role_id = ? AND role_feature_flags.is_enabled = ? AND feature_flags.is_active = ?",
			roleID, true, true).
		Find(&flags).Error
	return flags, err
}

func (r *featureFlagRepository) FindRoleAssignment(ctx context.Context, roleID, flagID int) (*entity.RoleFeatureFlag, error) {
	var assignment entity.RoleFeatureFlag
	err := r.db.WithContext(ctx).
		Where("role_id = ? AND feature_flag_id = ?", roleID, flagID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *featureFlagRepository) AssignToRole(ctx context.Context, assignment *entity.RoleFeatureFlag) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}
