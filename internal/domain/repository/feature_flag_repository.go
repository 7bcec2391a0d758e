package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"
)

type FeatureFlagRepository interface {
	Create(ctx context.Context, flag *entity.FeatureFlag) error
	FindByKey(ctx context.Context, key string) (*entity.FeatureFlag, error)
	// FindGlobalActive returns every active flag marked global.
	FindGlobalActive(ctx context.Context) ([]entity.FeatureFlag, error)
	// FindEnabledByRole returns the active flags the role has an explicit
	// enabled assignment for.
	FindEnabledByRole(ctx context.Context, roleID int) ([]entity.FeatureFlag, error)
	// FindRoleAssignment returns the role's assignment for a flag, or nil
	// when the role has none.
	FindRoleAssignment(ctx context.Context, roleID, flagID int) (*entity.RoleFeatureFlag, error)
	AssignToRole(ctx context.Context, assignment *entity.RoleFeatureFlag) error
}
