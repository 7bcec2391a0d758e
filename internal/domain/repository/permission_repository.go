package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"
)

type PermissionRepository interface {
	Create(ctx context.Context, permission *entity.Permission) error
	FindByName(ctx context.Context, name string) (*entity.Permission, error)
	// FindActiveByRole returns the active permissions assigned to a role.
	FindActiveByRole(ctx context.Context, roleID int) ([]entity.Permission, error)
	// FindAllActive returns every active permission in the catalog.
	FindAllActive(ctx context.Context) ([]entity.Permission, error)
	AssignToRole(ctx context.Context, roleID, permissionID int) error
}
