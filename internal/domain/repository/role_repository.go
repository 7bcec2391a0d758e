package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"
)

type RoleRepository interface {
	FindByID(ctx context.Context, id int) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	FindAll(ctx context.Context) ([]entity.Role, error)
}
