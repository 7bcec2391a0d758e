package repository

import (
	"context"
	"time"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByEmail looks up by email alone, across tenants. Returns the
	// first match; callers that know the tenant should prefer
	// FindByEmailAndTenant.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByEmailAndTenant looks up by email within a single tenant.
	// A nil tenant ID matches platform-level accounts only.
	FindByEmailAndTenant(ctx context.Context, email string, tenantID *uuid.UUID) (*entity.User, error)
	FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdateRefreshToken overwrites the single stored refresh token for
	// the user. Passing nil values clears it.
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string, expiresAt *time.Time) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
