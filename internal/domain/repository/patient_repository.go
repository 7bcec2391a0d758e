package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientRepository is tenant-scoped: every lookup and mutation binds the
// tenant ID so no query can cross tenants.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Patient, error)
	FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
