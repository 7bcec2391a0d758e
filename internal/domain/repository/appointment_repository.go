package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentRepository is tenant-scoped: every lookup and mutation binds
// the tenant ID so no query can cross tenants.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error)
	FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
