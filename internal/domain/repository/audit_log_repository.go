package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAllByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]entity.AuditLog, error)
}
