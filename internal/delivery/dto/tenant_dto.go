package dto

import (
	"time"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
)

type CreateTenantRequest struct {
	Name      string      `json:"name" validate:"required,max=255"`
	Subdomain string      `json:"subdomain" validate:"required,min=2,max=63"`
	Slug      string      `json:"slug" validate:"required,min=2,max=63"`
	Settings  entity.JSON `json:"settings,omitempty"`
}

type UpdateTenantRequest struct {
	Name     string      `json:"name,omitempty" validate:"omitempty,max=255"`
	Settings entity.JSON `json:"settings,omitempty"`
}

type TenantResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Subdomain string      `json:"subdomain"`
	Slug      string      `json:"slug"`
	IsActive  *bool       `json:"is_active"`
	Settings  entity.JSON `json:"settings,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type TenantListResponse struct {
	Tenants []TenantResponse `json:"tenants"`
	Total   int              `json:"total"`
}
