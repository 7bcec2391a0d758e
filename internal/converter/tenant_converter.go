package converter

import (
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
)

// TenantToResponse converts a Tenant entity to TenantResponse DTO
func TenantToResponse(tenant *entity.Tenant) *dto.TenantResponse {
	if tenant == nil {
		return nil
	}

	return &dto.TenantResponse{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Subdomain: tenant.Subdomain,
		Slug:      tenant.Slug,
		IsActive:  tenant.IsActive,
		Settings:  tenant.Settings,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}

// TenantsToResponses converts a slice of Tenant entities to DTOs
func TenantsToResponses(tenants []entity.Tenant) []dto.TenantResponse {
	responses := make([]dto.TenantResponse, 0, len(tenants))
	for i := range tenants {
		responses = append(responses, *TenantToResponse(&tenants[i]))
	}
	return responses
}
