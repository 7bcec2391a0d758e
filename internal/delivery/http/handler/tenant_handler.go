package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/response"
	"go-clinic-management/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TenantHandler struct {
	tenantUsecase usecase.TenantUsecase
	validator     *validator.CustomValidator
}

func NewTenantHandler(tenantUsecase usecase.TenantUsecase, validator *validator.CustomValidator) *TenantHandler {
	return &TenantHandler{
		tenantUsecase: tenantUsecase,
		validator:     validator,
	}
}

func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tenant, err := h.tenantUsecase.CreateTenant(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSubdomainExists:
			response.Conflict(w, "Subdomain already exists")
		case usecase.ErrSlugExists:
			response.Conflict(w, "Slug already exists")
		case usecase.ErrReservedSubdomain:
			response.Error(w, http.StatusBadRequest, "Subdomain is reserved", nil)
		default:
			response.InternalServerError(w, "Failed to create tenant")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Tenant created successfully", tenant)
}

func (h *TenantHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid tenant ID", nil)
		return
	}

	tenant, err := h.tenantUsecase.GetTenant(r.Context(), tenantID)
	if err != nil {
		if err == usecase.ErrTenantNotFound {
			response.NotFound(w, "Tenant not found")
			return
		}
		response.InternalServerError(w, "Failed to get tenant")
		return
	}

	response.Success(w, http.StatusOK, "Tenant retrieved successfully", tenant)
}

func (h *TenantHandler) GetAllTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantUsecase.GetAllTenants(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get tenants")
		return
	}

	response.Success(w, http.StatusOK, "Tenants retrieved successfully", tenants)
}

func (h *TenantHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid tenant ID", nil)
		return
	}

	var req dto.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tenant, err := h.tenantUsecase.UpdateTenant(r.Context(), tenantID, &req)
	if err != nil {
		if err == usecase.ErrTenantNotFound {
			response.NotFound(w, "Tenant not found")
			return
		}
		response.InternalServerError(w, "Failed to update tenant")
		return
	}

	response.Success(w, http.StatusOK, "Tenant updated successfully", tenant)
}

func (h *TenantHandler) DeactivateTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid tenant ID", nil)
		return
	}

	if err := h.tenantUsecase.DeactivateTenant(r.Context(), tenantID); err != nil {
		if err == usecase.ErrTenantNotFound {
			response.NotFound(w, "Tenant not found")
			return
		}
		response.InternalServerError(w, "Failed to deactivate tenant")
		return
	}

	response.Success(w, http.StatusOK, "Tenant deactivated successfully", nil)
}

func (h *TenantHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid tenant ID", nil)
		return
	}

	if err := h.tenantUsecase.DeleteTenant(r.Context(), tenantID); err != nil {
		switch err {
		case usecase.ErrTenantNotFound:
			response.NotFound(w, "Tenant not found")
		case usecase.ErrTenantHasDependents:
			response.Conflict(w, "Tenant still has users, patients or appointments")
		default:
			response.InternalServerError(w, "Failed to delete tenant")
		}
		return
	}

	response.Success(w, http.StatusOK, "Tenant deleted successfully", nil)
}
