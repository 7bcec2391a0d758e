package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/response"
	"go-clinic-management/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type UserHandler struct {
	userUsecase       usecase.UserUsecase
	permissionUsecase usecase.PermissionUsecase
	validator         *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, permissionUsecase usecase.PermissionUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase:       userUsecase,
		permissionUsecase: permissionUsecase,
		validator:         validator,
	}
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := requestScope(w, r)
	if !ok {
		return
	}

	users, err := h.userUsecase.GetAllUsers(r.Context(), tenantID)
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	tenantID, actorID, ok := requestScope(w, r)
	if !ok {
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.UpdateUserRole(r.Context(), tenantID, actorID, userID, req.RoleID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrRoleNotFound:
			response.Error(w, http.StatusBadRequest, "Role not found", nil)
		default:
			response.InternalServerError(w, "Failed to update user role")
		}
		return
	}

	response.Success(w, http.StatusOK, "User role updated successfully", user)
}

func (h *UserHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	tenantID, actorID, ok := requestScope(w, r)
	if !ok {
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req dto.SetUserActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	user, err := h.userUsecase.SetUserActive(r.Context(), tenantID, actorID, userID, req.IsActive)
	if err != nil {
		if err == usecase.ErrUserNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Failed to update user")
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

// GetMyPermissions returns the effective permission set of the caller,
// with system.admin already expanded to the full active catalog.
func (h *UserHandler) GetMyPermissions(w http.ResponseWriter, r *http.Request) {
	userID, found := middleware.GetUserIDFromContext(r.Context())
	if !found {
		response.Unauthorized(w, "Authentication is required")
		return
	}

	permissions, err := h.permissionUsecase.GetEffectivePermissions(r.Context(), userID)
	if err != nil {
		if err == usecase.ErrUserNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Failed to get permissions")
		return
	}

	response.Success(w, http.StatusOK, "Permissions retrieved successfully", &dto.PermissionListResponse{
		Permissions: permissions,
		Total:       len(permissions),
	})
}
