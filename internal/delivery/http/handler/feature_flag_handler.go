package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/response"
	"go-clinic-management/pkg/validator"

	"github.com/gorilla/mux"
)

type FeatureFlagHandler struct {
	featureFlagUsecase usecase.FeatureFlagUsecase
	validator          *validator.CustomValidator
}

func NewFeatureFlagHandler(featureFlagUsecase usecase.FeatureFlagUsecase, validator *validator.CustomValidator) *FeatureFlagHandler {
	return &FeatureFlagHandler{
		featureFlagUsecase: featureFlagUsecase,
		validator:          validator,
	}
}

func (h *FeatureFlagHandler) CreateFeatureFlag(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeatureFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	flag, err := h.featureFlagUsecase.CreateFeatureFlag(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrFeatureFlagExists {
			response.Conflict(w, "Feature flag key already exists")
			return
		}
		response.InternalServerError(w, "Failed to create feature flag")
		return
	}

	response.Success(w, http.StatusCreated, "Feature flag created successfully", flag)
}

func (h *FeatureFlagHandler) AssignToRole(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req dto.AssignFeatureFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.featureFlagUsecase.AssignToRole(r.Context(), key, &req); err != nil {
		switch err {
		case usecase.ErrFeatureFlagNotFound:
			response.NotFound(w, "Feature flag not found")
		case usecase.ErrRoleNotFound:
			response.Error(w, http.StatusBadRequest, "Role not found", nil)
		default:
			response.InternalServerError(w, "Failed to assign feature flag")
		}
		return
	}

	response.Success(w, http.StatusOK, "Feature flag assigned successfully", nil)
}

// GetMyFeatureFlags returns the flags visible to the caller: globally
// active flags plus the flags enabled for the caller's role.
func (h *FeatureFlagHandler) GetMyFeatureFlags(w http.ResponseWriter, r *http.Request) {
	userID, found := middleware.GetUserIDFromContext(r.Context())
	if !found {
		response.Unauthorized(w, "Authentication is required")
		return
	}

	flags, err := h.featureFlagUsecase.GetUserFeatureFlags(r.Context(), userID)
	if err != nil {
		if err == usecase.ErrUserNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Failed to get feature flags")
		return
	}

	response.Success(w, http.StatusOK, "Feature flags retrieved successfully", &dto.FeatureFlagListResponse{
		Flags: converter.FeatureFlagsToResponses(flags),
		Total: len(flags),
	})
}
