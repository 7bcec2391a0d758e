package converter

import (
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
)

// FeatureFlagToResponse converts a FeatureFlag entity to FeatureFlagResponse DTO
func FeatureFlagToResponse(flag *entity.FeatureFlag) *dto.FeatureFlagResponse {
	if flag == nil {
		return nil
	}

	return &dto.FeatureFlagResponse{
		ID:       flag.ID,
		Key:      flag.Key,
		IsActive: flag.IsActive,
		IsGlobal: flag.IsGlobal,
		Category: flag.Category,
	}
}

// FeatureFlagsToResponses converts a slice of FeatureFlag entities to DTOs
func FeatureFlagsToResponses(flags []entity.FeatureFlag) []dto.FeatureFlagResponse {
	responses := make([]dto.FeatureFlagResponse, 0, len(flags))
	for i := range flags {
		responses = append(responses, *FeatureFlagToResponse(&flags[i]))
	}
	return responses
}
