package dto

type CreateFeatureFlagRequest struct {
	Key      string `json:"key" validate:"required,max=100"`
	IsGlobal bool   `json:"is_global"`
	Category string `json:"category,omitempty" validate:"omitempty,max=50"`
}

type AssignFeatureFlagRequest struct {
	RoleID    int  `json:"role_id" validate:"required"`
	IsEnabled bool `json:"is_enabled"`
}

type FeatureFlagResponse struct {
	ID       int    `json:"id"`
	Key      string `json:"key"`
	IsActive *bool  `json:"is_active"`
	IsGlobal bool   `json:"is_global"`
	Category string `json:"category,omitempty"`
}

type FeatureFlagListResponse struct {
	Flags []FeatureFlagResponse `json:"flags"`
	Total int                   `json:"total"`
}
