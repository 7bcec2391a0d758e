package dto

type UpdateUserRoleRequest struct {
	RoleID int `json:"role_id" validate:"required"`
}

type SetUserActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

type PermissionListResponse struct {
	Permissions []string `json:"permissions"`
	Total       int      `json:"total"`
}
