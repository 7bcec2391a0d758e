package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table. Email is unique
// within a tenant, not globally: the same address may belong to users of
// different tenants. TenantID is nil only for platform-level accounts.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID  *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_users_tenant_email" json:"tenant_id,omitempty"`
	RoleID    int        `gorm:"not null;index" json:"role_id"`
	Email     string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_tenant_email" json:"email"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	FullName  string     `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Single server-tracked refresh token, overwritten on every rotation.
	// A superseded refresh token never matches and is therefore unusable.
	RefreshToken          *string    `gorm:"type:text" json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	// Relationships
	Role   Role    `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Active reports whether the user account is active.
func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}
