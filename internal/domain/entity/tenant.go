package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated customer organization. All business data
// (users, patients, appointments) is partitioned by tenant ID.
type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Subdomain string    `gorm:"type:varchar(63);uniqueIndex;not null" json:"subdomain"`
	Slug      string    `gorm:"type:varchar(63);uniqueIndex;not null" json:"slug"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	Settings  JSON      `gorm:"type:jsonb" json:"settings,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Users []User `gorm:"foreignKey:TenantID" json:"users,omitempty"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// Active reports whether the tenant is active.
func (t *Tenant) Active() bool {
	return t.IsActive != nil && *t.IsActive
}

// Subdomains that never identify a tenant when parsed from the Host header.
var ReservedSubdomains = []string{"www", "api", "admin", "app"}

// IsReservedSubdomain reports whether the given host label must not be
// treated as a tenant subdomain.
func IsReservedSubdomain(label string) bool {
	for _, s := range ReservedSubdomains {
		if label == s {
			return true
		}
	}
	return false
}
