package entity

import (
	"regexp"
	"strings"
)

// Permission is an immutable catalog entry. Names follow the convention
// "resource.action" with an optional ":own" suffix meaning the grant is
// scoped to records the subject owns. The convention is enforced by a
// format check at creation time, not by a closed enum, so administrators
// can extend the catalog at runtime.
type Permission struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    *bool  `gorm:"not null;default:true" json:"is_active"`

	// Relationships
	Roles []Role `gorm:"many2many:role_permissions;joinForeignKey:PermissionID;joinReferences:RoleID" json:"roles,omitempty"`
}

func (Permission) TableName() string {
	return "permissions"
}

// RolePermission is the role-to-permission assignment join table.
type RolePermission struct {
	RoleID       int `gorm:"primaryKey" json:"role_id"`
	PermissionID int `gorm:"primaryKey" json:"permission_id"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// Active reports whether the permission is active.
func (p *Permission) Active() bool {
	return p.IsActive != nil && *p.IsActive
}

// PermissionSystemAdmin is the sentinel permission granting everything.
const PermissionSystemAdmin = "system.admin"

// OwnSuffix marks a permission as scoped to records the subject owns.
const OwnSuffix = ":own"

var permissionNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[a-z][a-z0-9_]*(:own)?$`)

// IsValidPermissionName checks the "resource.action" / "resource.action:own"
// naming convention.
func IsValidPermissionName(name string) bool {
	return permissionNamePattern.MatchString(name)
}

// IsOwnScoped reports whether the permission name carries the ":own" suffix.
func IsOwnScoped(name string) bool {
	return strings.HasSuffix(name, OwnSuffix)
}

// StripOwnScope returns the unscoped form of an ":own" permission name.
// Names without the suffix are returned unchanged.
func StripOwnScope(name string) string {
	return strings.TrimSuffix(name, OwnSuffix)
}

// PermissionSatisfied reports whether the required permission is covered by
// the given effective set. A literal match always satisfies. system.admin
// satisfies everything. An ":own" requirement is satisfied by the unscoped
// form of the same permission; the converse never holds.
func PermissionSatisfied(effective map[string]struct{}, required string) bool {
	if _, ok := effective[PermissionSystemAdmin]; ok {
		return true
	}
	if _, ok := effective[required]; ok {
		return true
	}
	if IsOwnScoped(required) {
		if _, ok := effective[StripOwnScope(required)]; ok {
			return true
		}
	}
	return false
}
