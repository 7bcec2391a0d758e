package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    *bool  `gorm:"not null;default:true" json:"is_active"`

	// Relationships
	Users       []User       `gorm:"foreignKey:RoleID" json:"users,omitempty"`
	Permissions []Permission `gorm:"many2many:role_permissions;joinForeignKey:RoleID;joinReferences:PermissionID" json:"permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Active reports whether the role is active.
func (r *Role) Active() bool {
	return r.IsActive != nil && *r.IsActive
}

// Well-known role names seeded at install time. Administrators may add
// more at runtime; nothing in the code depends on this list being closed.
const (
	RoleAdmin        = "admin"
	RoleVeterinarian = "veterinarian"
	RoleReceptionist = "receptionist"
	RoleCustomer     = "customer"
)
