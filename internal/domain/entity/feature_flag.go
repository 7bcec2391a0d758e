package entity

// FeatureFlag gates functionality in two tiers. A global, active flag is
// enabled for every authenticated subject unconditionally. A non-global
// flag is enabled only through an explicit per-role assignment.
type FeatureFlag struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Key      string `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	IsActive *bool  `gorm:"not null;default:true" json:"is_active"`
	IsGlobal bool   `gorm:"not null;default:false" json:"is_global"`
	Category string `gorm:"type:varchar(50)" json:"category,omitempty"`

	// Relationships
	RoleAssignments []RoleFeatureFlag `gorm:"foreignKey:FeatureFlagID" json:"role_assignments,omitempty"`
}

func (FeatureFlag) TableName() string {
	return "feature_flags"
}

// Active reports whether the flag is active.
func (f *FeatureFlag) Active() bool {
	return f.IsActive != nil && *f.IsActive
}

// RoleFeatureFlag is the per-role flag assignment. There is no
// tenant-level override, only role-level.
type RoleFeatureFlag struct {
	RoleID        int  `gorm:"primaryKey" json:"role_id"`
	FeatureFlagID int  `gorm:"primaryKey" json:"feature_flag_id"`
	IsEnabled     bool `gorm:"not null;default:false" json:"is_enabled"`
}

func (RoleFeatureFlag) TableName() string {
	return "role_feature_flags"
}
