package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// IsValid reports whether the value is a known appointment status.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether the status is absorbing with respect to the
// earlier lifecycle states: once completed, cancelled or no_show, an
// appointment can never return to scheduled, confirmed or in_progress.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

func (s AppointmentStatus) isEarly() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress:
		return true
	}
	return false
}

// InvalidTransitionError names the rejected from/to status pair. Callers
// surface it as a client error, never a server fault.
type InvalidTransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid appointment status transition from %q to %q", e.From, e.To)
}

// ValidateTransition enforces the appointment lifecycle rules. The machine
// uses a deny list rather than an allow list: transitioning out of a
// terminal status back into an earlier one is always illegal, cancellation
// is only permitted from scheduled or confirmed, and everything else
// (including same-state no-ops) is allowed.
func ValidateTransition(from, to AppointmentStatus) error {
	if !from.IsValid() {
		return fmt.Errorf("unknown appointment status %q", from)
	}
	if !to.IsValid() {
		return fmt.Errorf("unknown appointment status %q", to)
	}
	if from.IsTerminal() && to.isEarly() {
		return &InvalidTransitionError{From: from, To: to}
	}
	if to == AppointmentStatusCancelled &&
		from != AppointmentStatusScheduled && from != AppointmentStatusConfirmed {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// Appointment represents a clinic visit. Every appointment belongs to
// exactly one tenant; queries on behalf of a tenant-scoped request must
// filter by tenant ID.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProviderID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"provider_id"`
	ScheduledAt time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Fee         decimal.Decimal   `gorm:"type:decimal(10,2)" json:"fee"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Tenant   Tenant  `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Patient  Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Provider User    `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Transition moves the appointment to the target status after validating
// the lifecycle rules. Invoked from every status-changing call site.
func (a *Appointment) Transition(to AppointmentStatus) error {
	if err := ValidateTransition(a.Status, to); err != nil {
		return err
	}
	a.Status = to
	return nil
}
