package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"scheduled to confirmed", AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{"scheduled to in_progress", AppointmentStatusScheduled, AppointmentStatusInProgress, true},
		{"scheduled to completed", AppointmentStatusScheduled, AppointmentStatusCompleted, true},
		{"scheduled to cancelled", AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{"scheduled to no_show", AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{"confirmed to in_progress", AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"in_progress to completed", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"in_progress to no_show", AppointmentStatusInProgress, AppointmentStatusNoShow, true},

		// same-state no-ops on non-terminal statuses
		{"scheduled to scheduled", AppointmentStatusScheduled, AppointmentStatusScheduled, true},
		{"in_progress to in_progress", AppointmentStatusInProgress, AppointmentStatusInProgress, true},

		// backwards moves between early statuses stay legal
		{"in_progress to scheduled", AppointmentStatusInProgress, AppointmentStatusScheduled, true},
		{"confirmed to scheduled", AppointmentStatusConfirmed, AppointmentStatusScheduled, true},

		// terminal statuses never return to an earlier one
		{"completed to scheduled", AppointmentStatusCompleted, AppointmentStatusScheduled, false},
		{"completed to confirmed", AppointmentStatusCompleted, AppointmentStatusConfirmed, false},
		{"completed to in_progress", AppointmentStatusCompleted, AppointmentStatusInProgress, false},
		{"cancelled to scheduled", AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{"cancelled to confirmed", AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{"cancelled to in_progress", AppointmentStatusCancelled, AppointmentStatusInProgress, false},
		{"no_show to scheduled", AppointmentStatusNoShow, AppointmentStatusScheduled, false},
		{"no_show to confirmed", AppointmentStatusNoShow, AppointmentStatusConfirmed, false},
		{"no_show to in_progress", AppointmentStatusNoShow, AppointmentStatusInProgress, false},

		// cancellation only from scheduled or confirmed
		{"in_progress to cancelled", AppointmentStatusInProgress, AppointmentStatusCancelled, false},
		{"completed to cancelled", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"no_show to cancelled", AppointmentStatusNoShow, AppointmentStatusCancelled, false},
		{"cancelled to cancelled", AppointmentStatusCancelled, AppointmentStatusCancelled, false},

		// moves between terminal statuses other than cancelled stay legal
		{"cancelled to no_show", AppointmentStatusCancelled, AppointmentStatusNoShow, true},
		{"completed to no_show", AppointmentStatusCompleted, AppointmentStatusNoShow, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				var transitionErr *InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.from, transitionErr.From)
				assert.Equal(t, tt.to, transitionErr.To)
			}
		})
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	err := ValidateTransition("unknown", AppointmentStatusConfirmed)
	require.Error(t, err)
	var transitionErr *InvalidTransitionError
	assert.False(t, errors.As(err, &transitionErr))

	err = ValidateTransition(AppointmentStatusScheduled, "unknown")
	require.Error(t, err)
}

func TestAppointmentTransition(t *testing.T) {
	appointment := &Appointment{Status: AppointmentStatusScheduled}

	require.NoError(t, appointment.Transition(AppointmentStatusConfirmed))
	assert.Equal(t, AppointmentStatusConfirmed, appointment.Status)

	require.NoError(t, appointment.Transition(AppointmentStatusCompleted))
	assert.Equal(t, AppointmentStatusCompleted, appointment.Status)

	// rejected transition leaves the status untouched
	err := appointment.Transition(AppointmentStatusScheduled)
	require.Error(t, err)
	assert.Equal(t, AppointmentStatusCompleted, appointment.Status)
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusNoShow.IsTerminal())
	assert.False(t, AppointmentStatusScheduled.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.False(t, AppointmentStatusInProgress.IsTerminal())
}
