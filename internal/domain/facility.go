package domain

import "time"

// Facility represents a schedulable physical resource with an integer
// capacity (e.g. a bank of courts or a hall with several boxes).
// Facilities are never deleted, only deactivated: a deactivated facility
// rejects new reservations, existing ones remain valid.
type Facility struct {
	ID            int64
	Name          string
	CapacityUnits int // >= 1; 1 means the facility is not subdivisible
	HourlyRate    float64
	Active        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AcceptsNewBookings returns true if new reservations may target the facility
func (f *Facility) AcceptsNewBookings() bool {
	return f.Active
}
