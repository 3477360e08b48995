package model

import (
	"garagebook/shared/constant"
	"garagebook/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldCustomerID      = "customer_id"
	FieldVehicle         = "vehicle"
	FieldServiceType     = "service_type"
	FieldScheduledAt     = "scheduled_at"
	FieldMechanicID      = "mechanic_id"
	FieldStatus          = "status"
	FieldNotes           = "notes"
	FieldDurationMinutes = "duration_minutes"
)

// Booking is a vehicle-service appointment. MechanicID and DurationMinutes are nullable columns.
type Booking struct {
	ID              string    `db:"id"`
	CustomerID      string    `db:"customer_id"`
	Vehicle         string    `db:"vehicle"`
	ServiceType     string    `db:"service_type"`
	ScheduledAt     time.Time `db:"scheduled_at"`
	MechanicID      *string   `db:"mechanic_id"`
	Status          string    `db:"status"`
	Notes           string    `db:"notes"`
	DurationMinutes *int      `db:"duration_minutes"`
	CustomerName    *string   `column:"name"  db:"customer_name"  table:"users"`
	CustomerEmail   *string   `column:"email" db:"customer_email" table:"users"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = bookings.customer_id"
}

// Duration falls back to the default slot length when the column is null or not positive.
func (b Booking) Duration() time.Duration {
	if b.DurationMinutes == nil || *b.DurationMinutes <= 0 {
		return constant.DefaultBookingDurationMinutes * time.Minute
	}

	return time.Duration(*b.DurationMinutes) * time.Minute
}

// Mechanic reports the assigned mechanic. An empty id counts as unassigned.
func (b Booking) Mechanic() (string, bool) {
	if b.MechanicID == nil || *b.MechanicID == "" {
		return "", false
	}

	return *b.MechanicID, true
}

func (b Booking) End() time.Time {
	return b.ScheduledAt.Add(b.Duration())
}
