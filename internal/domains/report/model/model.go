package model

import (
	alertModel "garagebook/internal/domains/alert/model"
	bookingModel "garagebook/internal/domains/booking/model"
	userModel "garagebook/internal/domains/user/model"
	"time"
)

const (
	CollectionName = "reports"

	FieldGeneratedAt = "generated_at"
)

// Snapshot is the store state one report is computed from.
type Snapshot struct {
	Users    []userModel.User
	Bookings []bookingModel.Booking
}

type RoleCounts struct {
	ByRole map[string]int `bson:"by_role" json:"by_role"`
	Total  int            `bson:"total"   json:"total"`
}

// BookingRef is the part of a booking a conflict needs to be readable without another lookup.
type BookingRef struct {
	ID              string    `bson:"id"               json:"id"`
	ScheduledAt     time.Time `bson:"scheduled_at"     json:"scheduled_at"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Vehicle         string    `bson:"vehicle"          json:"vehicle"`
	ServiceType     string    `bson:"service_type"     json:"service_type"`
}

func NewBookingRef(booking bookingModel.Booking) BookingRef {
	return BookingRef{
		ID:              booking.ID,
		ScheduledAt:     booking.ScheduledAt,
		DurationMinutes: int(booking.Duration().Minutes()),
		Vehicle:         booking.Vehicle,
		ServiceType:     booking.ServiceType,
	}
}

func (r BookingRef) End() time.Time {
	return r.ScheduledAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// Conflict is a pair of bookings of the same mechanic where Second starts before First ends.
type Conflict struct {
	MechanicID string     `bson:"mechanic_id" json:"mechanic_id"`
	First      BookingRef `bson:"first"       json:"first"`
	Second     BookingRef `bson:"second"      json:"second"`
}

type Report struct {
	GeneratedAt      time.Time      `bson:"generated_at"      json:"generated_at"`
	Periodic         bool           `bson:"periodic"          json:"periodic"`
	RoleCounts       RoleCounts     `bson:"role_counts"       json:"role_counts"`
	TotalUsers       int            `bson:"total_users"       json:"total_users"`
	TotalBookings    int            `bson:"total_bookings"    json:"total_bookings"`
	UpcomingBookings int            `bson:"upcoming_bookings" json:"upcoming_bookings"`
	Conflicts        []Conflict     `bson:"conflicts"         json:"conflicts"`
	Heatmap          map[string]int `bson:"heatmap"           json:"heatmap"`
}

func (r Report) ConflictCount() int {
	return len(r.Conflicts)
}

// Cycle is what one scheduler tick produced.
type Cycle struct {
	Report Report
	Alerts []alertModel.Outcome
}
