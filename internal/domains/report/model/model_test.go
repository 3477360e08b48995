package model_test

import (
	bookingModel "garagebook/internal/domains/booking/model"
	"garagebook/internal/domains/report/model"
	"garagebook/shared/constant"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() model.Report {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	return model.Report{
		GeneratedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		Periodic:    true,
		RoleCounts: model.RoleCounts{
			ByRole: map[string]int{constant.RoleAdmin: 1, constant.RoleCustomer: 3, constant.RoleGarage: 2},
			Total:  6,
		},
		TotalUsers:       6,
		TotalBookings:    5,
		UpcomingBookings: 4,
		Conflicts: []model.Conflict{
			{
				MechanicID: "m1",
				First:      model.BookingRef{ID: "b1", ScheduledAt: start, DurationMinutes: 60},
				Second:     model.BookingRef{ID: "b2", ScheduledAt: start.Add(30 * time.Minute), DurationMinutes: 60},
			},
		},
		Heatmap: map[string]int{"2026-03-05": 2, "2026-03-02": 1},
	}
}

func TestNewBookingRef(t *testing.T) {
	ref := model.NewBookingRef(bookingModel.Booking{ID: "b1", Vehicle: "Civic", ServiceType: "tyres"})

	assert.Equal(t, 60, ref.DurationMinutes)
	assert.Equal(t, "Civic", ref.Vehicle)
	assert.Equal(t, time.Hour, ref.End().Sub(ref.ScheduledAt))
}

func TestReport_Summary(t *testing.T) {
	report := sampleReport()

	lines := report.Summary(nil)
	require.Len(t, lines, 8)

	assert.True(t, strings.HasPrefix(lines[0], "Booking report (periodic) generated at "))
	assert.Equal(t, "Users: total=6 admin=1 customer=3 garage=2", lines[1])
	assert.Equal(t, "Bookings: total=5 upcoming=4", lines[2])
	assert.Equal(t, "Mechanic conflicts: 1 (no previous report)", lines[3])
	assert.Contains(t, lines[4], "mechanic m1: b1")
	assert.Contains(t, lines[4], "overlaps b2")
	assert.Equal(t, "Conflict heatmap:", lines[5])
	assert.Equal(t, "  2026-03-02: 1", lines[6])
	assert.Equal(t, "  2026-03-05: 2", lines[7])
}

func TestReport_SummaryWithoutConflicts(t *testing.T) {
	report := model.Report{RoleCounts: model.RoleCounts{ByRole: map[string]int{}}}

	lines := report.Summary(&model.Report{})

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "(one-off)")
	assert.Equal(t, "Users: total=0", lines[1])
	assert.Equal(t, "Mechanic conflicts: 0 (+0 since previous report)", lines[3])
}

func TestReport_ConflictDelta(t *testing.T) {
	report := sampleReport()
	previous := model.Report{Conflicts: make([]model.Conflict, 3)}

	assert.Equal(t, "no previous report", report.ConflictDelta(nil))
	assert.Equal(t, "-2 since previous report", report.ConflictDelta(&previous))
	assert.Equal(t, "+1 since previous report", report.ConflictDelta(&model.Report{}))
}

func TestReport_AlertSubject(t *testing.T) {
	report := sampleReport()
	assert.Equal(t, "Booking conflict detected: 1 overlapping pair", report.AlertSubject())

	report.Conflicts = append(report.Conflicts, report.Conflicts[0])
	assert.Equal(t, "Booking conflicts detected: 2 overlapping pairs", report.AlertSubject())
}
