package aggregator_test

import (
	bookingModel "garagebook/internal/domains/booking/model"
	"garagebook/internal/domains/report/aggregator"
	"garagebook/internal/domains/report/model"
	userModel "garagebook/internal/domains/user/model"
	"garagebook/shared/constant"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now  = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	day2 = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func at(hour, minute int) time.Time {
	return day2.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func booking(id, mechanic string, start time.Time, minutes int) bookingModel.Booking {
	b := bookingModel.Booking{ID: id, ScheduledAt: start}

	if mechanic != "" {
		b.MechanicID = &mechanic
	}

	if minutes > 0 {
		b.DurationMinutes = &minutes
	}

	return b
}

func pairs(conflicts []model.Conflict) [][2]string {
	out := make([][2]string, len(conflicts))
	for i, conflict := range conflicts {
		out[i] = [2]string{conflict.First.ID, conflict.Second.ID}
	}

	return out
}

func sum(heatmap map[string]int) int {
	total := 0
	for _, count := range heatmap {
		total += count
	}

	return total
}

func TestCountByRole(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		expected map[string]int
	}{
		{
			name:     "empty",
			roles:    nil,
			expected: map[string]int{constant.RoleCustomer: 0, constant.RoleGarage: 0, constant.RoleAdmin: 0},
		},
		{
			name:     "mixed",
			roles:    []string{constant.RoleCustomer, constant.RoleCustomer, constant.RoleGarage, constant.RoleAdmin},
			expected: map[string]int{constant.RoleCustomer: 2, constant.RoleGarage: 1, constant.RoleAdmin: 1},
		},
		{
			name:     "unknown role keeps its own key",
			roles:    []string{constant.RoleGarage, "dispatcher"},
			expected: map[string]int{constant.RoleCustomer: 0, constant.RoleGarage: 1, constant.RoleAdmin: 0, "dispatcher": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := make([]userModel.User, len(tt.roles))
			for i, role := range tt.roles {
				users[i] = userModel.User{ID: string(rune('a' + i)), Role: role}
			}

			counts := aggregator.CountByRole(users)

			assert.Equal(t, tt.expected, counts.ByRole)
			assert.Equal(t, len(users), counts.Total)
			assert.Equal(t, counts.Total, sum(counts.ByRole))
		})
	}
}

func TestSelectUpcoming(t *testing.T) {
	bookings := []bookingModel.Booking{
		booking("late", "", now.Add(2*time.Hour), 0),
		booking("past", "", now.Add(-time.Minute), 0),
		booking("exact", "", now, 0),
		booking("early", "", now.Add(time.Hour), 0),
	}

	upcoming := aggregator.SelectUpcoming(bookings, now)

	ids := []string{}
	for _, b := range upcoming {
		ids = append(ids, b.ID)
	}

	assert.Equal(t, []string{"late", "exact", "early"}, ids)
	assert.Empty(t, aggregator.SelectUpcoming(nil, now))
}

func TestFindMechanicConflicts(t *testing.T) {
	tests := []struct {
		name     string
		bookings []bookingModel.Booking
		expected [][2]string
	}{
		{
			name:     "no bookings",
			expected: [][2]string{},
		},
		{
			name: "half hour overlap",
			bookings: []bookingModel.Booking{
				booking("b1", "m1", at(10, 0), 0),
				booking("b2", "m1", at(10, 30), 0),
			},
			expected: [][2]string{{"b1", "b2"}},
		},
		{
			name: "back to back",
			bookings: []bookingModel.Booking{
				booking("b1", "m1", at(10, 0), 0),
				booking("b2", "m1", at(11, 0), 0),
			},
			expected: [][2]string{},
		},
		{
			name: "identical start",
			bookings: []bookingModel.Booking{
				booking("b1", "m1", at(9, 0), 15),
				booking("b2", "m1", at(9, 0), 15),
			},
			expected: [][2]string{{"b1", "b2"}},
		},
		{
			name: "unassigned never conflict",
			bookings: []bookingModel.Booking{
				booking("b1", "", at(10, 0), 0),
				booking("b2", "", at(10, 0), 0),
				{ID: "b3", ScheduledAt: at(10, 0), MechanicID: new(string)},
			},
			expected: [][2]string{},
		},
		{
			name: "different mechanics",
			bookings: []bookingModel.Booking{
				booking("b1", "m1", at(10, 0), 0),
				booking("b2", "m2", at(10, 0), 0),
			},
			expected: [][2]string{},
		},
		{
			name: "unsorted input",
			bookings: []bookingModel.Booking{
				booking("b2", "m1", at(10, 30), 0),
				booking("b1", "m1", at(10, 0), 0),
			},
			expected: [][2]string{{"b1", "b2"}},
		},
		{
			name: "explicit duration extends the slot",
			bookings: []bookingModel.Booking{
				booking("b1", "m1", at(10, 0), 120),
				booking("b2", "m1", at(11, 30), 0),
			},
			expected: [][2]string{{"b1", "b2"}},
		},
		{
			name: "nested booking beyond the neighbour is missed",
			bookings: []bookingModel.Booking{
				booking("long", "m1", at(10, 0), 180),
				booking("short", "m1", at(10, 30), 30),
				booking("nested", "m1", at(11, 30), 30),
			},
			expected: [][2]string{{"long", "short"}},
		},
		{
			name: "mechanics in order of first appearance",
			bookings: []bookingModel.Booking{
				booking("m2-a", "m2", at(8, 0), 0),
				booking("m1-a", "m1", at(7, 0), 0),
				booking("m2-b", "m2", at(8, 30), 0),
				booking("m1-b", "m1", at(7, 30), 0),
			},
			expected: [][2]string{{"m2-a", "m2-b"}, {"m1-a", "m1-b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := aggregator.FindMechanicConflicts(tt.bookings)

			assert.Equal(t, tt.expected, pairs(conflicts))

			for _, conflict := range conflicts {
				assert.True(t, conflict.Second.ScheduledAt.Before(conflict.First.End()))
				assert.False(t, conflict.Second.ScheduledAt.Before(conflict.First.ScheduledAt))
			}
		})
	}
}

func TestFindMechanicConflicts_DoesNotReorderInput(t *testing.T) {
	bookings := []bookingModel.Booking{
		booking("b2", "m1", at(10, 30), 0),
		booking("b1", "m1", at(10, 0), 0),
	}

	aggregator.FindMechanicConflicts(bookings)

	assert.Equal(t, "b2", bookings[0].ID)
	assert.Equal(t, "b1", bookings[1].ID)
}

func TestHeatmap(t *testing.T) {
	first := booking("b1", "m1", time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC), 0)
	second := booking("b2", "m1", time.Date(2026, 3, 2, 23, 45, 0, 0, time.UTC), 0)
	conflicts := aggregator.FindMechanicConflicts([]bookingModel.Booking{first, second})
	require.Len(t, conflicts, 1)

	jakarta := time.FixedZone("WIB", 7*60*60)

	assert.Equal(t, map[string]int{"2026-03-02": 1}, aggregator.Heatmap([]bookingModel.Booking{first, second}, conflicts, time.UTC))
	assert.Equal(t, map[string]int{"2026-03-03": 1}, aggregator.Heatmap([]bookingModel.Booking{first, second}, conflicts, jakarta))
	assert.Equal(t, map[string]int{"2026-03-02": 1}, aggregator.Heatmap([]bookingModel.Booking{first}, conflicts, nil))
	assert.Empty(t, aggregator.Heatmap([]bookingModel.Booking{second}, conflicts, time.UTC))
}

func TestBuildReport(t *testing.T) {
	tests := []struct {
		name          string
		snapshot      model.Snapshot
		periodic      bool
		wantBookings  int
		wantUpcoming  int
		wantConflicts [][2]string
		wantHeatmap   map[string]int
	}{
		{
			name:          "empty snapshot",
			snapshot:      model.Snapshot{},
			wantConflicts: [][2]string{},
			wantHeatmap:   map[string]int{},
		},
		{
			name: "overlap and back to back",
			snapshot: model.Snapshot{
				Users: []userModel.User{{ID: "m1", Role: constant.RoleGarage}, {ID: "c1", Role: constant.RoleCustomer}},
				Bookings: []bookingModel.Booking{
					booking("b1", "m1", at(10, 0), 0),
					booking("b2", "m1", at(10, 30), 0),
					booking("b3", "m1", at(12, 0), 0),
					booking("b4", "m1", at(13, 0), 0),
				},
			},
			periodic:      true,
			wantBookings:  4,
			wantUpcoming:  4,
			wantConflicts: [][2]string{{"b1", "b2"}},
			wantHeatmap:   map[string]int{"2026-03-02": 1},
		},
		{
			name: "past bookings are ignored",
			snapshot: model.Snapshot{
				Bookings: []bookingModel.Booking{
					booking("old1", "m1", now.Add(-2*time.Hour), 0),
					booking("old2", "m1", now.Add(-90*time.Minute), 0),
					booking("b1", "m1", at(9, 0), 0),
					booking("b2", "m1", at(9, 0), 0),
					booking("b3", "m2", time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC), 0),
					booking("b4", "m2", time.Date(2026, 3, 4, 15, 10, 0, 0, time.UTC), 0),
				},
			},
			wantBookings:  6,
			wantUpcoming:  4,
			wantConflicts: [][2]string{{"b1", "b2"}, {"b3", "b4"}},
			wantHeatmap:   map[string]int{"2026-03-02": 1, "2026-03-04": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := aggregator.BuildReport(tt.snapshot, tt.periodic, now)

			assert.Equal(t, now, report.GeneratedAt)
			assert.Equal(t, tt.periodic, report.Periodic)
			assert.Equal(t, len(tt.snapshot.Users), report.TotalUsers)
			assert.Equal(t, report.TotalUsers, sum(report.RoleCounts.ByRole))
			assert.Equal(t, tt.wantBookings, report.TotalBookings)
			assert.Equal(t, tt.wantUpcoming, report.UpcomingBookings)
			assert.Equal(t, tt.wantConflicts, pairs(report.Conflicts))
			assert.Equal(t, tt.wantHeatmap, report.Heatmap)
			assert.Equal(t, report.ConflictCount(), sum(report.Heatmap))
		})
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	snapshot := model.Snapshot{
		Users: []userModel.User{{ID: "m1", Role: constant.RoleGarage}},
		Bookings: []bookingModel.Booking{
			booking("b2", "m1", at(10, 30), 0),
			booking("b1", "m1", at(10, 0), 0),
		},
	}

	first := aggregator.BuildReport(snapshot, false, now)
	second := aggregator.BuildReport(snapshot, false, now)

	assert.Equal(t, first, second)
}
