package model

import (
	"fmt"
	"garagebook/shared/constant"
	"garagebook/shared/timezone"
	"slices"
	"strings"
)

const (
	kindOneOff   = "one-off"
	kindPeriodic = "periodic"
)

func (r Report) Kind() string {
	if r.Periodic {
		return kindPeriodic
	}

	return kindOneOff
}

// Summary renders the report as log lines. previous is the report of the last cycle, if any.
func (r Report) Summary(previous *Report) []string {
	lines := []string{
		fmt.Sprintf("Booking report (%s) generated at %s", r.Kind(), timezone.Format(r.GeneratedAt, constant.DateFormat)),
		"Users: " + r.roleLine(),
		fmt.Sprintf("Bookings: total=%d upcoming=%d", r.TotalBookings, r.UpcomingBookings),
		fmt.Sprintf("Mechanic conflicts: %d (%s)", r.ConflictCount(), r.ConflictDelta(previous)),
	}

	for _, conflict := range r.Conflicts {
		lines = append(lines, "  "+conflict.String())
	}

	if len(r.Heatmap) > 0 {
		lines = append(lines, "Conflict heatmap:")

		for _, day := range r.Days() {
			lines = append(lines, fmt.Sprintf("  %s: %d", day, r.Heatmap[day]))
		}
	}

	return lines
}

// ConflictDelta describes the change in conflict count since previous.
func (r Report) ConflictDelta(previous *Report) string {
	if previous == nil {
		return "no previous report"
	}

	return fmt.Sprintf("%+d since previous report", r.ConflictCount()-previous.ConflictCount())
}

// Days returns the heatmap keys in calendar order.
func (r Report) Days() []string {
	days := make([]string, 0, len(r.Heatmap))
	for day := range r.Heatmap {
		days = append(days, day)
	}

	slices.Sort(days)

	return days
}

func (r Report) AlertSubject() string {
	if r.ConflictCount() == 1 {
		return "Booking conflict detected: 1 overlapping pair"
	}

	return fmt.Sprintf("Booking conflicts detected: %d overlapping pairs", r.ConflictCount())
}

func (r Report) roleLine() string {
	roles := make([]string, 0, len(r.RoleCounts.ByRole))
	for role := range r.RoleCounts.ByRole {
		roles = append(roles, role)
	}

	slices.Sort(roles)

	parts := []string{fmt.Sprintf("total=%d", r.TotalUsers)}
	for _, role := range roles {
		parts = append(parts, fmt.Sprintf("%s=%d", role, r.RoleCounts.ByRole[role]))
	}

	return strings.Join(parts, " ")
}

func (c Conflict) String() string {
	return fmt.Sprintf("mechanic %s: %s [%s, %s) overlaps %s starting %s",
		c.MechanicID,
		c.First.ID,
		timezone.Format(c.First.ScheduledAt, constant.DateFormat),
		timezone.Format(c.First.End(), constant.DateFormat),
		c.Second.ID,
		timezone.Format(c.Second.ScheduledAt, constant.DateFormat),
	)
}
