// Package aggregator computes the booking report from a snapshot. Every function is pure.
package aggregator

import (
	bookingModel "garagebook/internal/domains/booking/model"
	"garagebook/internal/domains/report/model"
	userModel "garagebook/internal/domains/user/model"
	"garagebook/shared/constant"
	"garagebook/shared/timezone"
	"slices"
	"time"
)

var knownRoles = []string{constant.RoleCustomer, constant.RoleGarage, constant.RoleAdmin}

// CountByRole always reports the three known roles, even at zero. Other roles get their own key.
func CountByRole(users []userModel.User) model.RoleCounts {
	counts := model.RoleCounts{ByRole: make(map[string]int, len(knownRoles))}

	for _, role := range knownRoles {
		counts.ByRole[role] = 0
	}

	for _, user := range users {
		counts.ByRole[user.Role]++
	}

	counts.Total = len(users)

	return counts
}

// SelectUpcoming keeps bookings scheduled at or after now, in input order.
func SelectUpcoming(bookings []bookingModel.Booking, now time.Time) []bookingModel.Booking {
	upcoming := make([]bookingModel.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if !booking.ScheduledAt.Before(now) {
			upcoming = append(upcoming, booking)
		}
	}

	return upcoming
}

// FindMechanicConflicts compares each booking only with the next one of the same mechanic.
// A short booking nested inside a long one that is not its direct predecessor is not reported.
func FindMechanicConflicts(bookings []bookingModel.Booking) []model.Conflict {
	order := []string{}
	groups := map[string][]bookingModel.Booking{}

	for _, booking := range bookings {
		mechanicID, ok := booking.Mechanic()
		if !ok {
			continue
		}

		if _, seen := groups[mechanicID]; !seen {
			order = append(order, mechanicID)
		}

		groups[mechanicID] = append(groups[mechanicID], booking)
	}

	conflicts := []model.Conflict{}

	for _, mechanicID := range order {
		group := groups[mechanicID]

		slices.SortStableFunc(group, func(a, b bookingModel.Booking) int {
			return a.ScheduledAt.Compare(b.ScheduledAt)
		})

		for i := 0; i+1 < len(group); i++ {
			current, next := group[i], group[i+1]

			if next.ScheduledAt.Before(current.End()) {
				conflicts = append(conflicts, model.Conflict{
					MechanicID: mechanicID,
					First:      model.NewBookingRef(current),
					Second:     model.NewBookingRef(next),
				})
			}
		}
	}

	return conflicts
}

// Heatmap counts conflicts per calendar day of the earlier booking, in loc
// (the application timezone when nil). Only conflicts whose earlier booking is in upcoming are counted.
func Heatmap(upcoming []bookingModel.Booking, conflicts []model.Conflict, loc *time.Location) map[string]int {
	upcomingIDs := make(map[string]struct{}, len(upcoming))
	for _, booking := range upcoming {
		upcomingIDs[booking.ID] = struct{}{}
	}

	heatmap := map[string]int{}

	for _, conflict := range conflicts {
		if _, ok := upcomingIDs[conflict.First.ID]; !ok {
			continue
		}

		heatmap[timezone.Day(conflict.First.ScheduledAt, loc)]++
	}

	return heatmap
}

// BuildReport runs the whole aggregation. Conflicts are looked for among upcoming bookings
// only, so the heatmap always sums to the conflict count.
func BuildReport(snapshot model.Snapshot, isPeriodic bool, now time.Time) model.Report {
	roleCounts := CountByRole(snapshot.Users)
	upcoming := SelectUpcoming(snapshot.Bookings, now)
	conflicts := FindMechanicConflicts(upcoming)

	return model.Report{
		GeneratedAt:      now,
		Periodic:         isPeriodic,
		RoleCounts:       roleCounts,
		TotalUsers:       roleCounts.Total,
		TotalBookings:    len(snapshot.Bookings),
		UpcomingBookings: len(upcoming),
		Conflicts:        conflicts,
		Heatmap:          Heatmap(upcoming, conflicts, now.Location()),
	}
}
