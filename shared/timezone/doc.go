// Package timezone pins every wall-clock computation to one application location.
//
// The location comes from APP_TIMEZONE (an IANA name such as "UTC" or "Europe/London")
// and is resolved once when the package is imported. Unknown or empty names fall back to UTC.
//
//	now := timezone.Now()
//	day := timezone.Day(booking.ScheduledAt, timezone.GetLocation())
//	t, err := timezone.Parse(time.RFC3339, "2026-01-01T10:00:00Z")
//
// Report heatmap days are computed with Day in this location.
package timezone
