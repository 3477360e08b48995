package model

type Status string

const (
	StatusSent      Status = "sent"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
	StatusThrottled Status = "throttled"
)

// Outcome is the per-channel result of one alert.
type Outcome struct {
	Channel string `bson:"channel"         json:"channel"`
	Status  Status `bson:"status"          json:"status"`
	Error   string `bson:"error,omitempty" json:"error,omitempty"`
}

// Delivered reports whether at least one channel accepted the alert.
func Delivered(outcomes []Outcome) bool {
	for _, outcome := range outcomes {
		if outcome.Status == StatusSent {
			return true
		}
	}

	return false
}
