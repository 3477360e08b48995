package dto

import (
	alertModel "garagebook/internal/domains/alert/model"
	"garagebook/internal/domains/report/model"
	"garagebook/shared/constant"
	"garagebook/shared/timezone"
)

type BookingRefResponse struct {
	ID              string `json:"id"`
	ScheduledAt     string `json:"scheduled_at"`
	EndsAt          string `json:"ends_at"`
	DurationMinutes int    `json:"duration_minutes"`
	Vehicle         string `json:"vehicle,omitempty"`
	ServiceType     string `json:"service_type,omitempty"`
}

func (r *BookingRefResponse) FromModel(ref model.BookingRef) {
	r.ID = ref.ID
	r.ScheduledAt = timezone.Format(ref.ScheduledAt, constant.DateFormat)
	r.EndsAt = timezone.Format(ref.End(), constant.DateFormat)
	r.DurationMinutes = ref.DurationMinutes
	r.Vehicle = ref.Vehicle
	r.ServiceType = ref.ServiceType
}

type ConflictResponse struct {
	MechanicID string             `json:"mechanic_id"`
	First      BookingRefResponse `json:"first"`
	Second     BookingRefResponse `json:"second"`
}

type ReportResponse struct {
	GeneratedAt      string             `json:"generated_at"`
	Kind             string             `json:"kind"`
	RoleCounts       map[string]int     `json:"role_counts"`
	TotalUsers       int                `json:"total_users"`
	TotalBookings    int                `json:"total_bookings"`
	UpcomingBookings int                `json:"upcoming_bookings"`
	ConflictCount    int                `json:"conflict_count"`
	Conflicts        []ConflictResponse `json:"conflicts"`
	Heatmap          map[string]int     `json:"heatmap"`
}

func (r *ReportResponse) FromModel(report model.Report) {
	r.GeneratedAt = timezone.Format(report.GeneratedAt, constant.DateFormat)
	r.Kind = report.Kind()
	r.RoleCounts = report.RoleCounts.ByRole
	r.TotalUsers = report.TotalUsers
	r.TotalBookings = report.TotalBookings
	r.UpcomingBookings = report.UpcomingBookings
	r.ConflictCount = report.ConflictCount()
	r.Heatmap = report.Heatmap

	if r.Heatmap == nil {
		r.Heatmap = map[string]int{}
	}

	r.Conflicts = make([]ConflictResponse, len(report.Conflicts))
	for i, conflict := range report.Conflicts {
		r.Conflicts[i].MechanicID = conflict.MechanicID
		r.Conflicts[i].First.FromModel(conflict.First)
		r.Conflicts[i].Second.FromModel(conflict.Second)
	}
}

type GetReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
}

func (r *GetReportsResponse) FromModels(reports []model.Report) {
	r.Total = len(reports)

	r.Reports = make([]ReportResponse, len(reports))
	for i, report := range reports {
		r.Reports[i].FromModel(report)
	}
}

type CycleResponse struct {
	Report ReportResponse       `json:"report"`
	Alerts []alertModel.Outcome `json:"alerts"`
}

func (r *CycleResponse) FromModel(cycle model.Cycle) {
	r.Report.FromModel(cycle.Report)

	r.Alerts = cycle.Alerts
	if r.Alerts == nil {
		r.Alerts = []alertModel.Outcome{}
	}
}

type TestAlertRequest struct {
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"omitempty,max=5000"`
}

func (r *TestAlertRequest) WithDefaults() {
	if r.Subject == "" {
		r.Subject = "Test alert"
	}

	if r.Message == "" {
		r.Message = "This is a manual test alert from the dashboard."
	}
}

type TestAlertResponse struct {
	Subject string               `json:"subject"`
	Alerts  []alertModel.Outcome `json:"alerts"`
}

type DatabaseStatusResponse struct {
	Postgres         string   `json:"postgres"`
	Mongo            string   `json:"mongo"`
	Users            int      `json:"users"`
	Bookings         int      `json:"bookings"`
	MongoCollections []string `json:"mongo_collections"`
}

type HealthStatusResponse struct {
	Message     string   `json:"message"`
	Collections []string `json:"collections"`
	Logs        []string `json:"logs"`
}
