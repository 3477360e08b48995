package dto

import (
	"fmt"
	"garagebook/internal/domains/booking/model"
	"garagebook/shared"
	"garagebook/shared/constant"
	gDto "garagebook/shared/dto"
	gModel "garagebook/shared/model"
	"garagebook/shared/timezone"
	"time"

	"github.com/google/uuid"
)

var sortableColumns = []string{
	constant.FieldCreatedAt,
	model.FieldScheduledAt,
	model.FieldStatus,
	model.FieldServiceType,
}

type CreateBookingRequest struct {
	Vehicle         string `json:"vehicle"                    validate:"required,max=100"`
	ServiceType     string `json:"service_type"               validate:"required,max=100"`
	ScheduledAt     string `json:"scheduled_at"               validate:"required,rfc3339"`
	DurationMinutes *int   `json:"duration_minutes,omitempty" validate:"omitempty,gte=1,lte=1440"`
	Notes           string `json:"notes"                      validate:"omitempty,max=2000"`
}

func (c *CreateBookingRequest) ToModel(customerID, actor string) (model.Booking, error) {
	scheduledAt, err := time.Parse(constant.DateFormat, c.ScheduledAt)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid scheduled_at: %w", err)
	}

	now := timezone.Now()

	return model.Booking{
		ID:              uuid.NewString(),
		CustomerID:      customerID,
		Vehicle:         c.Vehicle,
		ServiceType:     c.ServiceType,
		ScheduledAt:     scheduledAt,
		Status:          constant.BookingStatusPending,
		Notes:           c.Notes,
		DurationMinutes: c.DurationMinutes,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}, nil
}

// UpdateBookingRequest is the staff edit. UnassignMechanic clears the assignment and wins over MechanicID.
type UpdateBookingRequest struct {
	Status           *string `json:"status,omitempty"           validate:"omitempty,oneof=pending in-progress completed"`
	Notes            *string `json:"notes,omitempty"            validate:"omitempty,max=2000"`
	MechanicID       *string `json:"mechanic_id,omitempty"      validate:"omitempty,uuid"`
	ScheduledAt      *string `json:"scheduled_at,omitempty"     validate:"omitempty,rfc3339"`
	DurationMinutes  *int    `json:"duration_minutes,omitempty" validate:"omitempty,gte=1,lte=1440"`
	UnassignMechanic bool    `json:"unassign_mechanic,omitempty"`
}

func (r UpdateBookingRequest) IsEmpty() bool {
	return r.Status == nil && r.Notes == nil && r.MechanicID == nil &&
		r.ScheduledAt == nil && r.DurationMinutes == nil && !r.UnassignMechanic
}

// AssignsMechanic reports whether the request sets a new mechanic that has to be checked.
func (r UpdateBookingRequest) AssignsMechanic() bool {
	return !r.UnassignMechanic && r.MechanicID != nil
}

type UpdateBooking struct {
	Status          *string    `db:"status"`
	Notes           *string    `db:"notes"`
	MechanicID      *string    `db:"mechanic_id"`
	ScheduledAt     *time.Time `db:"scheduled_at"`
	DurationMinutes *int       `db:"duration_minutes"`
}

// ToFields converts the request into the column map passed to the repository.
func (r UpdateBookingRequest) ToFields(actor string) (map[string]any, error) {
	update := UpdateBooking{
		Status:          r.Status,
		Notes:           r.Notes,
		DurationMinutes: r.DurationMinutes,
	}

	if r.ScheduledAt != nil {
		scheduledAt, err := time.Parse(constant.DateFormat, *r.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_at: %w", err)
		}

		update.ScheduledAt = &scheduledAt
	}

	if !r.UnassignMechanic {
		update.MechanicID = r.MechanicID
	}

	fields := shared.TransformFields(update, actor)

	if r.UnassignMechanic {
		fields[model.FieldMechanicID] = nil
	}

	return fields, nil
}

type BookingResponse struct {
	ID              string  `json:"id"`
	CustomerID      string  `json:"customer_id"`
	CustomerName    string  `json:"customer_name,omitempty"`
	CustomerEmail   string  `json:"customer_email,omitempty"`
	Vehicle         string  `json:"vehicle"`
	ServiceType     string  `json:"service_type"`
	ScheduledAt     string  `json:"scheduled_at"`
	EndsAt          string  `json:"ends_at"`
	DurationMinutes int     `json:"duration_minutes"`
	MechanicID      *string `json:"mechanic_id"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.Vehicle = model.Vehicle
	r.ServiceType = model.ServiceType
	r.ScheduledAt = timezone.Format(model.ScheduledAt, constant.DateFormat)
	r.EndsAt = timezone.Format(model.End(), constant.DateFormat)
	r.DurationMinutes = int(model.Duration().Minutes())
	r.Status = model.Status
	r.Notes = model.Notes

	if mechanicID, ok := model.Mechanic(); ok {
		r.MechanicID = &mechanicID
	}

	if model.CustomerName != nil {
		r.CustomerName = *model.CustomerName
	}

	if model.CustomerEmail != nil {
		r.CustomerEmail = *model.CustomerEmail
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// ListFilter builds the booking list where clause. Empty values are ignored.
func ListFilter(status, mechanicID, customerID string) gDto.FilterGroup {
	filters := []any{}

	for _, pair := range [][2]string{
		{model.FieldStatus, status},
		{model.FieldMechanicID, mechanicID},
		{model.FieldCustomerID, customerID},
	} {
		if pair[1] == "" {
			continue
		}

		filters = append(filters, gDto.Filter{Field: pair[0], Operator: gDto.FilterOperatorEq, Value: pair[1], Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

// SortParams restricts the sort column and qualifies it with the bookings table,
// since the customer join makes created_at ambiguous.
func SortParams(params gDto.QueryParams) gDto.QueryParams {
	params.AllowSortBy(sortableColumns...)
	params.SortBy = model.TableName + "." + params.SortBy

	return params
}
