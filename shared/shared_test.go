package shared_test

import (
	"context"
	"garagebook/shared"
	"garagebook/shared/constant"
	"garagebook/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "zero", input: "0", expected: boolPtr(false)},
		{name: "upper case", input: "FALSE", expected: boolPtr(false)},
		{name: "invalid", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no rows", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 42, limit: 0, expected: 1},
		{name: "exact", total: 30, limit: 10, expected: 3},
		{name: "remainder", total: 31, limit: 10, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type bookingPatch struct {
		Status   *string `db:"status"`
		Notes    *string `db:"notes"`
		Duration *int    `db:"duration_minutes"`
		Unassign bool    `db:"-"`
		Internal string
	}

	status := constant.BookingStatusInProgress
	zero := 0

	result := shared.TransformFields(bookingPatch{
		Status:   &status,
		Duration: &zero,
		Unassign: true,
		Internal: "ignored",
	}, "admin@garage.test")

	assert.Equal(t, &status, result["status"])
	assert.Equal(t, &zero, result["duration_minutes"])
	assert.NotContains(t, result, "notes")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "admin@garage.test", result[constant.FieldModifiedBy])

	_, ok := result[constant.FieldModifiedAt].(time.Time)
	assert.True(t, ok)
	assert.Len(t, result, 4)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")

	require.Len(t, filter.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "b-1",
		Operator: dto.FilterOperatorEq,
		Table:    "bookings",
	}, filter.Filters[0])

	where, args := filter.GetWhereClause()
	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking", shared.BuildCacheKey("booking"))
	assert.Equal(t, "booking:get:b-1", shared.BuildCacheKey("booking", "get", "b-1"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 5, SortBy: "scheduled_at", SortDir: dto.SortDirAsc}

	first := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "mechanic_id", Value: "m-1", Operator: dto.FilterOperatorEq},
		},
	}
	second := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "completed", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "mechanic_id", Value: "m-1", Operator: dto.FilterOperatorEq},
		},
	}

	key := shared.BuildCacheKeyWithQuery("booking:list", params, first)

	assert.Equal(t, key, shared.BuildCacheKeyWithQuery("booking:list", params, first))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("booking:list", params, second))
	assert.Contains(t, key, "mechanic_id=m-1&status=pending")
	assert.True(t, len(key) > len("booking:list:2:5"))
}

func boolPtr(b bool) *bool {
	return &b
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "system", shared.Actor(ctx))
	assert.Empty(t, shared.UserID(ctx))
	assert.Empty(t, shared.UserRole(ctx))

	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "garage@mobile.test")
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "u-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGarage)

	assert.Equal(t, "garage@mobile.test", shared.Actor(ctx))
	assert.Equal(t, "u-1", shared.UserID(ctx))
	assert.Equal(t, constant.RoleGarage, shared.UserRole(ctx))
}
