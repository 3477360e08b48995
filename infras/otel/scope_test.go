package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"garagebook/infras/otel"
)

func newRecordedScope(t *testing.T) (otel.Scope, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := provider.Tracer("test").Start(context.Background(), "booking.create")

	return otel.NewScope(span), recorder
}

func TestScope_SetAttributes(t *testing.T) {
	scope, recorder := newRecordedScope(t)

	scheduledAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	scope.SetAttributes(map[string]any{
		"booking.id":           "b-1",
		"booking.scheduled_at": scheduledAt,
		"booking.duration":     90 * time.Minute,
		"booking.roles":        []string{"admin", "mechanic"},
	})
	scope.SetAttribute("booking.count", 3)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "b-1", attrs["booking.id"].AsString())
	assert.Equal(t, "2026-03-02T10:00:00Z", attrs["booking.scheduled_at"].AsString())
	assert.InDelta(t, 5400.0, attrs["booking.duration"].AsFloat64(), 0.001)
	assert.Equal(t, []string{"admin", "mechanic"}, attrs["booking.roles"].AsStringSlice())
	assert.Equal(t, int64(3), attrs["booking.count"].AsInt64())
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvent  string
	}{
		{name: "nil is ignored", err: nil, wantStatus: codes.Unset},
		{name: "failure marks span", err: errors.New("slot taken"), wantStatus: codes.Error, wantEvent: "exception"},
		{name: "cancelled request", err: context.Canceled, wantStatus: codes.Unset, wantEvent: "cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, recorder := newRecordedScope(t)

			scope.TraceIfError(tt.err)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)

			if tt.wantEvent == "" {
				assert.Empty(t, spans[0].Events())

				return
			}

			require.Len(t, spans[0].Events(), 1)
			assert.Equal(t, tt.wantEvent, spans[0].Events()[0].Name)
		})
	}
}
