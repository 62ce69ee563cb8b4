package otel_test

import (
	"context"
	"errors"
	"testing"

	"houserental/infras/otel"
	"houserental/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpan(t *testing.T, fn func(scope otel.Scope)) tracetest.SpanStub {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "span")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return tracetest.SpanStubFromReadOnlySpan(spans[0])
}

func TestScopeTraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
	}{
		{
			name:       "infrastructure error marks span",
			err:        errors.New("failed to insert booking"),
			wantStatus: codes.Error,
		},
		{
			name:       "conflict only recorded",
			err:        failure.Conflict("Property is not available for the selected dates"),
			wantStatus: codes.Unset,
		},
		{
			name:       "provider error marks span",
			err:        failure.BadGateway("Error creating payment intent: card declined"),
			wantStatus: codes.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := recordSpan(t, func(scope otel.Scope) {
				scope.TraceIfError(tt.err)
			})

			assert.Equal(t, tt.wantStatus, stub.Status.Code)
			require.Len(t, stub.Events, 1)
			assert.Equal(t, "exception", stub.Events[0].Name)
		})
	}
}

func TestScopeTraceIfErrorNil(t *testing.T) {
	stub := recordSpan(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
	})

	assert.Empty(t, stub.Events)
	assert.Equal(t, codes.Unset, stub.Status.Code)
}

func TestScopeSetAttributes(t *testing.T) {
	stub := recordSpan(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.paid":   true,
			"booking.id":     "b-1",
			"booking.nights": 3,
			"booking.rooms":  []string{"a", "b"},
		})
	})

	attrs := attribute.NewSet(stub.Attributes...)

	paid, ok := attrs.Value("booking.paid")
	require.True(t, ok)
	assert.True(t, paid.AsBool())

	nights, ok := attrs.Value("booking.nights")
	require.True(t, ok)
	assert.Equal(t, int64(3), nights.AsInt64())

	rooms, ok := attrs.Value("booking.rooms")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rooms.AsStringSlice())
}
