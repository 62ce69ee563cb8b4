package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMock "houserental/infras/otel/mocks"
	"houserental/internal/domains/booking/mocks"
	"houserental/internal/domains/booking/model/dto"
	tenantModel "houserental/internal/domains/tenant/model"
	"houserental/internal/handlers/booking"
	"houserental/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const stay = `"property_id":"0b8f1a52-8a0f-4f0c-9d7e-2f6d3c1f9a10","check_in_date":"2026-06-12",` +
	`"check_out_date":"2026-06-15","guests":2,"guest_name":"Jane Doe","guest_email":"jane@example.com","guest_phone":"+15550100"`

func newRouter(t *testing.T) (http.Handler, *mocks.MockBookingService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBookingService(ctrl)
	handler := booking.New(svc, otelMock.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return router, svc
}

func TestHandler_CreateGuestBooking(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *mocks.MockBookingService)
		wantCode  int
		wantBody  string
	}{
		{
			name:      "missing contact details",
			body:      `{` + stay + `}`,
			setupMock: func(_ *mocks.MockBookingService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"error":"full_name is required"}`,
		},
		{
			name:      "bad stay date",
			body:      `{"property_id":"0b8f1a52-8a0f-4f0c-9d7e-2f6d3c1f9a10","check_in_date":"12/06/2026"}`,
			setupMock: func(_ *mocks.MockBookingService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"error":"check_in_date must be a date in YYYY-MM-DD format"}`,
		},
		{
			name: "overlapping stay",
			body: `{` + stay + `,"user_info":{"full_name":"Jane Doe","email":"jane@example.com","phone_number":"+15550100"}}`,
			setupMock: func(svc *mocks.MockBookingService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.Conflict("Property is not available for the selected dates"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "created for the guest",
			body: `{` + stay + `,"user_info":{"full_name":"Jane Doe","email":"jane@example.com","phone_number":"+15550100","birthday":"1990-04-01"}}`,
			setupMock: func(svc *mocks.MockBookingService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, caller tenantModel.Caller, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
						guest, ok := caller.(tenantModel.Guest)
						assert.True(t, ok)
						assert.Equal(t, "jane@example.com", guest.Email)
						assert.NotNil(t, guest.Birthday)
						assert.Equal(t, 2, req.Guests)

						return dto.BookingResponse{GuestName: "Jane Doe"}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/bookings/guest", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_GetGuestBooking(t *testing.T) {
	t.Run("email is required", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1/guest", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"value is required"}`, rec.Body.String())
	})

	t.Run("looks up by id and email", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetByGuestEmail(gomock.Any(), "b-1", "jane@example.com").
			Return(dto.BookingResponse{}, failure.NotFound("Booking not found"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bookings/b-1/guest?email=jane@example.com", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Booking not found"}`, rec.Body.String())
	})
}
