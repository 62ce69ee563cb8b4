package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"houserental/config"
	"houserental/infras/otel/mocks"
	"houserental/infras/postgres"
	postgresMocks "houserental/infras/postgres/mocks"
	bookingMocks "houserental/internal/domains/booking/mocks"
	"houserental/internal/domains/booking/model"
	"houserental/internal/domains/booking/model/dto"
	"houserental/internal/domains/booking/service"
	propertyMocks "houserental/internal/domains/property/mocks"
	propertyModel "houserental/internal/domains/property/model"
	tenantMocks "houserental/internal/domains/tenant/mocks"
	tenantModel "houserental/internal/domains/tenant/model"
	userModel "houserental/internal/domains/user/model"
	cacheMocks "houserental/shared/cache/mocks"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	eventMocks "houserental/shared/event/mocks"
	"houserental/shared/failure"
	"houserental/shared/timezone"
)

type fixture struct {
	repo         *bookingMocks.MockBooking
	reviewRepo   *bookingMocks.MockReview
	propertyRepo *propertyMocks.MockProperty
	availability *bookingMocks.MockAvailability
	tenant       *tenantMocks.MockTenant
	publisher    *eventMocks.MockPublisher
	cache        *cacheMocks.MockRedisCache
	svc          service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		reviewRepo:   bookingMocks.NewMockReview(ctrl),
		propertyRepo: propertyMocks.NewMockProperty(ctrl),
		availability: bookingMocks.NewMockAvailability(ctrl),
		tenant:       tenantMocks.NewMockTenant(ctrl),
		publisher:    eventMocks.NewMockPublisher(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 600
	cfg.Kafka.Topics.Booking = "booking-events"

	f.svc = service.New(f.repo, f.reviewRepo, f.propertyRepo, f.availability, f.tenant,
		postgresMocks.NewTransactor(), f.publisher, cfg, f.cache, mocks.NewOtel())

	f.publisher.EXPECT().Publish(gomock.Any(), "booking-events", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 600).Return(nil).AnyTimes()

	return f
}

// expectDetail serves the detail read-through from the database.
func (f *fixture) expectDetail(view model.View) {
	f.cache.EXPECT().Get(gomock.Any(), "booking:get:"+view.ID, gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(view, nil)
	f.reviewRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{}, nil)
}

func callerContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func approvedProperty() propertyModel.Property {
	return propertyModel.Property{
		ID:            "p-1",
		OwnerID:       "agent-1",
		Title:         "Lake house",
		PricePerNight: decimal.RequireFromString("100.00"),
		Status:        propertyModel.StatusApproved,
	}
}

func date(offsetDays int) string {
	return timezone.Today().AddDate(0, 0, offsetDays).Format(constant.DateOnlyFormat)
}

func createRequest(checkInOffset, checkOutOffset int) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		PropertyID:   "p-1",
		CheckInDate:  date(checkInOffset),
		CheckOutDate: date(checkOutOffset),
		Guests:       2,
		GuestName:    "Jane Doe",
		GuestEmail:   "jane@example.com",
		GuestPhone:   "+250700000000",
	}
}

func TestBookingService_Create(t *testing.T) {
	caller := tenantModel.Authenticated{UserID: "u-1"}

	t.Run("prices the stay and inserts a pending booking", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
		f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
		f.availability.EXPECT().IsAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.tenant.EXPECT().Resolve(gomock.Any(), gomock.Any(), caller).Return(userModel.User{ID: "u-1"}, nil)

		var inserted model.Booking

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, booking model.Booking) error {
				inserted = booking

				return nil
			})
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().GetView(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ any) (model.View, error) {
			return model.View{Booking: inserted, PropertyTitle: "Lake house"}, nil
		})
		f.reviewRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{}, nil)

		res, err := f.svc.Create(callerContext("u-1", constant.RoleTenant), caller, createRequest(10, 28))
		require.NoError(t, err)

		assert.Equal(t, model.StatusPending, inserted.Status)
		assert.Equal(t, "u-1", inserted.TenantID)
		assert.Equal(t, "1800.00", inserted.TotalPrice.StringFixed(2))
		assert.True(t, inserted.TotalPrice.Equal(decimal.RequireFromString("1800")))
		assert.Equal(t, 18, res.DurationDays)
		assert.Equal(t, "pending", res.Status)
	})

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "unknown property",
			req:  createRequest(10, 12),
			setupMock: func(f *fixture) {
				f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(propertyModel.Property{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "property not approved",
			req:  createRequest(10, 12),
			setupMock: func(f *fixture) {
				property := approvedProperty()
				property.Status = propertyModel.StatusPending
				f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(property, nil)
			},
			wantCode: 400,
			wantMsg:  service.MessagePropertyNotBookable,
		},
		{
			name: "check-in in the past",
			req:  createRequest(-1, 3),
			setupMock: func(f *fixture) {
				f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
			},
			wantCode: 400,
			wantMsg:  service.MessageCheckInPast,
		},
		{
			name: "check-out not after check-in",
			req:  createRequest(10, 10),
			setupMock: func(f *fixture) {
				f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
			},
			wantCode: 400,
			wantMsg:  service.MessageCheckOutBeforeCheckIn,
		},
		{
			name: "overlapping confirmed booking",
			req:  createRequest(10, 12),
			setupMock: func(f *fixture) {
				f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
				f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
				f.availability.EXPECT().IsAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: 409,
			wantMsg:  service.MessageDatesUnavailable,
		},
		{
			name: "tenant resolution conflict writes nothing",
			req:  createRequest(10, 12),
			setupMock: func(f *fixture) {
				f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
				f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
				f.availability.EXPECT().IsAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.tenant.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{}, failure.Conflict("A user with this email already exists. Please log in to make a booking."))
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: 409,
		},
		{
			name: "exclusion violation maps to conflict",
			req:  createRequest(10, 12),
			setupMock: func(f *fixture) {
				f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
				f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
				f.availability.EXPECT().IsAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.tenant.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1"}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23P01"})
			},
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(callerContext("u-1", constant.RoleTenant), caller, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func bookingOf(status model.Status) model.Booking {
	return model.Booking{
		ID:           "b-1",
		PropertyID:   "p-1",
		TenantID:     "u-1",
		CheckInDate:  time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalPrice:   decimal.RequireFromString("1800.00"),
		Status:       status,
		GuestEmail:   "Jane@Example.com",
	}
}

func (f *fixture) expectLock(booking model.Booking, property propertyModel.Property) {
	f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
	f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(property, nil)
	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	agent := callerContext("agent-1", constant.RoleAgent)

	t.Run("completed to confirmed is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.expectLock(bookingOf(model.StatusCompleted), approvedProperty())

		_, err := f.svc.UpdateStatus(agent, "b-1", dto.UpdateStatusRequest{Status: "confirmed"})
		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "Invalid status transition from completed to confirmed", err.Error())
	})

	t.Run("pending to cancelled succeeds", func(t *testing.T) {
		f := newFixture(t)
		f.expectLock(bookingOf(model.StatusPending), approvedProperty())
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

				return nil
			})
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)

		cancelled := bookingOf(model.StatusCancelled)
		f.expectDetail(model.View{Booking: cancelled})

		res, err := f.svc.UpdateStatus(callerContext("u-1", constant.RoleTenant), "b-1", dto.UpdateStatusRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", res.Status)
	})

	t.Run("confirm marks the property rented", func(t *testing.T) {
		f := newFixture(t)
		f.expectLock(bookingOf(model.StatusPending), approvedProperty())
		f.availability.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), "p-1", gomock.Any(), gomock.Any(), "b-1").Return(false, nil)
		f.propertyRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ any) error {
				assert.Equal(t, propertyModel.StatusRented, fields[propertyModel.FieldStatus])

				return nil
			})
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "property:get:p-1").Return(nil)
		f.expectDetail(model.View{Booking: bookingOf(model.StatusConfirmed)})

		res, err := f.svc.UpdateStatus(agent, "b-1", dto.UpdateStatusRequest{Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", res.Status)
	})

	t.Run("confirm with overlap conflicts", func(t *testing.T) {
		f := newFixture(t)
		f.expectLock(bookingOf(model.StatusPending), approvedProperty())
		f.availability.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), "p-1", gomock.Any(), gomock.Any(), "b-1").Return(true, nil)

		_, err := f.svc.UpdateStatus(agent, "b-1", dto.UpdateStatusRequest{Status: "confirmed"})
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("cancelling the last confirmed booking releases the property", func(t *testing.T) {
		f := newFixture(t)
		rented := approvedProperty()
		rented.Status = propertyModel.StatusRented

		f.expectLock(bookingOf(model.StatusConfirmed), rented)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.propertyRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ any) error {
				assert.Equal(t, propertyModel.StatusApproved, fields[propertyModel.FieldStatus])

				return nil
			})
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "property:get:p-1").Return(nil)
		f.expectDetail(model.View{Booking: bookingOf(model.StatusCancelled)})

		_, err := f.svc.UpdateStatus(agent, "b-1", dto.UpdateStatusRequest{Status: "cancelled"})
		assert.NoError(t, err)
	})

	t.Run("completing keeps the property rented while another confirmed booking holds it", func(t *testing.T) {
		f := newFixture(t)
		rented := approvedProperty()
		rented.Status = propertyModel.StatusRented

		f.expectLock(bookingOf(model.StatusConfirmed), rented)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)
		f.expectDetail(model.View{Booking: bookingOf(model.StatusCompleted)})

		_, err := f.svc.UpdateStatus(agent, "b-1", dto.UpdateStatusRequest{Status: "completed"})
		assert.NoError(t, err)
	})

	t.Run("another tenant is forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.expectLock(bookingOf(model.StatusPending), approvedProperty())

		_, err := f.svc.UpdateStatus(callerContext("u-2", constant.RoleTenant), "b-1", dto.UpdateStatusRequest{Status: "cancelled"})
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateStatus(agent, "b-1", dto.UpdateStatusRequest{Status: "archived"})
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	view := model.View{Booking: bookingOf(model.StatusPending), PropertyOwnerID: "agent-1"}

	t.Run("tenant reads own booking", func(t *testing.T) {
		f := newFixture(t)
		f.expectDetail(view)

		res, err := f.svc.Get(callerContext("u-1", constant.RoleTenant), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "b-1", res.ID)
	})

	t.Run("other tenant sees not found", func(t *testing.T) {
		f := newFixture(t)
		f.expectDetail(view)

		_, err := f.svc.Get(callerContext("u-2", constant.RoleTenant), "b-1")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().
			Get(gomock.Any(), "booking:get:b-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.BookingResponse)
				require.True(t, ok)
				res.ID = "b-1"
				res.Property.OwnerID = "agent-1"

				return nil
			})

		res, err := f.svc.Get(callerContext("agent-1", constant.RoleAgent), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "b-1", res.ID)
	})
}

func TestBookingService_GetByGuestEmail(t *testing.T) {
	view := model.View{Booking: bookingOf(model.StatusPending)}

	t.Run("email matches case-insensitively", func(t *testing.T) {
		f := newFixture(t)
		f.expectDetail(view)

		res, err := f.svc.GetByGuestEmail(context.Background(), "b-1", "jane@example.COM")
		require.NoError(t, err)
		assert.Equal(t, "b-1", res.ID)
	})

	t.Run("mismatch is not found", func(t *testing.T) {
		f := newFixture(t)
		f.expectDetail(view)

		_, err := f.svc.GetByGuestEmail(context.Background(), "b-1", "other@example.com")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_CreateReview(t *testing.T) {
	tenant := callerContext("u-1", constant.RoleTenant)
	req := dto.CreateReviewRequest{Rating: 5, Comment: "Lovely stay by the lake"}

	t.Run("review before completion fails", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusConfirmed), nil)

		_, err := f.svc.CreateReview(tenant, "b-1", req)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, service.MessageReviewNotCompleted, err.Error())
	})

	t.Run("second review fails", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusCompleted), nil)
		f.reviewRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.CreateReview(tenant, "b-1", req)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Equal(t, service.MessageReviewExists, err.Error())
	})

	t.Run("only the tenant reviews", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusCompleted), nil)

		_, err := f.svc.CreateReview(callerContext("agent-1", constant.RoleAgent), "b-1", req)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("tenant reviews a completed booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusCompleted), nil)
		f.reviewRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.reviewRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, review model.Review) error {
				assert.Equal(t, "b-1", review.BookingID)
				assert.Equal(t, 5, review.Rating)

				return nil
			})
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)
		f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(model.View{Booking: bookingOf(model.StatusCompleted)}, nil)
		f.reviewRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "r-1", BookingID: "b-1", Rating: 5}, nil)

		res, err := f.svc.CreateReview(tenant, "b-1", req)
		require.NoError(t, err)
		require.NotNil(t, res.Review)
		assert.Equal(t, 5, res.Review.Rating)
	})
}

func TestBookingService_UpdatePayment(t *testing.T) {
	paid := true
	unpaid := false

	t.Run("payment id is required", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdatePayment(callerContext("u-1", constant.RoleTenant), "b-1", dto.UpdatePaymentRequest{IsPaid: &paid})
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("only admins clear the flag", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusConfirmed), nil)
		f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)

		_, err := f.svc.UpdatePayment(callerContext("u-1", constant.RoleTenant), "b-1", dto.UpdatePaymentRequest{IsPaid: &unpaid})
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("tenant marks own booking paid", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusConfirmed), nil)
		f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields[model.FieldIsPaid])
				assert.Equal(t, "pi_123", fields[model.FieldPaymentID])
				assert.NotNil(t, fields[model.FieldPaymentDate])

				return nil
			})
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)
		f.expectDetail(model.View{Booking: bookingOf(model.StatusConfirmed)})

		_, err := f.svc.UpdatePayment(callerContext("u-1", constant.RoleTenant), "b-1", dto.UpdatePaymentRequest{IsPaid: &paid, PaymentID: "pi_123"})
		assert.NoError(t, err)
	})
}

func TestBookingService_SetPaymentState(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusConfirmed), nil)
	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ any) error {
			assert.Equal(t, false, fields[model.FieldIsPaid])
			assert.Nil(t, fields[model.FieldPaymentID])
			assert.Nil(t, fields[model.FieldPaymentDate])
			assert.Equal(t, constant.ContextGuest, fields[constant.FieldModifiedBy])

			return nil
		})
	f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)

	assert.NoError(t, f.svc.SetPaymentState(context.Background(), nil, "b-1", false, ""))
}

func TestBookingService_SetPaymentStateClearsCacheAfterCommit(t *testing.T) {
	newConnection := func(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
		t.Helper()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)

		t.Cleanup(func() { _ = db.Close() })

		sqlxDB := sqlx.NewDb(db, "sqlmock")

		return &postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mock
	}

	t.Run("committed", func(t *testing.T) {
		f := newFixture(t)
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectCommit()

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusConfirmed), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").DoAndReturn(func(_ context.Context, _ ...string) error {
			assert.NoError(t, mock.ExpectationsWereMet(), "cache cleared before commit")

			return nil
		})

		err := conn.WithinTransaction(context.Background(), func(tx *sqlx.Tx) error {
			return f.svc.SetPaymentState(context.Background(), tx, "b-1", true, "pi_3NabcDEF")
		})
		assert.NoError(t, err)
	})

	t.Run("rolled back", func(t *testing.T) {
		f := newFixture(t)
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingOf(model.StatusConfirmed), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		err := conn.WithinTransaction(context.Background(), func(tx *sqlx.Tx) error {
			if err := f.svc.SetPaymentState(context.Background(), tx, "b-1", true, "pi_3NabcDEF"); err != nil {
				return err
			}

			return errors.New("payment insert failed")
		})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.Delete(callerContext("admin-1", constant.RoleAdmin), "b-1")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.expectLock(bookingOf(model.StatusPending), approvedProperty())

		err := f.svc.Delete(callerContext("agent-2", constant.RoleAgent), "b-1")
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("owning agent deletes", func(t *testing.T) {
		f := newFixture(t)
		f.expectLock(bookingOf(model.StatusPending), approvedProperty())
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)

		assert.NoError(t, f.svc.Delete(callerContext("agent-1", constant.RoleAgent), "b-1"))
	})
}

func TestBookingService_Listings(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("tenant cannot list owner bookings", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetOwnerBookings(callerContext("u-1", constant.RoleTenant), params, dto.Filter{})
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("admin lists every booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().CountViews(gomock.Any(), gomock.Any()).Return(11, nil)
		f.repo.EXPECT().
			GetAllViews(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ any) ([]model.View, error) {
				assert.Equal(t, "bookings.created_at", params.SortBy)

				return []model.View{{Booking: bookingOf(model.StatusPending)}}, nil
			})

		res, err := f.svc.GetAll(callerContext("admin-1", constant.RoleAdmin), params, dto.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 11, res.Total)
		assert.Equal(t, 2, res.TotalPages)
		assert.Len(t, res.Items, 1)
	})

	t.Run("property bookings are owner only", func(t *testing.T) {
		f := newFixture(t)
		f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)

		_, err := f.svc.GetPropertyBookings(callerContext("agent-2", constant.RoleAgent), "p-1", params, dto.Filter{})
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("tenant lists own bookings", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().
			CountViews(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "u-1", args[model.FieldTenantID])

				return 0, nil
			})
		f.repo.EXPECT().GetAllViews(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetTenantBookings(callerContext("u-1", constant.RoleTenant), params, dto.Filter{})
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.NotNil(t, res.Items)
	})
}
