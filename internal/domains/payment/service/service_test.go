package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"houserental/config"
	"houserental/infras/otel/mocks"
	postgresMocks "houserental/infras/postgres/mocks"
	s3Mocks "houserental/infras/s3/mocks"
	"houserental/infras/stripe"
	stripeMocks "houserental/infras/stripe/mocks"
	bookingMocks "houserental/internal/domains/booking/mocks"
	bookingModel "houserental/internal/domains/booking/model"
	paymentMocks "houserental/internal/domains/payment/mocks"
	"houserental/internal/domains/payment/model"
	"houserental/internal/domains/payment/model/dto"
	"houserental/internal/domains/payment/service"
	tenantModel "houserental/internal/domains/tenant/model"
	userMocks "houserental/internal/domains/user/mocks"
	userModel "houserental/internal/domains/user/model"
	cacheMocks "houserental/shared/cache/mocks"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	eventMocks "houserental/shared/event/mocks"
	"houserental/shared/failure"
)

type fixture struct {
	repo        *paymentMocks.MockPayment
	intentRepo  *paymentMocks.MockIntent
	methodRepo  *paymentMocks.MockMethod
	bookingRepo *bookingMocks.MockBooking
	userRepo    *userMocks.MockUser
	booking     *bookingMocks.MockBookingService
	gateway     *stripeMocks.MockGateway
	storage     *s3Mocks.MockS3
	publisher   *eventMocks.MockPublisher
	cache       *cacheMocks.MockRedisCache
	svc         service.Payment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:        paymentMocks.NewMockPayment(ctrl),
		intentRepo:  paymentMocks.NewMockIntent(ctrl),
		methodRepo:  paymentMocks.NewMockMethod(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		userRepo:    userMocks.NewMockUser(ctrl),
		booking:     bookingMocks.NewMockBookingService(ctrl),
		gateway:     stripeMocks.NewMockGateway(ctrl),
		storage:     s3Mocks.NewMockS3(ctrl),
		publisher:   eventMocks.NewMockPublisher(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 600
	cfg.Kafka.Topics.Payment = "payment-events"
	cfg.Payment.Currency = "USD"
	cfg.External.S3.Enable = true
	cfg.External.S3.ReceiptDir = "receipts"

	f.svc = service.New(f.repo, f.intentRepo, f.methodRepo, f.bookingRepo, f.userRepo, f.booking,
		f.gateway, f.storage, postgresMocks.NewTransactor(), f.publisher, cfg, f.cache, mocks.NewOtel())

	f.publisher.EXPECT().Publish(gomock.Any(), "payment-events", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 600).Return(nil).AnyTimes()

	return f
}

func callerContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func bookingView() bookingModel.View {
	return bookingModel.View{
		Booking: bookingModel.Booking{
			ID:           "b-1",
			PropertyID:   "p-1",
			TenantID:     "u-1",
			CheckInDate:  time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			TotalPrice:   decimal.RequireFromString("1800.00"),
			GuestEmail:   "jane@example.com",
		},
		PropertyTitle:   "Lake house",
		PropertyOwnerID: "agent-1",
		TenantEmail:     "jane@example.com",
	}
}

func payer(active bool) userModel.User {
	customerID := "cus_1"

	return userModel.User{
		ID:               "u-1",
		Email:            "jane@example.com",
		FirstName:        "Jane",
		IsActive:         active,
		StripeCustomerID: &customerID,
	}
}

func openIntent() model.Intent {
	return model.Intent{
		ID:                      "i-1",
		BookingID:               "b-1",
		UserID:                  "u-1",
		Amount:                  decimal.RequireFromString("1800.00"),
		Currency:                "usd",
		Status:                  model.IntentStatusRequiresPaymentMethod,
		ProviderPaymentIntentID: "pi_1",
		ClientSecret:            "pi_1_secret",
	}
}

func paymentView() model.View {
	return model.View{
		Payment: model.Payment{
			ID:                      "pay-1",
			BookingID:               "b-1",
			UserID:                  "u-1",
			Amount:                  decimal.RequireFromString("1800.00"),
			Currency:                "usd",
			Status:                  model.StatusCompleted,
			ProviderPaymentIntentID: "pi_1",
		},
		PropertyOwnerID: "agent-1",
	}
}

func TestPaymentService_CreateIntent(t *testing.T) {
	caller := tenantModel.Authenticated{UserID: "u-1"}
	req := dto.CreateIntentRequest{BookingID: "b-1"}

	t.Run("second call returns the same provider intent", func(t *testing.T) {
		f := newFixture(t)

		var stored model.Intent

		f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingView(), nil).Times(2)
		f.intentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.Intent, error) {
			return stored, nil
		}).Times(2)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Email: "jane@example.com", IsActive: true}, nil)
		f.gateway.EXPECT().CreateCustomer(gomock.Any(), stripe.CustomerParams{Email: "jane@example.com", Name: "", UserID: "u-1"}).
			Return(stripe.Customer{ID: "cus_1"}, nil)
		f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "cus_1", fields[userModel.FieldStripeCustomerID])

				return nil
			})
		f.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params stripe.IntentParams) (stripe.Intent, error) {
				assert.Equal(t, int64(180000), params.Amount)
				assert.Equal(t, "usd", params.Currency)
				assert.Equal(t, "cus_1", params.CustomerID)
				assert.Equal(t, "booking_b-1_u-1", params.IdempotencyKey)
				assert.Equal(t, "Payment for booking b-1 - Lake house", params.Description)
				assert.Equal(t, "p-1", params.Metadata[stripe.MetadataPropertyID])

				return stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusRequiresPaymentMethod, ClientSecret: "pi_1_secret"}, nil
			})
		f.intentRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, intent model.Intent) error {
			stored = intent

			return nil
		})

		ctx := callerContext("u-1", constant.RoleTenant)

		first, err := f.svc.CreateIntent(ctx, caller, req)
		require.NoError(t, err)

		second, err := f.svc.CreateIntent(ctx, caller, req)
		require.NoError(t, err)

		assert.Equal(t, "pi_1", first.ProviderPaymentIntentID)
		assert.Equal(t, first.ProviderPaymentIntentID, second.ProviderPaymentIntentID)
		assert.Equal(t, "pi_1_secret", second.ClientSecret)
		assert.True(t, decimal.RequireFromString("1800").Equal(first.Amount))
		assert.Equal(t, "2025-06-12", first.Booking.CheckInDate)
	})

	t.Run("guest pays as the booking tenant", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingView(), nil)
		f.intentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Intent{}, nil)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(payer(false), nil)
		f.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params stripe.IntentParams) (stripe.Intent, error) {
				assert.Equal(t, "Guest payment for booking b-1 - Lake house", params.Description)
				assert.Equal(t, "true", params.Metadata["is_guest"])
				assert.Equal(t, "u-1", params.Metadata[stripe.MetadataUserID])

				return stripe.Intent{ID: "pi_2", Status: stripe.IntentStatusRequiresPaymentMethod}, nil
			})
		f.intentRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, intent model.Intent) error {
			assert.Equal(t, "u-1", intent.UserID)
			assert.Equal(t, "guest", intent.CreatedBy)

			return nil
		})

		res, err := f.svc.CreateIntent(context.Background(), tenantModel.Guest{}, req)
		require.NoError(t, err)
		assert.Equal(t, "pi_2", res.ProviderPaymentIntentID)
	})

	t.Run("concurrent insert is resolved by the stored intent", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingView(), nil)
		gomock.InOrder(
			f.intentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Intent{}, nil),
			f.intentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openIntent(), nil),
		)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(payer(true), nil)
		f.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(stripe.Intent{ID: "pi_1"}, nil)
		f.intentRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		res, err := f.svc.CreateIntent(callerContext("u-1", constant.RoleTenant), caller, req)
		require.NoError(t, err)
		assert.Equal(t, "i-1", res.ID)
	})

	tests := []struct {
		name        string
		ctx         context.Context
		setupMock   func(f *fixture)
		wantCode    int
		wantMessage string
	}{
		{
			name: "unknown booking",
			ctx:  callerContext("u-1", constant.RoleTenant),
			setupMock: func(f *fixture) {
				f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingModel.View{}, nil)
			},
			wantCode:    http.StatusNotFound,
			wantMessage: service.MessageBookingNotFound,
		},
		{
			name: "not the tenant",
			ctx:  callerContext("u-2", constant.RoleTenant),
			setupMock: func(f *fixture) {
				f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingView(), nil)
			},
			wantCode:    http.StatusForbidden,
			wantMessage: service.MessageIntentForbidden,
		},
		{
			name: "already paid",
			ctx:  callerContext("u-1", constant.RoleTenant),
			setupMock: func(f *fixture) {
				view := bookingView()
				view.IsPaid = true
				f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(view, nil)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: service.MessageBookingAlreadyPaid,
		},
		{
			name: "provider error",
			ctx:  callerContext("u-1", constant.RoleTenant),
			setupMock: func(f *fixture) {
				f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingView(), nil)
				f.intentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Intent{}, nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(payer(true), nil)
				f.gateway.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
					Return(stripe.Intent{}, &stripe.ProviderError{Code: "card_declined", Message: "Your card was declined."})
				f.intentRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode:    http.StatusBadGateway,
			wantMessage: "Error creating payment intent: Your card was declined.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			userID, _ := tt.ctx.Value(constant.ContextKeyUserID).(string)

			_, err := f.svc.CreateIntent(tt.ctx, tenantModel.Authenticated{UserID: userID}, req)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

// expectSettlementOf serves the payer and booking lookups made before any provider call.
func (f *fixture) expectSettlementOf(intent model.Intent, user userModel.User) {
	f.intentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(intent, nil)
	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
	f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingView(), nil)
}

// expectSettle walks settlement of an unsettled intent and returns the inserted payment.
func (f *fixture) expectSettle(t *testing.T) *model.Payment {
	t.Helper()

	inserted := &model.Payment{}

	f.intentRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openIntent(), nil)
	f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ any, payment model.Payment) error {
		*inserted = payment

		return nil
	})
	f.intentRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, inserted.ID, fields[model.FieldIntentPaymentID])
			assert.Equal(t, model.IntentStatusSucceeded, fields[model.FieldIntentStatus])

			return nil
		})
	f.booking.EXPECT().SetPaymentState(gomock.Any(), gomock.Any(), "b-1", true, "pi_1").Return(nil)
	f.storage.EXPECT().UploadFileBytes(gomock.Any(), "", "receipts", gomock.Any(), "application/json", gomock.Any()).
		Return("https://cdn.example.com/receipts/pay.json", nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "https://cdn.example.com/receipts/pay.json", fields[model.FieldReceiptURL])

			return nil
		})
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, keys ...string) error {
		assert.Equal(t, []string{"payment:get:" + inserted.ID}, keys)

		return nil
	})

	return inserted
}

func TestPaymentService_Confirm(t *testing.T) {
	req := dto.ConfirmRequest{PaymentIntentID: "pi_1"}

	t.Run("unknown intent", func(t *testing.T) {
		f := newFixture(t)

		f.intentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Intent{}, nil)

		_, err := f.svc.Confirm(callerContext("u-1", constant.RoleTenant), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "Payment intent with ID pi_1 not found", err.Error())
	})

	t.Run("another user cannot confirm", func(t *testing.T) {
		f := newFixture(t)

		f.expectSettlementOf(openIntent(), payer(true))
		f.gateway.EXPECT().RetrieveIntent(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Confirm(callerContext("u-2", constant.RoleTenant), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		assert.Equal(t, service.MessageConfirmForbidden, err.Error())
	})

	t.Run("succeeded at the provider settles without confirming again", func(t *testing.T) {
		f := newFixture(t)

		f.expectSettlementOf(openIntent(), payer(true))
		f.gateway.EXPECT().RetrieveIntent(gomock.Any(), "pi_1").Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusSucceeded}, nil)
		f.gateway.EXPECT().ConfirmIntent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		inserted := f.expectSettle(t)

		res, err := f.svc.Confirm(callerContext("u-1", constant.RoleTenant), req)
		require.NoError(t, err)
		assert.Equal(t, stripe.IntentStatusSucceeded, res.Status)
		assert.False(t, res.RequiresAction)
		assert.Nil(t, res.ClientSecret)
		assert.Equal(t, model.StatusCompleted, inserted.Status)
		assert.Equal(t, "jane@example.com", inserted.ReceiptEmail)
		assert.NotNil(t, inserted.CompletedAt)
		assert.True(t, decimal.RequireFromString("1800").Equal(inserted.Amount))
	})

	t.Run("settled intent creates no second payment", func(t *testing.T) {
		f := newFixture(t)

		settled := openIntent()
		paymentID := "pay-1"
		settled.PaymentID = &paymentID

		f.expectSettlementOf(openIntent(), payer(true))
		f.gateway.EXPECT().RetrieveIntent(gomock.Any(), "pi_1").Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusSucceeded}, nil)
		f.intentRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(settled, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		f.booking.EXPECT().SetPaymentState(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		res, err := f.svc.Confirm(callerContext("u-1", constant.RoleTenant), req)
		require.NoError(t, err)
		assert.Equal(t, stripe.IntentStatusSucceeded, res.Status)
	})

	t.Run("action required exposes the client secret", func(t *testing.T) {
		f := newFixture(t)

		f.expectSettlementOf(openIntent(), payer(true))
		f.gateway.EXPECT().RetrieveIntent(gomock.Any(), "pi_1").Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusRequiresPaymentMethod}, nil)
		f.gateway.EXPECT().ConfirmIntent(gomock.Any(), "pi_1", "").
			Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusRequiresAction, ClientSecret: "pi_1_secret"}, nil)
		f.intentRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.IntentStatusRequiresAction, fields[model.FieldIntentStatus])

				return nil
			})

		res, err := f.svc.Confirm(callerContext("u-1", constant.RoleTenant), req)
		require.NoError(t, err)
		assert.True(t, res.RequiresAction)
		require.NotNil(t, res.ClientSecret)
		assert.Equal(t, "pi_1_secret", *res.ClientSecret)
	})

	t.Run("saves the method for an authenticated payer", func(t *testing.T) {
		f := newFixture(t)

		f.expectSettlementOf(openIntent(), payer(true))
		f.gateway.EXPECT().RetrieveIntent(gomock.Any(), "pi_1").Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusRequiresPaymentMethod}, nil)
		f.gateway.EXPECT().AttachPaymentMethod(gomock.Any(), "pm_1", "cus_1").
			Return(stripe.PaymentMethod{ID: "pm_1", Type: "card", CardBrand: "visa", CardLast4: "4242"}, nil)
		f.methodRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Method{}, nil)
		f.methodRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.methodRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ any, method model.Method) error {
			assert.True(t, method.IsDefault)
			assert.Equal(t, model.MethodTypeCard, method.Type)
			assert.Equal(t, "u-1", method.UserID)

			return nil
		})
		f.gateway.EXPECT().ConfirmIntent(gomock.Any(), "pi_1", "pm_1").Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusProcessing}, nil)
		f.intentRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Confirm(callerContext("u-1", constant.RoleTenant), dto.ConfirmRequest{
			PaymentIntentID:   "pi_1",
			PaymentMethodID:   "pm_1",
			SavePaymentMethod: true,
		})
		require.NoError(t, err)
		assert.Equal(t, stripe.IntentStatusProcessing, res.Status)
	})

	t.Run("guest confirms an inactive payer's intent", func(t *testing.T) {
		f := newFixture(t)

		guest := payer(false)
		guest.Email = ""

		f.expectSettlementOf(openIntent(), guest)
		f.gateway.EXPECT().RetrieveIntent(gomock.Any(), "pi_1").Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusRequiresConfirmation}, nil)
		f.gateway.EXPECT().AttachPaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		f.gateway.EXPECT().ConfirmIntent(gomock.Any(), "pi_1", "pm_1").Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusSucceeded}, nil)

		inserted := f.expectSettle(t)

		_, err := f.svc.Confirm(context.Background(), dto.ConfirmRequest{
			PaymentIntentID:   "pi_1",
			PaymentMethodID:   "pm_1",
			SavePaymentMethod: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", inserted.ReceiptEmail)
		assert.Equal(t, "guest", inserted.CreatedBy)
	})

	t.Run("provider error", func(t *testing.T) {
		f := newFixture(t)

		f.expectSettlementOf(openIntent(), payer(true))
		f.gateway.EXPECT().RetrieveIntent(gomock.Any(), "pi_1").Return(stripe.Intent{ID: "pi_1", Status: stripe.IntentStatusRequiresConfirmation}, nil)
		f.gateway.EXPECT().ConfirmIntent(gomock.Any(), "pi_1", "").Return(stripe.Intent{}, &stripe.ProviderError{Message: "Your card has insufficient funds."})

		_, err := f.svc.Confirm(callerContext("u-1", constant.RoleTenant), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
		assert.Equal(t, "Error confirming payment: Your card has insufficient funds.", err.Error())
	})
}

func TestPaymentService_Get(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "payer", ctx: callerContext("u-1", constant.RoleTenant)},
		{name: "owner", ctx: callerContext("agent-1", constant.RoleAgent)},
		{name: "admin", ctx: callerContext("admin-1", constant.RoleAdmin)},
		{name: "stranger", ctx: callerContext("u-9", constant.RoleTenant), wantCode: http.StatusNotFound},
		{name: "anonymous", ctx: context.Background(), wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), "payment:get:pay-1", gomock.Any()).Return(errors.New("cache miss"))
			f.repo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(paymentView(), nil)

			res, err := f.svc.Get(tt.ctx, "pay-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "pay-1", res.ID)
			assert.Equal(t, "Card", res.PaymentMethodType)
		})
	}

	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "payment:get:pay-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res := value.(*dto.PaymentResponse)
				res.ID = "pay-1"
				res.User.ID = "u-1"

				return nil
			})
		f.repo.EXPECT().GetView(gomock.Any(), gomock.Any()).Times(0)

		res, err := f.svc.Get(callerContext("u-1", constant.RoleTenant), "pay-1")
		require.NoError(t, err)
		assert.Equal(t, "pay-1", res.ID)
	})
}

func TestPaymentService_Listings(t *testing.T) {
	t.Run("landlord listing needs an agent", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetLandlordPayments(callerContext("u-1", constant.RoleTenant), gDto.QueryParams{}, dto.Filter{})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		assert.Equal(t, service.MessageLandlordOnly, err.Error())
	})

	t.Run("landlord listing is scoped to the owner", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().CountViews(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "agent-1", args["scope_owner_id"])

			return 12, nil
		})
		f.repo.EXPECT().GetAllViews(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]model.View, error) {
				assert.Equal(t, "payments.created_at", params.SortBy)

				return []model.View{paymentView()}, nil
			})

		res, err := f.svc.GetLandlordPayments(callerContext("agent-1", constant.RoleAgent), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, dto.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 12, res.Total)
		assert.Equal(t, 2, res.TotalPages)
		assert.Len(t, res.Items, 1)
	})

	t.Run("booking payments are hidden from strangers", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingView(), nil)

		_, err := f.svc.GetBookingPayments(callerContext("u-9", constant.RoleTenant), "b-1", gDto.QueryParams{}, dto.Filter{})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		assert.Equal(t, service.MessageBookingPaymentsDenied, err.Error())
	})

	t.Run("booking payments for the tenant", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(bookingView(), nil)
		f.repo.EXPECT().CountViews(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "b-1", args["scope_booking_id"])

			return 0, nil
		})
		f.repo.EXPECT().GetAllViews(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetBookingPayments(callerContext("u-1", constant.RoleTenant), "b-1", gDto.QueryParams{Page: 1, Limit: 10}, dto.Filter{})
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.NotNil(t, res.Items)
	})

	t.Run("user listing requires a caller", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetUserPayments(context.Background(), gDto.QueryParams{}, dto.Filter{})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("admin listing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetAll(callerContext("agent-1", constant.RoleAgent), gDto.QueryParams{}, dto.Filter{})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	admin := callerContext("admin-1", constant.RoleAdmin)

	t.Run("admins only", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateStatus(callerContext("u-1", constant.RoleTenant), "pay-1", dto.UpdateStatusRequest{Status: "refunded"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateStatus(admin, "pay-1", dto.UpdateStatusRequest{Status: "lost"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("refund clears the booking payment", func(t *testing.T) {
		f := newFixture(t)

		completedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		current := paymentView().Payment
		current.CompletedAt = &completedAt

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusRefunded, fields[model.FieldStatus])
				assert.Contains(t, fields, model.FieldRefundedAt)
				assert.NotContains(t, fields, model.FieldCompletedAt)

				return nil
			})
		f.bookingRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{ID: "b-1", IsPaid: true}, nil)
		f.booking.EXPECT().SetPaymentState(gomock.Any(), gomock.Any(), "b-1", false, "").Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "payment:get:pay-1").Return(nil)
		f.cache.EXPECT().Get(gomock.Any(), "payment:get:pay-1", gomock.Any()).Return(errors.New("cache miss"))

		refunded := paymentView()
		refunded.Status = model.StatusRefunded
		f.repo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(refunded, nil)

		res, err := f.svc.UpdateStatus(admin, "pay-1", dto.UpdateStatusRequest{Status: "refunded"})
		require.NoError(t, err)
		assert.Equal(t, "refunded", res.Status)
	})

	t.Run("completion marks an unpaid booking paid", func(t *testing.T) {
		f := newFixture(t)

		current := paymentView().Payment
		current.Status = model.StatusFailed

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, model.FieldCompletedAt)

				return nil
			})
		f.bookingRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{ID: "b-1"}, nil)
		f.booking.EXPECT().SetPaymentState(gomock.Any(), gomock.Any(), "b-1", true, "pi_1").Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().GetView(gomock.Any(), gomock.Any()).Return(paymentView(), nil)

		_, err := f.svc.UpdateStatus(admin, "pay-1", dto.UpdateStatusRequest{Status: "completed"})
		require.NoError(t, err)
	})

	t.Run("unknown payment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		_, err := f.svc.UpdateStatus(admin, "pay-1", dto.UpdateStatusRequest{Status: "completed"})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPaymentService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:      "not an admin",
			ctx:       callerContext("u-1", constant.RoleTenant),
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name: "unknown payment",
			ctx:  callerContext("admin-1", constant.RoleAdmin),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "deletes and evicts the cache",
			ctx:  callerContext("admin-1", constant.RoleAdmin),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paymentView().Payment, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), "payment:get:pay-1").Return(nil)
			},
		},
		{
			name: "removes the stored receipt",
			ctx:  callerContext("admin-1", constant.RoleAdmin),
			setupMock: func(f *fixture) {
				url := "https://cdn.example.com/receipts/pay-1.json"
				payment := paymentView().Payment
				payment.ReceiptURL = &url

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(payment, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.storage.EXPECT().GetObjectNameFromURL("", url).Return("receipts/pay-1.json")
				f.storage.EXPECT().DeleteFile(gomock.Any(), "", "", "receipts/pay-1.json").Return(errors.New("bucket gone"))
				f.cache.EXPECT().Delete(gomock.Any(), "payment:get:pay-1").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(tt.ctx, "pay-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestPaymentService_PublicKey(t *testing.T) {
	f := newFixture(t)

	f.gateway.EXPECT().PublishableKey().Return("pk_test_1")

	assert.Equal(t, "pk_test_1", f.svc.PublicKey(context.Background()).PublishableKey)
}
