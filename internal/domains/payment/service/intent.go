package service

import (
	"context"
	"errors"
	"fmt"

	"houserental/infras/stripe"
	bookingModel "houserental/internal/domains/booking/model"
	"houserental/internal/domains/payment/model"
	"houserental/internal/domains/payment/model/dto"
	"houserental/internal/domains/payment/repository"
	tenantModel "houserental/internal/domains/tenant/model"
	userModel "houserental/internal/domains/user/model"
	"houserental/shared"
	"houserental/shared/constant"
	"houserental/shared/failure"
	sharedModel "houserental/shared/model"
	"houserental/shared/money"
	"houserental/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// CreateIntent returns the booking's open intent, or opens one at the provider for the payer.
// An authenticated caller pays for itself. A guest pays as the booking's tenant.
func (s *serviceImpl) CreateIntent(ctx context.Context, caller tenantModel.Caller, req dto.CreateIntentRequest) (res dto.IntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookingView(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	var (
		payerID string
		guest   bool
	)

	switch c := caller.(type) {
	case tenantModel.Authenticated:
		if c.UserID == constant.Empty {
			return res, failure.Unauthorized(MessageAuthenticationRequired) // nolint:wrapcheck
		}

		if _, role := shared.Caller(ctx); booking.TenantID != c.UserID && role != constant.RoleAdmin {
			return res, failure.Forbidden(MessageIntentForbidden) // nolint:wrapcheck
		}

		payerID = c.UserID
	case tenantModel.Guest:
		payerID = booking.TenantID
		guest = true
	default:
		return res, fmt.Errorf("unsupported caller %T", caller)
	}

	if booking.IsPaid {
		return res, failure.BadRequestFromString(MessageBookingAlreadyPaid) // nolint:wrapcheck
	}

	active, err := s.intentRepo.Get(ctx, repository.FilterActiveIntent(booking.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment intent")

		return res, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if active.ID != constant.Empty {
		log.Info().Str("booking_id", booking.ID).Str("intent_id", active.ProviderPaymentIntentID).Msg("reusing open payment intent")

		res.FromModel(active, booking)

		return res, nil
	}

	payer, err := s.user(ctx, payerID)
	if err != nil {
		return res, err
	}

	customerID, err := ensureCustomer(ctx, s.userRepo, s.gateway, payer)
	if err != nil {
		return res, wrapGatewayError(err, messageCreateIntentFailed)
	}

	currency := s.currency()

	amount, err := money.ToMinorUnits(booking.TotalPrice, currency)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	pi, err := s.gateway.CreateIntent(ctx, stripe.IntentParams{
		Amount:           amount,
		Currency:         currency,
		CustomerID:       customerID,
		Description:      intentDescription(booking, guest),
		SetupFutureUsage: req.SetupFutureUsage,
		IdempotencyKey:   fmt.Sprintf("booking_%s_%s", booking.ID, payerID),
		Metadata:         intentMetadata(booking, payerID, guest),
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to create payment intent")

		return res, providerFailure(err, messageCreateIntentFailed)
	}

	intent := model.Intent{
		ID:                      uuid.NewString(),
		BookingID:               booking.ID,
		UserID:                  payerID,
		Amount:                  booking.TotalPrice,
		Currency:                currency,
		Status:                  model.IntentStatusFromProvider(pi.Status),
		ProviderPaymentIntentID: pi.ID,
		ClientSecret:            pi.ClientSecret,
		Metadata:                newMetadata(ctx),
	}

	if err = s.intentRepo.Insert(ctx, intent); err != nil {
		if !isUniqueViolation(err) {
			log.Error().Err(err).Msg("failed to insert payment intent")

			return res, fmt.Errorf("failed to insert payment intent: %w", err)
		}

		// a concurrent request stored the same provider intent first
		intent, err = s.intentRepo.Get(ctx, repository.FilterIntentByProviderID(pi.ID))
		if err != nil {
			log.Error().Err(err).Msg("failed to get payment intent")

			return res, fmt.Errorf("failed to get payment intent: %w", err)
		}
	}

	log.Info().Str("booking_id", booking.ID).Str("intent_id", pi.ID).Bool("guest", guest).Msg("payment intent created")

	res.FromModel(intent, booking)

	return res, nil
}

func (s *serviceImpl) user(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound(MessageUserNotFound) // nolint:wrapcheck
	}

	return user, nil
}

func intentDescription(booking bookingModel.View, guest bool) string {
	if guest {
		return fmt.Sprintf("Guest payment for booking %s - %s", booking.ID, booking.PropertyTitle)
	}

	return fmt.Sprintf("Payment for booking %s - %s", booking.ID, booking.PropertyTitle)
}

func intentMetadata(booking bookingModel.View, payerID string, guest bool) map[string]string {
	metadata := map[string]string{
		stripe.MetadataBookingID:  booking.ID,
		stripe.MetadataUserID:     payerID,
		stripe.MetadataPropertyID: booking.PropertyID,
	}

	if guest {
		metadata[metadataGuestKey] = metadataGuestMarker
	}

	return metadata
}

// wrapGatewayError maps provider errors to a bad gateway and wraps everything else.
func wrapGatewayError(err error, prefix string) error {
	var providerErr *stripe.ProviderError
	if errors.As(err, &providerErr) {
		return providerFailure(err, prefix)
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}

func newMetadata(ctx context.Context) sharedModel.Metadata {
	return sharedModel.NewMetadata(timezone.Now(), shared.Actor(ctx))
}
