package service

import (
	"context"
	"fmt"

	bookingModel "houserental/internal/domains/booking/model"
	"houserental/internal/domains/payment/model"
	"houserental/internal/domains/payment/model/dto"
	"houserental/internal/domains/payment/repository"
	"houserental/shared"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	"houserental/shared/event"
	"houserental/shared/failure"
	"houserental/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Get returns a payment visible to its payer, the property owner and admins.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.detail(ctx, id)
	if err != nil {
		return res, err
	}

	userID, role := shared.Caller(ctx)
	if role != constant.RoleAdmin && (userID == constant.Empty || (res.User.ID != userID && res.Booking.Property.OwnerID != userID)) {
		return dto.PaymentResponse{}, failure.NotFound(MessagePaymentNotFound) // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (res gDto.Paginated[dto.PaymentSummaryResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, role := shared.Caller(ctx); role != constant.RoleAdmin {
		return res, failure.ForbiddenError
	}

	return s.list(ctx, params, filter.FilterGroup())
}

func (s *serviceImpl) GetUserPayments(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (res gDto.Paginated[dto.PaymentSummaryResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUserPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.Caller(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized(MessageAuthenticationRequired) // nolint:wrapcheck
	}

	return s.list(ctx, params, filter.FilterGroup(repository.ByUser(userID)))
}

func (s *serviceImpl) GetLandlordPayments(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (res gDto.Paginated[dto.PaymentSummaryResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetLandlordPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, role := shared.Caller(ctx)
	if role != constant.RoleAgent && role != constant.RoleAdmin {
		return res, failure.Forbidden(MessageLandlordOnly) // nolint:wrapcheck
	}

	return s.list(ctx, params, filter.FilterGroup(repository.ByOwner(userID)))
}

func (s *serviceImpl) GetBookingPayments(ctx context.Context, bookingID string, params gDto.QueryParams, filter dto.Filter) (res gDto.Paginated[dto.PaymentSummaryResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookingPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookingView(ctx, bookingID)
	if err != nil {
		return res, err
	}

	userID, role := shared.Caller(ctx)
	if role != constant.RoleAdmin && (userID == constant.Empty || (booking.TenantID != userID && booking.PropertyOwnerID != userID)) {
		return res, failure.Forbidden(MessageBookingPaymentsDenied) // nolint:wrapcheck
	}

	return s.list(ctx, params, filter.FilterGroup(repository.ByBooking(booking.ID)))
}

// UpdateStatus is the admin override of a payment's status. Each status timestamp is stamped
// once, and completed or refunded keep the booking's payment flag in step.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, role := shared.Caller(ctx); role != constant.RoleAdmin {
		return res, failure.ForbiddenError
	}

	target, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	var (
		payment  model.Payment
		previous model.Status
	)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error

		filter := shared.FilterByID(id, model.FieldID, model.TableName)

		payment, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		if payment.ID == constant.Empty {
			return failure.NotFound(MessagePaymentNotFound) // nolint:wrapcheck
		}

		previous = payment.Status

		fields := map[string]any{
			model.FieldStatus:        target,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: shared.Actor(ctx),
		}

		if field, stamped := payment.StampedAt(target); field != constant.Empty && !stamped {
			fields[field] = timezone.Now()
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}

		payment.Status = target

		return s.syncBookingPayment(ctx, tx, payment)
	})
	if err != nil {
		log.Error().Err(err).Str("payment_id", id).Msg("failed to update payment status")

		return res, err
	}

	s.invalidate(ctx, payment.ID)

	if previous != target {
		switch target {
		case model.StatusCompleted:
			s.publish(ctx, event.TypePaymentCompleted, payment)
		case model.StatusRefunded:
			s.publish(ctx, event.TypePaymentRefunded, payment)
		}
	}

	return s.detail(ctx, payment.ID)
}

// syncBookingPayment marks the booking paid for a completed payment and unpaid for a refunded one.
func (s *serviceImpl) syncBookingPayment(ctx context.Context, tx *sqlx.Tx, payment model.Payment) error {
	if payment.Status != model.StatusCompleted && payment.Status != model.StatusRefunded {
		return nil
	}

	booking, err := s.bookingRepo.GetTx(ctx, tx, shared.FilterByID(payment.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	switch {
	case payment.Status == model.StatusCompleted && !booking.IsPaid:
		return s.booking.SetPaymentState(ctx, tx, booking.ID, true, payment.ProviderPaymentIntentID)
	case payment.Status == model.StatusRefunded && booking.IsPaid:
		return s.booking.SetPaymentState(ctx, tx, booking.ID, false, constant.Empty)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, role := shared.Caller(ctx); role != constant.RoleAdmin {
		return failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	payment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return failure.NotFound(MessagePaymentNotFound) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete payment")

		return fmt.Errorf("failed to delete payment: %w", err)
	}

	log.Info().Str("payment_id", payment.ID).Msg("payment deleted")

	s.removeReceipt(ctx, payment)
	s.invalidate(ctx, payment.ID)

	return nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res gDto.Paginated[dto.PaymentSummaryResponse], err error) {
	params.Sanitize(model.TableName, sortableFields...)

	total, err := s.repo.CountViews(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	views, err := s.repo.GetAllViews(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	return gDto.NewPaginated(dto.SummariesFromViews(views), total, params), nil
}
