package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"houserental/config"
	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/internal/domains/booking/model"
	"houserental/internal/domains/booking/model/dto"
	"houserental/internal/domains/booking/repository"
	propertyModel "houserental/internal/domains/property/model"
	propertyRepo "houserental/internal/domains/property/repository"
	propertyService "houserental/internal/domains/property/service"
	tenantModel "houserental/internal/domains/tenant/model"
	tenantService "houserental/internal/domains/tenant/service"
	"houserental/shared"
	"houserental/shared/cache"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	"houserental/shared/event"
	"houserental/shared/failure"
	"houserental/shared/money"
	"houserental/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	MessageBookingNotFound       = "Booking not found"
	MessagePropertyNotFound      = "Property not found"
	MessagePropertyNotBookable   = "Property is not available for booking"
	MessageCheckInPast           = "Check-in date cannot be in the past"
	MessageCheckOutBeforeCheckIn = "Check-out date must be after check-in date"
	MessageMinimumStay           = "Minimum stay is 1 day"
	MessageDatesUnavailable      = "Property is not available for the selected dates"
	MessageOwnerBookingsRole     = "Only agents and admins can view owner bookings"
	MessageUpdateForbidden       = "You don't have permission to update this booking"
	MessageDeleteForbidden       = "You don't have permission to delete this booking"
	MessageReviewTenantOnly      = "Only the tenant can review a booking"
	MessageReviewNotCompleted    = "Only completed bookings can be reviewed"
	MessageReviewExists          = "Booking already has a review"
	MessagePaymentIDRequired     = "Payment ID is required"
	MessageUnpayAdminOnly        = "Only admins can mark a booking as unpaid"
)

const cacheGetBooking = "booking:get"

var sortableFields = []string{
	constant.FieldCreatedAt,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldStatus,
	"total_price",
}

type Booking interface {
	Create(ctx context.Context, caller tenantModel.Caller, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByGuestEmail(ctx context.Context, id, email string) (dto.BookingResponse, error)
	GetTenantBookings(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.BookingSummaryResponse], error)
	GetPropertyBookings(ctx context.Context, propertyID string, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.BookingSummaryResponse], error)
	GetOwnerBookings(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.BookingSummaryResponse], error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.BookingSummaryResponse], error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (dto.BookingResponse, error)
	SetPaymentState(ctx context.Context, sqltx *sqlx.Tx, id string, paid bool, reference string) error
	CreateReview(ctx context.Context, id string, req dto.CreateReviewRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	reviewRepo   repository.Review
	propertyRepo propertyRepo.Property
	availability Availability
	tenant       tenantService.Tenant
	transactor   postgres.Transactor
	publisher    event.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	reviewRepo repository.Review,
	propertyRepo propertyRepo.Property,
	availability Availability,
	tenant tenantService.Tenant,
	transactor postgres.Transactor,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		reviewRepo:   reviewRepo,
		propertyRepo: propertyRepo,
		availability: availability,
		tenant:       tenant,
		transactor:   transactor,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create validates the stay, then resolves the tenant and inserts the booking while
// holding the property row lock.
func (s *serviceImpl) Create(ctx context.Context, caller tenantModel.Caller, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	propertyFilter := shared.FilterByID(req.PropertyID, propertyModel.FieldID, propertyModel.TableName)

	property, err := s.propertyRepo.Get(ctx, propertyFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound(MessagePropertyNotFound) // nolint:wrapcheck
	}

	if !property.IsBookable() {
		return res, failure.BadRequestFromString(MessagePropertyNotBookable) // nolint:wrapcheck
	}

	if checkIn.Before(timezone.Today()) {
		return res, failure.BadRequestFromString(MessageCheckInPast) // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString(MessageCheckOutBeforeCheckIn) // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.propertyRepo.GetForUpdateTx(ctx, tx, propertyFilter)
		if err != nil {
			return fmt.Errorf("failed to lock property: %w", err)
		}

		if !locked.IsBookable() {
			return failure.BadRequestFromString(MessagePropertyNotBookable) // nolint:wrapcheck
		}

		available, err := s.availability.IsAvailableTx(ctx, tx, locked, checkIn, checkOut)
		if err != nil {
			return err
		}

		if !available {
			return failure.Conflict(MessageDatesUnavailable) // nolint:wrapcheck
		}

		nights := int(checkOut.Sub(checkIn).Hours() / 24)
		if nights < 1 {
			return failure.BadRequestFromString(MessageMinimumStay) // nolint:wrapcheck
		}

		tenant, err := s.tenant.Resolve(ctx, tx, caller)
		if err != nil {
			return err
		}

		booking = req.ToModel(tenant.ID, checkIn, checkOut, money.Nights(locked.PricePerNight, nights), shared.Actor(ctx))

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return conflictOrWrap(err, MessageDatesUnavailable, "failed to insert booking")
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("failed to create booking")

		return res, err
	}

	log.Info().Str("booking_id", booking.ID).Str("property_id", booking.PropertyID).Str("tenant_id", booking.TenantID).Msg("booking created")

	s.publish(ctx, event.TypeBookingCreated, booking, constant.Empty)

	return s.detail(ctx, booking.ID)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.detail(ctx, id)
	if err != nil {
		return res, err
	}

	userID, role := shared.Caller(ctx)
	if role != constant.RoleAdmin && res.Tenant.ID != userID && res.Property.OwnerID != userID {
		return dto.BookingResponse{}, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	return res, nil
}

// GetByGuestEmail lets an anonymous guest read a booking by id when the email matches.
func (s *serviceImpl) GetByGuestEmail(ctx context.Context, id, email string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByGuestEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.detail(ctx, id)
	if err != nil {
		return res, err
	}

	if email == constant.Empty || !strings.EqualFold(res.GuestEmail, email) {
		log.Warn().Str("booking_id", id).Msg("guest email does not match booking")

		return dto.BookingResponse{}, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetTenantBookings(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (res gDto.Paginated[dto.BookingSummaryResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTenantBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := shared.Caller(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized("Authentication required") // nolint:wrapcheck
	}

	return s.list(ctx, params, filter.FilterGroup(repository.ByTenant(userID)))
}

func (s *serviceImpl) GetPropertyBookings(ctx context.Context, propertyID string, params gDto.QueryParams, filter dto.Filter) (res gDto.Paginated[dto.BookingSummaryResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPropertyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound(MessagePropertyNotFound) // nolint:wrapcheck
	}

	userID, role := shared.Caller(ctx)
	if role != constant.RoleAdmin && property.OwnerID != userID {
		return res, failure.ResourceRestrictedError
	}

	return s.list(ctx, params, filter.FilterGroup(repository.ByProperty(propertyID)))
}

func (s *serviceImpl) GetOwnerBookings(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (res gDto.Paginated[dto.BookingSummaryResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOwnerBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, role := shared.Caller(ctx)
	if role != constant.RoleAgent && role != constant.RoleAdmin {
		return res, failure.Forbidden(MessageOwnerBookingsRole) // nolint:wrapcheck
	}

	return s.list(ctx, params, filter.FilterGroup(repository.ByOwner(userID)))
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (res gDto.Paginated[dto.BookingSummaryResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, role := shared.Caller(ctx); role != constant.RoleAdmin {
		return res, failure.ForbiddenError
	}

	return s.list(ctx, params, filter.FilterGroup())
}

// UpdateStatus moves a booking through its state machine and keeps the property status in step.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	target, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	var (
		booking         model.Booking
		previous        model.Status
		propertyChanged bool
	)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		var (
			property propertyModel.Property
			err      error
		)

		booking, property, err = s.lockForWrite(ctx, tx, id)
		if err != nil {
			return err
		}

		if !canManage(ctx, booking, property) {
			return failure.Forbidden(MessageUpdateForbidden) // nolint:wrapcheck
		}

		previous = booking.Status
		if !previous.CanTransitionTo(target) {
			return failure.BadRequestFromString(fmt.Sprintf("Invalid status transition from %s to %s", previous, target)) // nolint:wrapcheck
		}

		switch {
		case target == model.StatusConfirmed:
			overlap, err := s.availability.HasOverlapTx(ctx, tx, property.ID, booking.CheckInDate, booking.CheckOutDate, booking.ID)
			if err != nil {
				return err
			}

			if overlap {
				return failure.Conflict(MessageDatesUnavailable) // nolint:wrapcheck
			}

			if err := s.setPropertyStatus(ctx, tx, property.ID, propertyModel.StatusRented); err != nil {
				return err
			}

			propertyChanged = true
		case target.ReleasesProperty() && property.Status == propertyModel.StatusRented:
			propertyChanged, err = s.releaseProperty(ctx, tx, property.ID, booking.ID)
			if err != nil {
				return err
			}
		}

		fields := shared.TransformFields(struct {
			Status model.Status `db:"status"`
		}{Status: target}, shared.Actor(ctx))

		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return conflictOrWrap(err, MessageDatesUnavailable, "failed to update booking status")
		}

		booking.Status = target

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return res, err
	}

	s.invalidate(ctx, booking.ID)

	if propertyChanged {
		s.invalidateProperty(ctx, booking.PropertyID)
	}

	s.publish(ctx, event.TypeBookingStatusChanged, booking, previous)

	return s.detail(ctx, booking.ID)
}

// UpdatePayment is the manual payment flag. Clearing it is an admin override.
func (s *serviceImpl) UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsPaid == nil {
		return res, failure.BadRequestFromString("is_paid is required") // nolint:wrapcheck
	}

	paid := *req.IsPaid

	if paid && strings.TrimSpace(req.PaymentID) == constant.Empty {
		return res, failure.BadRequestFromString(MessagePaymentIDRequired) // nolint:wrapcheck
	}

	booking, property, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if !canManage(ctx, booking, property) {
		return res, failure.Forbidden(MessageUpdateForbidden) // nolint:wrapcheck
	}

	if _, role := shared.Caller(ctx); !paid && role != constant.RoleAdmin {
		return res, failure.Forbidden(MessageUnpayAdminOnly) // nolint:wrapcheck
	}

	err = s.repo.Update(ctx, paymentFields(ctx, paid, strings.TrimSpace(req.PaymentID)), shared.FilterByID(booking.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking payment")

		return res, fmt.Errorf("failed to update booking payment: %w", err)
	}

	s.invalidate(ctx, booking.ID)

	return s.detail(ctx, booking.ID)
}

// SetPaymentState stamps the payment flag on behalf of the payment domain. sqltx is the
// caller's settlement transaction and no permission check is made. The cached detail is
// dropped once sqltx commits.
func (s *serviceImpl) SetPaymentState(ctx context.Context, sqltx *sqlx.Tx, id string, paid bool, reference string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetPaymentState")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.GetTx(ctx, sqltx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	if err = s.repo.UpdateTx(ctx, sqltx, paymentFields(ctx, paid, reference), filter); err != nil {
		log.Error().Err(err).Msg("failed to set booking payment state")

		return fmt.Errorf("failed to set booking payment state: %w", err)
	}

	postgres.AfterCommit(sqltx, func() { s.invalidate(context.WithoutCancel(ctx), id) })

	return nil
}

func (s *serviceImpl) CreateReview(ctx context.Context, id string, req dto.CreateReviewRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateReview")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	if userID, _ := shared.Caller(ctx); userID == constant.Empty || userID != booking.TenantID {
		return res, failure.Forbidden(MessageReviewTenantOnly) // nolint:wrapcheck
	}

	if booking.Status != model.StatusCompleted {
		return res, failure.BadRequestFromString(MessageReviewNotCompleted) // nolint:wrapcheck
	}

	exist, err := s.reviewRepo.Exist(ctx, repository.FilterReviewByBooking(booking.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking review")

		return res, fmt.Errorf("failed to check booking review: %w", err)
	}

	if exist {
		return res, failure.Conflict(MessageReviewExists) // nolint:wrapcheck
	}

	review := model.Review{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: timezone.Now(),
	}

	if err = s.reviewRepo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to create booking review")

		return res, conflictOrWrap(err, MessageReviewExists, "failed to create booking review")
	}

	s.invalidate(ctx, booking.ID)

	return s.detail(ctx, booking.ID)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	var (
		booking         model.Booking
		propertyChanged bool
	)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		var (
			property propertyModel.Property
			err      error
		)

		booking, property, err = s.lockForWrite(ctx, tx, id)
		if err != nil {
			return err
		}

		if !canManage(ctx, booking, property) {
			return failure.Forbidden(MessageDeleteForbidden) // nolint:wrapcheck
		}

		if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		if booking.Status == model.StatusConfirmed && property.Status == propertyModel.StatusRented {
			propertyChanged, err = s.releaseProperty(ctx, tx, property.ID, booking.ID)
		}

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return err
	}

	s.invalidate(ctx, booking.ID)

	if propertyChanged {
		s.invalidateProperty(ctx, booking.PropertyID)
	}

	return nil
}

// detail is the cached read-through shared by every operation that returns a booking.
func (s *serviceImpl) detail(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	view, err := s.repo.GetView(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if view.ID == constant.Empty {
		return res, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	review, err := s.reviewRepo.Get(ctx, repository.FilterReviewByBooking(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking review")

		return res, fmt.Errorf("failed to get booking review: %w", err)
	}

	if review.ID == constant.Empty {
		res.FromView(view, nil)
	} else {
		res.FromView(view, &review)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res gDto.Paginated[dto.BookingSummaryResponse], err error) {
	params.Sanitize(model.TableName, sortableFields...)

	total, err := s.repo.CountViews(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	views, err := s.repo.GetAllViews(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	return gDto.NewPaginated(dto.SummariesFromViews(views), total, params), nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Booking, propertyModel.Property, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, propertyModel.Property{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, propertyModel.Property{}, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(booking.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return booking, property, fmt.Errorf("failed to get property: %w", err)
	}

	return booking, property, nil
}

// lockForWrite loads the booking and locks its property row. Property locks are always
// taken before booking locks.
func (s *serviceImpl) lockForWrite(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, propertyModel.Property, error) {
	booking, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, propertyModel.Property{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, propertyModel.Property{}, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	property, err := s.propertyRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(booking.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		return booking, property, fmt.Errorf("failed to lock property: %w", err)
	}

	booking, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, property, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, property, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	return booking, property, nil
}

// releaseProperty sets the property back to approved unless another confirmed booking holds it.
func (s *serviceImpl) releaseProperty(ctx context.Context, tx *sqlx.Tx, propertyID, bookingID string) (bool, error) {
	held, err := s.repo.ExistTx(ctx, tx, repository.FilterOtherConfirmed(propertyID, bookingID))
	if err != nil {
		return false, fmt.Errorf("failed to check confirmed bookings: %w", err)
	}

	if held {
		return false, nil
	}

	if err := s.setPropertyStatus(ctx, tx, propertyID, propertyModel.StatusApproved); err != nil {
		return false, err
	}

	return true, nil
}

func (s *serviceImpl) setPropertyStatus(ctx context.Context, tx *sqlx.Tx, propertyID, status string) error {
	fields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: status}, shared.Actor(ctx))

	if err := s.propertyRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName)); err != nil {
		return fmt.Errorf("failed to set property %s: %w", status, err)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}
}

func (s *serviceImpl) invalidateProperty(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(propertyService.CacheGetProperty, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete property from cache")
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, previous model.Status) {
	payload := dto.NewEvent(booking, previous)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, s.cfg.Kafka.Topics.Booking, booking.ID, eventType, payload); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish booking event")
		}
	}()
}

// canManage holds for an admin, the booking's tenant and the agent owning the property.
func canManage(ctx context.Context, booking model.Booking, property propertyModel.Property) bool {
	userID, role := shared.Caller(ctx)
	if userID == constant.Empty {
		return false
	}

	switch role {
	case constant.RoleAdmin:
		return true
	case constant.RoleAgent:
		return property.OwnerID == userID || booking.TenantID == userID
	default:
		return booking.TenantID == userID
	}
}

func paymentFields(ctx context.Context, paid bool, reference string) map[string]any {
	fields := map[string]any{
		model.FieldIsPaid:        paid,
		model.FieldPaymentDate:   nil,
		model.FieldPaymentID:     nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	if paid {
		fields[model.FieldPaymentDate] = timezone.Now()
		fields[model.FieldPaymentID] = reference
	}

	return fields
}

func parseStay(checkInValue, checkOutValue string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(checkInValue)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in_date must be a YYYY-MM-DD date") // nolint:wrapcheck
	}

	checkOut, err = timezone.ParseDate(checkOutValue)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out_date must be a YYYY-MM-DD date") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

// conflictOrWrap maps exclusion and unique violations to a conflict with message.
func conflictOrWrap(err error, message, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeExclusion, constant.PqErrorCodeUniqueViolation:
			return failure.Conflict(message) // nolint:wrapcheck
		}
	}

	return fmt.Errorf("%s: %w", action, err)
}
