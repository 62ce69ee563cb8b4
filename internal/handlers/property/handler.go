package property

import (
	"net/http"

	"houserental/infras/otel"
	bookingDto "houserental/internal/domains/booking/model/dto"
	bookingService "houserental/internal/domains/booking/service"
	"houserental/internal/domains/property/model/dto"
	"houserental/internal/domains/property/service"
	"houserental/shared"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	"houserental/shared/failure"
	"houserental/shared/validator"
	"houserental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service      service.Property
	availability bookingService.Availability
	booking      bookingService.Booking
	otel         otel.Otel
}

func New(service service.Property, availability bookingService.Availability, booking bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		booking:      booking,
		otel:         otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/properties", func(r chi.Router) {
		r.Post("/", handler.CreateProperty)
		r.Get("/{id}", handler.GetProperty)
		r.Patch("/{id}/status", handler.UpdateStatus)
		r.Get("/{id}/availability", handler.CheckAvailability)
		r.Get("/{id}/bookings", handler.GetPropertyBookings)
	})
}

// CreateProperty lists a new property owned by the caller.
// @Summary Create a property
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.CreatePropertyRequest true "Create Property Request"
// @Success 201 {object} response.Data[dto.PropertyResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties [post]
// @Security BearerAuth
func (handler *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProperty")
	defer scope.End()

	req := dto.CreatePropertyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create property")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property created by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusCreated, res)
}

// GetProperty returns a property by id.
// @Summary Get a property
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Data[dto.PropertyResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [get]
func (handler *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProperty")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStatus moderates a property listing.
// @Summary Update property status
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/properties/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePropertyStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update property status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Property status updated successfully")
}

// CheckAvailability reports whether the property can be booked for the stay.
// @Summary Check availability
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[bookingDto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/properties/{id}/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := bookingDto.AvailabilityRequest{}
	req.FromRequest(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.availability.Check(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPropertyBookings lists the bookings of a property for its owner or an admin.
// @Summary Get property bookings
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param is_paid query bool false "Filter by payment state"
// @Success 200 {object} response.Data[gDto.Paginated[bookingDto.BookingSummaryResponse]]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/properties/{id}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetPropertyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPropertyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := bookingDto.Filter{}
	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequest(err))

		return
	}

	res, err := handler.booking.GetPropertyBookings(ctx, chi.URLParam(r, constant.RequestParamID), queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
