package payment

import (
	"io"
	"net/http"

	"houserental/infras/otel"
	"houserental/internal/domains/payment/model/dto"
	"houserental/internal/domains/payment/service"
	tenantModel "houserental/internal/domains/tenant/model"
	"houserental/shared"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	"houserental/shared/failure"
	"houserental/shared/validator"
	"houserental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type listFunc func(r *http.Request, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error)

type Handler struct {
	service service.Payment
	methods service.Method
	otel    otel.Otel
}

func New(service service.Payment, methods service.Method, otel otel.Otel) Handler {
	return Handler{
		service: service,
		methods: methods,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/public-key", handler.GetPublicKey)
		r.Post("/intents", handler.CreateIntent)
		r.Post("/guest-intents", handler.CreateGuestIntent)
		r.Post("/confirm", handler.Confirm)
		r.Post("/guest-confirm", handler.Confirm)
		r.Post("/webhook", handler.Webhook)

		r.Get("/", handler.GetPayments)
		r.Get("/user", handler.GetUserPayments)
		r.Get("/landlord", handler.GetLandlordPayments)
		r.Get("/booking/{id}", handler.GetBookingPayments)

		r.Route("/methods", func(r chi.Router) {
			r.Post("/", handler.CreateMethod)
			r.Get("/", handler.GetMethods)
			r.Patch("/{id}", handler.UpdateMethod)
			r.Delete("/{id}", handler.DeleteMethod)
		})

		r.Get("/{id}", handler.GetPayment)
		r.Patch("/{id}/status", handler.UpdateStatus)
		r.Delete("/{id}", handler.DeletePayment)
	})
}

// GetPublicKey returns the publishable key the client SDK is initialised with.
// @Summary Get publishable key
// @Tags Payment
// @Produce json
// @Success 200 {object} response.Data[dto.PublicKeyResponse]
// @Router /v1/payments/public-key [get]
func (handler *Handler) GetPublicKey(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicKey")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.PublicKey(ctx))
}

// CreateIntent opens or reuses the payment intent of a booking for the caller.
// @Summary Create a payment intent
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateIntentRequest true "Create Intent Request"
// @Success 201 {object} response.Data[dto.IntentResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/intents [post]
// @Security BearerAuth
func (handler *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	userID, _ := shared.Caller(r.Context())

	handler.createIntent(w, r, "CreateIntent", tenantModel.Authenticated{UserID: userID})
}

// CreateGuestIntent opens or reuses the payment intent of a guest booking.
// @Summary Create a guest payment intent
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateIntentRequest true "Create Intent Request"
// @Success 201 {object} response.Data[dto.IntentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 502 {object} response.Error
// @Router /v1/payments/guest-intents [post]
func (handler *Handler) CreateGuestIntent(w http.ResponseWriter, r *http.Request) {
	handler.createIntent(w, r, "CreateGuestIntent", tenantModel.Guest{})
}

func (handler *Handler) createIntent(w http.ResponseWriter, r *http.Request, name string, caller tenantModel.Caller) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	req := dto.CreateIntentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateIntent(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to create payment intent")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment intent ready for booking " + req.BookingID)

	response.WithJSON(w, http.StatusCreated, res)
}

// Confirm confirms a payment intent and settles it once the provider reports success.
// The guest route shares the handler, the payer's account decides the guest path.
// @Summary Confirm a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.ConfirmRequest true "Confirm Request"
// @Success 200 {object} response.Data[dto.ConfirmResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/confirm [post]
// @Router /v1/payments/guest-confirm [post]
// @Security BearerAuth
func (handler *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPayment")
	defer scope.End()

	req := dto.ConfirmRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Confirm(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("payment_intent_id", req.PaymentIntentID).Msg("failed to confirm payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Webhook receives provider events. Only a bad signature or an infrastructure failure is answered
// with an error status.
// @Summary Payment provider webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} response.Data[dto.WebhookResult]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/webhook [post]
func (handler *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Webhook")
	defer scope.End()

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constant.RequestMaxBodyBytes))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook payload")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	res, err := handler.service.HandleWebhook(ctx, payload, r.Header.Get(constant.RequestHeaderStripeSignature))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle webhook")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Webhook handled: " + res.Message)

	response.WithJSON(w, http.StatusOK, res)
}

// GetPayments lists every payment.
// @Summary Get all payments
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param booking_id query string false "Filter by booking ID"
// @Param created_from query string false "Created on or after (YYYY-MM-DD)"
// @Param created_to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[gDto.Paginated[dto.PaymentSummaryResponse]]
// @Failure 403 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetPayments", func(r *http.Request, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error) {
		return handler.service.GetAll(r.Context(), params, filter)
	})
}

// GetUserPayments lists the caller's payments.
// @Summary Get my payments
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[gDto.Paginated[dto.PaymentSummaryResponse]]
// @Failure 401 {object} response.Error
// @Router /v1/payments/user [get]
// @Security BearerAuth
func (handler *Handler) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetUserPayments", func(r *http.Request, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error) {
		return handler.service.GetUserPayments(r.Context(), params, filter)
	})
}

// GetLandlordPayments lists payments for the properties the caller owns.
// @Summary Get landlord payments
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[gDto.Paginated[dto.PaymentSummaryResponse]]
// @Failure 403 {object} response.Error
// @Router /v1/payments/landlord [get]
// @Security BearerAuth
func (handler *Handler) GetLandlordPayments(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetLandlordPayments", func(r *http.Request, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error) {
		return handler.service.GetLandlordPayments(r.Context(), params, filter)
	})
}

// GetBookingPayments lists the payments of one booking.
// @Summary Get booking payments
// @Tags Payment
// @Produce json
// @Param id path string true "Booking ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[gDto.Paginated[dto.PaymentSummaryResponse]]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments/booking/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingPayments(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetBookingPayments", func(r *http.Request, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error) {
		return handler.service.GetBookingPayments(r.Context(), chi.URLParam(r, constant.RequestParamID), params, filter)
	})
}

func (handler *Handler) list(w http.ResponseWriter, r *http.Request, name string, fetch listFunc) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.Filter{}
	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequest(err))

		return
	}

	payments, err := fetch(r.WithContext(ctx), queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("handler", name).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPayment returns a payment visible to the caller.
// @Summary Get a payment
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 404 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayment")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStatus sets a payment status and mirrors it onto the booking.
// @Summary Update payment status
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePaymentStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update payment status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment status updated by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusOK, res)
}

// DeletePayment removes a payment record.
// @Summary Delete a payment
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePayment")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete payment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Payment deleted successfully")
}

// CreateMethod saves a payment method for the caller.
// @Summary Add a payment method
// @Tags Payment Method
// @Accept json
// @Produce json
// @Param request body dto.CreateMethodRequest true "Create Method Request"
// @Success 201 {object} response.Data[dto.MethodResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/methods [post]
// @Security BearerAuth
func (handler *Handler) CreateMethod(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMethod")
	defer scope.End()

	req := dto.CreateMethodRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.methods.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add payment method")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetMethods lists the caller's saved payment methods.
// @Summary Get my payment methods
// @Tags Payment Method
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[gDto.Paginated[dto.MethodResponse]]
// @Failure 401 {object} response.Error
// @Router /v1/payments/methods [get]
// @Security BearerAuth
func (handler *Handler) GetMethods(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMethods")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.methods.List(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment methods")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateMethod sets or clears the default flag of a saved method.
// @Summary Update a payment method
// @Tags Payment Method
// @Accept json
// @Produce json
// @Param id path string true "Payment method ID"
// @Param request body dto.UpdateMethodRequest true "Update Method Request"
// @Success 200 {object} response.Data[dto.MethodResponse]
// @Failure 404 {object} response.Error
// @Router /v1/payments/methods/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMethod(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMethod")
	defer scope.End()

	req := dto.UpdateMethodRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.methods.Update(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update payment method")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteMethod detaches and removes a saved method.
// @Summary Delete a payment method
// @Tags Payment Method
// @Param id path string true "Payment method ID"
// @Success 204
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/methods/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMethod(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMethod")
	defer scope.End()

	if err := handler.methods.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete payment method")

		response.WithError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
