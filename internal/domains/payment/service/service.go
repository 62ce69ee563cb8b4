package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"houserental/config"
	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/infras/s3"
	"houserental/infras/stripe"
	bookingModel "houserental/internal/domains/booking/model"
	bookingRepo "houserental/internal/domains/booking/repository"
	bookingService "houserental/internal/domains/booking/service"
	"houserental/internal/domains/payment/model"
	"houserental/internal/domains/payment/model/dto"
	"houserental/internal/domains/payment/repository"
	tenantModel "houserental/internal/domains/tenant/model"
	userRepo "houserental/internal/domains/user/repository"
	"houserental/shared"
	"houserental/shared/cache"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	"houserental/shared/event"
	"houserental/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	MessagePaymentNotFound        = "Payment not found"
	MessageBookingNotFound        = "Booking not found"
	MessageUserNotFound           = "User not found"
	MessageBookingAlreadyPaid     = "This booking is already paid"
	MessageIntentForbidden        = "You don't have permission to pay for this booking"
	MessageConfirmForbidden       = "You don't have permission to confirm this payment intent"
	MessageLandlordOnly           = "Only landlords/agents can access this endpoint"
	MessageBookingPaymentsDenied  = "You don't have permission to view payments for this booking"
	MessageAuthenticationRequired = "Authentication required"

	messageCreateIntentFailed  = "Error creating payment intent"
	messageConfirmIntentFailed = "Error confirming payment"
)

const (
	cacheGetPayment     = "payment:get"
	receiptContentType  = "application/json"
	metadataGuestKey    = "is_guest"
	metadataGuestMarker = "true"
)

var sortableFields = []string{
	constant.FieldCreatedAt,
	model.FieldStatus,
	model.FieldCompletedAt,
	"amount",
}

type Payment interface {
	PublicKey(ctx context.Context) dto.PublicKeyResponse
	CreateIntent(ctx context.Context, caller tenantModel.Caller, req dto.CreateIntentRequest) (dto.IntentResponse, error)
	Confirm(ctx context.Context, req dto.ConfirmRequest) (dto.ConfirmResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (dto.WebhookResult, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error)
	GetUserPayments(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error)
	GetLandlordPayments(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error)
	GetBookingPayments(ctx context.Context, bookingID string, params gDto.QueryParams, filter dto.Filter) (gDto.Paginated[dto.PaymentSummaryResponse], error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.PaymentResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Payment
	intentRepo  repository.Intent
	methodRepo  repository.Method
	bookingRepo bookingRepo.Booking
	userRepo    userRepo.User
	booking     bookingService.Booking
	gateway     stripe.Gateway
	storage     s3.S3
	transactor  postgres.Transactor
	publisher   event.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Payment,
	intentRepo repository.Intent,
	methodRepo repository.Method,
	bookingRepo bookingRepo.Booking,
	userRepo userRepo.User,
	booking bookingService.Booking,
	gateway stripe.Gateway,
	storage s3.S3,
	transactor postgres.Transactor,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:        repo,
		intentRepo:  intentRepo,
		methodRepo:  methodRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		booking:     booking,
		gateway:     gateway,
		storage:     storage,
		transactor:  transactor,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) PublicKey(ctx context.Context) dto.PublicKeyResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PublicKey")
	defer scope.End()

	return dto.PublicKeyResponse{PublishableKey: s.gateway.PublishableKey()}
}

func (s *serviceImpl) currency() string {
	return strings.ToLower(s.cfg.Payment.Currency)
}

func (s *serviceImpl) bookingView(ctx context.Context, id string) (bookingModel.View, error) {
	view, err := s.bookingRepo.GetView(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return view, fmt.Errorf("failed to get booking: %w", err)
	}

	if view.ID == constant.Empty {
		return view, failure.NotFound(MessageBookingNotFound) // nolint:wrapcheck
	}

	return view, nil
}

// detail is the cached read-through for a single payment.
func (s *serviceImpl) detail(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetPayment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment")

		return res, nil
	}

	view, err := s.repo.GetView(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if view.ID == constant.Empty {
		return res, failure.NotFound(MessagePaymentNotFound) // nolint:wrapcheck
	}

	res.FromView(view)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetPayment, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete payment from cache")
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, payment model.Payment) {
	payload := dto.NewEvent(payment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, s.cfg.Kafka.Topics.Payment, payment.ID, eventType, payload); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish payment event")
		}
	}()
}

// storeReceipt uploads the receipt document and records its url. Failures are logged only.
func (s *serviceImpl) storeReceipt(ctx context.Context, payment model.Payment, booking bookingModel.View) {
	if !s.cfg.External.S3.Enable {
		return
	}

	data, err := json.Marshal(dto.NewReceipt(payment, booking))
	if err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to encode receipt")

		return
	}

	url, err := s.storage.UploadFileBytes(ctx, constant.Empty, s.cfg.External.S3.ReceiptDir, payment.ID+".json", receiptContentType, data)
	if err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to upload receipt")

		return
	}

	fields := map[string]any{model.FieldReceiptURL: url}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(payment.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to save receipt url")

		return
	}

	s.invalidate(ctx, payment.ID)
}

// removeReceipt deletes the stored receipt of a deleted payment. Failures are logged only.
func (s *serviceImpl) removeReceipt(ctx context.Context, payment model.Payment) {
	if !s.cfg.External.S3.Enable || payment.ReceiptURL == nil {
		return
	}

	key := s.storage.GetObjectNameFromURL(constant.Empty, *payment.ReceiptURL)
	if key == constant.Empty {
		log.Warn().Str("payment_id", payment.ID).Msg("receipt url does not belong to the bucket")

		return
	}

	if err := s.storage.DeleteFile(ctx, constant.Empty, constant.Empty, key); err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to delete receipt")
	}
}

// providerFailure turns a gateway error into a bad gateway carrying only the provider message.
func providerFailure(err error, prefix string) error {
	message := err.Error()

	var providerErr *stripe.ProviderError
	if errors.As(err, &providerErr) {
		message = providerErr.Message
	}

	return failure.BadGateway(prefix + ": " + message) // nolint:wrapcheck
}
