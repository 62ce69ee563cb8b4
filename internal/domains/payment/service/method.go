package service

//go:generate go run go.uber.org/mock/mockgen -source=./method.go -destination=../mocks/method_service_mock.go -package=mocks -mock_names=Method=MockMethodService

import (
	"context"
	"fmt"

	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/infras/stripe"
	"houserental/internal/domains/payment/model"
	"houserental/internal/domains/payment/model/dto"
	"houserental/internal/domains/payment/repository"
	userModel "houserental/internal/domains/user/model"
	userRepo "houserental/internal/domains/user/repository"
	"houserental/shared"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	"houserental/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const MessageMethodNotFound = "Payment method not found"

const (
	messageAttachMethodFailed = "Error attaching payment method"
	messageDetachMethodFailed = "Error detaching payment method"
)

// Method manages the caller's saved payment methods.
type Method interface {
	Add(ctx context.Context, req dto.CreateMethodRequest) (dto.MethodResponse, error)
	List(ctx context.Context, params gDto.QueryParams) (gDto.Paginated[dto.MethodResponse], error)
	Update(ctx context.Context, id string, req dto.UpdateMethodRequest) (dto.MethodResponse, error)
	Delete(ctx context.Context, id string) error
}

type methodServiceImpl struct {
	repo       repository.Method
	userRepo   userRepo.User
	gateway    stripe.Gateway
	transactor postgres.Transactor
	otel       otel.Otel
}

func NewMethod(
	repo repository.Method,
	userRepo userRepo.User,
	gateway stripe.Gateway,
	transactor postgres.Transactor,
	otel otel.Otel,
) Method {
	return &methodServiceImpl{
		repo:       repo,
		userRepo:   userRepo,
		gateway:    gateway,
		transactor: transactor,
		otel:       otel,
	}
}

// Add attaches the method to the caller's provider customer and stores it. The first
// method a user saves becomes the default.
func (s *methodServiceImpl) Add(ctx context.Context, req dto.CreateMethodRequest) (res dto.MethodResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, err := callerID(ctx)
	if err != nil {
		return res, err
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound(MessageUserNotFound) // nolint:wrapcheck
	}

	customerID, err := ensureCustomer(ctx, s.userRepo, s.gateway, user)
	if err != nil {
		return res, wrapGatewayError(err, messageAttachMethodFailed)
	}

	pm, err := s.gateway.AttachPaymentMethod(ctx, req.PaymentMethodID, customerID)
	if err != nil {
		log.Error().Err(err).Str("payment_method_id", req.PaymentMethodID).Msg("failed to attach payment method")

		return res, providerFailure(err, messageAttachMethodFailed)
	}

	total, err := s.repo.Count(ctx, repository.FilterMethodsByUser(userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count payment methods")

		return res, fmt.Errorf("failed to count payment methods: %w", err)
	}

	var method model.Method

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error

		method, err = saveMethod(ctx, tx, s.repo, userID, pm, req.SetAsDefault || total == 0)

		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to save payment method")

		return res, err
	}

	res.FromModel(method)

	return res, nil
}

func (s *methodServiceImpl) List(ctx context.Context, params gDto.QueryParams) (res gDto.Paginated[dto.MethodResponse], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMethods")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, err := callerID(ctx)
	if err != nil {
		return res, err
	}

	params.Sanitize(model.MethodTableName, constant.FieldCreatedAt, model.FieldMethodIsDefault)

	filter := repository.FilterMethodsByUser(userID)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payment methods")

		return res, fmt.Errorf("failed to count payment methods: %w", err)
	}

	methods, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment methods")

		return res, fmt.Errorf("failed to get payment methods: %w", err)
	}

	items := make([]dto.MethodResponse, len(methods))
	for i, method := range methods {
		items[i].FromModel(method)
	}

	return gDto.NewPaginated(items, total, params), nil
}

// Update sets or clears the default flag. Setting it clears the user's other defaults.
func (s *methodServiceImpl) Update(ctx context.Context, id string, req dto.UpdateMethodRequest) (res dto.MethodResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	method, err := s.owned(ctx, id)
	if err != nil {
		return res, err
	}

	isDefault := req.Default()

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		return setDefault(ctx, tx, s.repo, method.UserID, method.ID, isDefault)
	})
	if err != nil {
		log.Error().Err(err).Str("method_id", id).Msg("failed to update payment method")

		return res, err
	}

	method.IsDefault = isDefault
	res.FromModel(method)

	return res, nil
}

// Delete detaches the method at the provider, then removes it.
func (s *methodServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	method, err := s.owned(ctx, id)
	if err != nil {
		return err
	}

	if err = s.gateway.DetachPaymentMethod(ctx, method.ProviderPaymentMethodID); err != nil {
		log.Error().Err(err).Str("payment_method_id", method.ProviderPaymentMethodID).Msg("failed to detach payment method")

		return providerFailure(err, messageDetachMethodFailed)
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(method.ID, model.FieldMethodID, model.MethodTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete payment method")

		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	return nil
}

// owned loads a method of the caller. Methods of other users are reported as not found.
func (s *methodServiceImpl) owned(ctx context.Context, id string) (model.Method, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return model.Method{}, err
	}

	method, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldMethodID, model.MethodTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment method")

		return method, fmt.Errorf("failed to get payment method: %w", err)
	}

	if method.ID == constant.Empty || method.UserID != userID {
		return model.Method{}, failure.NotFound(MessageMethodNotFound) // nolint:wrapcheck
	}

	return method, nil
}

func callerID(ctx context.Context) (string, error) {
	userID, _ := shared.Caller(ctx)
	if userID == constant.Empty {
		return constant.Empty, failure.Unauthorized(MessageAuthenticationRequired) // nolint:wrapcheck
	}

	return userID, nil
}
