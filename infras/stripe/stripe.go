package stripe

import (
	"context"

	"houserental/config"
	"houserental/infras/otel"
	"houserental/shared/constant"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type stripeImpl struct {
	api  *client.API
	cfg  *config.Config
	otel otel.Otel
}

func NewStripe(cfg *config.Config, otel otel.Otel) Gateway {
	if cfg.Payment.SecretKey == constant.Empty {
		log.Warn().Msg("payment secret key is empty, provider calls will fail")
	}

	return &stripeImpl{
		api:  client.New(cfg.Payment.SecretKey, nil),
		cfg:  cfg,
		otel: otel,
	}
}

func (s *stripeImpl) CreateCustomer(ctx context.Context, params CustomerParams) (res Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	p := &stripeGo.CustomerParams{
		Params: stripeGo.Params{Context: ctx},
		Email:  stripeGo.String(params.Email),
		Name:   stripeGo.String(params.Name),
	}
	p.AddMetadata(MetadataUserID, params.UserID)

	customer, err := s.api.Customers.New(p)
	if err != nil {
		log.Error().Err(err).Msg("failed to create provider customer")

		return res, providerError(err)
	}

	return Customer{ID: customer.ID, Email: customer.Email}, nil
}

func (s *stripeImpl) CreateIntent(ctx context.Context, params IntentParams) (res Intent, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	p := &stripeGo.PaymentIntentParams{
		Params:      stripeGo.Params{Context: ctx},
		Amount:      stripeGo.Int64(params.Amount),
		Currency:    stripeGo.String(params.Currency),
		Description: stripeGo.String(params.Description),
	}

	if params.CustomerID != constant.Empty {
		p.Customer = stripeGo.String(params.CustomerID)
	}

	if params.SetupFutureUsage != constant.Empty {
		p.SetupFutureUsage = stripeGo.String(params.SetupFutureUsage)
	}

	for key, value := range params.Metadata {
		p.AddMetadata(key, value)
	}

	if params.IdempotencyKey != constant.Empty {
		p.SetIdempotencyKey(params.IdempotencyKey)
	}

	pi, err := s.api.PaymentIntents.New(p)
	if err != nil {
		log.Error().Err(err).Msg("failed to create provider payment intent")

		return res, providerError(err)
	}

	scope.SetAttribute(otelAttrIntentID, pi.ID)

	return intentFromStripe(pi), nil
}

func (s *stripeImpl) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (res Intent, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".ConfirmIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrIntentID, intentID)

	p := &stripeGo.PaymentIntentConfirmParams{
		Params: stripeGo.Params{Context: ctx},
	}

	if paymentMethodID != constant.Empty {
		p.PaymentMethod = stripeGo.String(paymentMethodID)
	}

	pi, err := s.api.PaymentIntents.Confirm(intentID, p)
	if err != nil {
		log.Error().Err(err).Str("intent", intentID).Msg("failed to confirm provider payment intent")

		return res, providerError(err)
	}

	return intentFromStripe(pi), nil
}

func (s *stripeImpl) RetrieveIntent(ctx context.Context, intentID string) (res Intent, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".RetrieveIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrIntentID, intentID)

	pi, err := s.api.PaymentIntents.Get(intentID, &stripeGo.PaymentIntentParams{
		Params: stripeGo.Params{Context: ctx},
	})
	if err != nil {
		log.Error().Err(err).Str("intent", intentID).Msg("failed to retrieve provider payment intent")

		return res, providerError(err)
	}

	return intentFromStripe(pi), nil
}

func (s *stripeImpl) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (res PaymentMethod, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".AttachPaymentMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrMethodID, paymentMethodID)

	pm, err := s.api.PaymentMethods.Attach(paymentMethodID, &stripeGo.PaymentMethodAttachParams{
		Params:   stripeGo.Params{Context: ctx},
		Customer: stripeGo.String(customerID),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to attach provider payment method")

		return res, providerError(err)
	}

	return methodFromStripe(pm), nil
}

func (s *stripeImpl) RetrievePaymentMethod(ctx context.Context, paymentMethodID string) (res PaymentMethod, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".RetrievePaymentMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrMethodID, paymentMethodID)

	pm, err := s.api.PaymentMethods.Get(paymentMethodID, &stripeGo.PaymentMethodParams{
		Params: stripeGo.Params{Context: ctx},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to retrieve provider payment method")

		return res, providerError(err)
	}

	return methodFromStripe(pm), nil
}

func (s *stripeImpl) DetachPaymentMethod(ctx context.Context, paymentMethodID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".DetachPaymentMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrMethodID, paymentMethodID)

	_, err = s.api.PaymentMethods.Detach(paymentMethodID, &stripeGo.PaymentMethodDetachParams{
		Params: stripeGo.Params{Context: ctx},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to detach provider payment method")

		return providerError(err)
	}

	return nil
}

func (s *stripeImpl) ConstructEvent(payload []byte, signature string) (Event, error) {
	return constructEvent(payload, signature, s.cfg.Payment.WebhookSecret)
}

func (s *stripeImpl) PublishableKey() string {
	return s.cfg.Payment.PublishableKey
}
