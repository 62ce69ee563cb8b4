package stripe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"

	"houserental/config"
	"houserental/infras/otel"
	"houserental/shared/constant"

	"github.com/google/uuid"
)

const (
	sandboxIntentPrefix   = "pi_sandbox_"
	sandboxCustomerPrefix = "cus_sandbox_"

	// Test card ids with a fixed outcome, named after the provider's test tokens.
	SandboxMethodDeclined               = "pm_card_chargeDeclined"
	SandboxMethodAuthenticationRequired = "pm_card_authenticationRequired"
)

// sandboxImpl is an in-memory gateway with deterministic ids, for local runs without provider keys.
type sandboxImpl struct {
	cfg  *config.Config
	otel otel.Otel

	mu        sync.Mutex
	intents   map[string]Intent
	customers map[string]Customer
	methods   map[string]PaymentMethod
}

func NewSandbox(cfg *config.Config, otel otel.Otel) Gateway {
	return &sandboxImpl{
		cfg:       cfg,
		otel:      otel,
		intents:   map[string]Intent{},
		customers: map[string]Customer{},
		methods:   map[string]PaymentMethod{},
	}
}

func sandboxID(prefix, seed string) string {
	sum := sha256.Sum256([]byte(seed))

	return prefix + hex.EncodeToString(sum[:12])
}

func notFound(resource, id string) error {
	return &ProviderError{
		Code:       "resource_missing",
		Message:    "No such " + resource + ": '" + id + "'",
		HTTPStatus: http.StatusNotFound,
	}
}

func (s *sandboxImpl) CreateCustomer(ctx context.Context, params CustomerParams) (res Customer, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".sandbox.CreateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	res = Customer{
		ID:    sandboxID(sandboxCustomerPrefix, strings.ToLower(params.Email)),
		Email: params.Email,
	}
	s.customers[res.ID] = res

	return res, nil
}

func (s *sandboxImpl) CreateIntent(ctx context.Context, params IntentParams) (res Intent, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".sandbox.CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if params.Amount <= 0 {
		return res, &ProviderError{
			Code:       "parameter_invalid_integer",
			Message:    "This value must be greater than or equal to 1.",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	seed := params.IdempotencyKey
	if seed == constant.Empty {
		seed = uuid.NewString()
	}

	id := sandboxID(sandboxIntentPrefix, seed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.intents[id]; ok {
		return existing, nil
	}

	res = Intent{
		ID:           id,
		Status:       IntentStatusRequiresPaymentMethod,
		ClientSecret: id + "_secret_" + sandboxID(constant.Empty, id)[:16],
		Amount:       params.Amount,
		Currency:     params.Currency,
		CustomerID:   params.CustomerID,
		Metadata:     params.Metadata,
	}
	s.intents[id] = res

	scope.SetAttribute(otelAttrIntentID, id)

	return res, nil
}

func (s *sandboxImpl) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (res Intent, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".sandbox.ConfirmIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[intentID]
	if !ok {
		return res, notFound("payment_intent", intentID)
	}

	if intent.Status == IntentStatusSucceeded || intent.Status == IntentStatusCanceled {
		return res, &ProviderError{
			Code:       "payment_intent_unexpected_state",
			Message:    "This PaymentIntent's status is " + intent.Status + " and cannot be confirmed.",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	if paymentMethodID == constant.Empty {
		paymentMethodID = intent.PaymentMethodID
	}

	if paymentMethodID == constant.Empty {
		paymentMethodID = s.customerMethod(intent.CustomerID)
	}

	if paymentMethodID == constant.Empty {
		return res, &ProviderError{
			Code:       "payment_intent_unexpected_state",
			Message:    "You cannot confirm this PaymentIntent because it's missing a payment method.",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	intent.PaymentMethodID = paymentMethodID

	switch paymentMethodID {
	case SandboxMethodDeclined:
		intent.Status = IntentStatusRequiresPaymentMethod
		s.intents[intentID] = intent

		return res, &ProviderError{
			Code:       "card_declined",
			Message:    "Your card was declined.",
			HTTPStatus: http.StatusPaymentRequired,
		}
	case SandboxMethodAuthenticationRequired:
		intent.Status = IntentStatusRequiresAction
	default:
		intent.Status = IntentStatusSucceeded
	}

	s.intents[intentID] = intent

	return intent, nil
}

// customerMethod returns a method attached to the customer, if any. Callers hold mu.
func (s *sandboxImpl) customerMethod(customerID string) string {
	if customerID == constant.Empty {
		return constant.Empty
	}

	for id, method := range s.methods {
		if method.CustomerID == customerID {
			return id
		}
	}

	return constant.Empty
}

func (s *sandboxImpl) RetrieveIntent(ctx context.Context, intentID string) (res Intent, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".sandbox.RetrieveIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[intentID]
	if !ok {
		return res, notFound("payment_intent", intentID)
	}

	return intent, nil
}

func (s *sandboxImpl) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (res PaymentMethod, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".sandbox.AttachPaymentMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return res, notFound("customer", customerID)
	}

	method := s.method(paymentMethodID)
	method.CustomerID = customerID
	s.methods[paymentMethodID] = method

	return method, nil
}

func (s *sandboxImpl) RetrievePaymentMethod(ctx context.Context, paymentMethodID string) (res PaymentMethod, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".sandbox.RetrievePaymentMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.method(paymentMethodID), nil
}

func (s *sandboxImpl) DetachPaymentMethod(ctx context.Context, paymentMethodID string) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".sandbox.DetachPaymentMethod")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	method, ok := s.methods[paymentMethodID]
	if !ok || method.CustomerID == constant.Empty {
		return &ProviderError{
			Code:       "payment_method_unexpected_state",
			Message:    "The payment method you provided is not attached to a customer so detachment is impossible.",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	method.CustomerID = constant.Empty
	s.methods[paymentMethodID] = method

	return nil
}

// method returns the stored method or a visa test card for an unseen id. Callers hold mu.
func (s *sandboxImpl) method(paymentMethodID string) PaymentMethod {
	if method, ok := s.methods[paymentMethodID]; ok {
		return method
	}

	return PaymentMethod{
		ID:           paymentMethodID,
		Type:         "card",
		CardBrand:    "visa",
		CardLast4:    "4242",
		CardExpMonth: 12,
		CardExpYear:  2034,
	}
}

func (s *sandboxImpl) ConstructEvent(payload []byte, signature string) (Event, error) {
	return constructEvent(payload, signature, s.cfg.Payment.WebhookSecret)
}

func (s *sandboxImpl) PublishableKey() string {
	if s.cfg.Payment.PublishableKey == constant.Empty {
		return "pk_sandbox"
	}

	return s.cfg.Payment.PublishableKey
}
