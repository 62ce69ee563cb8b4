package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=./mocks/gateway_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"houserental/config"
	"houserental/infras/otel"
	"houserental/shared/constant"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusRequiresConfirmation  = "requires_confirmation"
	IntentStatusRequiresAction        = "requires_action"
	IntentStatusProcessing            = "processing"
	IntentStatusRequiresCapture       = "requires_capture"
	IntentStatusCanceled              = "canceled"
	IntentStatusSucceeded             = "succeeded"
)

const (
	EventIntentSucceeded     = "payment_intent.succeeded"
	EventIntentPaymentFailed = "payment_intent.payment_failed"
	EventIntentCanceled      = "payment_intent.canceled"
	EventMethodAttached      = "payment_method.attached"
	EventMethodDetached      = "payment_method.detached"
)

const (
	MetadataBookingID  = "booking_id"
	MetadataUserID     = "user_id"
	MetadataPropertyID = "property_id"
)

const (
	otelAttrIntentID = "payment_intent_id"
	otelAttrMethodID = "payment_method_id"
)

var ErrInvalidEvent = errors.New("invalid webhook event")

// ProviderError carries the message the provider returned, without its stack.
type ProviderError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *ProviderError) Error() string {
	if e.Code == constant.Empty {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type CustomerParams struct {
	Email  string
	Name   string
	UserID string
}

type Customer struct {
	ID    string
	Email string
}

type IntentParams struct {
	Amount           int64
	Currency         string
	CustomerID       string
	Description      string
	SetupFutureUsage string
	IdempotencyKey   string
	Metadata         map[string]string
}

type Intent struct {
	ID              string
	Status          string
	ClientSecret    string
	Amount          int64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	Metadata        map[string]string
}

type PaymentMethod struct {
	ID           string
	Type         string
	CustomerID   string
	CardBrand    string
	CardLast4    string
	CardExpMonth int
	CardExpYear  int
}

// Event is a verified webhook event. Object holds the raw data.object payload.
type Event struct {
	ID     string
	Type   string
	Object json.RawMessage
}

type Gateway interface {
	CreateCustomer(ctx context.Context, params CustomerParams) (Customer, error)
	CreateIntent(ctx context.Context, params IntentParams) (Intent, error)
	ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (Intent, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (PaymentMethod, error)
	RetrievePaymentMethod(ctx context.Context, paymentMethodID string) (PaymentMethod, error)
	DetachPaymentMethod(ctx context.Context, paymentMethodID string) error
	ConstructEvent(payload []byte, signature string) (Event, error)
	PublishableKey() string
}

// New returns the stripe gateway, or the sandbox when PAYMENT_SANDBOX is set.
func New(cfg *config.Config, otel otel.Otel) Gateway {
	if cfg.Payment.Sandbox {
		if cfg.Server.Env == constant.ServerEnvProduction {
			log.Fatal().Msg("payment sandbox is not allowed in production")
		}

		log.Warn().Msg("payment gateway running in sandbox mode")

		return NewSandbox(cfg, otel)
	}

	return NewStripe(cfg, otel)
}

// Intent decodes the event object as a payment intent.
func (e Event) Intent() (Intent, error) {
	var pi stripeGo.PaymentIntent

	if err := json.Unmarshal(e.Object, &pi); err != nil {
		return Intent{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	return intentFromStripe(&pi), nil
}

// PaymentMethod decodes the event object as a payment method.
func (e Event) PaymentMethod() (PaymentMethod, error) {
	var pm stripeGo.PaymentMethod

	if err := json.Unmarshal(e.Object, &pm); err != nil {
		return PaymentMethod{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	return methodFromStripe(&pm), nil
}

func constructEvent(payload []byte, signature, secret string) (Event, error) {
	if signature == constant.Empty {
		return Event{}, fmt.Errorf("%w: missing signature", ErrInvalidEvent)
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	res := Event{
		ID:   evt.ID,
		Type: string(evt.Type),
	}

	if evt.Data != nil {
		res.Object = evt.Data.Raw
	}

	return res, nil
}

func intentFromStripe(pi *stripeGo.PaymentIntent) Intent {
	res := Intent{
		ID:           pi.ID,
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}

	if pi.Customer != nil {
		res.CustomerID = pi.Customer.ID
	}

	if pi.PaymentMethod != nil {
		res.PaymentMethodID = pi.PaymentMethod.ID
	}

	return res
}

func methodFromStripe(pm *stripeGo.PaymentMethod) PaymentMethod {
	res := PaymentMethod{
		ID:   pm.ID,
		Type: string(pm.Type),
	}

	if pm.Customer != nil {
		res.CustomerID = pm.Customer.ID
	}

	if pm.Card != nil {
		res.CardBrand = string(pm.Card.Brand)
		res.CardLast4 = pm.Card.Last4
		res.CardExpMonth = int(pm.Card.ExpMonth)
		res.CardExpYear = int(pm.Card.ExpYear)
	}

	return res
}

func providerError(err error) error {
	var stripeErr *stripeGo.Error
	if errors.As(err, &stripeErr) {
		status := stripeErr.HTTPStatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}

		return &ProviderError{
			Code:       string(stripeErr.Code),
			Message:    stripeErr.Msg,
			HTTPStatus: status,
		}
	}

	return &ProviderError{Message: err.Error(), HTTPStatus: http.StatusBadGateway}
}
