package service

import (
	"context"
	"fmt"

	"houserental/infras/stripe"
	"houserental/internal/domains/payment/model"
	"houserental/internal/domains/payment/model/dto"
	"houserental/internal/domains/payment/repository"
	userRepo "houserental/internal/domains/user/repository"
	"houserental/shared/constant"
	"houserental/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	MessageIntentSucceeded      = "Payment intent succeeded"
	MessageIntentFailed         = "Payment intent failed"
	MessageIntentCanceled       = "Payment intent canceled"
	MessageIntentUnknown        = "Payment intent not found in database"
	MessageMethodExists         = "Payment method already exists"
	MessageMethodAttached       = "Payment method attached"
	MessageMethodDetached       = "Payment method detached"
	MessageMethodNoCustomer     = "No customer ID for payment method"
	MessageMethodUnknownUser    = "No user found for customer"
	MessageMethodUnknown        = "Payment method not found in database"
	messageInvalidWebhook       = "Invalid webhook payload"
	messageUnhandledWebhookType = "Unhandled event type: %s"
)

// HandleWebhook verifies and dispatches a provider event. Outcomes the provider must not retry
// are answered as a result, infrastructure failures as an error.
func (s *serviceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (res dto.WebhookResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	evt, err := s.gateway.ConstructEvent(payload, signature)
	if err != nil {
		log.Warn().Err(err).Msg("rejected webhook event")

		return res, failure.BadRequestFromString(messageInvalidWebhook + ": " + err.Error()) // nolint:wrapcheck
	}

	scope.SetAttributes(map[string]any{
		"webhook.event_id":   evt.ID,
		"webhook.event_type": evt.Type,
	})

	log.Info().Str("event_id", evt.ID).Str("event_type", evt.Type).Msg("webhook event received")

	switch evt.Type {
	case stripe.EventIntentSucceeded:
		return s.onIntentSucceeded(ctx, evt)
	case stripe.EventIntentPaymentFailed:
		return s.onIntentClosed(ctx, evt, model.IntentStatusRequiresPaymentMethod, MessageIntentFailed)
	case stripe.EventIntentCanceled:
		return s.onIntentClosed(ctx, evt, model.IntentStatusCancelled, MessageIntentCanceled)
	case stripe.EventMethodAttached:
		return s.onMethodAttached(ctx, evt)
	case stripe.EventMethodDetached:
		return s.onMethodDetached(ctx, evt)
	default:
		return dto.WebhookSuccess(fmt.Sprintf(messageUnhandledWebhookType, evt.Type)), nil
	}
}

func (s *serviceImpl) eventIntent(ctx context.Context, evt stripe.Event) (model.Intent, error) {
	pi, err := evt.Intent()
	if err != nil {
		return model.Intent{}, failure.BadRequestFromString(messageInvalidWebhook + ": " + err.Error()) // nolint:wrapcheck
	}

	intent, err := s.intentRepo.Get(ctx, repository.FilterIntentByProviderID(pi.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment intent")

		return intent, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if intent.ID == constant.Empty {
		log.Warn().Str("intent_id", pi.ID).Msg("webhook for unknown payment intent")
	}

	return intent, nil
}

func (s *serviceImpl) onIntentSucceeded(ctx context.Context, evt stripe.Event) (dto.WebhookResult, error) {
	intent, err := s.eventIntent(ctx, evt)
	if err != nil {
		return dto.WebhookResult{}, err
	}

	if intent.ID == constant.Empty {
		return dto.WebhookError(MessageIntentUnknown), nil
	}

	st, err := s.settlementOf(ctx, intent)
	if err != nil {
		return dto.WebhookResult{}, err
	}

	if err := s.settle(ctx, st); err != nil {
		return dto.WebhookResult{}, err
	}

	return dto.WebhookSuccess(MessageIntentSucceeded), nil
}

// onIntentClosed records a failed or canceled attempt. Intents already terminal are left alone.
func (s *serviceImpl) onIntentClosed(ctx context.Context, evt stripe.Event, status model.IntentStatus, message string) (dto.WebhookResult, error) {
	intent, err := s.eventIntent(ctx, evt)
	if err != nil {
		return dto.WebhookResult{}, err
	}

	if intent.ID == constant.Empty {
		return dto.WebhookError(MessageIntentUnknown), nil
	}

	if intent.Status.IsTerminal() || intent.Status == status {
		return dto.WebhookSuccess(message), nil
	}

	if err := s.syncIntentStatus(ctx, intent.ID, status); err != nil {
		return dto.WebhookResult{}, err
	}

	return dto.WebhookSuccess(message), nil
}

func (s *serviceImpl) onMethodAttached(ctx context.Context, evt stripe.Event) (dto.WebhookResult, error) {
	pm, err := evt.PaymentMethod()
	if err != nil {
		return dto.WebhookResult{}, failure.BadRequestFromString(messageInvalidWebhook + ": " + err.Error()) // nolint:wrapcheck
	}

	existing, err := s.methodRepo.Get(ctx, repository.FilterMethodByProviderID(pm.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment method")

		return dto.WebhookResult{}, fmt.Errorf("failed to get payment method: %w", err)
	}

	if existing.ID != constant.Empty {
		return dto.WebhookSuccess(MessageMethodExists), nil
	}

	if pm.CustomerID == constant.Empty {
		return dto.WebhookError(MessageMethodNoCustomer), nil
	}

	user, err := s.userRepo.Get(ctx, userRepo.FilterByCustomerID(pm.CustomerID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return dto.WebhookResult{}, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return dto.WebhookError(MessageMethodUnknownUser), nil
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		_, err := saveMethod(ctx, tx, s.methodRepo, user.ID, pm, false)

		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to save payment method")

		return dto.WebhookResult{}, err
	}

	return dto.WebhookSuccess(MessageMethodAttached), nil
}

func (s *serviceImpl) onMethodDetached(ctx context.Context, evt stripe.Event) (dto.WebhookResult, error) {
	pm, err := evt.PaymentMethod()
	if err != nil {
		return dto.WebhookResult{}, failure.BadRequestFromString(messageInvalidWebhook + ": " + err.Error()) // nolint:wrapcheck
	}

	existing, err := s.methodRepo.Get(ctx, repository.FilterMethodByProviderID(pm.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment method")

		return dto.WebhookResult{}, fmt.Errorf("failed to get payment method: %w", err)
	}

	if existing.ID == constant.Empty {
		return dto.WebhookError(MessageMethodUnknown), nil
	}

	if err := s.methodRepo.Delete(ctx, repository.FilterMethodByProviderID(pm.ID)); err != nil {
		log.Error().Err(err).Msg("failed to delete payment method")

		return dto.WebhookResult{}, fmt.Errorf("failed to delete payment method: %w", err)
	}

	return dto.WebhookSuccess(MessageMethodDetached), nil
}
