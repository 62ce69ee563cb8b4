package service

import (
	"context"
	"fmt"

	"houserental/infras/stripe"
	bookingModel "houserental/internal/domains/booking/model"
	"houserental/internal/domains/payment/model"
	"houserental/internal/domains/payment/model/dto"
	"houserental/internal/domains/payment/repository"
	userModel "houserental/internal/domains/user/model"
	"houserental/shared"
	"houserental/shared/constant"
	"houserental/shared/event"
	"houserental/shared/failure"
	"houserental/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// settlement is what a succeeded intent needs to become a payment.
type settlement struct {
	intent  model.Intent
	booking bookingModel.View
	payer   userModel.User
	guest   bool
}

func (st settlement) receiptEmail() string {
	if st.guest && st.payer.Email == constant.Empty {
		if st.booking.GuestEmail != constant.Empty {
			return st.booking.GuestEmail
		}

		return st.booking.TenantEmail
	}

	return st.payer.Email
}

// Confirm confirms the intent at the provider, unless it already succeeded, and settles it.
// Payers whose account is inactive confirm through the guest path.
func (s *serviceImpl) Confirm(ctx context.Context, req dto.ConfirmRequest) (res dto.ConfirmResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	intent, err := s.intentRepo.Get(ctx, repository.FilterIntentByProviderID(req.PaymentIntentID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment intent")

		return res, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if intent.ID == constant.Empty {
		return res, intentNotFound(req.PaymentIntentID)
	}

	st, err := s.settlementOf(ctx, intent)
	if err != nil {
		return res, err
	}

	userID, role := shared.Caller(ctx)
	if !st.guest && role != constant.RoleAdmin && userID != intent.UserID {
		return res, failure.Forbidden(MessageConfirmForbidden) // nolint:wrapcheck
	}

	pi, err := s.gateway.RetrieveIntent(ctx, intent.ProviderPaymentIntentID)
	if err != nil {
		log.Error().Err(err).Str("intent_id", intent.ProviderPaymentIntentID).Msg("failed to retrieve payment intent")

		return res, providerFailure(err, messageConfirmIntentFailed)
	}

	if pi.Status != stripe.IntentStatusSucceeded {
		if req.PaymentMethodID != constant.Empty && req.SavePaymentMethod && userID != constant.Empty && !st.guest {
			if err = s.attachForReuse(ctx, st.payer, req.PaymentMethodID); err != nil {
				return res, err
			}
		}

		pi, err = s.gateway.ConfirmIntent(ctx, intent.ProviderPaymentIntentID, req.PaymentMethodID)
		if err != nil {
			log.Error().Err(err).Str("intent_id", intent.ProviderPaymentIntentID).Msg("failed to confirm payment intent")

			return res, providerFailure(err, messageConfirmIntentFailed)
		}
	}

	status := model.IntentStatusFromProvider(pi.Status)

	switch {
	case status == model.IntentStatusSucceeded:
		if err = s.settle(ctx, st); err != nil {
			return res, err
		}
	case status != intent.Status:
		if err = s.syncIntentStatus(ctx, intent.ID, status); err != nil {
			return res, err
		}
	}

	st.intent.Status = status
	res.FromIntent(st.intent, pi, st.booking)

	return res, nil
}

// attachForReuse attaches the method to the payer's customer and stores it as the default.
func (s *serviceImpl) attachForReuse(ctx context.Context, payer userModel.User, paymentMethodID string) error {
	customerID, err := ensureCustomer(ctx, s.userRepo, s.gateway, payer)
	if err != nil {
		return wrapGatewayError(err, messageConfirmIntentFailed)
	}

	pm, err := s.gateway.AttachPaymentMethod(ctx, paymentMethodID, customerID)
	if err != nil {
		log.Error().Err(err).Str("payment_method_id", paymentMethodID).Msg("failed to attach payment method")

		return providerFailure(err, messageConfirmIntentFailed)
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		_, err := saveMethod(ctx, tx, s.methodRepo, payer.ID, pm, true)

		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to save payment method")

		return err
	}

	return nil
}

func (s *serviceImpl) settlementOf(ctx context.Context, intent model.Intent) (settlement, error) {
	payer, err := s.user(ctx, intent.UserID)
	if err != nil {
		return settlement{}, err
	}

	booking, err := s.bookingView(ctx, intent.BookingID)
	if err != nil {
		return settlement{}, err
	}

	return settlement{
		intent:  intent,
		booking: booking,
		payer:   payer,
		guest:   !payer.IsActive,
	}, nil
}

// settle records the completed payment for a succeeded intent under the intent row lock.
// It is a no-op for an intent that already has its payment.
func (s *serviceImpl) settle(ctx context.Context, st settlement) error {
	var (
		payment model.Payment
		created bool
	)

	err := s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.intentRepo.GetForUpdateTx(ctx, tx, repository.FilterIntentByProviderID(st.intent.ProviderPaymentIntentID))
		if err != nil {
			return fmt.Errorf("failed to lock payment intent: %w", err)
		}

		if locked.ID == constant.Empty {
			return intentNotFound(st.intent.ProviderPaymentIntentID)
		}

		if locked.Settled() {
			return nil
		}

		payment, err = s.repo.GetTx(ctx, tx, repository.FilterByProviderIntent(locked.ProviderPaymentIntentID))
		if err != nil {
			return fmt.Errorf("failed to get payment: %w", err)
		}

		if payment.ID == constant.Empty {
			now := timezone.Now()
			payment = model.Payment{
				ID:                      uuid.NewString(),
				BookingID:               locked.BookingID,
				UserID:                  locked.UserID,
				Amount:                  locked.Amount,
				Currency:                locked.Currency,
				Status:                  model.StatusCompleted,
				ProviderPaymentIntentID: locked.ProviderPaymentIntentID,
				ReceiptEmail:            st.receiptEmail(),
				CompletedAt:             &now,
				Metadata:                newMetadata(ctx),
			}

			if customerID := st.payer.CustomerID(); customerID != constant.Empty {
				payment.ProviderCustomerID = &customerID
			}

			if err := s.repo.InsertTx(ctx, tx, payment); err != nil {
				return fmt.Errorf("failed to insert payment: %w", err)
			}

			created = true
		}

		fields := map[string]any{
			model.FieldIntentPaymentID: payment.ID,
			model.FieldIntentStatus:    model.IntentStatusSucceeded,
			constant.FieldModifiedAt:   timezone.Now(),
			constant.FieldModifiedBy:   shared.Actor(ctx),
		}

		if err := s.intentRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(locked.ID, model.FieldIntentID, model.IntentTableName)); err != nil {
			return fmt.Errorf("failed to link payment to intent: %w", err)
		}

		return s.booking.SetPaymentState(ctx, tx, locked.BookingID, true, locked.ProviderPaymentIntentID)
	})
	if err != nil {
		log.Error().Err(err).Str("intent_id", st.intent.ProviderPaymentIntentID).Msg("failed to settle payment")

		return err
	}

	if !created {
		return nil
	}

	log.Info().Str("payment_id", payment.ID).Str("booking_id", payment.BookingID).Msg("payment completed")

	s.storeReceipt(ctx, payment, st.booking)
	s.publish(ctx, event.TypePaymentCompleted, payment)

	return nil
}

func (s *serviceImpl) syncIntentStatus(ctx context.Context, id string, status model.IntentStatus) error {
	fields := map[string]any{
		model.FieldIntentStatus:  status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	if err := s.intentRepo.Update(ctx, fields, shared.FilterByID(id, model.FieldIntentID, model.IntentTableName)); err != nil {
		log.Error().Err(err).Msg("failed to update payment intent status")

		return fmt.Errorf("failed to update payment intent status: %w", err)
	}

	return nil
}

func intentNotFound(providerIntentID string) error {
	return failure.NotFound(fmt.Sprintf("Payment intent with ID %s not found", providerIntentID)) // nolint:wrapcheck
}
