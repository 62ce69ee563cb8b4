package service

import (
	"context"
	"fmt"

	"houserental/infras/stripe"
	"houserental/internal/domains/payment/model"
	"houserental/internal/domains/payment/repository"
	userModel "houserental/internal/domains/user/model"
	userRepo "houserental/internal/domains/user/repository"
	"houserental/shared"
	"houserental/shared/constant"
	"houserental/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// ensureCustomer returns the user's provider customer id, creating and saving one when missing.
// Gateway errors are returned unwrapped so callers can map them.
func ensureCustomer(ctx context.Context, users userRepo.User, gateway stripe.Gateway, user userModel.User) (string, error) {
	if id := user.CustomerID(); id != constant.Empty {
		return id, nil
	}

	customer, err := gateway.CreateCustomer(ctx, stripe.CustomerParams{
		Email:  user.Email,
		Name:   user.FullName(),
		UserID: user.ID,
	})
	if err != nil {
		return constant.Empty, err
	}

	fields := map[string]any{
		userModel.FieldStripeCustomerID: customer.ID,
		constant.FieldModifiedAt:        timezone.Now(),
		constant.FieldModifiedBy:        shared.Actor(ctx),
	}

	if err := users.Update(ctx, fields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to save customer id")

		return constant.Empty, fmt.Errorf("failed to save customer id: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("customer_id", customer.ID).Msg("provider customer created")

	return customer.ID, nil
}

// saveMethod stores pm for userID inside tx. A method already stored is returned as is,
// promoted to default when isDefault is set.
func saveMethod(ctx context.Context, tx *sqlx.Tx, methods repository.Method, userID string, pm stripe.PaymentMethod, isDefault bool) (model.Method, error) {
	existing, err := methods.GetTx(ctx, tx, repository.FilterMethodByProviderID(pm.ID))
	if err != nil {
		return existing, fmt.Errorf("failed to get payment method: %w", err)
	}

	if existing.ID != constant.Empty {
		if isDefault && !existing.IsDefault {
			if err := setDefault(ctx, tx, methods, existing.UserID, existing.ID, true); err != nil {
				return existing, err
			}

			existing.IsDefault = true
		}

		return existing, nil
	}

	method := model.Method{
		ID:                      uuid.NewString(),
		UserID:                  userID,
		Type:                    model.MethodType(pm.Type),
		IsDefault:               isDefault,
		CardBrand:               pm.CardBrand,
		CardLast4:               pm.CardLast4,
		CardExpMonth:            pm.CardExpMonth,
		CardExpYear:             pm.CardExpYear,
		ProviderPaymentMethodID: pm.ID,
	}
	method.Metadata = newMetadata(ctx)

	if isDefault {
		if err := unsetOtherDefaults(ctx, tx, methods, userID, method.ID); err != nil {
			return method, err
		}
	}

	if err := methods.InsertTx(ctx, tx, method); err != nil {
		return method, fmt.Errorf("failed to insert payment method: %w", err)
	}

	return method, nil
}

// setDefault flips the default flag of id. Setting it clears every other default of the user.
func setDefault(ctx context.Context, tx *sqlx.Tx, methods repository.Method, userID, id string, isDefault bool) error {
	if isDefault {
		if err := unsetOtherDefaults(ctx, tx, methods, userID, id); err != nil {
			return err
		}
	}

	fields := map[string]any{
		model.FieldMethodIsDefault: isDefault,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   shared.Actor(ctx),
	}

	if err := methods.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldMethodID, model.MethodTableName)); err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}

	return nil
}

func unsetOtherDefaults(ctx context.Context, tx *sqlx.Tx, methods repository.Method, userID, keepID string) error {
	fields := map[string]any{
		model.FieldMethodIsDefault: false,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   shared.Actor(ctx),
	}

	if err := methods.UpdateTx(ctx, tx, fields, repository.FilterOtherDefaults(userID, keepID)); err != nil {
		return fmt.Errorf("failed to unset default payment methods: %w", err)
	}

	return nil
}
