package model

import (
	"time"

	bookingModel "houserental/internal/domains/booking/model"
	propertyModel "houserental/internal/domains/property/model"
	userModel "houserental/internal/domains/user/model"
	"houserental/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID                      = "id"
	FieldBookingID               = "booking_id"
	FieldUserID                  = "user_id"
	FieldStatus                  = "status"
	FieldProviderPaymentIntentID = "provider_payment_intent_id"
	FieldReceiptURL              = "receipt_url"
	FieldCompletedAt             = "completed_at"
	FieldFailedAt                = "failed_at"
	FieldRefundedAt              = "refunded_at"
	FieldCanceledAt              = "canceled_at"
)

type Payment struct {
	ID                      string          `db:"id"`
	BookingID               string          `db:"booking_id"`
	UserID                  string          `db:"user_id"`
	Amount                  decimal.Decimal `db:"amount"`
	Currency                string          `db:"currency"`
	Status                  Status          `db:"status"`
	ProviderPaymentIntentID string          `db:"provider_payment_intent_id"`
	ProviderPaymentMethodID *string         `db:"provider_payment_method_id"`
	ProviderCustomerID      *string         `db:"provider_customer_id"`
	ReceiptURL              *string         `db:"receipt_url"`
	ReceiptEmail            string          `db:"receipt_email"`
	CompletedAt             *time.Time      `db:"completed_at"`
	FailedAt                *time.Time      `db:"failed_at"`
	RefundedAt              *time.Time      `db:"refunded_at"`
	CanceledAt              *time.Time      `db:"canceled_at"`
	model.Metadata
}

// StampedAt returns the timestamp recorded for status, if the status carries one.
func (p Payment) StampedAt(status Status) (field string, stamped bool) {
	switch status {
	case StatusCompleted:
		return FieldCompletedAt, p.CompletedAt != nil
	case StatusFailed:
		return FieldFailedAt, p.FailedAt != nil
	case StatusRefunded:
		return FieldRefundedAt, p.RefundedAt != nil
	case StatusCanceled:
		return FieldCanceledAt, p.CanceledAt != nil
	default:
		return "", false
	}
}

// View is a payment joined with its booking, the booked property and the payer.
type View struct {
	Payment
	BookingCheckInDate  time.Time       `db:"booking_check_in_date"  table:"bookings"   column:"check_in_date"`
	BookingCheckOutDate time.Time       `db:"booking_check_out_date" table:"bookings"   column:"check_out_date"`
	BookingGuests       int             `db:"booking_guests"         table:"bookings"   column:"guests"`
	BookingGuestName    string          `db:"booking_guest_name"     table:"bookings"   column:"guest_name"`
	BookingTotalPrice   decimal.Decimal `db:"booking_total_price"    table:"bookings"   column:"total_price"`
	BookingTenantID     string          `db:"booking_tenant_id"      table:"bookings"   column:"tenant_id"`
	PropertyID          string          `db:"property_id"            table:"properties" column:"id"`
	PropertyTitle       string          `db:"property_title"         table:"properties" column:"title"`
	PropertyOwnerID     string          `db:"property_owner_id"      table:"properties" column:"owner_id"`
	PayerUsername       string          `db:"payer_username"         table:"users"      column:"username"`
	PayerEmail          string          `db:"payer_email"            table:"users"      column:"email"`
	PayerFirstName      string          `db:"payer_first_name"       table:"users"      column:"first_name"`
	PayerLastName       string          `db:"payer_last_name"        table:"users"      column:"last_name"`
}

func (View) GetJoinQuery() string {
	return "JOIN " + bookingModel.TableName + " ON " + bookingModel.TableName + ".id = " + TableName + "." + FieldBookingID +
		" JOIN " + propertyModel.TableName + " ON " + propertyModel.TableName + ".id = " + bookingModel.TableName + "." + bookingModel.FieldPropertyID +
		" JOIN " + userModel.TableName + " ON " + userModel.TableName + ".id = " + TableName + "." + FieldUserID
}

const (
	IntentTableName  = "payment_intents"
	IntentEntityName = "payment_intent"

	FieldIntentID                      = "id"
	FieldIntentBookingID               = "booking_id"
	FieldIntentPaymentID               = "payment_id"
	FieldIntentStatus                  = "status"
	FieldIntentProviderPaymentIntentID = "provider_payment_intent_id"
)

type Intent struct {
	ID                      string          `db:"id"`
	BookingID               string          `db:"booking_id"`
	UserID                  string          `db:"user_id"`
	PaymentID               *string         `db:"payment_id"`
	Amount                  decimal.Decimal `db:"amount"`
	Currency                string          `db:"currency"`
	Status                  IntentStatus    `db:"status"`
	ProviderPaymentIntentID string          `db:"provider_payment_intent_id"`
	ClientSecret            string          `db:"client_secret"`
	model.Metadata
}

func (i Intent) Settled() bool {
	return i.PaymentID != nil && *i.PaymentID != ""
}

const (
	MethodTableName  = "payment_methods"
	MethodEntityName = "payment_method"

	FieldMethodID                      = "id"
	FieldMethodUserID                  = "user_id"
	FieldMethodIsDefault               = "is_default"
	FieldMethodProviderPaymentMethodID = "provider_payment_method_id"
)

const (
	MethodTypeCard        = "card"
	MethodTypeBankAccount = "bank_account"
	MethodTypePaypal      = "paypal"
	MethodTypeOther       = "other"
)

type Method struct {
	ID                      string `db:"id"`
	UserID                  string `db:"user_id"`
	Type                    string `db:"type"`
	IsDefault               bool   `db:"is_default"`
	CardBrand               string `db:"card_brand"`
	CardLast4               string `db:"card_last4"`
	CardExpMonth            int    `db:"card_exp_month"`
	CardExpYear             int    `db:"card_exp_year"`
	ProviderPaymentMethodID string `db:"provider_payment_method_id"`
	model.Metadata
}

// MethodType folds a provider payment method type into the stored types.
func MethodType(providerType string) string {
	switch providerType {
	case MethodTypeCard:
		return MethodTypeCard
	case "us_bank_account", "sepa_debit", "bacs_debit", "au_becs_debit", "acss_debit":
		return MethodTypeBankAccount
	case MethodTypePaypal:
		return MethodTypePaypal
	default:
		return MethodTypeOther
	}
}
