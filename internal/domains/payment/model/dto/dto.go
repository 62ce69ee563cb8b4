package dto

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"houserental/infras/stripe"
	bookingModel "houserental/internal/domains/booking/model"
	"houserental/internal/domains/payment/model"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	"houserental/shared/timezone"

	"github.com/shopspring/decimal"
)

type PublicKeyResponse struct {
	PublishableKey string `json:"publishable_key"`
}

type CreateIntentRequest struct {
	BookingID        string `json:"booking_id"         validate:"required,uuid"`
	SetupFutureUsage string `json:"setup_future_usage" validate:"omitempty,oneof=on_session off_session"`
}

type ConfirmRequest struct {
	PaymentIntentID   string `json:"payment_intent_id"   validate:"required,notblank"`
	PaymentMethodID   string `json:"payment_method_id"   validate:"omitempty"`
	SavePaymentMethod bool   `json:"save_payment_method"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed failed refunded canceled"`
}

type CreateMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required,notblank"`
	SetAsDefault    bool   `json:"set_as_default"`
}

type UpdateMethodRequest struct {
	SetAsDefault *bool `json:"set_as_default"`
}

// Default reports the requested default flag, true when omitted.
func (r UpdateMethodRequest) Default() bool {
	return r.SetAsDefault == nil || *r.SetAsDefault
}

type PropertySummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type BookingSummary struct {
	ID           string          `json:"id"`
	Property     PropertySummary `json:"property"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
}

func NewBookingSummary(view bookingModel.View) BookingSummary {
	return BookingSummary{
		ID: view.ID,
		Property: PropertySummary{
			ID:    view.PropertyID,
			Title: view.PropertyTitle,
		},
		CheckInDate:  view.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate: view.CheckOutDate.Format(constant.DateOnlyFormat),
	}
}

type IntentResponse struct {
	ID                      string          `json:"id"`
	Booking                 BookingSummary  `json:"booking"`
	Amount                  decimal.Decimal `json:"amount"                   swaggertype:"string"`
	Currency                string          `json:"currency"`
	Status                  string          `json:"status"`
	ProviderPaymentIntentID string          `json:"stripe_payment_intent_id"`
	ClientSecret            string          `json:"stripe_client_secret"`
	CreatedAt               string          `json:"created_at"`
}

func (r *IntentResponse) FromModel(intent model.Intent, booking bookingModel.View) {
	r.ID = intent.ID
	r.Booking = NewBookingSummary(booking)
	r.Amount = intent.Amount
	r.Currency = intent.Currency
	r.Status = intent.Status.String()
	r.ProviderPaymentIntentID = intent.ProviderPaymentIntentID
	r.ClientSecret = intent.ClientSecret
	r.CreatedAt = timezone.Format(intent.CreatedAt, constant.DateFormat)
}

type ConfirmResponse struct {
	ID                      string          `json:"id"`
	Booking                 BookingSummary  `json:"booking"`
	Amount                  decimal.Decimal `json:"amount"                       swaggertype:"string"`
	Currency                string          `json:"currency"`
	Status                  string          `json:"status"`
	ProviderPaymentIntentID string          `json:"stripe_payment_intent_id"`
	RequiresAction          bool            `json:"requires_action"`
	ClientSecret            *string         `json:"payment_intent_client_secret"`
	CreatedAt               string          `json:"created_at"`
}

// FromIntent fills the response from the local intent and the provider's view of it.
// The client secret is exposed only while the intent requires customer action.
func (r *ConfirmResponse) FromIntent(intent model.Intent, provider stripe.Intent, booking bookingModel.View) {
	r.ID = intent.ID
	r.Booking = NewBookingSummary(booking)
	r.Amount = intent.Amount
	r.Currency = intent.Currency
	r.Status = provider.Status
	r.ProviderPaymentIntentID = provider.ID
	r.RequiresAction = provider.Status == stripe.IntentStatusRequiresAction
	r.ClientSecret = nil
	r.CreatedAt = timezone.Format(intent.CreatedAt, constant.DateFormat)

	if r.RequiresAction {
		secret := provider.ClientSecret
		r.ClientSecret = &secret
	}
}

// WebhookResult is the body answered to the provider for every handled event.
type WebhookResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	WebhookStatusSuccess = "success"
	WebhookStatusError   = "error"
)

func WebhookSuccess(message string) WebhookResult {
	return WebhookResult{Status: WebhookStatusSuccess, Message: message}
}

func WebhookError(message string) WebhookResult {
	return WebhookResult{Status: WebhookStatusError, Message: message}
}

type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type PaymentBooking struct {
	ID           string          `json:"id"`
	Property     PaymentProperty `json:"property"`
	TenantID     string          `json:"tenant_id"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Guests       int             `json:"guests"`
	GuestName    string          `json:"guest_name"`
	TotalPrice   decimal.Decimal `json:"total_price"    swaggertype:"string"`
}

type PaymentProperty struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	OwnerID string `json:"owner_id"`
}

type PaymentSummaryResponse struct {
	ID                      string          `json:"id"`
	BookingID               string          `json:"booking_id"`
	Booking                 PaymentBooking  `json:"booking"`
	User                    UserSummary     `json:"user"`
	Amount                  decimal.Decimal `json:"amount"                     swaggertype:"string"`
	Currency                string          `json:"currency"`
	Status                  string          `json:"status"`
	PaymentMethodType       string          `json:"payment_method_type"`
	ProviderPaymentIntentID string          `json:"stripe_payment_intent_id"`
	ProviderPaymentMethodID *string         `json:"stripe_payment_method_id"`
	ReceiptURL              *string         `json:"receipt_url"`
	ReceiptEmail            string          `json:"receipt_email"`
	CreatedAt               string          `json:"created_at"`
	UpdatedAt               string          `json:"updated_at"`
	CompletedAt             *string         `json:"completed_at"`
}

func (r *PaymentSummaryResponse) FromView(view model.View) {
	r.ID = view.ID
	r.BookingID = view.BookingID
	r.Booking = PaymentBooking{
		ID: view.BookingID,
		Property: PaymentProperty{
			ID:      view.PropertyID,
			Title:   view.PropertyTitle,
			OwnerID: view.PropertyOwnerID,
		},
		TenantID:     view.BookingTenantID,
		CheckInDate:  view.BookingCheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate: view.BookingCheckOutDate.Format(constant.DateOnlyFormat),
		Guests:       view.BookingGuests,
		GuestName:    view.BookingGuestName,
		TotalPrice:   view.BookingTotalPrice,
	}
	r.User = UserSummary{
		ID:        view.UserID,
		Username:  view.PayerUsername,
		Email:     view.PayerEmail,
		FirstName: view.PayerFirstName,
		LastName:  view.PayerLastName,
	}
	r.Amount = view.Amount
	r.Currency = view.Currency
	r.Status = view.Status.String()
	r.PaymentMethodType = methodLabel(view.ProviderPaymentMethodID)
	r.ProviderPaymentIntentID = view.ProviderPaymentIntentID
	r.ProviderPaymentMethodID = view.ProviderPaymentMethodID
	r.ReceiptURL = view.ReceiptURL
	r.ReceiptEmail = view.ReceiptEmail
	r.CreatedAt = timezone.Format(view.CreatedAt, constant.DateFormat)
	r.UpdatedAt = timezone.Format(view.ModifiedAt, constant.DateFormat)
	r.CompletedAt = formatOptional(view.CompletedAt)
}

func SummariesFromViews(views []model.View) []PaymentSummaryResponse {
	res := make([]PaymentSummaryResponse, len(views))
	for i, view := range views {
		res[i].FromView(view)
	}

	return res
}

type PaymentResponse struct {
	PaymentSummaryResponse
	ProviderCustomerID *string `json:"stripe_customer_id"`
	FailedAt           *string `json:"failed_at"`
	RefundedAt         *string `json:"refunded_at"`
	CanceledAt         *string `json:"canceled_at"`
}

func (r *PaymentResponse) FromView(view model.View) {
	r.PaymentSummaryResponse.FromView(view)
	r.ProviderCustomerID = view.ProviderCustomerID
	r.FailedAt = formatOptional(view.FailedAt)
	r.RefundedAt = formatOptional(view.RefundedAt)
	r.CanceledAt = formatOptional(view.CanceledAt)
}

type MethodResponse struct {
	ID                      string `json:"id"`
	Type                    string `json:"type"`
	IsDefault               bool   `json:"is_default"`
	CardBrand               string `json:"card_brand,omitempty"`
	CardLast4               string `json:"card_last4,omitempty"`
	CardExpMonth            int    `json:"card_exp_month,omitempty"`
	CardExpYear             int    `json:"card_exp_year,omitempty"`
	ProviderPaymentMethodID string `json:"stripe_payment_method_id"`
	CreatedAt               string `json:"created_at"`
}

func (r *MethodResponse) FromModel(method model.Method) {
	r.ID = method.ID
	r.Type = method.Type
	r.IsDefault = method.IsDefault
	r.CardBrand = method.CardBrand
	r.CardLast4 = method.CardLast4
	r.CardExpMonth = method.CardExpMonth
	r.CardExpYear = method.CardExpYear
	r.ProviderPaymentMethodID = method.ProviderPaymentMethodID
	r.CreatedAt = timezone.Format(method.CreatedAt, constant.DateFormat)
}

// Filter narrows payment listings. Zero fields are ignored.
type Filter struct {
	Status      model.Status
	BookingID   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func (f *Filter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if status := query.Get("status"); status != constant.Empty {
		parsed, err := model.ParseStatus(status)
		if err != nil {
			return err
		}

		f.Status = parsed
	}

	f.BookingID = query.Get("booking_id")

	for param, target := range map[string]**time.Time{
		"created_from": &f.CreatedFrom,
		"created_to":   &f.CreatedTo,
	} {
		value := query.Get(param)
		if value == constant.Empty {
			continue
		}

		parsed, err := timezone.ParseDate(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", param, err)
		}

		*target = &parsed
	}

	return nil
}

// FilterGroup ANDs scope with every populated field. created_to is inclusive of the whole day.
func (f Filter) FilterGroup(scope ...gDto.Filter) gDto.FilterGroup {
	filters := make([]any, 0, len(scope)+4)
	for _, s := range scope {
		filters = append(filters, s)
	}

	add := func(field, argName, operator string, value any) {
		filters = append(filters, gDto.Filter{
			ArgName:  argName,
			Field:    field,
			Operator: operator,
			Value:    value,
			Table:    model.TableName,
		})
	}

	if f.Status != constant.Empty {
		add(model.FieldStatus, "filter_status", gDto.FilterOperatorEq, f.Status)
	}

	if f.BookingID != constant.Empty {
		add(model.FieldBookingID, "filter_booking_id", gDto.FilterOperatorEq, f.BookingID)
	}

	if f.CreatedFrom != nil {
		add(constant.FieldCreatedAt, "created_from", gDto.FilterOperatorGreaterEq, *f.CreatedFrom)
	}

	if f.CreatedTo != nil {
		add(constant.FieldCreatedAt, "created_to", gDto.FilterOperatorLess, f.CreatedTo.AddDate(0, 0, 1))
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// Receipt is the document stored for every completed payment.
type Receipt struct {
	PaymentID               string          `json:"payment_id"`
	BookingID               string          `json:"booking_id"`
	PropertyTitle           string          `json:"property_title"`
	CheckInDate             string          `json:"check_in_date"`
	CheckOutDate            string          `json:"check_out_date"`
	Amount                  decimal.Decimal `json:"amount"`
	Currency                string          `json:"currency"`
	ReceiptEmail            string          `json:"receipt_email"`
	ProviderPaymentIntentID string          `json:"stripe_payment_intent_id"`
	PaidAt                  string          `json:"paid_at"`
}

func NewReceipt(payment model.Payment, booking bookingModel.View) Receipt {
	res := Receipt{
		PaymentID:               payment.ID,
		BookingID:               payment.BookingID,
		PropertyTitle:           booking.PropertyTitle,
		CheckInDate:             booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate:            booking.CheckOutDate.Format(constant.DateOnlyFormat),
		Amount:                  payment.Amount,
		Currency:                payment.Currency,
		ReceiptEmail:            payment.ReceiptEmail,
		ProviderPaymentIntentID: payment.ProviderPaymentIntentID,
	}

	if payment.CompletedAt != nil {
		res.PaidAt = timezone.Format(*payment.CompletedAt, constant.DateFormat)
	}

	return res
}

// Event is the payload of payment domain events.
type Event struct {
	PaymentID               string          `json:"payment_id"`
	BookingID               string          `json:"booking_id"`
	UserID                  string          `json:"user_id"`
	Amount                  decimal.Decimal `json:"amount"`
	Currency                string          `json:"currency"`
	Status                  string          `json:"status"`
	ProviderPaymentIntentID string          `json:"provider_payment_intent_id"`
}

func NewEvent(payment model.Payment) Event {
	return Event{
		PaymentID:               payment.ID,
		BookingID:               payment.BookingID,
		UserID:                  payment.UserID,
		Amount:                  payment.Amount,
		Currency:                payment.Currency,
		Status:                  payment.Status.String(),
		ProviderPaymentIntentID: payment.ProviderPaymentIntentID,
	}
}

func methodLabel(providerMethodID *string) string {
	if providerMethodID == nil {
		return "Card"
	}

	switch id := *providerMethodID; {
	case strings.HasPrefix(id, "pm_"):
		return "Credit Card"
	case strings.HasPrefix(id, "ba_"):
		return "Bank Account"
	case strings.HasPrefix(id, "pp_"):
		return "PayPal"
	default:
		return "Card"
	}
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}
