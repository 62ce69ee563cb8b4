package dto

import (
	"fmt"
	"net/http"
	"time"

	"houserental/internal/domains/booking/model"
	tenantModel "houserental/internal/domains/tenant/model"
	"houserental/shared"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	gModel "houserental/shared/model"
	"houserental/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	PropertyID      string `json:"property_id"      validate:"required,uuid"`
	CheckInDate     string `json:"check_in_date"    validate:"required,isodate"`
	CheckOutDate    string `json:"check_out_date"   validate:"required,isodate"`
	Guests          int    `json:"guests"           validate:"required,min=1"`
	GuestName       string `json:"guest_name"       validate:"required,notblank,min=2,max=255"`
	GuestEmail      string `json:"guest_email"      validate:"required,email,max=255"`
	GuestPhone      string `json:"guest_phone"      validate:"required,min=5,max=20"`
	SpecialRequests string `json:"special_requests" validate:"omitempty"`
}

// ToModel builds a pending booking. Dates are validated by the caller.
func (c *CreateBookingRequest) ToModel(tenantID string, checkIn, checkOut time.Time, total decimal.Decimal, actor string) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		PropertyID:      c.PropertyID,
		TenantID:        tenantID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Guests:          c.Guests,
		TotalPrice:      total,
		Status:          model.StatusPending,
		GuestName:       c.GuestName,
		GuestEmail:      c.GuestEmail,
		GuestPhone:      c.GuestPhone,
		SpecialRequests: c.SpecialRequests,
		Metadata:        gModel.NewMetadata(timezone.Now(), actor),
	}
}

// GuestInfo holds the contact details the inactive guest account is created from.
type GuestInfo struct {
	FullName    string `json:"full_name"    validate:"required,notblank,max=255"`
	Email       string `json:"email"        validate:"required,email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Birthday    string `json:"birthday"     validate:"omitempty,isodate"`
}

func (g GuestInfo) ToCaller() (tenantModel.Guest, error) {
	guest := tenantModel.Guest{
		FullName:    g.FullName,
		Email:       g.Email,
		PhoneNumber: g.PhoneNumber,
	}

	if g.Birthday != constant.Empty {
		birthday, err := timezone.ParseDate(g.Birthday)
		if err != nil {
			return guest, fmt.Errorf("invalid birthday: %w", err)
		}

		guest.Birthday = &birthday
	}

	return guest, nil
}

type CreateGuestBookingRequest struct {
	CreateBookingRequest
	UserInfo GuestInfo `json:"user_info"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type UpdatePaymentRequest struct {
	IsPaid    *bool  `json:"is_paid"    validate:"required"`
	PaymentID string `json:"payment_id" validate:"omitempty,max=255"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=10"`
}

type AvailabilityRequest struct {
	CheckInDate  string `json:"check_in_date"  validate:"required,isodate"`
	CheckOutDate string `json:"check_out_date" validate:"required,isodate"`
}

func (a *AvailabilityRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	a.CheckInDate = query.Get("check_in")
	a.CheckOutDate = query.Get("check_out")
}

type AvailabilityResponse struct {
	PropertyID   string `json:"property_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Available    bool   `json:"available"`
}

// Filter narrows booking listings. Zero fields are ignored.
type Filter struct {
	Status       model.Status
	PropertyID   string
	IsPaid       *bool
	CheckInFrom  *time.Time
	CheckInTo    *time.Time
	CheckOutFrom *time.Time
	CheckOutTo   *time.Time
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

	f.PropertyID = query.Get("property_id")
	f.IsPaid = shared.ConvertStringToBool(query.Get("is_paid"))

	dates := []struct {
		param  string
		target **time.Time
	}{
		{"check_in_date_from", &f.CheckInFrom},
		{"check_in_date_to", &f.CheckInTo},
		{"check_out_date_from", &f.CheckOutFrom},
		{"check_out_date_to", &f.CheckOutTo},
	}

	for _, date := range dates {
		value := query.Get(date.param)
		if value == constant.Empty {
			continue
		}

		parsed, err := timezone.ParseDate(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", date.param, err)
		}

		*date.target = &parsed
	}

	return nil
}

// FilterGroup ANDs scope with every populated field.
func (f Filter) FilterGroup(scope ...gDto.Filter) gDto.FilterGroup {
	filters := make([]any, 0, len(scope)+7)
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

	if f.PropertyID != constant.Empty {
		add(model.FieldPropertyID, "filter_property_id", gDto.FilterOperatorEq, f.PropertyID)
	}

	if f.IsPaid != nil {
		add(model.FieldIsPaid, "filter_is_paid", gDto.FilterOperatorEq, *f.IsPaid)
	}

	if f.CheckInFrom != nil {
		add(model.FieldCheckInDate, "check_in_from", gDto.FilterOperatorGreaterEq, *f.CheckInFrom)
	}

	if f.CheckInTo != nil {
		add(model.FieldCheckInDate, "check_in_to", gDto.FilterOperatorLessEq, *f.CheckInTo)
	}

	if f.CheckOutFrom != nil {
		add(model.FieldCheckOutDate, "check_out_from", gDto.FilterOperatorGreaterEq, *f.CheckOutFrom)
	}

	if f.CheckOutTo != nil {
		add(model.FieldCheckOutDate, "check_out_to", gDto.FilterOperatorLessEq, *f.CheckOutTo)
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

type PropertySummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	PropertyType string `json:"property_type"`
	City         string `json:"city"`
	Country      string `json:"country"`
	OwnerID      string `json:"owner_id"`
}

type TenantSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type ReviewResponse struct {
	ID        string `json:"id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

func (r *ReviewResponse) FromModel(review model.Review) {
	r.ID = review.ID
	r.Rating = review.Rating
	r.Comment = review.Comment
	r.CreatedAt = timezone.Format(review.CreatedAt, constant.DateFormat)
}

type BookingSummaryResponse struct {
	ID           string          `json:"id"`
	Property     PropertySummary `json:"property"`
	Tenant       TenantSummary   `json:"tenant"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Guests       int             `json:"guests"`
	TotalPrice   decimal.Decimal `json:"total_price"   swaggertype:"string"`
	Status       string          `json:"status"`
	IsPaid       bool            `json:"is_paid"`
	DurationDays int             `json:"duration_days"`
	CreatedAt    string          `json:"created_at"`
}

func (r *BookingSummaryResponse) FromView(view model.View) {
	r.ID = view.ID
	r.Property = PropertySummary{
		ID:           view.PropertyID,
		Title:        view.PropertyTitle,
		PropertyType: view.PropertyType,
		City:         view.PropertyCity,
		Country:      view.PropertyCountry,
		OwnerID:      view.PropertyOwnerID,
	}
	r.Tenant = TenantSummary{
		ID:        view.TenantID,
		Username:  view.TenantUsername,
		Email:     view.TenantEmail,
		FirstName: view.TenantFirstName,
		LastName:  view.TenantLastName,
		Role:      view.TenantRole,
	}
	r.CheckInDate = view.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = view.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Guests = view.Guests
	r.TotalPrice = view.TotalPrice
	r.Status = view.Status.String()
	r.IsPaid = view.IsPaid
	r.DurationDays = view.Nights()
	r.CreatedAt = timezone.Format(view.CreatedAt, constant.DateFormat)
}

func SummariesFromViews(views []model.View) []BookingSummaryResponse {
	res := make([]BookingSummaryResponse, len(views))
	for i, view := range views {
		res[i].FromView(view)
	}

	return res
}

type BookingResponse struct {
	BookingSummaryResponse
	GuestName       string          `json:"guest_name"`
	GuestEmail      string          `json:"guest_email"`
	GuestPhone      string          `json:"guest_phone"`
	SpecialRequests string          `json:"special_requests"`
	PaymentDate     *string         `json:"payment_date"`
	PaymentID       *string         `json:"payment_id"`
	Review          *ReviewResponse `json:"review"`
	ModifiedAt      string          `json:"modified_at"`
}

func (r *BookingResponse) FromView(view model.View, review *model.Review) {
	r.BookingSummaryResponse.FromView(view)
	r.GuestName = view.GuestName
	r.GuestEmail = view.GuestEmail
	r.GuestPhone = view.GuestPhone
	r.SpecialRequests = view.SpecialRequests
	r.PaymentID = view.PaymentID
	r.ModifiedAt = timezone.Format(view.ModifiedAt, constant.DateFormat)
	r.PaymentDate = nil
	r.Review = nil

	if view.PaymentDate != nil {
		paymentDate := timezone.Format(*view.PaymentDate, constant.DateFormat)
		r.PaymentDate = &paymentDate
	}

	if review != nil {
		r.Review = &ReviewResponse{}
		r.Review.FromModel(*review)
	}
}

// Event is the payload of booking domain events.
type Event struct {
	BookingID      string `json:"booking_id"`
	PropertyID     string `json:"property_id"`
	TenantID       string `json:"tenant_id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	TotalPrice     string `json:"total_price"`
}

func NewEvent(booking model.Booking, previous model.Status) Event {
	return Event{
		BookingID:      booking.ID,
		PropertyID:     booking.PropertyID,
		TenantID:       booking.TenantID,
		Status:         booking.Status.String(),
		PreviousStatus: previous.String(),
		TotalPrice:     booking.TotalPrice.StringFixed(2),
	}
}
