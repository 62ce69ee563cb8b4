package model

import (
	"time"

	propertyModel "houserental/internal/domains/property/model"
	userModel "houserental/internal/domains/user/model"
	"houserental/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldPropertyID   = "property_id"
	FieldTenantID     = "tenant_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
	FieldGuestEmail   = "guest_email"
	FieldIsPaid       = "is_paid"
	FieldPaymentDate  = "payment_date"
	FieldPaymentID    = "payment_id"
)

type Booking struct {
	ID              string          `db:"id"`
	PropertyID      string          `db:"property_id"`
	TenantID        string          `db:"tenant_id"`
	CheckInDate     time.Time       `db:"check_in_date"`
	CheckOutDate    time.Time       `db:"check_out_date"`
	Guests          int             `db:"guests"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	Status          Status          `db:"status"`
	GuestName       string          `db:"guest_name"`
	GuestEmail      string          `db:"guest_email"`
	GuestPhone      string          `db:"guest_phone"`
	SpecialRequests string          `db:"special_requests"`
	IsPaid          bool            `db:"is_paid"`
	PaymentDate     *time.Time      `db:"payment_date"`
	PaymentID       *string         `db:"payment_id"`
	model.Metadata
}

// Nights is the length of the stay. Check-out day is not a night.
func (b Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// View is a booking joined with its property and tenant, used by reads that
// filter or render on those columns.
type View struct {
	Booking
	PropertyTitle   string `db:"property_title"    table:"properties" column:"title"`
	PropertyType    string `db:"property_type"     table:"properties" column:"property_type"`
	PropertyCity    string `db:"property_city"     table:"properties" column:"city"`
	PropertyCountry string `db:"property_country"  table:"properties" column:"country"`
	PropertyOwnerID string `db:"property_owner_id" table:"properties" column:"owner_id"`
	TenantUsername  string `db:"tenant_username"   table:"users"      column:"username"`
	TenantEmail     string `db:"tenant_email"      table:"users"      column:"email"`
	TenantFirstName string `db:"tenant_first_name" table:"users"      column:"first_name"`
	TenantLastName  string `db:"tenant_last_name"  table:"users"      column:"last_name"`
	TenantRole      string `db:"tenant_role"       table:"users"      column:"role"`
}

func (View) GetJoinQuery() string {
	return "JOIN " + propertyModel.TableName + " ON " + propertyModel.TableName + ".id = " + TableName + "." + FieldPropertyID +
		" JOIN " + userModel.TableName + " ON " + userModel.TableName + ".id = " + TableName + "." + FieldTenantID
}

const (
	ReviewTableName  = "booking_reviews"
	ReviewEntityName = "booking_review"

	FieldReviewID        = "id"
	FieldReviewBookingID = "booking_id"
)

type Review struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}
