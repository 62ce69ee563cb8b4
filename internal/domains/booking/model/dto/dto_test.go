package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"houserental/internal/domains/booking/model"
	"houserental/internal/domains/booking/model/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestInfo_ToCaller(t *testing.T) {
	guest, err := dto.GuestInfo{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "+250700000000",
		Birthday:    "1990-04-01",
	}.ToCaller()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", guest.FullName)
	require.NotNil(t, guest.Birthday)
	assert.Equal(t, "1990-04-01", guest.Birthday.Format(time.DateOnly))

	_, err = dto.GuestInfo{Birthday: "01/04/1990"}.ToCaller()
	assert.Error(t, err)
}

func TestFilter_FromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/bookings?status=confirmed&is_paid=true&check_in_date_from=2025-06-01&property_id=p-1", nil)

	var filter dto.Filter
	require.NoError(t, filter.FromRequest(req))

	assert.Equal(t, model.StatusConfirmed, filter.Status)
	assert.Equal(t, "p-1", filter.PropertyID)
	require.NotNil(t, filter.IsPaid)
	assert.True(t, *filter.IsPaid)
	require.NotNil(t, filter.CheckInFrom)
	assert.Equal(t, "2025-06-01", filter.CheckInFrom.Format(time.DateOnly))
	assert.Nil(t, filter.CheckOutTo)

	group := filter.FilterGroup()
	where, args := group.GetWhereClause()
	assert.Contains(t, where, "bookings.status = :filter_status")
	assert.Contains(t, where, "bookings.check_in_date >= :check_in_from")
	assert.Equal(t, model.StatusConfirmed, args["filter_status"])
}

func TestFilter_FromRequestInvalid(t *testing.T) {
	var filter dto.Filter

	err := filter.FromRequest(httptest.NewRequest("GET", "/v1/bookings?status=archived", nil))
	assert.Error(t, err)

	err = filter.FromRequest(httptest.NewRequest("GET", "/v1/bookings?check_out_date_to=june", nil))
	assert.Error(t, err)
}

func TestFilter_EmptyFilterGroup(t *testing.T) {
	group := dto.Filter{}.FilterGroup()
	where, _ := group.GetWhereClause()
	assert.Empty(t, where)
}

func TestBookingResponse_FromView(t *testing.T) {
	paymentID := "pay-1"
	view := model.View{
		Booking: model.Booking{
			ID:           "b-1",
			PropertyID:   "p-1",
			TenantID:     "u-1",
			CheckInDate:  time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			Guests:       2,
			TotalPrice:   decimal.RequireFromString("1800.00"),
			Status:       model.StatusPending,
			PaymentID:    &paymentID,
		},
		PropertyTitle:   "Lake house",
		PropertyOwnerID: "agent-1",
		TenantEmail:     "jane@example.com",
	}

	var res dto.BookingResponse
	res.FromView(view, &model.Review{ID: "r-1", Rating: 5})

	assert.Equal(t, "2025-06-12", res.CheckInDate)
	assert.Equal(t, "2025-06-30", res.CheckOutDate)
	assert.Equal(t, 18, res.DurationDays)
	assert.Equal(t, "agent-1", res.Property.OwnerID)
	assert.Equal(t, "u-1", res.Tenant.ID)
	assert.Equal(t, "pending", res.Status)
	assert.Nil(t, res.PaymentDate)
	assert.Equal(t, &paymentID, res.PaymentID)
	require.NotNil(t, res.Review)
	assert.Equal(t, 5, res.Review.Rating)
}
