package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"houserental/infras/otel/mocks"
	bookingMocks "houserental/internal/domains/booking/mocks"
	"houserental/internal/domains/booking/model"
	"houserental/internal/domains/booking/model/dto"
	"houserental/internal/domains/booking/service"
	propertyMocks "houserental/internal/domains/property/mocks"
	propertyModel "houserental/internal/domains/property/model"
	gDto "houserental/shared/dto"
	"houserental/shared/failure"
)

func TestAvailability_IsAvailable(t *testing.T) {
	checkIn := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		property  propertyModel.Property
		setupMock func(repo *bookingMocks.MockBooking)
		want      bool
		wantErr   bool
	}{
		{
			name:     "free dates",
			property: approvedProperty(),
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			want: true,
		},
		{
			name:     "confirmed overlap",
			property: approvedProperty(),
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "p-1", args[model.FieldPropertyID])
						assert.Equal(t, model.StatusConfirmed, args[model.FieldStatus])
						assert.Equal(t, checkOut, args["overlap_check_out"])
						assert.Equal(t, checkIn, args["overlap_check_in"])

						return true, nil
					})
			},
			want: false,
		},
		{
			name: "rented property skips the query",
			property: func() propertyModel.Property {
				p := approvedProperty()
				p.Status = propertyModel.StatusRented

				return p
			}(),
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Times(0)
			},
			want: false,
		},
		{
			name:     "repository error",
			property: approvedProperty(),
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)
			tt.setupMock(repo)

			svc := service.NewAvailability(repo, propertyMocks.NewMockProperty(ctrl), mocks.NewOtel())

			got, err := svc.IsAvailable(context.Background(), tt.property, checkIn, checkOut)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailability_HasOverlapTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)

	repo.EXPECT().
		ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, filter gDto.FilterGroup) (bool, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "b-1", args["exclude_id"])

			return false, nil
		})

	svc := service.NewAvailability(repo, propertyMocks.NewMockProperty(ctrl), mocks.NewOtel())

	overlap, err := svc.HasOverlapTx(context.Background(), nil, "p-1",
		time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "b-1")
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestAvailability_Check(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func(repo *bookingMocks.MockBooking, propertyRepo *propertyMocks.MockProperty)
		want      bool
		wantCode  int
	}{
		{
			name: "available",
			req:  dto.AvailabilityRequest{CheckInDate: "2025-06-12", CheckOutDate: "2025-06-15"},
			setupMock: func(repo *bookingMocks.MockBooking, propertyRepo *propertyMocks.MockProperty) {
				propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedProperty(), nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			want: true,
		},
		{
			name:      "malformed date",
			req:       dto.AvailabilityRequest{CheckInDate: "12/06/2025", CheckOutDate: "2025-06-15"},
			setupMock: func(_ *bookingMocks.MockBooking, _ *propertyMocks.MockProperty) {},
			wantCode:  400,
		},
		{
			name:      "check-out before check-in",
			req:       dto.AvailabilityRequest{CheckInDate: "2025-06-15", CheckOutDate: "2025-06-12"},
			setupMock: func(_ *bookingMocks.MockBooking, _ *propertyMocks.MockProperty) {},
			wantCode:  400,
		},
		{
			name: "unknown property",
			req:  dto.AvailabilityRequest{CheckInDate: "2025-06-12", CheckOutDate: "2025-06-15"},
			setupMock: func(_ *bookingMocks.MockBooking, propertyRepo *propertyMocks.MockProperty) {
				propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(propertyModel.Property{}, nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)
			propertyRepo := propertyMocks.NewMockProperty(ctrl)
			tt.setupMock(repo, propertyRepo)

			svc := service.NewAvailability(repo, propertyRepo, mocks.NewOtel())

			res, err := svc.Check(context.Background(), "p-1", tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Available)
			assert.Equal(t, "p-1", res.PropertyID)
		})
	}
}
