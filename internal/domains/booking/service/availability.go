package service

//go:generate go run go.uber.org/mock/mockgen -source=./availability.go -destination=../mocks/availability_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"houserental/infras/otel"
	"houserental/internal/domains/booking/model/dto"
	"houserental/internal/domains/booking/repository"
	propertyModel "houserental/internal/domains/property/model"
	propertyRepo "houserental/internal/domains/property/repository"
	"houserental/shared"
	"houserental/shared/constant"
	"houserental/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Availability interface {
	IsAvailable(ctx context.Context, property propertyModel.Property, checkIn, checkOut time.Time) (bool, error)
	IsAvailableTx(ctx context.Context, sqltx *sqlx.Tx, property propertyModel.Property, checkIn, checkOut time.Time) (bool, error)
	HasOverlapTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
	Check(ctx context.Context, propertyID string, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type availabilityImpl struct {
	repo         repository.Booking
	propertyRepo propertyRepo.Property
	otel         otel.Otel
}

func NewAvailability(repo repository.Booking, propertyRepo propertyRepo.Property, otel otel.Otel) Availability {
	return &availabilityImpl{
		repo:         repo,
		propertyRepo: propertyRepo,
		otel:         otel,
	}
}

// IsAvailable reports false when the property is rented or a confirmed booking
// intersects [checkIn, checkOut).
func (s *availabilityImpl) IsAvailable(ctx context.Context, property propertyModel.Property, checkIn, checkOut time.Time) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	if property.Status == propertyModel.StatusRented {
		return false, nil
	}

	overlap, err := s.repo.Exist(ctx, repository.FilterOverlap(property.ID, checkIn, checkOut, constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	return !overlap, nil
}

func (s *availabilityImpl) IsAvailableTx(ctx context.Context, sqltx *sqlx.Tx, property propertyModel.Property, checkIn, checkOut time.Time) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailableTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if property.Status == propertyModel.StatusRented {
		return false, nil
	}

	overlap, err := s.HasOverlapTx(ctx, sqltx, property.ID, checkIn, checkOut, constant.Empty)
	if err != nil {
		return false, err
	}

	return !overlap, nil
}

func (s *availabilityImpl) HasOverlapTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, checkIn, checkOut time.Time, excludeID string) (overlap bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasOverlapTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	overlap, err = s.repo.ExistTx(ctx, sqltx, repository.FilterOverlap(propertyID, checkIn, checkOut, excludeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	return overlap, nil
}

func (s *availabilityImpl) Check(ctx context.Context, propertyID string, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString(MessageCheckOutBeforeCheckIn) // nolint:wrapcheck
	}

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound(MessagePropertyNotFound) // nolint:wrapcheck
	}

	available, err := s.IsAvailable(ctx, property, checkIn, checkOut)
	if err != nil {
		return res, err
	}

	return dto.AvailabilityResponse{
		PropertyID:   property.ID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Available:    available,
	}, nil
}
