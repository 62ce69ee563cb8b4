package repository

//go:generate go run go.uber.org/mock/mockgen -source=./review.go -destination=../mocks/review_mock.go -package=mocks

import (
	"context"

	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/internal/domains/booking/model"
	gDto "houserental/shared/dto"
	gRepo "houserental/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type reviewRepositoryImpl struct {
	gRepo.Repository[model.Review]
}

func NewReview(db *postgres.Connection, otel otel.Otel) Review {
	return &reviewRepositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.ReviewEntityName, model.ReviewTableName, model.FieldReviewID, db, otel),
	}
}

func FilterReviewByBooking(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReviewBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.ReviewTableName,
			},
		},
	}
}
