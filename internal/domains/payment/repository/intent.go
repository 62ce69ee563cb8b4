package repository

//go:generate go run go.uber.org/mock/mockgen -source=./intent.go -destination=../mocks/intent_mock.go -package=mocks

import (
	"context"

	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/internal/domains/payment/model"
	gDto "houserental/shared/dto"
	gRepo "houserental/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Intent interface {
	Insert(ctx context.Context, model model.Intent) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Intent, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Intent, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type intentRepositoryImpl struct {
	gRepo.Repository[model.Intent]
}

func NewIntent(db *postgres.Connection, otel otel.Otel) Intent {
	return &intentRepositoryImpl{
		Repository: gRepo.NewRepository[model.Intent](model.IntentEntityName, model.IntentTableName, model.FieldIntentID, db, otel),
	}
}

func FilterIntentByProviderID(providerIntentID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIntentProviderPaymentIntentID,
				Operator: gDto.FilterOperatorEq,
				Value:    providerIntentID,
				Table:    model.IntentTableName,
			},
		},
	}
}

// FilterActiveIntent matches the booking's intents that are neither succeeded nor cancelled.
func FilterActiveIntent(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIntentBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.IntentTableName,
			},
			gDto.Filter{
				ArgName:  "not_succeeded",
				Field:    model.FieldIntentStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    model.IntentStatusSucceeded,
				Table:    model.IntentTableName,
			},
			gDto.Filter{
				ArgName:  "not_cancelled",
				Field:    model.FieldIntentStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    model.IntentStatusCancelled,
				Table:    model.IntentTableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
