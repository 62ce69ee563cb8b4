package repository

//go:generate go run go.uber.org/mock/mockgen -source=./method.go -destination=../mocks/method_mock.go -package=mocks

import (
	"context"

	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/internal/domains/payment/model"
	gDto "houserental/shared/dto"
	gRepo "houserental/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Method interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Method) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Method, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Method, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Method, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type methodRepositoryImpl struct {
	gRepo.Repository[model.Method]
}

func NewMethod(db *postgres.Connection, otel otel.Otel) Method {
	return &methodRepositoryImpl{
		Repository: gRepo.NewRepository[model.Method](model.MethodEntityName, model.MethodTableName, model.FieldMethodID, db, otel),
	}
}

func FilterMethodByProviderID(providerMethodID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMethodProviderPaymentMethodID,
				Operator: gDto.FilterOperatorEq,
				Value:    providerMethodID,
				Table:    model.MethodTableName,
			},
		},
	}
}

func FilterMethodsByUser(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMethodUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.MethodTableName,
			},
		},
	}
}

// FilterOtherDefaults matches the user's default methods other than keepID.
func FilterOtherDefaults(userID, keepID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMethodUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.MethodTableName,
			},
			gDto.Filter{
				Field:    model.FieldMethodIsDefault,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.MethodTableName,
			},
			gDto.Filter{
				ArgName:  "keep_id",
				Field:    model.FieldMethodID,
				Operator: gDto.FilterOperatorNotEq,
				Value:    keepID,
				Table:    model.MethodTableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
