package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/internal/domains/payment/model"
	propertyModel "houserental/internal/domains/property/model"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	gRepo "houserental/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Payment interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Payment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetView(ctx context.Context, filter gDto.FilterGroup) (model.View, error)
	GetAllViews(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.View, error)
	CountViews(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
	views gRepo.Repository[model.View]
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		views:      gRepo.NewRepository[model.View](model.EntityName+"_view", model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) GetView(ctx context.Context, filter gDto.FilterGroup) (model.View, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetView", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	return r.views.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllViews(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.View, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAllViews", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	return r.views.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountViews(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.CountViews", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	return r.views.Count(ctx, filter) //nolint:wrapcheck
}

func FilterByProviderIntent(providerIntentID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProviderPaymentIntentID,
				Operator: gDto.FilterOperatorEq,
				Value:    providerIntentID,
				Table:    model.TableName,
			},
		},
	}
}

func ByUser(userID string) gDto.Filter {
	return gDto.Filter{
		ArgName:  "scope_user_id",
		Field:    model.FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	}
}

func ByBooking(bookingID string) gDto.Filter {
	return gDto.Filter{
		ArgName:  "scope_booking_id",
		Field:    model.FieldBookingID,
		Operator: gDto.FilterOperatorEq,
		Value:    bookingID,
		Table:    model.TableName,
	}
}

// ByOwner matches payments for properties owned by ownerID. Views only.
func ByOwner(ownerID string) gDto.Filter {
	return gDto.Filter{
		ArgName:  "scope_owner_id",
		Field:    propertyModel.FieldOwnerID,
		Operator: gDto.FilterOperatorEq,
		Value:    ownerID,
		Table:    propertyModel.TableName,
	}
}
