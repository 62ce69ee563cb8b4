package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/internal/domains/booking/model"
	propertyModel "houserental/internal/domains/property/model"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	gRepo "houserental/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	GetView(ctx context.Context, filter gDto.FilterGroup) (model.View, error)
	GetAllViews(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.View, error)
	CountViews(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	views gRepo.Repository[model.View]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		views:      gRepo.NewRepository[model.View](model.EntityName+"_view", model.TableName, model.FieldID, db, otel),
		db:         db,
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

// FilterOverlap matches confirmed bookings of the property whose stay intersects
// [checkIn, checkOut). excludeID, when set, leaves that booking out.
func FilterOverlap(propertyID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldPropertyID,
			Operator: gDto.FilterOperatorEq,
			Value:    propertyID,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    model.StatusConfirmed,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_check_out",
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLess,
			Value:    checkOut,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_check_in",
			Field:    model.FieldCheckOutDate,
			Operator: gDto.FilterOperatorGreater,
			Value:    checkIn,
			Table:    model.TableName,
		},
	}

	if excludeID != constant.Empty {
		filters = append(filters, excludeBooking(excludeID))
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// FilterOtherConfirmed matches any confirmed booking of the property except excludeID.
func FilterOtherConfirmed(propertyID, excludeID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPropertyID,
				Operator: gDto.FilterOperatorEq,
				Value:    propertyID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusConfirmed,
				Table:    model.TableName,
			},
			excludeBooking(excludeID),
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func ByTenant(tenantID string) gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldTenantID,
		Operator: gDto.FilterOperatorEq,
		Value:    tenantID,
		Table:    model.TableName,
	}
}

func ByProperty(propertyID string) gDto.Filter {
	return gDto.Filter{
		ArgName:  "scope_property_id",
		Field:    model.FieldPropertyID,
		Operator: gDto.FilterOperatorEq,
		Value:    propertyID,
		Table:    model.TableName,
	}
}

// ByOwner needs the properties join, so it only works with the view reads.
func ByOwner(ownerID string) gDto.Filter {
	return gDto.Filter{
		Field:    propertyModel.FieldOwnerID,
		Operator: gDto.FilterOperatorEq,
		Value:    ownerID,
		Table:    propertyModel.TableName,
	}
}

func excludeBooking(id string) gDto.Filter {
	return gDto.Filter{
		ArgName:  "exclude_id",
		Field:    model.FieldID,
		Operator: gDto.FilterOperatorNotEq,
		Value:    id,
		Table:    model.TableName,
	}
}
