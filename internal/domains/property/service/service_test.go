package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"houserental/config"
	"houserental/infras/otel/mocks"
	propertyMocks "houserental/internal/domains/property/mocks"
	"houserental/internal/domains/property/model"
	"houserental/internal/domains/property/model/dto"
	"houserental/internal/domains/property/service"
	cacheMocks "houserental/shared/cache/mocks"
	"houserental/shared/constant"
	"houserental/shared/failure"
)

func callerContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestPropertyService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	svc := service.New(mockRepo, &config.Config{}, cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	req := dto.CreatePropertyRequest{
		Title:         "Lake house",
		PropertyType:  "house",
		Address:       "1 Lake Rd",
		City:          "Kigali",
		Country:       "Rwanda",
		PricePerNight: decimal.RequireFromString("100.00"),
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreatePropertyRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "agent creates pending listing",
			ctx:  callerContext("agent-1", constant.RoleAgent),
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, property model.Property) error {
						assert.Equal(t, "agent-1", property.OwnerID)
						assert.Equal(t, model.StatusPending, property.Status)

						return nil
					})
			},
		},
		{
			name:      "tenant is forbidden",
			ctx:       callerContext("tenant-1", constant.RoleTenant),
			req:       req,
			setupMock: func() {},
			wantCode:  403,
		},
		{
			name: "non positive price",
			ctx:  callerContext("agent-1", constant.RoleAgent),
			req: func() dto.CreatePropertyRequest {
				r := req
				r.PricePerNight = decimal.Zero

				return r
			}(),
			setupMock: func() {},
			wantCode:  400,
		},
		{
			name: "insert failure",
			ctx:  callerContext("agent-1", constant.RoleAgent),
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tt.ctx, tt.req)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Lake house", res.Title)
		})
	}
}

func TestPropertyService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	cfg := &config.Config{}
	cfg.Cache.TTL = 600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "property:get:p1", gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)

		_, err := svc.Get(context.Background(), "p1")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("found and cached", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "property:get:p1", gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "p1", Status: model.StatusApproved}, nil)
		mockCache.EXPECT().Save(gomock.Any(), "property:get:p1", gomock.Any(), 600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "p1")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusApproved, res.Status)
	})
}

func TestPropertyService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())
	admin := callerContext("admin-1", constant.RoleAdmin)
	req := dto.UpdateStatusRequest{Status: model.StatusApproved}

	t.Run("admin approves", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "p1", Status: model.StatusPending}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])

				return nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), "property:get:p1").Return(nil)

		assert.NoError(t, svc.UpdateStatus(admin, "p1", req))
	})

	t.Run("rented property is locked", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "p1", Status: model.StatusRented}, nil)

		err := svc.UpdateStatus(admin, "p1", req)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("agent is forbidden", func(t *testing.T) {
		err := svc.UpdateStatus(callerContext("agent-1", constant.RoleAgent), "p1", req)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}
