package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"houserental/config"
	"houserental/infras/otel/mocks"
	userMocks "houserental/internal/domains/user/mocks"
	"houserental/internal/domains/user/model"
	"houserental/internal/domains/user/model/dto"
	"houserental/internal/domains/user/service"
	cacheMocks "houserental/shared/cache/mocks"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
	"houserental/shared/failure"
)

func callerContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestUserService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	cfg := &config.Config{}
	cfg.Cache.TTL = 600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "from repository",
			ctx:  callerContext("user-1", constant.RoleTenant),
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "user:get:user-1", gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "user-1", Email: "jane@example.com"}, nil)
				mockCache.EXPECT().Save(gomock.Any(), "user:get:user-1", gomock.Any(), 600).Return(nil).AnyTimes()
			},
		},
		{
			name: "cache hit",
			ctx:  callerContext("user-1", constant.RoleTenant),
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "user:get:user-1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			ctx:  callerContext("user-1", constant.RoleTenant),
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:      "anonymous",
			ctx:       context.Background(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Me(tt.ctx)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_GetRestrictsOtherUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	_, err := svc.Get(callerContext("user-1", constant.RoleTenant), "user-2")
	assert.Equal(t, 403, failure.GetCode(err))

	mockCache.EXPECT().Get(gomock.Any(), "user:get:user-2", gomock.Any()).Return(nil)

	_, err = svc.Get(callerContext("admin-1", constant.RoleAdmin), "user-2")
	assert.NoError(t, err)
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.User, error) {
			assert.Equal(t, "users.created_at", params.SortBy)

			return []model.User{{ID: "u1"}, {ID: "u2"}}, nil
		})
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(callerContext("admin-1", constant.RoleAdmin), gDto.QueryParams{Page: 1, Limit: 2, SortBy: "password"}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Items, 2)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())
	ctx := callerContext("user-1", constant.RoleTenant)

	tests := []struct {
		name      string
		req       dto.UpdateProfileRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "empty request",
			req:       dto.UpdateProfileRequest{},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "future birthday",
			req:       dto.UpdateProfileRequest{Birthday: "2999-01-01"},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "success",
			req:  dto.UpdateProfileRequest{FirstName: "Jane", Birthday: "1990-04-01"},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Jane", fields[model.FieldFirstName])
						assert.Contains(t, fields, model.FieldBirthday)
						assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])

						return nil
					})
				mockCache.EXPECT().Delete(gomock.Any(), "user:get:user-1").Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), "user:gets:*").Return(nil)
			},
		},
		{
			name: "repository error",
			req:  dto.UpdateProfileRequest{LastName: "Doe"},
			setupMock: func() {
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.UpdateProfile(ctx, tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
