package service

import (
	"context"
	"fmt"

	"houserental/config"
	"houserental/infras/otel"
	"houserental/internal/domains/property/model"
	"houserental/internal/domains/property/model/dto"
	"houserental/internal/domains/property/repository"
	"houserental/shared"
	"houserental/shared/cache"
	"houserental/shared/constant"
	"houserental/shared/failure"

	"github.com/rs/zerolog/log"
)

// CacheGetProperty prefixes property detail entries. Writers outside this package
// that change a property's status delete the entry themselves.
const CacheGetProperty = "property:get"

type Property interface {
	Create(ctx context.Context, req dto.CreatePropertyRequest) (dto.PropertyResponse, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
}

type serviceImpl struct {
	repo  repository.Property
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Property {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePropertyRequest) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, role := shared.Caller(ctx)
	if role != constant.RoleAgent && role != constant.RoleAdmin {
		return res, failure.Forbidden("Only agents and admins can list properties") // nolint:wrapcheck
	}

	if !req.PricePerNight.IsPositive() {
		return res, failure.BadRequestFromString("price_per_night must be greater than 0") // nolint:wrapcheck
	}

	property := req.ToModel(userID)

	if err = s.repo.Insert(ctx, property); err != nil {
		log.Error().Err(err).Msg("failed to create property")

		return res, fmt.Errorf("failed to create property: %w", err)
	}

	res.FromModel(property)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetProperty, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property")

		return res, nil
	}

	property, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("Property not found") // nolint:wrapcheck
	}

	res.FromModel(property)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moderates a listing. Rented is owned by the booking lifecycle and cannot be set here.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, role := shared.Caller(ctx)
	if role != constant.RoleAdmin {
		return failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	property, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return failure.NotFound("Property not found") // nolint:wrapcheck
	}

	if property.Status == model.StatusRented {
		return failure.Conflict("Property is currently rented") // nolint:wrapcheck
	}

	fields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: req.Status}, userID)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update property status")

		return fmt.Errorf("failed to update property status: %w", err)
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(CacheGetProperty, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete property from cache")
	}

	return nil
}
