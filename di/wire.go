//go:build wireinject
// +build wireinject

package di

import (
	"houserental/config"
	"houserental/infras/jwt"
	"houserental/infras/kafka"
	"houserental/infras/otel"
	"houserental/infras/postgres"
	"houserental/infras/redis"
	"houserental/infras/s3"
	"houserental/infras/stripe"
	"houserental/permissions"
	"houserental/shared/cache"
	"houserental/shared/event"
	"houserental/transport/http"
	"houserental/transport/http/middleware"
	"houserental/transport/http/router"

	"github.com/google/wire"

	authService "houserental/internal/domains/auth/service"
	bookingRepository "houserental/internal/domains/booking/repository"
	bookingService "houserental/internal/domains/booking/service"
	paymentRepository "houserental/internal/domains/payment/repository"
	paymentService "houserental/internal/domains/payment/service"
	propertyRepository "houserental/internal/domains/property/repository"
	propertyService "houserental/internal/domains/property/service"
	tenantService "houserental/internal/domains/tenant/service"
	userRepository "houserental/internal/domains/user/repository"
	userService "houserental/internal/domains/user/service"
	authHandler "houserental/internal/handlers/auth"
	bookingHandler "houserental/internal/handlers/booking"
	paymentHandler "houserental/internal/handlers/payment"
	propertyHandler "houserental/internal/handlers/property"
	userHandler "houserental/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	stripe.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var tenantDomain = wire.NewSet(
	tenantService.New,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewReview,
	bookingService.NewAvailability,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentRepository.NewIntent,
	paymentRepository.NewMethod,
	paymentService.New,
	paymentService.NewMethod,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	tenantDomain,
	propertyDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	propertyHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
