//go:build wireinject
// +build wireinject

package di

import (
	"tavolo/config"
	"tavolo/infras/jwt"
	"tavolo/infras/kafka"
	"tavolo/infras/otel"
	"tavolo/infras/postgres"
	"tavolo/infras/redis"
	"tavolo/infras/s3"
	"tavolo/permissions"
	"tavolo/shared/cache"
	"tavolo/shared/clock"
	"tavolo/transport/http"
	"tavolo/transport/http/middleware"
	"tavolo/transport/http/router"

	"github.com/google/wire"

	authService "tavolo/internal/domains/auth/service"
	bookingRepository "tavolo/internal/domains/booking/repository"
	bookingService "tavolo/internal/domains/booking/service"
	restaurantRepository "tavolo/internal/domains/restaurant/repository"
	restaurantService "tavolo/internal/domains/restaurant/service"
	tableRepository "tavolo/internal/domains/table/repository"
	tableService "tavolo/internal/domains/table/service"
	userRepository "tavolo/internal/domains/user/repository"

	authHandler "tavolo/internal/handlers/auth"
	bookingHandler "tavolo/internal/handlers/booking"
	restaurantHandler "tavolo/internal/handlers/restaurant"
	tableHandler "tavolo/internal/handlers/table"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var restaurantDomain = wire.NewSet(
	restaurantRepository.New,
	restaurantService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	restaurantDomain,
	tableDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	restaurantHandler.New,
	tableHandler.New,
	bookingHandler.New,
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
