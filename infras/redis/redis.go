package redis

import (
	"context"
	"net"
	"time"

	"houserental/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New connects to the primary node. A failed ping is logged and the client is returned
// anyway: cache reads miss and the rate limiter uses its local buckets until redis answers.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	logger := log.With().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Logger()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without cache")

		return client
	}

	logger.Info().Msg("Connected to Redis")

	return client
}
