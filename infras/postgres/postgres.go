package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"houserental/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads from writes. Locking reads inside a transaction always go
// through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  connect("read", *config, config.DB.Postgres.Read),
		Write: connect("write", *config, config.DB.Postgres.Write),
	}
}

func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// DSN renders a lib/pq connection url for node. Credentials are escaped and the session
// timezone is pinned when configured.
func DSN(node config.PostgresNode, dbName string) string {
	query := url.Values{}

	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name string, config config.Config, node config.PostgresNode) *sqlx.DB {
	pg := config.DB.Postgres
	dbName := getDBName(config, node.Name)
	descriptor := DSN(node, dbName)

	logger := log.With().
		Str("name", name).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("dbName", dbName).
		Logger()

	for retry := range max(pg.MaxRetry, 1) {
		sqlDB, err := sqlx.Connect(driverName, descriptor)
		if err == nil {
			sqlDB.SetMaxIdleConns(pg.MaxIdleConns)
			sqlDB.SetMaxOpenConns(pg.MaxOpenConns)
			sqlDB.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetime) * time.Second)

			logger.Info().Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", retry+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Msg("Giving up connecting to database")

	return nil
}
