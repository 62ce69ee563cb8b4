package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"houserental/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type step func(mig *migrate.Migrate) error

var (
	up     step = func(mig *migrate.Migrate) error { return mig.Up() }
	down   step = func(mig *migrate.Migrate) error { return mig.Steps(-1) }
	stepUp step = func(mig *migrate.Migrate) error { return mig.Steps(1) }
	drop   step = func(mig *migrate.Migrate) error { return mig.Down() }
)

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// databaseURL builds the golang-migrate connection string for the write pool.
func databaseURL(config *config.Config) string {
	write := config.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if config.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     "/" + getDBName(config, write.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func sourceURL(config *config.Config) string {
	return "file://" + config.DB.Postgres.MigrationDir
}

func run(config *config.Config, name string, fn step) error {
	mig, err := migrate.New(sourceURL(config), databaseURL(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err = fn(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", name, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("direction", name).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(config *config.Config) error {
	return run(config, "up", up)
}

func StepUp(config *config.Config) error {
	return run(config, "step-up", stepUp)
}

func Down(config *config.Config) error {
	return run(config, "down", down)
}

func Drop(config *config.Config) error {
	return run(config, "drop", drop)
}
