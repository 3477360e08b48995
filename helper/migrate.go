package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"garagebook/config"
	"net"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"

	migrationsSource = "file://migrations/postgres"
)

var ErrUnknownAction = errors.New("unknown migration action")

func getDBName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

// ConnectionString builds the golang-migrate URL for the write database.
func ConnectionString(config *config.Config) string {
	connectionString := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		net.JoinHostPort(config.DB.Postgres.Write.Host, config.DB.Postgres.Write.Port),
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
	)

	if table := config.DB.Postgres.MigrationTable; table != "" {
		connectionString += "&x-migrations-table=" + table
	}

	return connectionString
}

// Runner applies one migration action against migrations/postgres.
func Runner(config *config.Config, action string) error {
	steps, ok := map[string]func(*migrate.Migrate) error{
		ActionUp:     (*migrate.Migrate).Up,
		ActionDown:   func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		ActionStepUp: func(mig *migrate.Migrate) error { return mig.Steps(1) },
		ActionDrop:   (*migrate.Migrate).Down,
	}[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationsSource, ConnectionString(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := steps(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
