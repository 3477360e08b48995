package helper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"garagebook/config"
	"garagebook/helper"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Username = "garage"
	cfg.DB.Postgres.Write.Password = "secret"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "bookings"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	return cfg
}

func TestConnectionString(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, "postgres://garage:secret@db:5432/bookings?sslmode=disable", helper.ConnectionString(cfg))

	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations_garage"

	assert.Equal(t,
		"postgres://garage:secret@db:5432/test_bookings?sslmode=disable&x-migrations-table=schema_migrations_garage",
		helper.ConnectionString(cfg),
	)
}

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(testConfig(), "sideways")

	assert.True(t, errors.Is(err, helper.ErrUnknownAction))
}
