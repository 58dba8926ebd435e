package db

import (
	"sync"

	"github.com/almanac-cloud/almanac/internal/models"
	"github.com/almanac-cloud/almanac/pkg/env"
	"github.com/almanac-cloud/almanac/pkg/log"
	_ "github.com/jackc/pgx/v4"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	conn     *gorm.DB
	connOnce sync.Once
)

// Connection returns the shared gorm connection, opening it
// on first use according to the configured database type.
func Connection() *gorm.DB {
	connOnce.Do(func() {
		var err error

		switch env.Variables().DatabaseType {
		case "postgres":
			conn, err = gorm.Open(
				postgres.Open(env.Variables().DatabaseDSN),
				&gorm.Config{},
			)
		case "sqlite":
			fallthrough
		default:
			conn, err = gorm.Open(
				sqlite.Open(env.Variables().DatabaseDSN),
				&gorm.Config{},
			)
		}

		if err != nil {
			log.Fatal("failed to connect to database", "error", err)
		}
	})

	return conn
}

// Migrate creates or updates the almanac schema.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(models.All...)
}
