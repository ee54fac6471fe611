package testutil

import (
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"djstore/internal/config"
)

// SetupTestDB connects to the test database and brings its schema up to
// date. Callers keep the returned handle for the whole package run.
func SetupTestDB(envRelPath, migrationsRelPath string) (*sqlx.DB, error) {
	_ = godotenv.Load(envRelPath)
	cfg := config.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to test db: %w", err)
	}

	if err = goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set dialect: %w", err)
	}

	if err = goose.Up(db.DB, migrationsRelPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return db, nil
}

func RequireDB(t *testing.T, db *sqlx.DB) {
	t.Helper()
	if db == nil {
		t.Skip("Test database not initialized")
	}
}

// Truncate clears the given tables between tests.
func Truncate(db *sqlx.DB, tables ...string) {
	for _, table := range tables {
		db.Exec("TRUNCATE TABLE " + table + " CASCADE")
	}
}
