// Package dbtest opens the integration test database.
package dbtest

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"reskin/backend/internal/database"
)

const envURL = "TEST_DATABASE_URL"

var tables = []string{
	"decks",
	"card_sets",
	"game_card_definitions",
	"games",
	"users",
	"token_engine_card_definitions",
	"token_engine_discovery_card_definitions",
}

// Open connects to TEST_DATABASE_URL, migrates it and empties every table.
// The test is skipped when the variable is unset.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv(envURL)
	if dsn == "" {
		t.Skipf("%s not set; skipping database test", envURL)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	db, err := database.Connect(dsn, database.PoolConfig{MaxOpenConns: 4}, logger)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range tables {
		if err := db.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
	return db
}
