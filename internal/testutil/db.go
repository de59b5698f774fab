// Package testutil holds helpers for tests that need a live postgres.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"

	"github.com/xxxsen/skillmatch/internal/config"
	"github.com/xxxsen/skillmatch/internal/db"
)

var tables = []string{"user_skills", "user_habits", "users", "embedding_cache"}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// OpenTestDB connects to the database named by TEST_DB_* variables and skips
// the test when TEST_DB_HOST is unset. Tables are emptied before and after.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	port, err := strconv.Atoi(envOr("TEST_DB_PORT", "5432"))
	if err != nil {
		t.Fatalf("TEST_DB_PORT: %v", err)
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     envOr("TEST_DB_USER", "skillmatch"),
		Password: envOr("TEST_DB_PASSWORD", "skillmatch_pass"),
		DBName:   envOr("TEST_DB_NAME", "skillmatch_test"),
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(context.Background(), conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	truncate(t, conn)
	t.Cleanup(func() {
		truncate(t, conn)
		_ = conn.Close()
	})
	return conn
}

func truncate(t *testing.T, conn *sql.DB) {
	t.Helper()
	for _, table := range tables {
		if _, err := conn.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
}
