package testutils

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"currency-converter/internal/db"
	"currency-converter/internal/repositories"

	"github.com/go-kit/log"
)

// TestDB connects to TEST_DATABASE_URL, creates the schema and empties the
// events table. The test is skipped when the variable is unset.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.ConnectPostgres(ctx, dsn, log.NewNopLogger())
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := repositories.NewUsageRepository(database).EnsureSchema(ctx); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if _, err := database.ExecContext(ctx, "TRUNCATE conversion_events"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return database
}
