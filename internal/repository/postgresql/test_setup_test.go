package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

var testDB *database.DB

// newTestDB connects to the integration database or skips the test when
// TEST_DATABASE_URL is not set.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err, "failed to connect to test database")
	}
	return testDB
}

func truncateTables(t *testing.T, db *database.DB, tables ...string) {
	t.Helper()
	ctx := context.Background()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate %s", table)
	}
	require.NoError(t, tx.Commit(ctx))
}
