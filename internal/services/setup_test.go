package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-cli/internal/database"
	"gorm.io/gorm"
)

// setupTestDB opens a migrated in-memory database closed at test end.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}
