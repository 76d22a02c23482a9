package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-cli/internal/config"
	"github.com/yukikurage/todo-cli/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return db
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	// A second run finds everything in place
	require.NoError(t, Migrate(db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.User{}))
	assert.True(t, migrator.HasTable(&models.Task{}))
	for _, idx := range taskIndexes {
		assert.True(t, migrator.HasIndex(&models.Task{}, idx.name), idx.name)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	err := db.Create(&models.Task{UserID: 99, Title: "orphan", Priority: models.PriorityLow, Status: models.TaskStatusPending}).Error
	assert.Error(t, err)
}

func TestScopes(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	owner := &models.User{Username: "owner", PasswordHash: "x"}
	other := &models.User{Username: "other", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	low := &models.Task{UserID: owner.ID, Title: "low", Priority: models.PriorityLow, Status: models.TaskStatusPending}
	high := &models.Task{UserID: owner.ID, Title: "high", Priority: models.PriorityHigh, Status: models.TaskStatusPending}
	theirs := &models.Task{UserID: other.ID, Title: "theirs", Priority: models.PriorityLow, Status: models.TaskStatusPending}
	for _, task := range []*models.Task{low, high, theirs} {
		require.NoError(t, db.Create(task).Error)
	}

	var tasks []models.Task
	require.NoError(t, db.Scopes(OwnedBy(owner.ID), OrderBy("title", true)).Find(&tasks).Error)
	require.Len(t, tasks, 2)
	assert.Equal(t, "low", tasks[0].Title)
	assert.Equal(t, "high", tasks[1].Title)

	tasks = nil
	require.NoError(t, db.Scopes(OwnedBy(other.ID), OrderBy("", false)).Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, theirs.ID, tasks[0].ID)
}

func TestConnect(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "todo.db"),
	}

	db, err := Connect(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Close(db))

	_, err = Connect(&config.Config{DBDriver: "oracle"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestDialectorFor(t *testing.T) {
	mysqlDialector, err := dialectorFor(&config.Config{DBDriver: config.DriverMySQL, DBHost: "db", DBUser: "u", DBName: "todo"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", mysqlDialector.Name())

	pgDialector, err := dialectorFor(&config.Config{DBDriver: config.DriverPostgres, DBHost: "db", DBUser: "u", DBName: "todo"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", pgDialector.Name())
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "todo.db?_foreign_keys=on", sqliteDSN("todo.db"))
	assert.Equal(t, "file:todo.db?cache=shared&_foreign_keys=on", sqliteDSN("file:todo.db?cache=shared"))
}
