package database

import (
	"fmt"

	"github.com/yukikurage/todo-cli/internal/models"
	"gorm.io/gorm"
)

// taskIndexes are the filter and sort columns of the task list.
var taskIndexes = []struct {
	name    string
	columns string
}{
	{"idx_tasks_user_id", "user_id"},
	{"idx_tasks_status", "status"},
	{"idx_tasks_due_date", "due_date"},
	{"idx_tasks_created_at", "created_at"},
}

// AddIndexes creates the task indexes that do not exist yet.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range taskIndexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
