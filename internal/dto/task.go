package dto

import (
	"time"

	"github.com/yukikurage/todo-cli/internal/models"
	"github.com/yukikurage/todo-cli/internal/utils"
)

// Task is the validated view the query engine works on. DueDate is nil when the
// stored value is absent or does not parse; RawDueDate keeps the stored text.
type Task struct {
	ID          uint64            `json:"id"`
	UserID      uint64            `json:"user_id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Priority    models.Priority   `json:"priority"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"-"`
	RawDueDate  *string           `json:"due_date"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// HasDueDate reports whether the task carries a parsable due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// IsPending reports whether the task is still open.
func (t Task) IsPending() bool {
	return t.Status == models.TaskStatusPending
}

// Conversion functions

// ToTask maps a stored row to the domain view, classifying its due date once.
func ToTask(task models.Task) Task {
	t := Task{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		RawDueDate:  task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.DueDate != nil && *task.DueDate != "" {
		if due, err := utils.ParseDate(*task.DueDate); err == nil {
			t.DueDate = &due
		}
	}

	return t
}

// ToTasks converts a slice of rows, preserving order.
func ToTasks(tasks []models.Task) []Task {
	items := make([]Task, len(tasks))
	for i, task := range tasks {
		items[i] = ToTask(task)
	}
	return items
}
