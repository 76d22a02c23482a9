package services

import (
	"time"

	"github.com/yukikurage/todo-cli/internal/dto"
)

// Reminders partitions pending tasks by due date. Both slices keep input order.
type Reminders struct {
	Overdue  []dto.Task
	DueToday []dto.Task
}

// IsEmpty reports whether there is nothing to remind about.
func (r Reminders) IsEmpty() bool {
	return len(r.Overdue) == 0 && len(r.DueToday) == 0
}

// ClassifyReminders puts pending tasks due before today in Overdue and those due
// today in DueToday. Completed and undated tasks are skipped.
func ClassifyReminders(tasks []dto.Task, today time.Time) Reminders {
	var reminders Reminders
	for _, task := range tasks {
		if !task.IsPending() || !task.HasDueDate() {
			continue
		}
		switch {
		case task.DueDate.Before(today):
			reminders.Overdue = append(reminders.Overdue, task)
		case task.DueDate.Equal(today):
			reminders.DueToday = append(reminders.DueToday, task)
		}
	}
	return reminders
}
