package services

import (
	"slices"
	"time"

	"github.com/yukikurage/todo-cli/internal/constants"
	"github.com/yukikurage/todo-cli/internal/dto"
	"github.com/yukikurage/todo-cli/internal/models"
	"github.com/yukikurage/todo-cli/internal/repository"
)

// ListOptions selects and orders the tasks returned by TaskService.ListTasks.
//
// ShowPending and ShowCompleted include by status. ShowOverdue and ShowDueSoon
// add pending tasks by due date on top of the status criteria. When none of the
// four is set, ShowPending applies.
type ListOptions struct {
	ShowPending   bool
	ShowCompleted bool
	ShowOverdue   bool
	ShowDueSoon   bool
	Priority      *models.Priority
	SortBy        repository.SortField
	Order         repository.SortOrder
}

// Normalize fills the defaults: pending only, created_at, ASC.
func (o ListOptions) Normalize() ListOptions {
	if !o.ShowPending && !o.ShowCompleted && !o.ShowOverdue && !o.ShowDueSoon {
		o.ShowPending = true
	}
	if o.SortBy == "" {
		o.SortBy = repository.SortByCreatedAt
	}
	if o.Order == "" {
		o.Order = repository.OrderAsc
	}
	return o
}

// QueryTasks filters tasks and then sorts the survivors. today is a calendar
// date as returned by utils.DateOf.
func QueryTasks(tasks []dto.Task, opts ListOptions, today time.Time) []dto.Task {
	opts = opts.Normalize()
	result := FilterTasks(tasks, opts, today)
	SortTasks(result, opts.SortBy, opts.Order)
	return result
}

// FilterTasks keeps the tasks matching any active criterion, each at most once,
// in input order.
func FilterTasks(tasks []dto.Task, opts ListOptions, today time.Time) []dto.Task {
	dueSoonLimit := today.AddDate(0, 0, constants.DueSoonWindowDays)

	result := make([]dto.Task, 0, len(tasks))
	for _, task := range tasks {
		if opts.Priority != nil && task.Priority != *opts.Priority {
			continue
		}
		if includeTask(task, opts, today, dueSoonLimit) {
			result = append(result, task)
		}
	}
	return result
}

func includeTask(task dto.Task, opts ListOptions, today, dueSoonLimit time.Time) bool {
	switch task.Status {
	case models.TaskStatusCompleted:
		return opts.ShowCompleted
	case models.TaskStatusPending:
		if opts.ShowPending {
			return true
		}
		if !task.HasDueDate() {
			return false
		}
		if opts.ShowOverdue && task.DueDate.Before(today) {
			return true
		}
		if opts.ShowDueSoon && !task.DueDate.After(dueSoonLimit) {
			return true
		}
	}
	return false
}

// SortTasks orders tasks in place. Ties keep their input order. Tasks without a
// due date sort after every dated task in both directions. An unknown field
// leaves the order untouched.
func SortTasks(tasks []dto.Task, by repository.SortField, order repository.SortOrder) {
	compare := comparatorFor(by)
	if compare == nil {
		return
	}

	desc := order == repository.OrderDesc
	slices.SortStableFunc(tasks, func(a, b dto.Task) int {
		if by == repository.SortByDueDate {
			// Undated tasks are pinned after dated ones before direction applies.
			switch {
			case a.HasDueDate() && !b.HasDueDate():
				return -1
			case !a.HasDueDate() && b.HasDueDate():
				return 1
			}
		}
		c := compare(a, b)
		if desc {
			return -c
		}
		return c
	})
}

func comparatorFor(by repository.SortField) func(a, b dto.Task) int {
	switch by {
	case repository.SortByCreatedAt:
		return func(a, b dto.Task) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case repository.SortByUpdatedAt:
		return func(a, b dto.Task) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case repository.SortByDueDate:
		return func(a, b dto.Task) int { return dueDateKey(a).Compare(dueDateKey(b)) }
	case repository.SortByPriority:
		return func(a, b dto.Task) int { return a.Priority.Rank() - b.Priority.Rank() }
	case repository.SortByStatus:
		return func(a, b dto.Task) int { return a.Status.Rank() - b.Status.Rank() }
	}
	return nil
}

// maxDate stands in for a missing due date.
var maxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

func dueDateKey(task dto.Task) time.Time {
	if task.DueDate == nil {
		return maxDate
	}
	return *task.DueDate
}
