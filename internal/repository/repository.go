package repository

import (
	"errors"
	"strings"

	"github.com/yukikurage/todo-cli/internal/models"
	"github.com/yukikurage/todo-cli/internal/utils"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when a user with the same username exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidPriority is returned for a priority outside low/medium/high.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrInvalidStatus is returned for a status outside pending/completed.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidDueDate is returned for a due date not in YYYY-MM-DD.
	ErrInvalidDueDate = errors.New("invalid due date")
	// ErrEmptyPatch is returned when an update carries no fields.
	ErrEmptyPatch = errors.New("no fields to update")
)

// SortField names a sortable task column.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
	SortByDueDate   SortField = "due_date"
	SortByPriority  SortField = "priority"
	SortByStatus    SortField = "status"
)

// Valid reports whether f is a recognised sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByDueDate, SortByPriority, SortByStatus:
		return true
	}
	return false
}

// SortOrder is ASC or DESC.
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// ParseSortOrder accepts asc/desc in any case.
func ParseSortOrder(value string) (SortOrder, bool) {
	switch SortOrder(strings.ToUpper(value)) {
	case OrderAsc:
		return OrderAsc, true
	case OrderDesc:
		return OrderDesc, true
	}
	return "", false
}

// TaskRepository defines the interface for task data access.
// It does not check ownership; callers compare Task.UserID with the requester.
type TaskRepository interface {
	// Create inserts a pending task for owner
	Create(input CreateTaskInput) (*models.Task, error)

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByUser retrieves one user's tasks with optional filters and ordering
	ListByUser(filter TaskFilter) ([]models.Task, error)

	// Update applies a patch and refreshes updated_at
	Update(id uint64, patch TaskPatch) (*models.Task, error)

	// Delete removes a task and reports whether it existed
	Delete(id uint64) (bool, error)
}

// CreateTaskInput holds the fields of a new task.
type CreateTaskInput struct {
	UserID      uint64
	Title       string
	Description *string
	Priority    models.Priority
	DueDate     *string
}

// TaskFilter holds filtering options for listing tasks.
// An unrecognised SortBy leaves the store order untouched.
type TaskFilter struct {
	UserID   uint64
	Status   *models.TaskStatus
	Priority *models.Priority
	SortBy   SortField
	Order    SortOrder
}

// TaskPatch lists the updatable task fields. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	DueDate     *string
	Status      *models.TaskStatus
}

// IsEmpty reports whether the patch sets no field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.DueDate == nil && p.Status == nil
}

// Validate rejects values outside the priority/status enums and malformed dates.
func (p TaskPatch) Validate() error {
	if p.Priority != nil && !p.Priority.Valid() {
		return ErrInvalidPriority
	}
	if p.Status != nil && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.DueDate != nil && *p.DueDate != "" && !utils.IsValidDate(*p.DueDate) {
		return ErrInvalidDueDate
	}
	return nil
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
