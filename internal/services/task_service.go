package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/todo-cli/internal/dto"
	"github.com/yukikurage/todo-cli/internal/models"
	"github.com/yukikurage/todo-cli/internal/repository"
	"github.com/yukikurage/todo-cli/internal/session"
	"github.com/yukikurage/todo-cli/internal/utils"
)

var (
	// ErrTaskNotFound covers both missing tasks and tasks owned by someone else.
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDueDate  = errors.New("invalid date format")
	ErrNoChanges       = errors.New("no changes specified")
)

// TaskService handles task business logic. Every operation takes the caller's
// session and only ever exposes tasks the session's user owns.
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return NewTaskServiceWithClock(taskRepo, time.Now)
}

// NewTaskServiceWithClock creates a TaskService that reads "today" from now.
func NewTaskServiceWithClock(taskRepo repository.TaskRepository, now func() time.Time) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Priority    models.Priority
	DueDate     *string
}

// UpdateTaskInput represents input for editing a task. Nil fields are unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	DueDate     *string
}

// Today returns the current calendar date.
func (s *TaskService) Today() time.Time {
	return utils.DateOf(s.now())
}

// CreateTask adds a pending task owned by the session's user
func (s *TaskService) CreateTask(sess *session.Session, input CreateTaskInput) (*dto.Task, error) {
	if !sess.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.DueDate != nil && *input.DueDate != "" && !utils.IsValidDate(*input.DueDate) {
		return nil, ErrInvalidDueDate
	}

	task, err := s.taskRepo.Create(repository.CreateTaskInput{
		UserID:      sess.UserID(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	result := dto.ToTask(*task)
	return &result, nil
}

// GetTask returns one of the session user's tasks
func (s *TaskService) GetTask(sess *session.Session, taskID uint64) (*dto.Task, error) {
	task, err := s.ownedTask(sess, taskID)
	if err != nil {
		return nil, err
	}
	result := dto.ToTask(*task)
	return &result, nil
}

// UpdateTask edits title, description, priority or due date
func (s *TaskService) UpdateTask(sess *session.Session, taskID uint64, input UpdateTaskInput) (*dto.Task, error) {
	task, err := s.ownedTask(sess, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleEmpty
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.DueDate != nil && *input.DueDate != "" && !utils.IsValidDate(*input.DueDate) {
		return nil, ErrInvalidDueDate
	}

	return s.applyPatch(task.ID, repository.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	})
}

// DeleteTask removes one of the session user's tasks
func (s *TaskService) DeleteTask(sess *session.Session, taskID uint64) error {
	task, err := s.ownedTask(sess, taskID)
	if err != nil {
		return err
	}

	deleted, err := s.taskRepo.Delete(task.ID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// MarkDone sets a task to completed
func (s *TaskService) MarkDone(sess *session.Session, taskID uint64) (*dto.Task, error) {
	return s.setStatus(sess, taskID, models.TaskStatusCompleted)
}

// Reopen sets a task back to pending
func (s *TaskService) Reopen(sess *session.Session, taskID uint64) (*dto.Task, error) {
	return s.setStatus(sess, taskID, models.TaskStatusPending)
}

// ListTasks returns the session user's tasks filtered and sorted by opts
func (s *TaskService) ListTasks(sess *session.Session, opts ListOptions) ([]dto.Task, error) {
	if !sess.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	if opts.Priority != nil && !opts.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	opts = opts.Normalize()

	tasks, err := s.taskRepo.ListByUser(repository.TaskFilter{
		UserID:   sess.UserID(),
		Priority: opts.Priority,
		SortBy:   opts.SortBy,
		Order:    opts.Order,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return QueryTasks(dto.ToTasks(tasks), opts, s.Today()), nil
}

// Reminders classifies the session user's pending tasks into overdue and due today
func (s *TaskService) Reminders(sess *session.Session) (Reminders, error) {
	if !sess.IsLoggedIn() {
		return Reminders{}, ErrNotLoggedIn
	}

	status := models.TaskStatusPending
	tasks, err := s.taskRepo.ListByUser(repository.TaskFilter{
		UserID: sess.UserID(),
		Status: &status,
	})
	if err != nil {
		return Reminders{}, fmt.Errorf("failed to load reminders: %w", err)
	}

	return ClassifyReminders(dto.ToTasks(tasks), s.Today()), nil
}

func (s *TaskService) setStatus(sess *session.Session, taskID uint64, status models.TaskStatus) (*dto.Task, error) {
	task, err := s.ownedTask(sess, taskID)
	if err != nil {
		return nil, err
	}
	return s.applyPatch(task.ID, repository.TaskPatch{Status: &status})
}

func (s *TaskService) applyPatch(taskID uint64, patch repository.TaskPatch) (*dto.Task, error) {
	updated, err := s.taskRepo.Update(taskID, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyPatch):
			return nil, ErrNoChanges
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, repository.ErrInvalidPriority):
			return nil, ErrInvalidPriority
		case errors.Is(err, repository.ErrInvalidDueDate):
			return nil, ErrInvalidDueDate
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	result := dto.ToTask(*updated)
	return &result, nil
}

// ownedTask loads a task and hides it unless the session's user owns it
func (s *TaskService) ownedTask(sess *session.Session, taskID uint64) (*models.Task, error) {
	if !sess.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// Report foreign tasks as missing to avoid leaking their existence
	if task.UserID != sess.UserID() {
		return nil, ErrTaskNotFound
	}

	return task, nil
}
