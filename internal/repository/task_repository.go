package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/todo-cli/internal/database"
	"github.com/yukikurage/todo-cli/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return NewTaskRepositoryWithClock(db, time.Now)
}

// NewTaskRepositoryWithClock creates a TaskRepository that stamps rows with now.
func NewTaskRepositoryWithClock(db *gorm.DB, now func() time.Time) TaskRepository {
	return &GormTaskRepository{db: db, now: now}
}

// Create creates a new pending task
func (r *GormTaskRepository) Create(input CreateTaskInput) (*models.Task, error) {
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.DueDate != nil && *input.DueDate == "" {
		input.DueDate = nil
	}

	now := r.now()
	task := &models.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Status:      models.TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// ListByUser retrieves a user's tasks with filtering and ordering
func (r *GormTaskRepository) ListByUser(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Scopes(database.OwnedBy(filter.UserID))

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}

	if filter.SortBy.Valid() {
		query = query.Scopes(database.OrderBy(string(filter.SortBy), filter.Order == OrderDesc))
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Update applies the set fields of patch and always refreshes updated_at
func (r *GormTaskRepository) Update(id uint64, patch TaskPatch) (*models.Task, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": r.now(),
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			updates["due_date"] = nil
		} else {
			updates["due_date"] = *patch.DueDate
		}
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}

	result := r.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates)
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.FindByID(id)
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) (bool, error) {
	result := r.db.Delete(&models.Task{}, id)
	if err := result.Error; err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return result.RowsAffected > 0, nil
}
