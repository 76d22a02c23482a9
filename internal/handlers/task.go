package handlers

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	apierrors "github.com/yukikurage/todo-cli/internal/errors"
	"github.com/yukikurage/todo-cli/internal/models"
	"github.com/yukikurage/todo-cli/internal/render"
	"github.com/yukikurage/todo-cli/internal/repository"
	"github.com/yukikurage/todo-cli/internal/services"
	"github.com/yukikurage/todo-cli/internal/session"
)

// Flag names of the task commands.
const (
	FlagTitle     = "title"
	FlagDesc      = "desc"
	FlagPriority  = "priority"
	FlagDue       = "due"
	FlagCompleted = "completed"
	FlagPending   = "pending"
	FlagOverdue   = "overdue"
	FlagDueSoon   = "due-soon"
	FlagSortBy    = "sort-by"
	FlagOrder     = "order"
)

// AddTaskFlags registers the flags of the add command.
func AddTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagDesc, "", "Task description")
	cmd.Flags().String(FlagPriority, string(models.PriorityMedium), "Task priority (low|medium|high)")
	cmd.Flags().String(FlagDue, "", "Due date in YYYY-MM-DD format")
}

// EditTaskFlags registers the flags of the edit command.
func EditTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagTitle, "", "New title")
	cmd.Flags().String(FlagDesc, "", "New description")
	cmd.Flags().String(FlagPriority, "", "New priority (low|medium|high)")
	cmd.Flags().String(FlagDue, "", "New due date in YYYY-MM-DD format")
}

// ListTaskFlags registers the flags of the list command.
func ListTaskFlags(cmd *cobra.Command) {
	cmd.Flags().Bool(FlagCompleted, false, "Show completed tasks")
	cmd.Flags().Bool(FlagPending, false, "Show pending tasks")
	cmd.Flags().Bool(FlagOverdue, false, "Show overdue tasks")
	cmd.Flags().Bool(FlagDueSoon, false, "Show tasks due today or tomorrow")
	cmd.Flags().String(FlagPriority, "", "Filter by priority (low|medium|high)")
	cmd.Flags().String(FlagSortBy, string(repository.SortByCreatedAt), "Sort by created_at|updated_at|due_date|priority|status")
	cmd.Flags().String(FlagOrder, string(repository.OrderAsc), "Sort order (ASC|DESC)")
}

// TaskHandler runs the task commands for the session's user.
type TaskHandler struct {
	taskService *services.TaskService
	sess        *session.Session
	logger      *log.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, sess *session.Session, logger *log.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		sess:        sess,
		logger:      logger,
	}
}

// AddTask creates a new task
func (h *TaskHandler) AddTask(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	priority, _ := flags.GetString(FlagPriority)

	input := services.CreateTaskInput{
		Title:    args[0],
		Priority: models.Priority(priority),
	}
	if flags.Changed(FlagDesc) {
		desc, _ := flags.GetString(FlagDesc)
		input.Description = &desc
	}
	if flags.Changed(FlagDue) {
		due, _ := flags.GetString(FlagDue)
		input.DueDate = &due
	}

	task, err := h.taskService.CreateTask(h.sess, input)
	if err != nil {
		return h.respondTaskError(cmd, err)
	}

	h.logger.Info("task added", "id", task.ID)
	fmt.Fprintln(cmd.OutOrStdout(), render.SuccessStyle.Render("Task added successfully"))
	return nil
}

// EditTask updates the fields given on the command line
func (h *TaskHandler) EditTask(cmd *cobra.Command, taskID uint64) error {
	flags := cmd.Flags()

	var input services.UpdateTaskInput
	if flags.Changed(FlagTitle) {
		title, _ := flags.GetString(FlagTitle)
		input.Title = &title
	}
	if flags.Changed(FlagDesc) {
		desc, _ := flags.GetString(FlagDesc)
		input.Description = &desc
	}
	if flags.Changed(FlagPriority) {
		value, _ := flags.GetString(FlagPriority)
		priority := models.Priority(value)
		input.Priority = &priority
	}
	if flags.Changed(FlagDue) {
		due, _ := flags.GetString(FlagDue)
		input.DueDate = &due
	}

	if _, err := h.taskService.UpdateTask(h.sess, taskID, input); err != nil {
		return h.respondTaskError(cmd, err)
	}

	h.logger.Info("task updated", "id", taskID)
	fmt.Fprintln(cmd.OutOrStdout(), render.SuccessStyle.Render("Task updated successfully"))
	return nil
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(cmd *cobra.Command, taskID uint64) error {
	if err := h.taskService.DeleteTask(h.sess, taskID); err != nil {
		return h.respondTaskError(cmd, err)
	}

	h.logger.Info("task deleted", "id", taskID)
	fmt.Fprintln(cmd.OutOrStdout(), render.SuccessStyle.Render("Task deleted successfully"))
	return nil
}

// GetTask prints one task card
func (h *TaskHandler) GetTask(cmd *cobra.Command, taskID uint64) error {
	task, err := h.taskService.GetTask(h.sess, taskID)
	if err != nil {
		return h.respondTaskError(cmd, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Task(*task, h.taskService.Today()))
	return nil
}

// MarkDone completes a task
func (h *TaskHandler) MarkDone(cmd *cobra.Command, taskID uint64) error {
	if _, err := h.taskService.MarkDone(h.sess, taskID); err != nil {
		return h.respondTaskError(cmd, err)
	}

	h.logger.Info("task completed", "id", taskID)
	fmt.Fprintln(cmd.OutOrStdout(), render.SuccessStyle.Render("Task marked as done"))
	return nil
}

// Reopen sets a completed task back to pending
func (h *TaskHandler) Reopen(cmd *cobra.Command, taskID uint64) error {
	if _, err := h.taskService.Reopen(h.sess, taskID); err != nil {
		return h.respondTaskError(cmd, err)
	}

	h.logger.Info("task reopened", "id", taskID)
	fmt.Fprintln(cmd.OutOrStdout(), render.SuccessStyle.Render("Task reopened"))
	return nil
}

// ListTasks prints the tasks selected by the list flags
func (h *TaskHandler) ListTasks(cmd *cobra.Command, args []string) error {
	opts, cliErr := bindListOptions(cmd)
	if cliErr != nil {
		return apierrors.Respond(cmd.OutOrStdout(), cliErr)
	}

	tasks, err := h.taskService.ListTasks(h.sess, opts)
	if err != nil {
		return h.respondTaskError(cmd, err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.TaskList(tasks, h.taskService.Today()))
	return nil
}

func bindListOptions(cmd *cobra.Command) (services.ListOptions, *apierrors.CLIError) {
	flags := cmd.Flags()

	var opts services.ListOptions
	opts.ShowCompleted, _ = flags.GetBool(FlagCompleted)
	opts.ShowPending, _ = flags.GetBool(FlagPending)
	opts.ShowOverdue, _ = flags.GetBool(FlagOverdue)
	opts.ShowDueSoon, _ = flags.GetBool(FlagDueSoon)

	if value, _ := flags.GetString(FlagPriority); value != "" {
		priority := models.Priority(value)
		if !priority.Valid() {
			return opts, apierrors.ErrInvalidPriority
		}
		opts.Priority = &priority
	}

	sortBy, _ := flags.GetString(FlagSortBy)
	opts.SortBy = repository.SortField(sortBy)
	if !opts.SortBy.Valid() {
		return opts, apierrors.ErrInvalidSortField
	}

	orderValue, _ := flags.GetString(FlagOrder)
	order, ok := repository.ParseSortOrder(orderValue)
	if !ok {
		return opts, apierrors.ErrInvalidOrder
	}
	opts.Order = order

	return opts, nil
}

// respondTaskError maps service errors to one user-facing line
func (h *TaskHandler) respondTaskError(cmd *cobra.Command, err error) error {
	var cliErr *apierrors.CLIError
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		cliErr = apierrors.ErrNotLoggedIn
	case errors.Is(err, services.ErrTaskNotFound):
		cliErr = apierrors.ErrTaskNotFound
	case errors.Is(err, services.ErrInvalidPriority):
		cliErr = apierrors.ErrInvalidPriority
	case errors.Is(err, services.ErrInvalidDueDate):
		cliErr = apierrors.ErrInvalidDate
	case errors.Is(err, services.ErrTitleRequired):
		cliErr = apierrors.ErrTitleRequired
	case errors.Is(err, services.ErrTitleEmpty):
		cliErr = apierrors.ErrTitleEmpty
	case errors.Is(err, services.ErrNoChanges):
		cliErr = apierrors.ErrNoChanges
	default:
		h.logger.Error("task command failed", "command", cmd.Name(), "err", err)
		return apierrors.Respond(cmd.OutOrStdout(), apierrors.Internal(err))
	}

	h.logger.Info(cliErr.Message, "command", cmd.Name())
	return apierrors.Respond(cmd.OutOrStdout(), cliErr)
}
