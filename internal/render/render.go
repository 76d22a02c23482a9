// Package render turns tasks and reminders into terminal text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yukikurage/todo-cli/internal/dto"
	"github.com/yukikurage/todo-cli/internal/services"
)

const (
	rule            = "---------------------------"
	timestampLayout = "2006-01-02 15:04:05"
	notAvailable    = "N/A"
)

var (
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dueTodayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Task renders one task card colored by its state on today.
func Task(task dto.Task, today time.Time) string {
	lines := []string{
		rule,
		fmt.Sprintf("Task ID: %d", task.ID),
		fmt.Sprintf("Title: %s", task.Title),
		fmt.Sprintf("Description: %s", valueOr(task.Description)),
		fmt.Sprintf("Priority: %s", titleCase(string(task.Priority))),
		fmt.Sprintf("Due Date: %s", valueOr(task.RawDueDate)),
		fmt.Sprintf("Status: %s", titleCase(string(task.Status))),
		fmt.Sprintf("Created At: %s", task.CreatedAt.Format(timestampLayout)),
		fmt.Sprintf("Updated At: %s", task.UpdatedAt.Format(timestampLayout)),
		rule,
	}
	style := styleFor(task, today)
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// TaskList renders cards separated by a blank line.
func TaskList(tasks []dto.Task, today time.Time) string {
	cards := make([]string, len(tasks))
	for i, task := range tasks {
		cards[i] = Task(task, today)
	}
	return strings.Join(cards, "\n\n")
}

// Notifications renders one line per reminder, overdue first.
func Notifications(reminders services.Reminders) string {
	lines := make([]string, 0, len(reminders.Overdue)+len(reminders.DueToday))
	for _, task := range reminders.Overdue {
		lines = append(lines, overdueStyle.Render("🔔 Task Overdue: "+task.Title))
	}
	for _, task := range reminders.DueToday {
		lines = append(lines, dueTodayStyle.Render("🔔 Task Due Today: "+task.Title))
	}
	return strings.Join(lines, "\n")
}

func styleFor(task dto.Task, today time.Time) lipgloss.Style {
	if !task.IsPending() {
		return completedStyle
	}
	if task.HasDueDate() {
		switch {
		case task.DueDate.Before(today):
			return overdueStyle
		case task.DueDate.Equal(today):
			return dueTodayStyle
		}
	}
	return pendingStyle
}

func valueOr(value *string) string {
	if value == nil || *value == "" {
		return notAvailable
	}
	return *value
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
