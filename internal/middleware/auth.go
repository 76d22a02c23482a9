package middleware

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	apierrors "github.com/yukikurage/todo-cli/internal/errors"
	"github.com/yukikurage/todo-cli/internal/render"
	"github.com/yukikurage/todo-cli/internal/services"
	"github.com/yukikurage/todo-cli/internal/session"
)

// HandlerFunc is the signature of a cobra RunE.
type HandlerFunc func(cmd *cobra.Command, args []string) error

// RequireAuth runs next only for a logged-in session
func RequireAuth(sess *session.Session, next HandlerFunc) HandlerFunc {
	return func(cmd *cobra.Command, args []string) error {
		if !sess.IsLoggedIn() {
			return apierrors.Respond(cmd.OutOrStdout(), apierrors.ErrLoginRequired)
		}
		return next(cmd, args)
	}
}

// WithReminders prints the session user's overdue and due-today tasks before next
func WithReminders(sess *session.Session, taskService *services.TaskService, logger *log.Logger, next HandlerFunc) HandlerFunc {
	return func(cmd *cobra.Command, args []string) error {
		reminders, err := taskService.Reminders(sess)
		if err != nil {
			logger.Error("failed to load reminders", "err", err)
			return apierrors.Respond(cmd.OutOrStdout(), apierrors.Internal(err))
		}

		if !reminders.IsEmpty() {
			fmt.Fprintln(cmd.OutOrStdout(), render.Notifications(reminders))
		}
		return next(cmd, args)
	}
}

// Authenticated combines RequireAuth and WithReminders
func Authenticated(sess *session.Session, taskService *services.TaskService, logger *log.Logger, next HandlerFunc) HandlerFunc {
	return RequireAuth(sess, WithReminders(sess, taskService, logger, next))
}
