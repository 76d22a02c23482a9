package middleware

import (
	"strconv"

	"github.com/spf13/cobra"
	apierrors "github.com/yukikurage/todo-cli/internal/errors"
)

// TaskHandlerFunc handles a command addressed to one task.
type TaskHandlerFunc func(cmd *cobra.Command, taskID uint64) error

// RequireTaskID parses the first argument as a task ID before calling next.
// Ownership is checked by the task service, which reports foreign tasks as missing.
func RequireTaskID(next TaskHandlerFunc) HandlerFunc {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return apierrors.Respond(cmd.OutOrStdout(), apierrors.ErrInvalidTaskID)
		}

		taskID, err := ParseTaskID(args[0])
		if err != nil {
			return apierrors.Respond(cmd.OutOrStdout(), apierrors.ErrInvalidTaskID)
		}

		return next(cmd, taskID)
	}
}

// ParseTaskID parses a positive task ID
func ParseTaskID(value string) (uint64, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
