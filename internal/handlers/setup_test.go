package handlers

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-cli/internal/database"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}

// runCommand executes run as a one-off cobra command and returns its output.
func runCommand(run func(*cobra.Command, []string) error, flags func(*cobra.Command), args ...string) (string, error) {
	cmd := &cobra.Command{
		Use:           "test",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if flags != nil {
		flags(cmd)
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// A nil slice would make cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.Execute()
	return out.String(), err
}
