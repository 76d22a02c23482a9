// Package cli builds the todo command tree and wires one invocation's
// dependencies: config, logger, store, session and services.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/yukikurage/todo-cli/internal/config"
	"github.com/yukikurage/todo-cli/internal/database"
	apierrors "github.com/yukikurage/todo-cli/internal/errors"
	"github.com/yukikurage/todo-cli/internal/handlers"
	"github.com/yukikurage/todo-cli/internal/logging"
	"github.com/yukikurage/todo-cli/internal/middleware"
	"github.com/yukikurage/todo-cli/internal/render"
	"github.com/yukikurage/todo-cli/internal/repository"
	"github.com/yukikurage/todo-cli/internal/services"
	"github.com/yukikurage/todo-cli/internal/session"
	"github.com/yukikurage/todo-cli/internal/utils"
	"gorm.io/gorm"
)

// Options overrides the process defaults. Zero values select the defaults.
type Options struct {
	// Config skips loading configuration from file and environment.
	Config *config.Config
	// Prompt reads passwords; defaults to the terminal.
	Prompt utils.PasswordPrompt
	// Now is the clock used for timestamps and due-date classification.
	Now func() time.Time
	// Hasher overrides the bcrypt cost.
	Hasher *services.PasswordHasher
	// LogWriter replaces the log file.
	LogWriter io.Writer
}

// App holds the dependencies of a single invocation.
type App struct {
	opts       Options
	configPath string
	verbose    bool

	logger  *log.Logger
	logFile *os.File
	db      *gorm.DB

	sess        *session.Session
	taskService *services.TaskService
	authHandler *handlers.AuthHandler
	taskHandler *handlers.TaskHandler
}

// NewApp creates an App; dependencies are opened when a command runs.
func NewApp(opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Hasher == nil {
		opts.Hasher = services.NewPasswordHasher()
	}
	return &App{opts: opts}
}

// Execute runs the command line of the current process.
func Execute() error {
	app := NewApp(Options{})
	defer app.Close()

	if err := app.Command().Execute(); err != nil {
		var cliErr *apierrors.CLIError
		if !errors.As(err, &cliErr) {
			fmt.Fprintln(os.Stderr, render.ErrorStyle.Render("Error: "+err.Error()))
		}
		return err
	}
	return nil
}

// Command builds the root command and its subcommands.
func (a *App) Command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "todo",
		Short:             "Personal task tracker",
		Long:              "todo keeps per-user task lists in a local database.\n\nLog in once; the session is remembered across invocations.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "signup <username>",
			Short: "Sign up a new user",
			Args:  cobra.ExactArgs(1),
			RunE:  a.run(func() middleware.HandlerFunc { return a.authHandler.Signup }),
		},
		&cobra.Command{
			Use:   "login <username>",
			Short: "Log in to the app",
			Args:  cobra.ExactArgs(1),
			RunE:  a.run(func() middleware.HandlerFunc { return a.authHandler.Login }),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Log out from the app",
			Args:  cobra.NoArgs,
			RunE:  a.run(func() middleware.HandlerFunc { return a.authHandler.Logout }),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the logged-in user",
			Args:  cobra.NoArgs,
			RunE:  a.run(func() middleware.HandlerFunc { return a.authHandler.WhoAmI }),
		},
	)

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE:  a.authenticated(func() middleware.HandlerFunc { return a.taskHandler.AddTask }),
	}
	handlers.AddTaskFlags(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing task",
		Args:  cobra.ExactArgs(1),
		RunE:  a.authenticatedTask(func() middleware.TaskHandlerFunc { return a.taskHandler.EditTask }),
	}
	handlers.EditTaskFlags(editCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE:  a.authenticated(func() middleware.HandlerFunc { return a.taskHandler.ListTasks }),
	}
	handlers.ListTaskFlags(listCmd)

	rootCmd.AddCommand(
		addCmd,
		editCmd,
		listCmd,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a task",
			Args:  cobra.ExactArgs(1),
			RunE:  a.authenticatedTask(func() middleware.TaskHandlerFunc { return a.taskHandler.DeleteTask }),
		},
		&cobra.Command{
			Use:   "view <id>",
			Short: "View a task",
			Args:  cobra.ExactArgs(1),
			RunE:  a.authenticatedTask(func() middleware.TaskHandlerFunc { return a.taskHandler.GetTask }),
		},
		&cobra.Command{
			Use:   "done <id>",
			Short: "Mark a task as done",
			Args:  cobra.ExactArgs(1),
			RunE:  a.authenticatedTask(func() middleware.TaskHandlerFunc { return a.taskHandler.MarkDone }),
		},
		&cobra.Command{
			Use:   "reopen <id>",
			Short: "Reopen a completed task",
			Args:  cobra.ExactArgs(1),
			RunE:  a.authenticatedTask(func() middleware.TaskHandlerFunc { return a.taskHandler.Reopen }),
		},
	)

	return rootCmd
}

// run defers handler lookup until setup has built the handlers.
func (a *App) run(handler func() middleware.HandlerFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return handler()(cmd, args)
	}
}

func (a *App) authenticated(handler func() middleware.HandlerFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return middleware.Authenticated(a.sess, a.taskService, a.logger, handler())(cmd, args)
	}
}

func (a *App) authenticatedTask(handler func() middleware.TaskHandlerFunc) func(*cobra.Command, []string) error {
	return a.authenticated(func() middleware.HandlerFunc {
		return middleware.RequireTaskID(handler())
	})
}

// setup opens everything one invocation needs and restores the session.
func (a *App) setup(cmd *cobra.Command, args []string) error {
	cfg := a.opts.Config
	if cfg == nil {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logWriter := a.opts.LogWriter
	if logWriter == nil {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return err
		}
		a.logFile = f
		logWriter = f
	}
	a.logger = logging.New(logWriter, a.verbose)

	db, err := database.Connect(cfg, logging.GormLogger(a.logger, a.verbose))
	if err != nil {
		a.logger.Error("database connection failed", "driver", cfg.DBDriver, "err", err)
		return err
	}
	a.db = db

	if err := database.Migrate(db); err != nil {
		a.logger.Error("migration failed", "err", err)
		return err
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepositoryWithClock(db, a.opts.Now)
	marker := session.NewMarker(cfg.SessionFile)

	a.sess = session.Restore(marker, userRepo, a.logger)
	a.taskService = services.NewTaskServiceWithClock(taskRepo, a.opts.Now)

	prompt := a.opts.Prompt
	if prompt == nil {
		prompt = utils.NewPasswordPrompt(os.Stdin, cmd.ErrOrStderr())
	}

	authService := services.NewAuthService(userRepo, a.opts.Hasher, marker)
	a.authHandler = handlers.NewAuthHandler(authService, a.sess, prompt, a.logger)
	a.taskHandler = handlers.NewTaskHandler(a.taskService, a.sess, a.logger)

	a.logger.Info("command started", "command", cmd.Name(), "logged_in", a.sess.IsLoggedIn())
	return nil
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, database.Close(a.db))
		a.db = nil
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
		a.logFile = nil
	}
	return errors.Join(errs...)
}
