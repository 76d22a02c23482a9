package constants

const (
	// DateLayout is the only accepted textual format for due dates.
	DateLayout = "2006-01-02"

	// DueSoonWindowDays is the look-ahead used by the due-soon filter (today and tomorrow).
	DueSoonWindowDays = 1

	// MinPasswordLength is the shortest password accepted at signup.
	MinPasswordLength = 1

	DefaultSessionFile = ".todo_session"
	DefaultLogFile     = "app.log"
	DefaultDBPath      = "todo.db"
	LoggerPrefix       = "todo"
)
