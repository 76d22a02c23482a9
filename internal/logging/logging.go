package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yukikurage/todo-cli/internal/constants"
	gormlogger "gorm.io/gorm/logger"
)

// New returns a logger writing to w. Verbose enables info level; otherwise only
// errors are written.
func New(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          constants.LoggerPrefix,
	})
	SetVerbose(logger, verbose)
	return logger
}

// SetVerbose switches logger between info and error level.
func SetVerbose(logger *log.Logger, verbose bool) {
	if verbose {
		logger.SetLevel(log.InfoLevel)
	} else {
		logger.SetLevel(log.ErrorLevel)
	}
}

// OpenFile opens (or creates) the append-only log file at path.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// GormLogger routes GORM's messages through logger. SQL is traced only when verbose.
func GormLogger(logger *log.Logger, verbose bool) gormlogger.Interface {
	level := gormlogger.Error
	if verbose {
		level = gormlogger.Info
	}
	return gormlogger.New(logger, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
