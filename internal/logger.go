package internal

import (
	"context"
	"fmt"
	"github.com/charmbracelet/log"
	"ima/entity"
	"ima/services"
	"io"
	"os"
	"time"
)

// Logger writes leveled log lines to stderr and, when a database is set,
// stores info and above in the database log collection.
type Logger struct {
	category string
	database services.Database
	log      *log.Logger
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          category,
		Level:           log.InfoLevel,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return &Logger{
		category: category,
		database: database,
		log:      logger,
	}
}

func (l *Logger) SetOutput(w io.Writer) {
	l.log.SetOutput(w)
}

func (l *Logger) Debug(text string) {
	l.log.Debug(text)
}

func (l *Logger) Info(text string) {
	l.log.Info(text)
	l.write("info", text)
}

func (l *Logger) Warn(text string) {
	l.log.Warn(text)
	l.write("warn", text)
}

func (l *Logger) Error(text string, err error) {
	l.log.Error(text, "err", err)
	l.write("error", fmt.Sprintf("%s: %v", text, err))
}

func (l *Logger) write(level, text string) {
	if l.database == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	message := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Text:     text,
	}
	if err := l.database.WriteLogMessage(ctx, message); err != nil {
		l.log.Warn("write log message", "err", err)
	}
}

// secret masks an identifier for log output.
func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
