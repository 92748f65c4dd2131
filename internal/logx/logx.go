// Package logx configures the process-wide leveled logger used
// throughout driftwl: warn for protocol misuse or client junk, error for
// resource-acquisition failure, one-line caller-free messages.
package logx

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// Configure points the logger at file (or stderr if file is empty) and
// sets its level.
func Configure(file string, debug bool) error {
	var out io.Writer = os.Stderr
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		out = f
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return nil
}

// With returns a sub-logger carrying the given key/value pairs, for
// packages that want a stable prefix (e.g. logx.With("output", name)).
func With(keyvals ...any) *log.Logger {
	return logger.With(keyvals...)
}

func Debug(msg string, keyvals ...any) { logger.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { logger.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { logger.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { logger.Error(msg, keyvals...) }
