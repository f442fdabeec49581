package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var logger = newLogger(os.Stdout)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          "judgment",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		ReportCaller:    true,
		CallerOffset:    1,
	})
	l.SetLevel(log.InfoLevel)
	return l
}

// Init resets the process logger at the given level. Unknown levels fall back to info.
func Init(level string) {
	logger = newLogger(os.Stdout)
	logger.SetLevel(ParseLevel(level))
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func Fatal(format string, args ...any) {
	logger.Fatalf(format, args...)
}

func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}
