package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields is re-exported so callers don't import logrus for structured fields
type Fields = logrus.Fields

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

var logger = New("info", FormatText, os.Stderr)

// New builds a logger with the given level and format. An unknown level falls
// back to info with a warning.
func New(level, format string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	if strings.EqualFold(format, FormatJSON) {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.Warnf("Invalid log level %s, defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// L returns the process-wide logger
func L() *logrus.Logger {
	return logger
}

// Configure replaces the process-wide logger. Call once at startup.
func Configure(level, format string) *logrus.Logger {
	logger = New(level, format, os.Stderr)
	return logger
}
