// Package observability bundles the logging, metrics and tracing used by
// the client.
package observability

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with SDK field defaults.
type Logger struct {
	*logrus.Logger
	serviceName    string
	serviceVersion string
}

// NewLogger creates a logger. An unknown level falls back to info.
func NewLogger(serviceName, serviceVersion, level string, jsonFormat bool) *Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if jsonFormat {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	logger.SetOutput(os.Stdout)

	return &Logger{
		Logger:         logger,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
	}
}

// WithComponent returns an entry tagged with the component and service
// fields.
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"component":       component,
		"service":         l.serviceName,
		"service_version": l.serviceVersion,
	})
}

// Nop returns a logger that discards everything, for tests and callers
// that opt out of logging.
func Nop() *Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Logger{Logger: logger}
}
