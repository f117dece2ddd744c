// Package logger configures the process-wide logrus logger. Production
// emits one JSON object per line; every other environment gets human
// readable text.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	std = New("info", false, os.Stdout)
)

// New builds a logger. Unknown levels fall back to info.
func New(level string, jsonOutput bool, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if jsonOutput {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return l
}

// SetDefault replaces the logger returned by L.
func SetDefault(l *logrus.Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

// L returns the process-wide logger.
func L() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// For returns an entry tagged with the component that logs through it.
func For(component string) *logrus.Entry {
	return L().WithField("logger", component)
}
