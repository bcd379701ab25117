// Package logger builds the structured logger shared by the server.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger at the given level. Unknown levels fall back to info.
func New(service, level string) *logrus.Entry {
	return newWithOutput(os.Stdout, service, level)
}

func newWithOutput(out io.Writer, service, level string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return l.WithField("service", service)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
