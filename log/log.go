// Package log provides structured logging with filesystem-based persistence.
//
// Logging is off unless logs.write is set; until then every entry is discarded.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dashgrab/dashgrab/filesystem"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var logger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Setup opens the daily log file and applies the configured format and level.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = newDiscardLogger()
		return nil
	}

	path := filepath.Join(where.Logs(), fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	logger = l
	return nil
}

// SetOutput redirects every entry to w at the given level. Used by tests and the --verbose flag.
func SetOutput(w io.Writer, level logrus.Level) {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	logger = l
}

// WithField starts an entry carrying a single field.
func WithField(k string, v any) *logrus.Entry {
	return logger.WithField(k, v)
}

// WithFields starts an entry carrying several fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any)                 { logger.Error(args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func Warn(args ...any)                  { logger.Warn(args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Info(args ...any)                  { logger.Info(args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Debug(args ...any)                 { logger.Debug(args...) }
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
