package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Instance is the shared logrus logger, configured once via Init
var (
	Instance *logrus.Logger
	initOnce sync.Once
)

// Init configures the shared logger. verbose enables debug-level output.
// Safe to call more than once; only the first call takes effect.
func Init(verbose bool) {
	initOnce.Do(func() {
		Instance = logrus.New()
		Instance.SetOutput(os.Stdout)
		Instance.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		if verbose {
			Instance.SetLevel(logrus.DebugLevel)
		} else {
			Instance.SetLevel(logrus.InfoLevel)
		}
	})
}

// get returns the configured instance, falling back to the logrus standard
// logger so that Log is safe to call before Init.
func get() *logrus.Logger {
	if Instance == nil {
		return logrus.StandardLogger()
	}
	return Instance
}

// Log writes an info-level message.
func Log(msg string) {
	get().Info(msg)
}

// Logf writes a formatted info-level message.
func Logf(format string, args ...interface{}) {
	get().Infof(format, args...)
}

// Debugf writes a formatted debug-level message, visible in verbose mode.
func Debugf(format string, args ...interface{}) {
	get().Debugf(format, args...)
}

// Errorf writes a formatted error-level message.
func Errorf(format string, args ...interface{}) {
	get().Errorf(format, args...)
}
