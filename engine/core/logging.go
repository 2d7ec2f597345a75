package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

type LogLevel = log.Level

const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
	FatalLevel = log.FatalLevel
)

var once sync.Once

type logger struct {
	*log.Logger
}

var (
	singleton *logger
	// base is the logger before any session field was attached.
	base *log.Logger
)

func getLogger() *logger {
	once.Do(
		func() {
			base = newLogger(os.Stderr)
			singleton = &logger{base}
		})
	return singleton
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "vkinstance 🌋",
		Level:           log.DebugLevel,
	})
}

// SetLogger replaces the engine logger. Tests use it to capture output.
func SetLogger(l *log.Logger) {
	once.Do(func() {})
	base = l
	singleton = &logger{l}
}

// SetLogLevel changes the minimum level that gets written.
func SetLogLevel(level LogLevel) {
	getLogger().SetLevel(level)
	base.SetLevel(level)
}

// ParseLogLevel accepts debug, info, warn, error and fatal.
func ParseLogLevel(s string) (LogLevel, error) {
	return log.ParseLevel(s)
}

// SetSessionID tags every following log line with the given bootstrap session.
func SetSessionID(id string) {
	getLogger()
	singleton = &logger{base.With("session", id)}
}

func LogDebug(msg string, args ...interface{}) {
	l := getLogger()
	l.Helper()
	l.Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	l := getLogger()
	l.Helper()
	l.Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	l := getLogger()
	l.Helper()
	l.Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	l := getLogger()
	l.Helper()
	l.Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	l := getLogger()
	l.Helper()
	l.Fatalf(msg, args...)
}
