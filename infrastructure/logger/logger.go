package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string, err error)
	Close()
}

type logrusLogger struct {
	mu     sync.Mutex
	log    *logrus.Logger
	closer io.Closer
}

// NewFileLogger writes JSON lines to <logDir>/<logPrefix>_<timestamp>.json.
func NewFileLogger(logDir, logPrefix, level string) (Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory '%s': %w", logDir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFilePath := filepath.Join(logDir, fmt.Sprintf("%s_%s.json", logPrefix, timestamp))

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", logFilePath, err)
	}

	l := newLogrusLogger(file, level)
	l.closer = file
	return l, nil
}

// NewConsoleLogger is used where there is no writable disk (Lambda) and in tests.
func NewConsoleLogger(w io.Writer, level string) Logger {
	return newLogrusLogger(w, level)
}

func newLogrusLogger(w io.Writer, level string) *logrusLogger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return &logrusLogger{log: log}
}

func (l *logrusLogger) entry(skip int) *logrus.Entry {
	shortFileName, funcName := "???", "???"

	if pc, filePath, _, ok := runtime.Caller(skip); ok {
		shortFileName = filepath.Base(filePath)
		if fn := runtime.FuncForPC(pc); fn != nil {
			parts := strings.Split(fn.Name(), ".")
			funcName = parts[len(parts)-1]
		}
	}

	return l.log.WithFields(logrus.Fields{
		"file":     shortFileName,
		"function": funcName,
	})
}

func (l *logrusLogger) Debug(msg string) {
	l.entry(2).Debug(msg)
}

func (l *logrusLogger) Info(msg string) {
	l.entry(2).Info(msg)
}

func (l *logrusLogger) Warning(msg string) {
	l.entry(2).Warn(msg)
}

func (l *logrusLogger) Error(msg string, err error) {
	e := l.entry(2)
	if err != nil {
		e = e.WithField("err", err.Error())
	}
	e.Error(msg)
}

func (l *logrusLogger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return
	}
	l.log.SetOutput(io.Discard)
	if err := l.closer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
	}
	l.closer = nil
}
