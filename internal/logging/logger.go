package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level, defaulting to INFO.
func ParseLevel(name string) Level {
	switch name {
	case "debug", "DEBUG":
		return DEBUG
	case "warn", "WARN":
		return WARN
	case "error", "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

var (
	baseInstance *baseLogger
	baseOnce     sync.Once
)

// baseLogger writes formatted entries to stderr and an optional debug file.
type baseLogger struct {
	mu     sync.Mutex
	level  Level
	file   *os.File
	writer *log.Logger
}

func getBase() *baseLogger {
	baseOnce.Do(func() {
		baseInstance = &baseLogger{level: INFO}

		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		logPath := filepath.Join(home, "auracx-debug.log")
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		baseInstance.file = file
		baseInstance.writer = log.New(file, "", 0)
	})
	return baseInstance
}

// SetLevel sets the minimum level for all component loggers.
func SetLevel(level Level) {
	base := getBase()
	base.mu.Lock()
	defer base.mu.Unlock()
	base.level = level
}

func (b *baseLogger) logf(component string, level Level, format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if level < b.level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	_, file, line, ok := runtime.Caller(3)
	caller := ""
	if ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	entry := fmt.Sprintf("%s [%s] [%s] %s %s",
		time.Now().Format("2006-01-02 15:04:05.000"),
		level, component, caller, msg)

	if level >= WARN || b.level == DEBUG {
		fmt.Fprintln(os.Stderr, entry)
	}
	if b.writer != nil {
		b.writer.Println(entry)
	}
}

type componentLogger struct {
	component string
	base      *baseLogger
}

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	return &componentLogger{component: component, base: getBase()}
}

func (l *componentLogger) Debug(format string, args ...any) {
	l.base.logf(l.component, DEBUG, format, args...)
}

func (l *componentLogger) Info(format string, args ...any) {
	l.base.logf(l.component, INFO, format, args...)
}

func (l *componentLogger) Warn(format string, args ...any) {
	l.base.logf(l.component, WARN, format, args...)
}

func (l *componentLogger) Error(format string, args ...any) {
	l.base.logf(l.component, ERROR, format, args...)
}
