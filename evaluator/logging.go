package evaluator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/pan-evaluator/dml"
)

type (
	stdlog struct {
		logger *slog.Logger
	}

	LogEntry struct {
		Level   dml.LogLevel
		Message string
	}

	// ArrayLogger retains all entries in memory. It is safe for concurrent use.
	ArrayLogger struct {
		lock    sync.Mutex
		entries []*LogEntry
	}
)

// NewStdLogger returns a dml.Logger that writes to the given structured logger, or to
// slog.Default() when logger is nil
func NewStdLogger(logger *slog.Logger) dml.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &stdlog{logger}
}

// SlogLevel returns the slog level that corresponds to the given LogLevel
func SlogLevel(level dml.LogLevel) slog.Level {
	switch level {
	case dml.DEBUG:
		return slog.LevelDebug
	case dml.INFO, dml.NOTICE:
		return slog.LevelInfo
	case dml.WARNING:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func (l *stdlog) Log(level dml.LogLevel, args ...dml.Value) {
	w := bytes.NewBufferString(``)
	for _, arg := range args {
		w.WriteString(arg.String())
	}
	l.logger.Log(context.Background(), SlogLevel(level), w.String(), `level`, string(level))
}

func (l *stdlog) Logf(level dml.LogLevel, format string, args ...interface{}) {
	l.logger.Log(context.Background(), SlogLevel(level), fmt.Sprintf(format, args...), `level`, string(level))
}

func (l *stdlog) LogIssue(i issue.Reported) {
	level, ok := issueLevel(i)
	if !ok {
		return
	}
	l.logger.Log(context.Background(), SlogLevel(level), i.Error(), `code`, string(i.Code()))
}

func issueLevel(i issue.Reported) (dml.LogLevel, bool) {
	switch i.Severity() {
	case issue.SeverityError:
		return dml.ERR, true
	case issue.SeverityWarning, issue.SeverityDeprecation:
		return dml.WARNING, true
	default:
		return ``, false
	}
}

func NewArrayLogger() *ArrayLogger {
	return &ArrayLogger{entries: make([]*LogEntry, 0, 16)}
}

func (l *ArrayLogger) Entries(level dml.LogLevel) (result []string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	result = make([]string, 0, 8)
	for _, entry := range l.entries {
		if entry.Level == level {
			result = append(result, entry.Message)
		}
	}
	return
}

func (l *ArrayLogger) Log(level dml.LogLevel, args ...dml.Value) {
	w := bytes.NewBufferString(``)
	for _, arg := range args {
		w.WriteString(arg.String())
	}
	l.add(level, w.String())
}

func (l *ArrayLogger) Logf(level dml.LogLevel, format string, args ...interface{}) {
	l.add(level, fmt.Sprintf(format, args...))
}

func (l *ArrayLogger) LogIssue(i issue.Reported) {
	if level, ok := issueLevel(i); ok {
		l.add(level, i.Error())
	}
}

func (l *ArrayLogger) add(level dml.LogLevel, message string) {
	l.lock.Lock()
	l.entries = append(l.entries, &LogEntry{level, message})
	l.lock.Unlock()
}
