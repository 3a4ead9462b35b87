// Package log writes mdx's debug log.
//
// Logging is off until Init opens a log file, which happens only when the
// --debug flag or MDX_DEBUG is set. Each entry carries a severity tag, a
// category, and key=value fields.
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Level classifies entry severity. Levels tag entries, they do not
// filter: an open debug log records everything.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Category names the subsystem an entry came from.
type Category string

const (
	CatProcess  Category = "process"  // label collection and substitution
	CatDocument Category = "document" // document adapters: load, transform, save
	CatConfig   Category = "config"   // configuration loading and saving
	CatWatch    Category = "watch"    // watch mode runs and file events
	CatConvert  Category = "convert"  // archive conversion
	CatTrace    Category = "trace"    // tracing provider lifecycle
)

var (
	mu  sync.Mutex
	out *os.File
)

// Init opens the debug log at path in append mode and routes all
// subsequent entries to it. The returned cleanup closes the file and
// silences the package again.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // the path comes from the user's own flag or env
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}

	mu.Lock()
	out = f
	mu.Unlock()

	return func() {
		mu.Lock()
		if out == f {
			out = nil
		}
		mu.Unlock()
		_ = f.Close()
	}, nil
}

// Debug records fine-grained diagnostic detail.
func Debug(cat Category, msg string, fields ...any) {
	emit(LevelDebug, cat, msg, fields)
}

// Info records normal lifecycle events.
func Info(cat Category, msg string, fields ...any) {
	emit(LevelInfo, cat, msg, fields)
}

// Warn records recoverable problems.
func Warn(cat Category, msg string, fields ...any) {
	emit(LevelWarn, cat, msg, fields)
}

// Error records failures.
func Error(cat Category, msg string, fields ...any) {
	emit(LevelError, cat, msg, fields)
}

// ErrorErr records a failure together with its error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	val := "<nil>"
	if err != nil {
		val = err.Error()
	}
	emit(LevelError, cat, msg, append(fields, "error", val))
}

func emit(level Level, cat Category, msg string, fields []any) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(&b, " %-5s [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=!(MISSING)", fields[len(fields)-1])
	}
	b.WriteByte('\n')

	_, _ = out.WriteString(b.String())
}
