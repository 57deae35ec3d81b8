// Package logging writes leveled, line-oriented logs tagged with a component
// name. Output goes to a size-rotated file and optionally to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Nomadcxx/bakus/internal/paths"
)

// Level represents a logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	levelOff
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel converts a string to a Level. Unknown names mean info.
func ParseLevel(s string) Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARNING" {
		return LevelWarn
	}
	for level, name := range levelNames {
		if name == s {
			return level
		}
	}
	return LevelInfo
}

// Field is a key/value pair appended to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	File       string // empty means ~/.config/bakus/logs/bakus.log
	MaxSizeMB  int    // rotate after this many MB (default 10)
	MaxBackups int    // rotated files kept (default 5)
	Console    bool   // also write to stderr
}

// Logger writes log lines to one or more sinks
type Logger struct {
	mu    sync.Mutex
	level Level
	file  *rotatingFile
	sinks []io.Writer
	now   func() time.Time
}

// New opens the log file described by cfg
func New(cfg Config) (*Logger, error) {
	path := cfg.File
	if path == "" {
		p, err := paths.LogPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get log path: %w", err)
		}
		path = p
	}
	path, err := paths.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("unable to expand log path: %w", err)
	}

	maxMB := cfg.MaxSizeMB
	if maxMB <= 0 {
		maxMB = 10
	}
	backups := cfg.MaxBackups
	if backups <= 0 {
		backups = 5
	}

	file, err := openRotatingFile(path, int64(maxMB)<<20, backups)
	if err != nil {
		return nil, err
	}

	l := &Logger{level: ParseLevel(cfg.Level), file: file, now: time.Now}
	l.sinks = append(l.sinks, file)
	if cfg.Console {
		l.sinks = append(l.sinks, os.Stderr)
	}
	return l, nil
}

// NewWriter returns a logger that writes only to w, without rotation
func NewWriter(level string, w io.Writer) *Logger {
	return &Logger{level: ParseLevel(level), sinks: []io.Writer{w}, now: time.Now}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{level: levelOff, now: time.Now}
}

func (l *Logger) write(level Level, component, msg string, err error, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level || len(l.sinks) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", l.now().Format(time.RFC3339), level, component, msg)
	if err != nil {
		fmt.Fprintf(&sb, " | error=%v", err)
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " | %s=%v", f.Key, f.Value)
	}
	sb.WriteByte('\n')

	line := []byte(sb.String())
	for _, w := range l.sinks {
		if _, werr := w.Write(line); werr != nil && w != io.Writer(os.Stderr) {
			fmt.Fprintf(os.Stderr, "log write failed: %v\n", werr)
		}
	}
}

func (l *Logger) Debug(component, msg string, fields ...Field) {
	l.write(LevelDebug, component, msg, nil, fields)
}

func (l *Logger) Info(component, msg string, fields ...Field) {
	l.write(LevelInfo, component, msg, nil, fields)
}

func (l *Logger) Warn(component, msg string, fields ...Field) {
	l.write(LevelWarn, component, msg, nil, fields)
}

// Error logs msg with err appended as an "error" field
func (l *Logger) Error(component, msg string, err error, fields ...Field) {
	l.write(LevelError, component, msg, err, fields)
}

// With returns a logger bound to one component
func (l *Logger) With(component string) *Component {
	return &Component{logger: l, name: component}
}

// GetLevel returns the current minimum level
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel changes the minimum level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// FilePath returns the log file path, empty for writer-only loggers
func (l *Logger) FilePath() string {
	if l.file == nil {
		return ""
	}
	return l.file.path
}

// Close closes the log file, if any
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.sinks = nil
	return err
}

// Component is a Logger with a fixed component name
type Component struct {
	logger *Logger
	name   string
}

func (c *Component) Debug(msg string, fields ...Field) { c.logger.Debug(c.name, msg, fields...) }
func (c *Component) Info(msg string, fields ...Field)  { c.logger.Info(c.name, msg, fields...) }
func (c *Component) Warn(msg string, fields ...Field)  { c.logger.Warn(c.name, msg, fields...) }

func (c *Component) Error(msg string, err error, fields ...Field) {
	c.logger.Error(c.name, msg, err, fields...)
}
