// Package logger is a small leveled logger writing to a single file
// that is trimmed in place once it grows past a line budget.
package logger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the logging threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// maxLines is the line budget of the log file; when exceeded the file
// is rewritten keeping only the newest maxLines lines.
const maxLines = 5000

// FileLogger appends timestamped leveled lines to a file.
type FileLogger struct {
	mu    sync.Mutex
	file  *os.File
	level Level
	lines int
}

var global *FileLogger

// Open creates the global logger on the given file path.
func Open(path string, level Level) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	fl := &FileLogger{file: f, level: level, lines: countLines(f)}
	global = fl
	return fl, nil
}

func countLines(f *os.File) int {
	f.Seek(0, 0)
	defer f.Seek(0, 2)
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
	}
	return n
}

// SetLevel changes the threshold at runtime.
func (fl *FileLogger) SetLevel(level Level) {
	fl.mu.Lock()
	fl.level = level
	fl.mu.Unlock()
}

func (fl *FileLogger) log(level Level, format string, v ...any) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if level < fl.level {
		return
	}
	line := fmt.Sprintf("%s [%s] %s\n",
		time.Now().Format("2006/01/02 15:04:05"), level, fmt.Sprintf(format, v...))
	fl.file.WriteString(line)
	fl.lines += strings.Count(line, "\n")
	if fl.lines > maxLines {
		fl.trim()
	}
}

// trim rewrites the file keeping the newest maxLines lines. Called with
// the mutex held.
func (fl *FileLogger) trim() {
	fl.file.Seek(0, 0)
	sc := bufio.NewScanner(fl.file)
	var kept []string
	for sc.Scan() {
		kept = append(kept, sc.Text())
		if len(kept) > maxLines {
			kept = kept[1:]
		}
	}
	fl.file.Truncate(0)
	fl.file.Seek(0, 0)
	for _, l := range kept {
		fl.file.WriteString(l + "\n")
	}
	fl.lines = len(kept)
}

// Write lets the logger serve as the stdlib log output.
func (fl *FileLogger) Write(p []byte) (int, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	n, err := fl.file.Write(p)
	if err != nil {
		return n, err
	}
	fl.lines += strings.Count(string(p), "\n")
	if fl.lines > maxLines {
		fl.trim()
	}
	return n, nil
}

// Close closes the underlying file.
func (fl *FileLogger) Close() error {
	return fl.file.Close()
}

// Package-level helpers write through the global logger, or stderr
// before Open has been called.

func Debug(format string, v ...any) { emit(LevelDebug, format, v...) }
func Info(format string, v ...any)  { emit(LevelInfo, format, v...) }
func Warn(format string, v ...any)  { emit(LevelWarn, format, v...) }
func Error(format string, v ...any) { emit(LevelError, format, v...) }

// Fatal logs at error level and exits.
func Fatal(format string, v ...any) {
	emit(LevelError, format, v...)
	os.Exit(1)
}

func emit(level Level, format string, v ...any) {
	if global != nil {
		global.log(level, format, v...)
		return
	}
	if level >= LevelInfo {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", level, fmt.Sprintf(format, v...))
	}
}
