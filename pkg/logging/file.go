package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// FileLogger implements Logger interface with file output.
// Loggers derived with WithFields share the underlying file and its rotation state.
type FileLogger struct {
	config FileLoggerConfig
	sink   *fileSink
	fields Fields
}

// fileSink owns the open log file
type fileSink struct {
	mu          sync.Mutex
	file        *os.File
	currentSize int64
}

// NewFileLogger creates a new file logger
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	// Ensure directory exists
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, size, err := openAppend(config.Path)
	if err != nil {
		return nil, err
	}

	return &FileLogger{
		config: config,
		sink:   &fileSink{file: file, currentSize: size},
	}, nil
}

func openAppend(path string) (*os.File, int64, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("failed to stat log file: %w", err)
	}
	return file, info.Size(), nil
}

// Debug logs a debug message
func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields
func (l *FileLogger) WithFields(fields Fields) Logger {
	return &FileLogger{
		config: l.config,
		sink:   l.sink,
		fields: mergeFields(l.fields, fields),
	}
}

// Close flushes and closes the logger
func (l *FileLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.file == nil {
		return nil
	}
	err := l.sink.file.Close()
	l.sink.file = nil
	return err
}

// log writes a log entry
func (l *FileLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.config.Level {
		return
	}

	line, encErr := encode(l.config.Format, time.Now(), level, msg, err, mergeFields(l.fields, fields))
	if encErr != nil {
		return
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	// Check rotation before writing
	if l.config.MaxSize > 0 && l.sink.currentSize >= l.config.MaxSize {
		l.rotate()
	}
	if l.sink.file == nil {
		return
	}

	n, _ := l.sink.file.Write(line)
	l.sink.currentSize += int64(n)
}

// rotate renames the current file to .1, shifting older backups. Caller holds sink.mu.
func (l *FileLogger) rotate() {
	if l.sink.file == nil {
		return
	}
	l.sink.file.Close()
	l.sink.file = nil

	path := l.config.Path
	for i := l.config.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
	}
	os.Rename(path, path+".1")

	if l.config.MaxBackups > 0 {
		os.Remove(fmt.Sprintf("%s.%d", path, l.config.MaxBackups+1))
	}

	file, size, err := openAppend(path)
	if err != nil {
		return
	}
	l.sink.file = file
	l.sink.currentSize = size
}
