// Package logging provides structured JSON logging for the vessel-inspection
// service. Every entry is a single JSON line so log collectors can ingest the
// output without extra parsing.
package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// LogLevel identifies the severity of a log entry.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
)

// LogEntry is the JSON shape of every emitted line.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	Error     string         `json:"error,omitempty"`
	Entity    string         `json:"entity,omitempty"`
	EntityID  any            `json:"entity_id,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMS int64          `json:"latency_ms,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Logger writes structured JSON log entries.
type Logger struct {
	output *log.Logger
}

// NewLogger creates a logger writing to stdout.
func NewLogger() *Logger {
	return &Logger{output: log.New(os.Stdout, "", 0)}
}

// NewLoggerTo creates a logger writing to the given log.Logger. Used by tests
// to capture output.
func NewLoggerTo(out *log.Logger) *Logger {
	return &Logger{output: out}
}

func (l *Logger) emit(entry LogEntry) {
	entry.Timestamp = time.Now().UTC()
	data, err := json.Marshal(entry)
	if err != nil {
		// Marshalling a LogEntry can only fail on exotic Extra values;
		// fall back to plain text rather than dropping the line.
		l.output.Printf(`{"timestamp":%q,"level":"ERROR","message":"log marshal failure"}`, entry.Timestamp.Format(time.RFC3339))
		return
	}
	l.output.Println(string(data))
}

// Info logs an informational message.
func (l *Logger) Info(message string) {
	l.emit(LogEntry{Level: LogLevelInfo, Message: message})
}

// Warn logs a warning.
func (l *Logger) Warn(message string) {
	l.emit(LogEntry{Level: LogLevelWarning, Message: message})
}

// Error logs an error with its cause (err may be nil).
func (l *Logger) Error(message string, err error) {
	entry := LogEntry{Level: LogLevelError, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.emit(entry)
}

// Event logs a domain event tied to an entity, e.g.
// Event("checklist item completed", "survey_checklist_item", 42, map[string]any{"photo_id": 7}).
func (l *Logger) Event(message, entity string, entityID any, extra map[string]any) {
	l.emit(LogEntry{
		Level:    LogLevelInfo,
		Message:  message,
		Entity:   entity,
		EntityID: entityID,
		Extra:    extra,
	})
}

// HTTPRequest logs one served request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMS int64) {
	l.emit(LogEntry{
		Level:     LogLevelInfo,
		Message:   method + " " + path,
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMS: latencyMS,
	})
}
