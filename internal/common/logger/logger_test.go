package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for input, expected := range tests {
		if got := ParseLogLevel(input); got != expected {
			t.Errorf("ParseLogLevel(%q): expected %s, got %s", input, expected, got)
		}
	}
}

func TestLoggerWritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Info("Route found", "source", "Delhi", "hops", 2, "error", errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["message"] != "Route found" {
		t.Errorf("Expected message 'Route found', got %v", entry["message"])
	}
	if entry["source"] != "Delhi" {
		t.Errorf("Expected source Delhi, got %v", entry["source"])
	}
	if entry["hops"] != float64(2) {
		t.Errorf("Expected hops 2, got %v", entry["hops"])
	}
	if entry["error"] != "boom" {
		t.Errorf("Expected error field 'boom', got %v", entry["error"])
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf).With("component", "planner")

	log.Warn("No route found")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line: %v", err)
	}
	if entry["component"] != "planner" {
		t.Errorf("Expected component planner, got %v", entry["component"])
	}
	if entry["level"] != "warn" {
		t.Errorf("Expected level warn, got %v", entry["level"])
	}
}

func TestNewWithNilWriter(t *testing.T) {
	log := New(nil)
	if log == nil {
		t.Fatal("Logger should be created successfully")
	}
	log.Info("discarded")
	Nop().Error("discarded", "error", errors.New("ignored"))
}

func TestNewFromConfigLevelFilter(t *testing.T) {
	hook := &recordingHook{}
	log := NewFromConfig(LoggerConfig{
		Level: zerolog.WarnLevel,
		Hooks: []zerolog.Hook{hook},
	})

	log.Info("dropped")
	log.Error("kept")

	if len(hook.messages) != 1 || hook.messages[0] != "kept" {
		t.Errorf("Expected only the error message to reach the hook, got %v", hook.messages)
	}
}

type recordingHook struct {
	messages []string
}

func (h *recordingHook) Run(_ *zerolog.Event, _ zerolog.Level, msg string) {
	h.messages = append(h.messages, msg)
}
