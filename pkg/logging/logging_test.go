package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},

		{"DEBUG", LevelDebug},
		{"WARNING", LevelWarn},
		{"Error", LevelError},

		// Empty and unrecognized default to Info
		{"", LevelInfo},
		{"trace", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"", FormatText},
		{"yaml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept", "class", "logging")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"class":"logging"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	rec := NewRecorder()
	log := WithComponent(rec.Logger(), ComponentConfigurer)

	log.Warn("cannot add handler", "class", "missing")

	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Attrs["component"] != ComponentConfigurer {
		t.Errorf("component = %v, want %s", entries[0].Attrs["component"], ComponentConfigurer)
	}
	if entries[0].Attrs["class"] != "missing" {
		t.Errorf("class = %v, want missing", entries[0].Attrs["class"])
	}
}

func TestWithComponent_NilLogger(t *testing.T) {
	log := WithComponent(nil, ComponentClient)
	if log == nil {
		t.Fatal("expected a logger")
	}
	log.Info("discarded")
}

func TestRecorder_Count(t *testing.T) {
	rec := NewRecorder()
	log := rec.Logger()

	log.Warn("a")
	log.Warn("a")
	log.Info("a")

	if got := rec.Count(LevelWarn, "a"); got != 2 {
		t.Errorf("Count(warn, a) = %d, want 2", got)
	}
	if got := rec.Count(LevelInfo, "a"); got != 1 {
		t.Errorf("Count(info, a) = %d, want 1", got)
	}
}
