package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "livestock-health", Output: &buf})

	l.With(map[string]any{"livestock_tag": "TAG-1"}).Info("dose marked taken", map[string]any{
		"dose_id": "m0-d0-2024-06-01",
		"error":   errors.New("boom"),
		"":        "ignored",
	})
	l.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for k, want := range map[string]any{
		"msg":           "dose marked taken",
		"app":           "livestock-health",
		"livestock_tag": "TAG-1",
		"dose_id":       "m0-d0-2024-06-01",
		"error":         "boom",
		"level":         "info",
	} {
		if entry[k] != want {
			t.Fatalf("field %s = %v, want %v", k, entry[k], want)
		}
	}
}
