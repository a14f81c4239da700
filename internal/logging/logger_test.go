package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// decodeLines parses one JSON object per line.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e map[string]any
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestNewLogger_Entries(t *testing.T) {
	t.Parallel()
	upstream := errors.New("dial tcp: connection refused")

	tests := []struct {
		name  string
		emit  func(Logger)
		level string
		msg   string
		want  map[string]any
	}{
		{
			name: "history fetched",
			emit: func(l Logger) {
				l.Debug("dividend history fetched",
					String("ticker", "KO"),
					Int("payments", 251),
					Float64("latest", 0.485),
					Duration("elapsed", 1500*time.Millisecond))
			},
			level: "debug",
			msg:   "dividend history fetched",
			want:  map[string]any{"ticker": "KO", "payments": 251.0, "latest": 0.485, "elapsed": 1500.0},
		},
		{
			name: "valuation finished",
			emit: func(l Logger) {
				l.Debug("valuation finished",
					String("model", "gordon"),
					String("value", "42.00"),
					Duration("elapsed", 2*time.Millisecond))
			},
			level: "debug",
			msg:   "valuation finished",
			want:  map[string]any{"model": "gordon", "value": "42.00", "elapsed": 2.0},
		},
		{
			name: "history unavailable",
			emit: func(l Logger) {
				l.Error("dividend history unavailable", upstream, String("ticker", "ZZZZ"))
			},
			level: "error",
			msg:   "dividend history unavailable",
			want:  map[string]any{"ticker": "ZZZZ", "error": "dial tcp: connection refused"},
		},
		{
			name: "company name lookup failed",
			emit: func(l Logger) {
				l.Debug("company name lookup failed", String("ticker", "BRK-B"), Err(upstream))
			},
			level: "debug",
			msg:   "company name lookup failed",
			want:  map[string]any{"ticker": "BRK-B", "error": "dial tcp: connection refused"},
		},
		{
			name: "metrics server",
			emit: func(l Logger) {
				l.Info("serving metrics", String("addr", "127.0.0.1:9090"))
			},
			level: "info",
			msg:   "serving metrics",
			want:  map[string]any{"addr": "127.0.0.1:9090"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.emit(NewLogger(&buf, "ddmcalc"))

			entries := decodeLines(t, &buf)
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1: %s", len(entries), buf.String())
			}
			e := entries[0]
			if e["level"] != tt.level || e["message"] != tt.msg || e["component"] != "ddmcalc" {
				t.Errorf("entry header = level %v, message %v, component %v", e["level"], e["message"], e["component"])
			}
			if _, ok := e["time"]; !ok {
				t.Error("entry has no timestamp")
			}
			for k, want := range tt.want {
				if e[k] != want {
					t.Errorf("%s = %v (%T), want %v", k, e[k], e[k], want)
				}
			}
		})
	}
}

func TestZerologAdapter_ErrorWithoutCause(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "ddmcalc").Error("dashboard failed", nil)

	e := decodeLines(t, &buf)[0]
	if e["level"] != "error" {
		t.Errorf("level = %v, want error", e["level"])
	}
	if _, ok := e["error"]; ok {
		t.Errorf("a nil error should not be logged, got %v", e["error"])
	}
}

func TestZerologAdapter_LevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))

	l.Debug("valuation finished", String("model", "zero"))
	l.Info("serving metrics", String("addr", ":9090"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["message"] != "serving metrics" {
		t.Errorf("info level should drop debug entries, got %s", buf.String())
	}
}

func TestNewConsoleLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewConsoleLogger(&buf, "repl").Info("tutorial started", String("session", "5f1c"))

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output should not be JSON, got: %s", out)
	}
	for _, want := range []string{"tutorial started", "session=", "5f1c", "repl"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q, got: %s", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	l := Nop()
	l.Info("serving metrics")
	l.Debug("valuation finished", String("model", "gordon"))
	l.Error("dividend history unavailable", errors.New("boom"))
}
