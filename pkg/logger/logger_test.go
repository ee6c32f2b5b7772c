package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "info", Output: &buf, Service: "recipe-api"})

	cl := Component(l, "auth")
	cl.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "recipe-api" || entry["component"] != "auth" || entry["message"] != "hello" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Output: &buf})

	l.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestInit_Singleton(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	g := Get()
	g.Info().Msg("x")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected only the first writer to receive output")
	}
}

func TestGet_BeforeInitIsNop(t *testing.T) {
	Reset()
	l := Get()
	if l.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected disabled logger, got %v", l.GetLevel())
	}
}
