package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	h := memory.New()
	l := New(Options{Level: "warn", Handler: h})

	l.Debug("debug msg", nil)
	l.Info("info msg", nil)
	l.Warn("warn msg", nil)
	l.Error("error msg", nil)

	if len(h.Entries) != 2 {
		t.Fatalf("expected 2 entries (warn+error), got %d", len(h.Entries))
	}
	if h.Entries[0].Level != log.WarnLevel || h.Entries[1].Level != log.ErrorLevel {
		t.Fatalf("unexpected levels: %v %v", h.Entries[0].Level, h.Entries[1].Level)
	}
}

func TestWith_MergesFields(t *testing.T) {
	h := memory.New()
	l := New(Options{Level: "debug", App: "pet-care-assistant", Handler: h})

	l.With(map[string]any{"stage": "analysis", "": "ignored"}).Info("call done", map[string]any{"ms": 12})

	if len(h.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(h.Entries))
	}
	f := h.Entries[0].Fields
	if f["app"] != "pet-care-assistant" {
		t.Fatalf("expected app field, got %#v", f)
	}
	if f["stage"] != "analysis" || f["ms"] != 12 {
		t.Fatalf("expected merged fields, got %#v", f)
	}
	if _, ok := f[""]; ok {
		t.Fatalf("empty key must be dropped")
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "info", Format: FormatJSON, Output: &buf})

	l.Info("hello", map[string]any{"k": "v"})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "hello" {
		t.Fatalf("expected message=hello, got %#v", entry)
	}
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	if ParseLevel("nonsense") != log.InfoLevel {
		t.Fatalf("expected info for unknown level")
	}
	if ParseLevel(" DEBUG ") != log.DebugLevel {
		t.Fatalf("expected debug")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}
