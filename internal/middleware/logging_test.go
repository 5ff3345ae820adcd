package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-care-assistant/internal/platform/logger"
)

func TestRequestLogger(t *testing.T) {
	h := memory.New()
	l := logger.New(logger.Options{Level: "debug", Handler: h})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogger(l))
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Get("/bad", func(w http.ResponseWriter, _ *http.Request) { http.Error(w, "nope", http.StatusBadRequest) })

	for _, path := range []string{"/ok", "/bad"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if len(h.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(h.Entries))
	}

	ok := h.Entries[0]
	if ok.Level != log.InfoLevel || ok.Fields["status"] != http.StatusOK || ok.Fields["path"] != "/ok" {
		t.Fatalf("unexpected entry %#v", ok)
	}
	if id, _ := ok.Fields["request_id"].(string); id == "" {
		t.Fatalf("expected request id in log")
	}

	bad := h.Entries[1]
	if bad.Level != log.WarnLevel || bad.Fields["status"] != http.StatusBadRequest {
		t.Fatalf("unexpected entry %#v", bad)
	}
}
