package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestPostJSON_SendsHeadersAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/echo" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "abc" {
			t.Errorf("expected key query param")
		}
		if r.Header.Get("Authorization") != "Bearer t0k" {
			t.Errorf("expected Authorization header, got %q", r.Header.Get("Authorization"))
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", WithHeader("Authorization", "Bearer t0k"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out struct {
		Echo string `json:"echo"`
	}
	err = c.PostJSON(context.Background(), "v1/echo", url.Values{"key": {"abc"}}, map[string]string{"msg": "hi"}, &out)
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if out.Echo != "hi" {
		t.Fatalf("expected echo=hi, got %q", out.Echo)
	}
}

func TestPostJSON_Non2xxReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c, _ := New(ts.URL)
	err := c.PostJSON(context.Background(), "/x", nil, map[string]string{}, nil)

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if !he.Quota() || he.Unauthorized() {
		t.Fatalf("expected quota error, got status=%d", he.StatusCode)
	}
	if he.Body != "quota exceeded" {
		t.Fatalf("expected trimmed body, got %q", he.Body)
	}
}

func TestPostJSON_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c, _ := New(ts.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.PostJSON(ctx, "/x", nil, map[string]string{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	if _, err := New("not a url"); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}
