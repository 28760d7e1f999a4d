package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/logger"
)

func testDeps() (*config.Config, *logger.Logger) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	}
	return cfg, logger.New(cfg)
}

func TestBuildURL(t *testing.T) {
	params := url.Values{}
	params.Set("q", "Kankarbagh, Patna")
	params.Set("format", "json")

	got := BuildURL("https://nominatim.openstreetmap.org", "/search", params)

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("BuildURL produced invalid URL: %v", err)
	}
	if parsed.Path != "/search" {
		t.Errorf("path = %q, want /search", parsed.Path)
	}
	if parsed.Query().Get("q") != "Kankarbagh, Patna" {
		t.Errorf("query q = %q", parsed.Query().Get("q"))
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		if got := IsRetryableError(tt.status); got != tt.want {
			t.Errorf("IsRetryableError(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	cfg, log := testDeps()
	client := New(cfg, log)

	resp, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg, log := testDeps()
	client := New(cfg, log).WithRetry(3, 10*time.Millisecond)

	resp, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 after retries", resp.StatusCode)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestClient_GetWithHeaders(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg, log := testDeps()
	client := New(cfg, log)

	resp, err := client.GetWithHeaders(context.Background(), srv.URL, map[string]string{
		"User-Agent": "plotwise/1.0",
	})
	if err != nil {
		t.Fatalf("GetWithHeaders() error = %v", err)
	}
	resp.Body.Close()

	if gotAgent != "plotwise/1.0" {
		t.Errorf("User-Agent = %q, want plotwise/1.0", gotAgent)
	}
}
