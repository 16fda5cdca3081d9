package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkehler/worldscope/pkg/buildinfo"
	"github.com/mkehler/worldscope/pkg/httputil"
)

func TestNewClient(t *testing.T) {
	cache, _ := httputil.NewCache(t.TempDir(), time.Hour)
	headers := map[string]string{"Accept": "application/json"}
	client := NewClient(cache, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != cache {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Accept"] != "application/json" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != buildinfo.UserAgent() {
			t.Errorf("User-Agent = %q, want %q", got, buildinfo.UserAgent())
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.http = server.Client()

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGet_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.http = server.Client()

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientGet_ServerErrorIsRetryableNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.http = server.Client()

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
	var retryable *httputil.RetryableError
	if !errors.As(err, &retryable) {
		t.Error("5xx should be wrapped as RetryableError")
	}
}

func TestClientCached(t *testing.T) {
	cache, _ := httputil.NewCache(t.TempDir(), time.Hour)
	client := NewClient(cache, nil)

	calls := 0
	fetch := func(v *string) func() error {
		return func() error {
			calls++
			*v = "fetched"
			return nil
		}
	}

	var v string
	if err := client.Cached(context.Background(), "key", false, &v, fetch(&v)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls != 1 || v != "fetched" {
		t.Fatalf("first Cached() calls = %d, v = %q", calls, v)
	}

	// Second call hits the cache.
	var v2 string
	if err := client.Cached(context.Background(), "key", false, &v2, fetch(&v2)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("cache hit should not call fetch, calls = %d", calls)
	}
	if v2 != "fetched" {
		t.Errorf("cached value = %q, want %q", v2, "fetched")
	}

	// refresh bypasses the cache.
	var v3 string
	if err := client.Cached(context.Background(), "key", true, &v3, fetch(&v3)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("refresh should call fetch, calls = %d", calls)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code    int
		wantErr error
	}{
		{http.StatusOK, nil},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrNetwork},
		{http.StatusBadGateway, ErrNetwork},
		{http.StatusForbidden, ErrNetwork},
	}

	for _, tt := range tests {
		err := checkStatus(tt.code)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("checkStatus(%d) = %v, want nil", tt.code, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("checkStatus(%d) = %v, want %v", tt.code, err, tt.wantErr)
		}
	}
}
