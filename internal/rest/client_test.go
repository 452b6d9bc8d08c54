package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(address string) *Config {
	return &Config{
		Address:    address,
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		UserAgent:  "test-agent",
	}
}

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/Dimensions" {
			t.Errorf("path = %q, want /api/v1/Dimensions", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Error("Accept header not set")
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		io.WriteString(w, `{"value":[]}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithLogger(testLogger()))
	body, status, err := client.Get(context.Background(), "/Dimensions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if string(body) != `{"value":[]}` {
		t.Errorf("body = %q", body)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithLogger(testLogger()))
	_, status, err := client.Get(context.Background(), "/Dimensions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithLogger(testLogger()))
	_, status, err := client.Get(context.Background(), "/Dimensions('Missing')")
	if err != nil {
		t.Fatalf("a 404 is a valid response, not a transport error: %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestClientRetriesExhausted(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithLogger(testLogger()))
	_, _, err := client.Get(context.Background(), "/Dimensions")
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestClientHonorsRetryAfter(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithLogger(testLogger()))
	_, status, err := client.Get(context.Background(), "/Dimensions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if got := attempts.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestClientSendsBasicAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.User = "admin"
	cfg.Password = "apple"

	client := NewClient(cfg, WithLogger(testLogger()))
	if _, _, err := client.Get(context.Background(), "/Dimensions"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != cfg.AuthHeader() {
		t.Errorf("Authorization = %q, want %q", gotAuth, cfg.AuthHeader())
	}
	if gotAuth == "" {
		t.Error("Authorization header missing")
	}
}

func TestClientPostSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("Content-Type not set for body requests")
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"Name":"Region"}` {
			t.Errorf("body = %q", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithLogger(testLogger()))
	_, status, err := client.Post(context.Background(), "/Dimensions", []byte(`{"Name":"Region"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("status = %d, want 201", status)
	}
}

func TestClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithLogger(testLogger()))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := client.Get(ctx, "/Dimensions")
	if err == nil {
		t.Fatal("expected a context error")
	}
}
