package tm1

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/planops/tm1-mcp-server/internal/rest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient builds a full client against a fake TM1 server.
// Retries are disabled so call-count assertions stay exact.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &rest.Config{
		Address:    server.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 1,
		UserAgent:  "test",
	}
	rc := rest.NewClient(cfg, rest.WithLogger(testLogger()))
	return NewClient(rc, testLogger())
}

// callLog records every request as "METHOD /path" (API prefix stripped)
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(r *http.Request) string {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, rest.APIPrefix)
	l.mu.Lock()
	l.calls = append(l.calls, key)
	l.mu.Unlock()
	return key
}

func (l *callLog) has(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.calls {
		if c == key {
			return true
		}
	}
	return false
}

func (l *callLog) count(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == key {
			n++
		}
	}
	return n
}
