package gcapi

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server listener: %v", err)
	}
	server := httptest.NewUnstartedServer(handler)
	server.Listener = ln
	server.Start()
	return server
}

// serverConfig points a Config at a plain-HTTP test server.
func serverConfig(server *httptest.Server) Config {
	return Config{
		Protocol: "http",
		Host:     strings.TrimPrefix(server.URL, "http://"),
		APIKey:   "test-key",
	}
}

// recordingTransport captures every descriptor and answers with resp/err.
type recordingTransport struct {
	mu       sync.Mutex
	requests []*Request
	resp     *Response
	err      error
}

func (r *recordingTransport) Do(_ context.Context, req *Request) (*Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return r.resp, r.err
}

func (r *recordingTransport) last(t *testing.T) *Request {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		t.Fatalf("transport was not called")
	}
	return r.requests[len(r.requests)-1]
}

func newRecordingClient(t *testing.T, cfg Config) (*Client, *recordingTransport) {
	t.Helper()
	rt := &recordingTransport{resp: &Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}}
	cfg.Transport = rt
	if cfg.APIKey == "" {
		cfg.APIKey = "API_KEY_HERE"
	}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, rt
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func setEnvVars(values map[string]string) func() {
	originals := map[string]string{}
	for k, v := range values {
		originals[k] = os.Getenv(k)
		_ = os.Setenv(k, v)
	}
	return func() {
		for k, v := range originals {
			if v == "" {
				_ = os.Unsetenv(k)
			} else {
				_ = os.Setenv(k, v)
			}
		}
	}
}
