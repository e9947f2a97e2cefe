package gcapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jybp/httpthrottle"
	"github.com/rs/zerolog"
)

func TestHTTPTransportSendsDescriptor(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/v1/stats/kills" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization %q", got)
		}
		if r.Header.Get("Accept") != "application/json" || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected json headers: %v", r.Header)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("expected request id header to be set")
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "gcapi-go/") {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["value"] != float64(5) || body["append"] != true {
			t.Errorf("unexpected body %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"kills","value":5}`))
	}))
	defer server.Close()

	client, err := NewClient(serverConfig(server))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	resp, err := client.UpdateStats("kills", 5)
	if err != nil {
		t.Fatalf("update stats: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var out map[string]any
	if err := resp.Decode(&out); err != nil || out["name"] != "kills" {
		t.Fatalf("decode: %v %v", err, out)
	}
}

func TestHTTPTransportErrorMessagesBecomeAPIError(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errorMessages":["bad request","missing field"]}`))
	}))
	defer server.Close()

	client, err := NewClient(serverConfig(server))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	_, err = client.GetUserWarns("1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Error() != "bad request, missing field" {
		t.Fatalf("unexpected message %q", apiErr.Error())
	}
}

func TestHTTPTransportStatusError(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", "resp-id")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errorMessages":["user not found"]}`))
	}))
	defer server.Close()

	client, err := NewClient(serverConfig(server))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	_, err = client.GetUserExperience("404")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound || statusErr.Message != "user not found" || statusErr.RequestID != "resp-id" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
	if !IsNotFound(err) || IsUnauthorized(err) || IsRateLimited(err) {
		t.Fatalf("status helpers disagree with %d", statusErr.StatusCode)
	}
	if IsAPIError(err) {
		t.Fatalf("non-2xx responses are transport errors")
	}
}

func TestHTTPTransportHonorsTimeout(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := serverConfig(server)
	cfg.Timeout = 50 * time.Millisecond
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	start := time.Now()
	_, err = client.GetUserWarns("1")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout not applied, took %s", elapsed)
	}
}

func TestHTTPTransportContextCancellation(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request should not reach the server")
	}))
	defer server.Close()

	client, err := NewClient(serverConfig(server))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.GetUserWarnsWithContext(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestHTTPTransportRejectsEmptyDescriptor(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	if _, err := client.do(context.Background(), nil); err == nil {
		t.Fatalf("expected error for a descriptor without URI")
	}
}

func TestHTTPTransportRateLimit(t *testing.T) {
	var calls int
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Request:    r,
		}, nil
	})

	client, err := NewClient(Config{
		APIKey:     "k",
		HTTPClient: &http.Client{Transport: base},
		RateLimit:  10,
		RateBurst:  1,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := client.GetUserWarns("1"); err != nil {
			t.Fatalf("get warns: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("expected the second call to wait for the limiter, took %s", elapsed)
	}
}

func TestDebugTransportRedactsAuthorization(t *testing.T) {
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"ok":true}`)),
			Request:    r,
		}, nil
	})

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	client, err := NewClient(Config{
		APIKey:     "super-secret",
		HTTPClient: &http.Client{Transport: base},
		Debug:      true,
		Logger:     &logger,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CreateUserWarn("1", "2", "spam"); err != nil {
		t.Fatalf("create warn: %v", err)
	}

	logs := buf.String()
	if !strings.Contains(logs, "HTTP request") || !strings.Contains(logs, "HTTP response") {
		t.Fatalf("expected request and response dumps, got %s", logs)
	}
	if strings.Contains(logs, "super-secret") {
		t.Fatalf("api key leaked into logs: %s", logs)
	}
	if !strings.Contains(logs, "[redacted]") {
		t.Fatalf("expected redaction marker, got %s", logs)
	}
}

func TestRedactDump(t *testing.T) {
	dump := []byte("POST /v1/x HTTP/1.1\r\nHost: h\r\nAuthorization: Bearer abc\r\nX-Tenant: t1\r\nAccept: application/json\r\n\r\n")

	tests := []struct {
		name    string
		headers []string
		want    string
	}{
		{
			name:    "Authorization",
			headers: []string{"Authorization"},
			want:    "POST /v1/x HTTP/1.1\r\nHost: h\r\nAuthorization: [redacted]\r\nX-Tenant: t1\r\nAccept: application/json\r\n\r\n",
		},
		{
			name:    "CaseInsensitiveList",
			headers: []string{"authorization", "x-tenant"},
			want:    "POST /v1/x HTTP/1.1\r\nHost: h\r\nAuthorization: [redacted]\r\nX-Tenant: [redacted]\r\nAccept: application/json\r\n\r\n",
		},
		{
			name:    "Nothing",
			headers: nil,
			want:    string(dump),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactDump(redactPattern(tt.headers), dump); got != tt.want {
				t.Fatalf("redactDump = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPTransportThrottlesCallerTransport(t *testing.T) {
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("unused")
	})

	rt := newRestyTransport(Config{
		HTTPClient: &http.Client{Transport: base},
		RateLimit:  1,
		RateBurst:  1,
	}.withDefaults(), zerolog.Nop())
	if _, ok := rt.client.GetClient().Transport.(*httpthrottle.Transport); !ok {
		t.Fatalf("expected a throttled transport, got %T", rt.client.GetClient().Transport)
	}
}

func TestHTTPTransportBuildsTunedTransport(t *testing.T) {
	proxy, _ := url.Parse("http://proxy.internal:3128")
	rt := newRestyTransport(Config{
		ProxyURL:     proxy,
		MaxIdleConns: 7,
	}.withDefaults(), zerolog.Nop())

	transport, ok := rt.client.GetClient().Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", rt.client.GetClient().Transport)
	}
	if transport.MaxIdleConns != 7 || transport.MaxIdleConnsPerHost != 10 || transport.IdleConnTimeout != 90*time.Second {
		t.Fatalf("unexpected pool settings: %d %d %s", transport.MaxIdleConns, transport.MaxIdleConnsPerHost, transport.IdleConnTimeout)
	}
	req, _ := http.NewRequest(http.MethodGet, "https://api.g-ca.fr/v1/x", nil)
	got, err := transport.Proxy(req)
	if err != nil || got.String() != proxy.String() {
		t.Fatalf("proxy = %v %v, want %s", got, err, proxy)
	}
}

func TestHTTPTransportExtraHeadersAndHooks(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Tenant") != "t1" {
			t.Errorf("missing extra header: %v", r.Header)
		}
		if r.Header.Get("X-Hook") != "before" {
			t.Errorf("request hook did not run: %v", r.Header)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("extra headers must not replace authorization, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var seenStatus int
	var seenBody string
	cfg := serverConfig(server)
	cfg.ExtraHeaders = http.Header{
		"X-Tenant":      []string{"t1"},
		"Authorization": []string{"Bearer other"},
	}
	cfg.BeforeRequest = []RequestHook{
		func(*http.Request) { panic("boom") },
		func(r *http.Request) { r.Header.Set("X-Hook", "before") },
	}
	cfg.AfterResponse = []ResponseHook{
		func(resp *http.Response, body []byte) {
			seenStatus = resp.StatusCode
			seenBody = string(body)
		},
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	if _, err := client.GetUserWarns("1"); err != nil {
		t.Fatalf("get warns: %v", err)
	}
	if seenStatus != http.StatusOK || seenBody != `{"ok":true}` {
		t.Fatalf("response hook saw %d %q", seenStatus, seenBody)
	}
}
