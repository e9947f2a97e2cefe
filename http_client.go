package gcapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jybp/httpthrottle"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// restyTransport is the default Transport. It sends the descriptor over HTTP
// and reports non-2xx statuses as *StatusError.
type restyTransport struct {
	client          *resty.Client
	userAgent       string
	requestIDHeader string
	extraHeaders    http.Header
}

func newRestyTransport(cfg Config, logger zerolog.Logger) *restyTransport {
	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}

	rt := httpClient.Transport
	if rt == nil {
		transport := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.IdleConnTimeout,
		}
		if cfg.ProxyURL != nil {
			transport.Proxy = http.ProxyURL(cfg.ProxyURL)
		}
		rt = transport
	}
	if cfg.RateLimit > 0 {
		rt = httpthrottle.Custom(rt, rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst))
	}
	if cfg.Debug {
		rt = newDebugTransport(rt, logger, cfg.RedactHeaders)
	}
	httpClient.Transport = rt

	client := resty.NewWithClient(httpClient)
	if len(cfg.BeforeRequest) > 0 {
		hooks := cfg.BeforeRequest
		client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
			for i, hook := range hooks {
				runHook(logger, "request", i, func() { hook(req) })
			}
			return nil
		})
	}
	if len(cfg.AfterResponse) > 0 {
		hooks := cfg.AfterResponse
		client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			for i, hook := range hooks {
				runHook(logger, "response", i, func() { hook(resp.RawResponse, resp.Body()) })
			}
			return nil
		})
	}

	return &restyTransport{
		client:          client,
		userAgent:       cfg.UserAgent,
		requestIDHeader: cfg.RequestIDHeader,
		extraHeaders:    cfg.ExtraHeaders.Clone(),
	}
}

// runHook calls fn, logging instead of propagating a panic.
func runHook(logger zerolog.Logger, kind string, i int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Int("hook", i).Msgf("%s hook panicked", kind)
		}
	}()
	fn()
}

func (t *restyTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil || req.URI == "" {
		return nil, errors.New("gcapi: request has no URI")
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	r := t.client.R().SetContext(ctx)
	for k, vals := range t.extraHeaders {
		for _, v := range vals {
			r.Header.Add(k, v)
		}
	}
	for k := range req.Header {
		r.SetHeader(k, req.Header.Get(k))
	}
	if t.userAgent != "" {
		r.SetHeader("User-Agent", t.userAgent)
	}
	requestID := req.Header.Get(t.requestIDHeader)
	if t.requestIDHeader != "" && requestID == "" {
		requestID = uuid.NewString()
		r.SetHeader(t.requestIDHeader, requestID)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := r.Execute(method, req.URI)
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		if id := resp.Header().Get(t.requestIDHeader); id != "" {
			requestID = id
		}
		return nil, statusErrorFromResponse(resp.StatusCode(), body, requestID)
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
	}
	if len(body) > 0 {
		out.Body = append([]byte(nil), body...)
	}
	return out, nil
}

func (t *restyTransport) close() {
	t.client.GetClient().CloseIdleConnections()
}
