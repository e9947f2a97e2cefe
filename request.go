package gcapi

import (
	"net/http"
	"time"
)

// Request describes one outbound call. Transports receive it fully built.
type Request struct {
	Method  string
	URI     string
	Header  http.Header
	Body    any
	JSON    bool
	Timeout time.Duration

	// SendImmediately asks the transport to send credentials up front rather
	// than waiting for an authentication challenge.
	SendImmediately bool
}

// RequestOptions are the per-call overrides accepted by makeRequest. Zero
// fields keep the defaults.
type RequestOptions struct {
	Method  string
	Body    any
	Timeout time.Duration
}

// baseOptions are recorded once at construction.
type baseOptions struct {
	sendImmediately bool
	timeout         time.Duration
}

// makeRequest merges, in order: base options, the auth header block, method
// GET, the URI, JSON mode, then opts. Only Method, Body and Timeout can be
// overridden; Header, JSON and URI always keep the values set here.
func (c *Client) makeRequest(uri string, opts RequestOptions) *Request {
	req := &Request{
		SendImmediately: c.base.sendImmediately,
		Timeout:         c.base.timeout,
		Header:          c.auth.Headers(),
		Method:          http.MethodGet,
		URI:             uri,
		JSON:            true,
	}

	if opts.Method != "" {
		req.Method = opts.Method
	}
	if opts.Body != nil {
		req.Body = opts.Body
	}
	if opts.Timeout > 0 {
		req.Timeout = opts.Timeout
	}
	return req
}
