package gcapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Transport performs the network I/O for one request descriptor.
// Implementations must be safe for concurrent use.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do calls f(ctx, req).
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Response is the payload a transport returns. Body holds the raw JSON.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return errors.New("gcapi: empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// ErrorMessages returns the errorMessages list carried by the body, if the
// body is a JSON object holding a non-empty one.
func (r *Response) ErrorMessages() []string {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	var parsed map[string]any
	if err := json.Unmarshal(r.Body, &parsed); err != nil {
		return nil
	}
	return errorMessagesFrom(parsed)
}
