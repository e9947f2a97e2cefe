package gcapi

import (
	"context"
	"net/http"
	"time"
)

// expiresAtLayout is ISO 8601 in UTC with millisecond precision.
const expiresAtLayout = "2006-01-02T15:04:05.000Z07:00"

// ShortLinkOptions are the optional fields of a short link.
type ShortLinkOptions struct {
	// Code requests a specific short code.
	Code string
	// ExpiresAt is the moment the link stops resolving.
	ExpiresAt time.Time
}

// CreateShortLink creates a short link pointing at longURL.
func (c *Client) CreateShortLink(longURL string, opts ShortLinkOptions) (*Response, error) {
	return c.CreateShortLinkWithContext(context.Background(), longURL, opts)
}

// CreateShortLinkWithContext is CreateShortLink with a caller-supplied
// context. Code and expires_at are only sent when set.
func (c *Client) CreateShortLinkWithContext(ctx context.Context, longURL string, opts ShortLinkOptions) (*Response, error) {
	uri, err := c.makeURI(URIOptions{Pathname: "/shortlinks"})
	if err != nil {
		return nil, err
	}
	return c.do(ctx, c.makeRequest(uri, RequestOptions{Method: http.MethodPost, Body: shortLinkPayload(longURL, opts)}))
}

func shortLinkPayload(longURL string, opts ShortLinkOptions) map[string]any {
	payload := map[string]any{
		"url": longURL,
	}
	if opts.Code != "" {
		payload["code"] = opts.Code
	}
	if !opts.ExpiresAt.IsZero() {
		payload["expires_at"] = opts.ExpiresAt.UTC().Format(expiresAtLayout)
	}
	return payload
}
