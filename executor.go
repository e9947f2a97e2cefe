package gcapi

import (
	"context"
	"time"
)

// do sends req through the configured transport. Transport errors are
// returned untouched; a response carrying errorMessages becomes *APIError.
// Any other response, nil included, is returned as is.
func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		req = &Request{}
	}

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	duration := time.Since(start)
	requestDuration.WithLabelValues(req.Method).Observe(duration.Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(req.Method, outcomeTransportError).Inc()
		c.logger.Debug().Err(err).Str("method", req.Method).Str("uri", req.URI).Dur("duration", duration).Msg("transport error")
		return nil, err
	}

	if msgs := resp.ErrorMessages(); len(msgs) > 0 {
		requestsTotal.WithLabelValues(req.Method, outcomeAPIError).Inc()
		c.logger.Debug().Strs("error_messages", msgs).Str("method", req.Method).Str("uri", req.URI).Dur("duration", duration).Msg("api error")
		return nil, &APIError{Messages: msgs, Response: resp}
	}

	requestsTotal.WithLabelValues(req.Method, outcomeOK).Inc()
	c.logger.Debug().Str("method", req.Method).Str("uri", req.URI).Dur("duration", duration).Msg("request completed")
	return resp, nil
}
