package gcapi

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// URIOptions names an endpoint path (starting with "/") and optional query
// parameters. Slice values are sent as repeated keys.
type URIOptions struct {
	Pathname string
	Query    map[string]any
}

// makeURI returns {protocol}://{host}/v{apiVersion}{pathname}[?query] with
// percent-encoding decoded.
func (c *Client) makeURI(opts URIOptions) (string, error) {
	u := url.URL{
		Scheme: c.cfg.Protocol,
		Host:   c.cfg.Host,
		Path:   "/v" + c.cfg.APIVersion + opts.Pathname,
	}

	if len(opts.Query) > 0 {
		keys := make([]string, 0, len(opts.Query))
		for k := range opts.Query {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			styled, err := runtime.StyleParamWithLocation("form", true, k, runtime.ParamLocationQuery, opts.Query[k])
			if err != nil {
				return "", fmt.Errorf("query parameter %s: %w", k, err)
			}
			parts = append(parts, styled)
		}
		// Form style encodes spaces as "+"; decoding must yield a space.
		u.RawQuery = strings.ReplaceAll(strings.Join(parts, "&"), "+", "%20")
	}

	encoded := u.String()
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		return encoded, nil
	}
	return decoded, nil
}
