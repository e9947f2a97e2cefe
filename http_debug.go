package gcapi

import (
	"net/http"
	"net/http/httputil"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// debugTransport logs every request and response at debug level. Enabled by
// Config.Debug. Bodies are logged in full; headers in Config.RedactHeaders
// are masked.
type debugTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
	redact *regexp.Regexp
}

func newDebugTransport(base http.RoundTripper, logger zerolog.Logger, redactHeaders []string) *debugTransport {
	return &debugTransport{base: base, logger: logger, redact: redactPattern(redactHeaders)}
}

// redactPattern matches the value of any of the named header lines in a dump.
func redactPattern(headers []string) *regexp.Regexp {
	if len(headers) == 0 {
		return nil
	}
	names := make([]string, 0, len(headers))
	for _, h := range headers {
		names = append(names, regexp.QuoteMeta(h))
	}
	return regexp.MustCompile(`(?im)^((?:` + strings.Join(names, "|") + `):[ \t]*)[^\r\n]*`)
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_dump", redactDump(dt.redact, reqDump)).
			Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		dt.logger.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("status_code", resp.StatusCode).
			Str("response_dump", redactDump(dt.redact, respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

func redactDump(pattern *regexp.Regexp, dump []byte) string {
	if pattern == nil {
		return string(dump)
	}
	return pattern.ReplaceAllString(string(dump), "${1}[redacted]")
}
