package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	gcapi "github.com/gca-community/gcapi-go"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// printResponse writes the response body in the requested format. Empty
// bodies print nothing.
func printResponse(w io.Writer, resp *gcapi.Response, format string) error {
	if resp == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	switch format {
	case outputYAML:
		var v any
		if err := json.Unmarshal(resp.Body, &v); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		var buf bytes.Buffer
		if err := json.Indent(&buf, bytes.TrimSpace(resp.Body), "", "  "); err != nil {
			// Not JSON; print as received.
			_, err = fmt.Fprintln(w, string(resp.Body))
			return err
		}
		_, err := fmt.Fprintln(w, buf.String())
		return err
	}
}
