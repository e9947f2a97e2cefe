package gcapi

import (
	"context"
	"fmt"
	"net/http"
)

// UpdateStatsOptions tunes UpdateStats. The zero value appends.
type UpdateStatsOptions struct {
	// Overwrite replaces the stored value instead of adding to it.
	Overwrite bool
}

// UpdateStats adds statValue to the stat named statName.
func (c *Client) UpdateStats(statName string, statValue any) (*Response, error) {
	return c.UpdateStatsWithContext(context.Background(), statName, statValue, UpdateStatsOptions{})
}

// UpdateStatsWithContext updates a stat with a caller-supplied context. The
// body is {"value": statValue, "append": !opts.Overwrite}.
func (c *Client) UpdateStatsWithContext(ctx context.Context, statName string, statValue any, opts UpdateStatsOptions) (*Response, error) {
	uri, err := c.makeURI(URIOptions{Pathname: fmt.Sprintf("/stats/%s", statName)})
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"value":  statValue,
		"append": !opts.Overwrite,
	}
	return c.do(ctx, c.makeRequest(uri, RequestOptions{Method: http.MethodPut, Body: payload}))
}
