package gcapi

import (
	"context"
	"fmt"
	"net/http"
)

// GetUserExperience returns the experience accumulated by a user.
func (c *Client) GetUserExperience(userID string) (*Response, error) {
	return c.GetUserExperienceWithContext(context.Background(), userID)
}

// GetUserExperienceWithContext is GetUserExperience with a caller-supplied context.
func (c *Client) GetUserExperienceWithContext(ctx context.Context, userID string) (*Response, error) {
	uri, err := c.makeURI(URIOptions{Pathname: fmt.Sprintf("/users/%s/experience", userID)})
	if err != nil {
		return nil, err
	}
	return c.do(ctx, c.makeRequest(uri, RequestOptions{}))
}

// GetUserWarns returns the warns accumulated by a user.
func (c *Client) GetUserWarns(userID string) (*Response, error) {
	return c.GetUserWarnsWithContext(context.Background(), userID)
}

// GetUserWarnsWithContext is GetUserWarns with a caller-supplied context.
func (c *Client) GetUserWarnsWithContext(ctx context.Context, userID string) (*Response, error) {
	uri, err := c.makeURI(URIOptions{Pathname: fmt.Sprintf("/users/%s/warn", userID)})
	if err != nil {
		return nil, err
	}
	return c.do(ctx, c.makeRequest(uri, RequestOptions{}))
}

// CreateUserWarn records a warn against userID, issued by bannerID.
func (c *Client) CreateUserWarn(userID, bannerID, reason string) (*Response, error) {
	return c.CreateUserWarnWithContext(context.Background(), userID, bannerID, reason)
}

// CreateUserWarnWithContext is CreateUserWarn with a caller-supplied context.
func (c *Client) CreateUserWarnWithContext(ctx context.Context, userID, bannerID, reason string) (*Response, error) {
	uri, err := c.makeURI(URIOptions{Pathname: fmt.Sprintf("/users/%s/warn", userID)})
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"banned_by": bannerID,
		"reason":    reason,
	}
	return c.do(ctx, c.makeRequest(uri, RequestOptions{Method: http.MethodPost, Body: payload}))
}
