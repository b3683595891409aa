package testit

import (
	"context"
	"net/http"
)

// GetConfigurationByID fetches a configuration by internal or global id.
func (c *Client) GetConfigurationByID(ctx context.Context, configurationID string) (*Response, error) {
	return c.get(ctx, "GetConfigurationByID", pathf("/api/v2/configurations/%s", configurationID), nil, nil)
}

// CreateConfiguration creates a configuration.
func (c *Client) CreateConfiguration(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateConfiguration", http.MethodPost, "/api/v2/configurations", "", body)
}

// UpdateConfiguration replaces a configuration.
func (c *Client) UpdateConfiguration(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateConfiguration", http.MethodPut, "/api/v2/configurations", "", body)
}
