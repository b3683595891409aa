package testit

import (
	"context"
	"net/http"
)

// GetAllParameters lists test parameters.
func (c *Client) GetAllParameters(ctx context.Context, params Params) (*Response, error) {
	return c.get(ctx, "GetAllParameters", "/api/v2/parameters", withPaging("isDeleted"), params)
}

// CreateParameter creates a test parameter.
func (c *Client) CreateParameter(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateParameter", http.MethodPost, "/api/v2/parameters", "", body)
}

// UpdateParameter replaces a test parameter.
func (c *Client) UpdateParameter(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateParameter", http.MethodPut, "/api/v2/parameters", "", body)
}

// GetParameterByID fetches a test parameter.
func (c *Client) GetParameterByID(ctx context.Context, parameterID string) (*Response, error) {
	return c.get(ctx, "GetParameterByID", pathf("/api/v2/parameters/%s", parameterID), nil, nil)
}

// DeleteParameter deletes a test parameter.
func (c *Client) DeleteParameter(ctx context.Context, parameterID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/parameters/%s", parameterID), nil)
}

// DeleteParameterByName deletes every value of the named parameter.
func (c *Client) DeleteParameterByName(ctx context.Context, name string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/parameters/name/%s", name), nil)
}
