package testit

import (
	"context"
	"net/http"
)

// GetSectionByID fetches a section.
func (c *Client) GetSectionByID(ctx context.Context, sectionID string, params Params) (*Response, error) {
	return c.get(ctx, "GetSectionByID", pathf("/api/v2/sections/%s", sectionID), []string{"isDeleted"}, params)
}

// DeleteSection deletes a section with its nested sections and work items.
func (c *Client) DeleteSection(ctx context.Context, sectionID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/sections/%s", sectionID), nil)
}

// CreateSection creates a section.
func (c *Client) CreateSection(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateSection", http.MethodPost, "/api/v2/sections", "", body)
}

// UpdateSection replaces a section.
func (c *Client) UpdateSection(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateSection", http.MethodPut, "/api/v2/sections", "", body)
}

// RenameSection renames a section.
func (c *Client) RenameSection(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "RenameSection", http.MethodPost, "/api/v2/sections/rename", "", body)
}

// MoveSection moves a section under another parent.
func (c *Client) MoveSection(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "MoveSection", http.MethodPost, "/api/v2/sections/move", "", body)
}

// GetWorkItemsBySectionID lists the work items of a section.
func (c *Client) GetWorkItemsBySectionID(ctx context.Context, sectionID string, params Params) (*Response, error) {
	return c.get(ctx, "GetWorkItemsBySectionID", pathf("/api/v2/sections/%s/workItems", sectionID),
		workItemListParams, params)
}
