package testit

import (
	"context"
	"net/http"
)

var workItemVersionParams = []string{"versionId", "versionNumber"}

// GetWorkItemByID fetches a work item, optionally at a given version.
func (c *Client) GetWorkItemByID(ctx context.Context, workItemID string, params Params) (*Response, error) {
	return c.get(ctx, "GetWorkItemByID", pathf("/api/v2/workItems/%s", workItemID), workItemVersionParams, params)
}

// DeleteWorkItem deletes a work item.
func (c *Client) DeleteWorkItem(ctx context.Context, workItemID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/workItems/%s", workItemID), nil)
}

// GetWorkItemIterations lists the parameter iterations of a work item.
func (c *Client) GetWorkItemIterations(ctx context.Context, workItemID string, params Params) (*Response, error) {
	return c.get(ctx, "GetWorkItemIterations", pathf("/api/v2/workItems/%s/iterations", workItemID),
		workItemVersionParams, params)
}

// CreateWorkItem creates a test case, checklist or shared step.
func (c *Client) CreateWorkItem(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateWorkItem", http.MethodPost, "/api/v2/workItems", "", body)
}

// UpdateWorkItem replaces a work item.
func (c *Client) UpdateWorkItem(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateWorkItem", http.MethodPut, "/api/v2/workItems", "", body)
}

// GetAutoTestsForWorkItem lists the autotests linked to a work item.
func (c *Client) GetAutoTestsForWorkItem(ctx context.Context, workItemID string) (*Response, error) {
	return c.get(ctx, "GetAutoTestsForWorkItem", pathf("/api/v2/workItems/%s/autoTests", workItemID), nil, nil)
}

// DeleteAllAutoTestsFromWorkItem unlinks every autotest from a work item.
func (c *Client) DeleteAllAutoTestsFromWorkItem(ctx context.Context, workItemID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/workItems/%s/autoTests", workItemID), nil)
}

// GetWorkItemChronology returns the test result history of a work item.
func (c *Client) GetWorkItemChronology(ctx context.Context, workItemID string) (*Response, error) {
	return c.get(ctx, "GetWorkItemChronology", pathf("/api/v2/workItems/%s/chronology", workItemID), nil, nil)
}

// GetWorkItemVersions lists the versions of a work item.
func (c *Client) GetWorkItemVersions(ctx context.Context, workItemID string, params Params) (*Response, error) {
	return c.get(ctx, "GetWorkItemVersions", pathf("/api/v2/workItems/%s/versions", workItemID),
		[]string{"workItemVersionId", "versionNumber"}, params)
}
