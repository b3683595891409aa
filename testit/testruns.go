package testit

import (
	"context"
	"net/http"
)

// CreateEmptyTestRun creates a test run without test results.
func (c *Client) CreateEmptyTestRun(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateEmptyTestRun", http.MethodPost, "/api/v2/testRuns", "", body)
}

// UpdateEmptyTestRun updates the name and description of a test run.
func (c *Client) UpdateEmptyTestRun(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateEmptyTestRun", http.MethodPut, "/api/v2/testRuns", "", body)
}

// CreateTestRunByWorkItems creates a test run filled from work items.
func (c *Client) CreateTestRunByWorkItems(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateTestRunByWorkItems", http.MethodPost, "/api/v2/testRuns/byWorkItems", "", body)
}

// CreateTestRunByConfigurations creates a test run filled from configurations.
func (c *Client) CreateTestRunByConfigurations(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateTestRunByConfigurations", http.MethodPost, "/api/v2/testRuns/byConfigurations", "", body)
}

// CreateTestRunByAutoTests creates a test run filled from autotests.
func (c *Client) CreateTestRunByAutoTests(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateTestRunByAutoTests", http.MethodPost, "/api/v2/testRuns/byAutoTests", "", body)
}

// GetTestRunByID fetches a test run.
func (c *Client) GetTestRunByID(ctx context.Context, testRunID string) (*Response, error) {
	return c.get(ctx, "GetTestRunByID", pathf("/api/v2/testRuns/%s", testRunID), nil, nil)
}

// StartTestRun starts a test run.
func (c *Client) StartTestRun(ctx context.Context, testRunID string) (*Response, error) {
	return c.do(ctx, http.MethodPost, pathf("/api/v2/testRuns/%s/start", testRunID), nil)
}

// StopTestRun stops a test run.
func (c *Client) StopTestRun(ctx context.Context, testRunID string) (*Response, error) {
	return c.do(ctx, http.MethodPost, pathf("/api/v2/testRuns/%s/stop", testRunID), nil)
}

// CompleteTestRun completes a test run.
func (c *Client) CompleteTestRun(ctx context.Context, testRunID string) (*Response, error) {
	return c.do(ctx, http.MethodPost, pathf("/api/v2/testRuns/%s/complete", testRunID), nil)
}

// SetAutoTestResultsForTestRun records autotest results in a test run.
func (c *Client) SetAutoTestResultsForTestRun(ctx context.Context, testRunID string, body BulkBody) (*Response, error) {
	return c.bulk(ctx, "SetAutoTestResultsForTestRun", http.MethodPost,
		pathf("/api/v2/testRuns/%s/testResults", testRunID), body)
}
