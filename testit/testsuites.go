package testit

import (
	"context"
	"net/http"
)

// GetTestSuiteByID fetches a test suite.
func (c *Client) GetTestSuiteByID(ctx context.Context, testSuiteID string) (*Response, error) {
	return c.get(ctx, "GetTestSuiteByID", pathf("/api/v2/testSuites/%s", testSuiteID), nil, nil)
}

// DeleteTestSuite deletes a test suite.
func (c *Client) DeleteTestSuite(ctx context.Context, testSuiteID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/testSuites/%s", testSuiteID), nil)
}

// CreateTestSuite creates a test suite.
func (c *Client) CreateTestSuite(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateTestSuite", http.MethodPost, "/api/v2/testSuites", "", body)
}

// UpdateTestSuite replaces a test suite.
func (c *Client) UpdateTestSuite(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateTestSuite", http.MethodPut, "/api/v2/testSuites", "", body)
}

// GetTestPointsByTestSuiteID lists the test points of a test suite.
func (c *Client) GetTestPointsByTestSuiteID(ctx context.Context, testSuiteID string) (*Response, error) {
	return c.get(ctx, "GetTestPointsByTestSuiteID", pathf("/api/v2/testSuites/%s/testPoints", testSuiteID), nil, nil)
}

// GetTestResultsByTestSuiteID lists the test results of a test suite.
func (c *Client) GetTestResultsByTestSuiteID(ctx context.Context, testSuiteID string) (*Response, error) {
	return c.get(ctx, "GetTestResultsByTestSuiteID", pathf("/api/v2/testSuites/%s/testResults", testSuiteID), nil, nil)
}

// GetWorkItemsByTestSuiteID lists the work items of a test suite.
func (c *Client) GetWorkItemsByTestSuiteID(ctx context.Context, testSuiteID string, params Params) (*Response, error) {
	return c.get(ctx, "GetWorkItemsByTestSuiteID", pathf("/api/v2/testSuites/%s/workItems", testSuiteID),
		withPaging("isDeleted", "tagNames"), params)
}

// SetWorkItemsByTestSuiteID sets the work items, given as a list of ids, of a test suite.
func (c *Client) SetWorkItemsByTestSuiteID(ctx context.Context, testSuiteID string, body BulkBody) (*Response, error) {
	return c.bulk(ctx, "SetWorkItemsByTestSuiteID", http.MethodPost,
		pathf("/api/v2/testSuites/%s/workItems", testSuiteID), body)
}

// AddTestPointsToTestSuite adds the work items matched by a selection filter
// to a test suite.
func (c *Client) AddTestPointsToTestSuite(ctx context.Context, testSuiteID string, body SingleBody) (*Response, error) {
	return c.single(ctx, "AddTestPointsToTestSuite", http.MethodPost,
		pathf("/api/v2/testSuites/%s/test-points", testSuiteID), "", body)
}

// GetConfigurationsByTestSuiteID lists the configurations of a test suite.
func (c *Client) GetConfigurationsByTestSuiteID(ctx context.Context, testSuiteID string) (*Response, error) {
	return c.get(ctx, "GetConfigurationsByTestSuiteID",
		pathf("/api/v2/testSuites/%s/configurations", testSuiteID), nil, nil)
}

// SetConfigurationsByTestSuiteID sets the configurations, given as a list of
// ids, of a test suite.
func (c *Client) SetConfigurationsByTestSuiteID(ctx context.Context, testSuiteID string, body BulkBody) (*Response, error) {
	return c.bulk(ctx, "SetConfigurationsByTestSuiteID", http.MethodPost,
		pathf("/api/v2/testSuites/%s/configurations", testSuiteID), body)
}
