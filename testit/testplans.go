package testit

import (
	"context"
	"net/http"
)

// GetTestPlanByID fetches a test plan by internal or global id.
func (c *Client) GetTestPlanByID(ctx context.Context, testPlanID string) (*Response, error) {
	return c.get(ctx, "GetTestPlanByID", pathf("/api/v2/testPlans/%s", testPlanID), nil, nil)
}

// DeleteTestPlan archives a test plan.
func (c *Client) DeleteTestPlan(ctx context.Context, testPlanID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/testPlans/%s", testPlanID), nil)
}

// CreateTestPlan creates a test plan.
func (c *Client) CreateTestPlan(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateTestPlan", http.MethodPost, "/api/v2/testPlans", "", body)
}

// UpdateTestPlan replaces a test plan.
func (c *Client) UpdateTestPlan(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateTestPlan", http.MethodPut, "/api/v2/testPlans", "", body)
}

// RestoreTestPlan restores an archived test plan.
func (c *Client) RestoreTestPlan(ctx context.Context, testPlanID string) (*Response, error) {
	return c.testPlanAction(ctx, testPlanID, "restore")
}

// CloneTestPlan copies a test plan with its suites and points.
func (c *Client) CloneTestPlan(ctx context.Context, testPlanID string) (*Response, error) {
	return c.testPlanAction(ctx, testPlanID, "clone")
}

// StartTestPlan moves a test plan to the in progress state.
func (c *Client) StartTestPlan(ctx context.Context, testPlanID string) (*Response, error) {
	return c.testPlanAction(ctx, testPlanID, "start")
}

// PauseTestPlan pauses a running test plan.
func (c *Client) PauseTestPlan(ctx context.Context, testPlanID string) (*Response, error) {
	return c.testPlanAction(ctx, testPlanID, "pause")
}

// CompleteTestPlan completes a test plan.
func (c *Client) CompleteTestPlan(ctx context.Context, testPlanID string) (*Response, error) {
	return c.testPlanAction(ctx, testPlanID, "complete")
}

func (c *Client) testPlanAction(ctx context.Context, testPlanID, action string) (*Response, error) {
	return c.do(ctx, http.MethodPost, pathf("/api/v2/testPlans/%s/", testPlanID)+action, nil)
}

// GetTestSuitesByTestPlanID returns the test suite tree of a test plan.
func (c *Client) GetTestSuitesByTestPlanID(ctx context.Context, testPlanID string) (*Response, error) {
	return c.get(ctx, "GetTestSuitesByTestPlanID", pathf("/api/v2/testPlans/%s/testSuites", testPlanID), nil, nil)
}

// AddWorkItemsWithSections adds work items, given as a list of ids, to a
// test plan, recreating their section structure as test suites.
func (c *Client) AddWorkItemsWithSections(ctx context.Context, testPlanID string, body BulkBody) (*Response, error) {
	return c.bulk(ctx, "AddWorkItemsWithSections", http.MethodPost,
		pathf("/api/v2/testPlans/%s/workItems/withSections", testPlanID), body)
}

// AddTestPointsWithSections adds the work items matched by a selection
// filter to a test plan, recreating their section structure.
func (c *Client) AddTestPointsWithSections(ctx context.Context, testPlanID string, body SingleBody) (*Response, error) {
	return c.single(ctx, "AddTestPointsWithSections", http.MethodPost,
		pathf("/api/v2/testPlans/%s/test-points/withSections", testPlanID), "", body)
}
