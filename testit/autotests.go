package testit

import (
	"context"
	"net/http"
)

var autoTestListParams = withPaging(
	"projectId", "externalId", "globalId", "Namespace", "isNamespaceNull",
	"classname", "isClassnameNull", "isDeleted", "labels",
	"stabilityMinimal", "stabilityMaximal", "isFlaky", "includeSteps", "includeLabels",
)

var autoTestResultHistoryParams = withPaging(
	"From", "To", "ConfigurationIds", "TestPlanIds", "UserIds",
	"Outcomes", "IsAutomated", "TestRunIds",
)

// GetAllAutoTests lists autotests, filtered by the given parameters.
func (c *Client) GetAllAutoTests(ctx context.Context, params Params) (*Response, error) {
	return c.get(ctx, "GetAllAutoTests", "/api/v2/autoTests", autoTestListParams, params)
}

// CreateAutoTest creates an autotest together with its steps, setup,
// teardown, labels and links.
func (c *Client) CreateAutoTest(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateAutoTest", http.MethodPost, "/api/v2/autoTests", "", body)
}

// UpdateAutoTest replaces an autotest.
func (c *Client) UpdateAutoTest(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateAutoTest", http.MethodPut, "/api/v2/autoTests", "", body)
}

// GetAutoTestByID fetches an autotest by internal, external or global id.
func (c *Client) GetAutoTestByID(ctx context.Context, autoTestID string) (*Response, error) {
	return c.get(ctx, "GetAutoTestByID", pathf("/api/v2/autoTests/%s", autoTestID), nil, nil)
}

// DeleteAutoTest deletes an autotest.
func (c *Client) DeleteAutoTest(ctx context.Context, autoTestID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/autoTests/%s", autoTestID), nil)
}

// CreateMultipleAutoTests creates several autotests at once.
func (c *Client) CreateMultipleAutoTests(ctx context.Context, body BulkBody) (*Response, error) {
	return c.bulk(ctx, "CreateMultipleAutoTests", http.MethodPost, "/api/v2/autoTests/bulk", body)
}

// UpdateMultipleAutoTests updates several autotests at once.
func (c *Client) UpdateMultipleAutoTests(ctx context.Context, body BulkBody) (*Response, error) {
	return c.bulk(ctx, "UpdateMultipleAutoTests", http.MethodPut, "/api/v2/autoTests/bulk", body)
}

// GetWorkItemsLinkedToAutoTest lists the work items linked to an autotest.
func (c *Client) GetWorkItemsLinkedToAutoTest(ctx context.Context, autoTestID string, params Params) (*Response, error) {
	return c.get(ctx, "GetWorkItemsLinkedToAutoTest", pathf("/api/v2/autoTests/%s/workItems", autoTestID),
		[]string{"isWorkItemDeleted"}, params)
}

// LinkAutoTestToWorkItem links an autotest to the work item named in body.
func (c *Client) LinkAutoTestToWorkItem(ctx context.Context, autoTestID string, body SingleBody) (*Response, error) {
	return c.single(ctx, "LinkAutoTestToWorkItem", http.MethodPost,
		pathf("/api/v2/autoTests/%s/workItems", autoTestID), "", body)
}

// DeleteAutoTestLinkFromWorkItem unlinks an autotest from the workItemId parameter.
func (c *Client) DeleteAutoTestLinkFromWorkItem(ctx context.Context, autoTestID string, params Params) (*Response, error) {
	const op = "DeleteAutoTestLinkFromWorkItem"
	query, err := c.encodeQuery(op, []string{"workItemId"}, params)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, Request{
		Method: http.MethodDelete,
		Path:   pathf("/api/v2/autoTests/%s/workItems", autoTestID),
		Query:  query,
	})
}

// GetAutoTestResultHistory lists the results recorded for an autotest.
func (c *Client) GetAutoTestResultHistory(ctx context.Context, autoTestID string, params Params) (*Response, error) {
	return c.get(ctx, "GetAutoTestResultHistory", pathf("/api/v2/autoTests/%s/testResultHistory", autoTestID),
		autoTestResultHistoryParams, params)
}

// GetAutoTestRuns lists the test runs an autotest took part in.
func (c *Client) GetAutoTestRuns(ctx context.Context, autoTestID string) (*Response, error) {
	return c.get(ctx, "GetAutoTestRuns", pathf("/api/v2/autoTests/%s/testRuns", autoTestID), nil, nil)
}

// GetAutoTestAverageDuration returns the average passed and failed durations.
func (c *Client) GetAutoTestAverageDuration(ctx context.Context, autoTestID string) (*Response, error) {
	return c.get(ctx, "GetAutoTestAverageDuration", pathf("/api/v2/autoTests/%s/averageDuration", autoTestID), nil, nil)
}

// GetAutoTestChronology returns the last results of an autotest.
func (c *Client) GetAutoTestChronology(ctx context.Context, autoTestID string) (*Response, error) {
	return c.get(ctx, "GetAutoTestChronology", pathf("/api/v2/autoTests/%s/chronology", autoTestID), nil, nil)
}
