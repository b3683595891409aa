package testit

import (
	"context"
	"net/http"
)

var (
	workItemListParams = withPaging("isDeleted", "tagNames", "includeIterations")
	testRunListParams  = withPaging(
		"NotStarted", "InProgress", "Stopped", "Completed",
		"CreatedDateFrom", "CreatedDateTo", "TestPlanId",
	)
	importParams = []string{"apiVersion", "includeAttachments"}
)

// GetAllProjects lists projects.
func (c *Client) GetAllProjects(ctx context.Context, params Params) (*Response, error) {
	return c.get(ctx, "GetAllProjects", "/api/v2/projects", withPaging("isDeleted", "projectName"), params)
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateProject", http.MethodPost, "/api/v2/projects", "", body)
}

// UpdateProject replaces a project.
func (c *Client) UpdateProject(ctx context.Context, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateProject", http.MethodPut, "/api/v2/projects", "", body)
}

// GetProjectByID fetches a project by internal or global id.
func (c *Client) GetProjectByID(ctx context.Context, projectID string) (*Response, error) {
	return c.get(ctx, "GetProjectByID", pathf("/api/v2/projects/%s", projectID), nil, nil)
}

// DeleteProject archives a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/projects/%s", projectID), nil)
}

// RestoreProject restores an archived project.
func (c *Client) RestoreProject(ctx context.Context, projectID string) (*Response, error) {
	return c.do(ctx, http.MethodPost, pathf("/api/v2/projects/%s/restore", projectID), nil)
}

// GetSectionsByProjectID lists the sections of a project.
func (c *Client) GetSectionsByProjectID(ctx context.Context, projectID string, params Params) (*Response, error) {
	return c.get(ctx, "GetSectionsByProjectID", pathf("/api/v2/projects/%s/sections", projectID), paging, params)
}

// GetAutoTestsNamespaces lists the autotest namespaces and classes of a project.
func (c *Client) GetAutoTestsNamespaces(ctx context.Context, projectID string) (*Response, error) {
	return c.get(ctx, "GetAutoTestsNamespaces", pathf("/api/v2/projects/%s/autoTestsNamespaces", projectID), nil, nil)
}

// GetWorkItemsByProjectID lists the work items of a project.
func (c *Client) GetWorkItemsByProjectID(ctx context.Context, projectID string, params Params) (*Response, error) {
	return c.get(ctx, "GetWorkItemsByProjectID", pathf("/api/v2/projects/%s/workItems", projectID),
		workItemListParams, params)
}

// GetConfigurationsByProjectID lists the configurations of a project.
func (c *Client) GetConfigurationsByProjectID(ctx context.Context, projectID string) (*Response, error) {
	return c.get(ctx, "GetConfigurationsByProjectID", pathf("/api/v2/projects/%s/configurations", projectID), nil, nil)
}

// GetAttributesByProjectID lists the custom attributes of a project.
func (c *Client) GetAttributesByProjectID(ctx context.Context, projectID string, params Params) (*Response, error) {
	return c.get(ctx, "GetAttributesByProjectID", pathf("/api/v2/projects/%s/attributes", projectID),
		[]string{"isDeleted"}, params)
}

// CreateProjectAttribute creates a custom attribute in a project.
func (c *Client) CreateProjectAttribute(ctx context.Context, projectID string, body SingleBody) (*Response, error) {
	return c.single(ctx, "CreateProjectAttribute", http.MethodPost,
		pathf("/api/v2/projects/%s/attributes", projectID), "", body)
}

// UpdateProjectAttribute replaces a custom attribute of a project.
func (c *Client) UpdateProjectAttribute(ctx context.Context, projectID string, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateProjectAttribute", http.MethodPut,
		pathf("/api/v2/projects/%s/attributes", projectID), "", body)
}

// GetProjectAttribute fetches one custom attribute of a project.
func (c *Client) GetProjectAttribute(ctx context.Context, projectID, attributeID string) (*Response, error) {
	return c.get(ctx, "GetProjectAttribute",
		pathf("/api/v2/projects/%s/attributes/%s", projectID, attributeID), nil, nil)
}

// DeleteProjectAttribute deletes a custom attribute of a project.
func (c *Client) DeleteProjectAttribute(ctx context.Context, projectID, attributeID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/projects/%s/attributes/%s", projectID, attributeID), nil)
}

// GetTestPlansByProjectID lists the test plans of a project.
func (c *Client) GetTestPlansByProjectID(ctx context.Context, projectID string, params Params) (*Response, error) {
	return c.get(ctx, "GetTestPlansByProjectID", pathf("/api/v2/projects/%s/testPlans", projectID),
		[]string{"isDeleted"}, params)
}

// GetTestRunsByProjectID lists the test runs of a project.
func (c *Client) GetTestRunsByProjectID(ctx context.Context, projectID string, params Params) (*Response, error) {
	return c.get(ctx, "GetTestRunsByProjectID", pathf("/api/v2/projects/%s/testRuns", projectID),
		testRunListParams, params)
}

// ExportProject exports a project with its sections, work items and
// configurations as a JSON document.
func (c *Client) ExportProject(ctx context.Context, projectID string, body SingleBody, params Params) (*Response, error) {
	return c.export(ctx, "ExportProject", pathf("/api/v2/projects/%s/export", projectID), body, params)
}

// ExportProjectWithTestPlans exports a project including test plans,
// test suites and test points.
func (c *Client) ExportProjectWithTestPlans(ctx context.Context, projectID string, body SingleBody, params Params) (*Response, error) {
	return c.export(ctx, "ExportProjectWithTestPlans",
		pathf("/api/v2/projects/%s/export-by-testPlans", projectID), body, params)
}

func (c *Client) export(ctx context.Context, op, path string, body SingleBody, params Params) (*Response, error) {
	query, err := c.encodeQuery(op, []string{"includeAttachments"}, params)
	if err != nil {
		return nil, err
	}
	return c.single(ctx, op, http.MethodPost, path, query, body)
}

// ImportProject imports a project from an export file.
func (c *Client) ImportProject(ctx context.Context, file File, params Params) (*Response, error) {
	return c.upload(ctx, "ImportProject", "/api/v2/projects/import", file, importParams, params)
}

// ImportToExistingProject imports an export file into an existing project.
func (c *Client) ImportToExistingProject(ctx context.Context, projectID string, file File, params Params) (*Response, error) {
	return c.upload(ctx, "ImportToExistingProject", pathf("/api/v2/projects/%s/import", projectID),
		file, importParams, params)
}

// GetTestPlanAttributes lists the custom attributes attached to the
// project's test plans.
func (c *Client) GetTestPlanAttributes(ctx context.Context, projectID string) (*Response, error) {
	return c.get(ctx, "GetTestPlanAttributes", pathf("/api/v2/projects/%s/testPlans/attributes", projectID), nil, nil)
}

// AddTestPlanAttributes attaches custom attributes, given as a list of ids,
// to the project's test plans.
func (c *Client) AddTestPlanAttributes(ctx context.Context, projectID string, body BulkBody) (*Response, error) {
	return c.bulk(ctx, "AddTestPlanAttributes", http.MethodPost,
		pathf("/api/v2/projects/%s/testPlans/attributes", projectID), body)
}

// DeleteTestPlanAttribute detaches a custom attribute from the project's test plans.
func (c *Client) DeleteTestPlanAttribute(ctx context.Context, projectID, attributeID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete,
		pathf("/api/v2/projects/%s/testPlans/attribute/%s", projectID, attributeID), nil)
}

// UpdateTestPlanAttribute updates the relation between a custom attribute
// and the project's test plans.
func (c *Client) UpdateTestPlanAttribute(ctx context.Context, projectID string, body SingleBody) (*Response, error) {
	return c.single(ctx, "UpdateTestPlanAttribute", http.MethodPut,
		pathf("/api/v2/projects/%s/testPlans/attribute", projectID), "", body)
}

// DeleteProjectAutoTests deletes every autotest of a project.
func (c *Client) DeleteProjectAutoTests(ctx context.Context, projectID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, pathf("/api/v2/projects/%s/autoTests", projectID), nil)
}
