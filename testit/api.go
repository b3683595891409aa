package testit

import (
	"context"
)

// Dispatcher sends a single request to TestIT
type Dispatcher interface {
	// Send performs one HTTP request and returns the decoded response
	Send(ctx context.Context, r Request) (*Response, error)
}

// API defines the subset of TestIT operations used by the command line tool
type API interface {
	Dispatcher

	// TestConnection verifies the client can reach TestIT with its token
	TestConnection(ctx context.Context) error

	// GetAllAutoTests lists autotests matching params
	GetAllAutoTests(ctx context.Context, params Params) (*Response, error)

	// GetAllProjects lists projects matching params
	GetAllProjects(ctx context.Context, params Params) (*Response, error)

	// GetWorkItemByID fetches a single work item
	GetWorkItemByID(ctx context.Context, workItemID string, params Params) (*Response, error)

	// AddAttachment uploads a standalone attachment
	AddAttachment(ctx context.Context, file File, params Params) (*Response, error)

	// CreateTestResultAttachment uploads an attachment to a test result
	CreateTestResultAttachment(ctx context.Context, testResultID string, file File) (*Response, error)

	// DownloadTestResultAttachment fetches attachment content
	DownloadTestResultAttachment(ctx context.Context, testResultID, attachmentID string, params Params) (*Response, error)

	// StartTestRun, StopTestRun and CompleteTestRun drive a test run
	StartTestRun(ctx context.Context, testRunID string) (*Response, error)
	StopTestRun(ctx context.Context, testRunID string) (*Response, error)
	CompleteTestRun(ctx context.Context, testRunID string) (*Response, error)
}

var _ API = (*Client)(nil)
