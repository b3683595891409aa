package testit

import (
	"context"
	"fmt"
	"net/http"
	"slices"
)

// Resize options accepted by DownloadTestResultAttachment.
const (
	ResizeCrop                 = "Crop"
	ResizeAddBackgroundStripes = "AddBackgroundStripes"
)

var resizeOptions = []string{ResizeCrop, ResizeAddBackgroundStripes}

// AddAttachment uploads a file and returns the created attachment.
func (c *Client) AddAttachment(ctx context.Context, file File, params Params) (*Response, error) {
	return c.upload(ctx, "AddAttachment", "/api/v2/attachments", file, []string{"apiVersion"}, params)
}

// GetTestResultAttachments lists the attachments of a test result.
func (c *Client) GetTestResultAttachments(ctx context.Context, testResultID string) (*Response, error) {
	return c.get(ctx, "GetTestResultAttachments", pathf("/api/v2/testResults/%s/attachments", testResultID), nil, nil)
}

// CreateTestResultAttachment uploads a file and attaches it to a test result.
func (c *Client) CreateTestResultAttachment(ctx context.Context, testResultID string, file File) (*Response, error) {
	return c.upload(ctx, "CreateTestResultAttachment", pathf("/api/v2/testResults/%s/attachments", testResultID),
		file, nil, nil)
}

// DownloadTestResultAttachment returns the attachment content, resized when
// Width, Height, ResizeOption or BackgroundColor are given. Binary content is
// available as Response.Raw.
func (c *Client) DownloadTestResultAttachment(ctx context.Context, testResultID, attachmentID string, params Params) (*Response, error) {
	const op = "DownloadTestResultAttachment"
	if v, ok := params["ResizeOption"]; ok && v != nil {
		if s, _ := v.(string); !slices.Contains(resizeOptions, s) {
			return nil, &ParamError{Operation: op, Name: "ResizeOption", Value: v,
				Err: fmt.Errorf("%w, expected one of %v", ErrUnsupportedValue, resizeOptions)}
		}
	}
	return c.get(ctx, op, pathf("/api/v2/testResults/%s/attachments/%s", testResultID, attachmentID),
		[]string{"Width", "Height", "ResizeOption", "BackgroundColor"}, params)
}

// DeleteTestResultAttachment removes an attachment from a test result.
func (c *Client) DeleteTestResultAttachment(ctx context.Context, testResultID, attachmentID string) (*Response, error) {
	return c.do(ctx, http.MethodDelete,
		pathf("/api/v2/testResults/%s/attachments/%s", testResultID, attachmentID), nil)
}

// GetTestResultAttachmentInfo returns the metadata of an attachment.
func (c *Client) GetTestResultAttachmentInfo(ctx context.Context, testResultID, attachmentID string) (*Response, error) {
	return c.get(ctx, "GetTestResultAttachmentInfo",
		pathf("/api/v2/testResults/%s/attachments/%s/info", testResultID, attachmentID), nil, nil)
}
