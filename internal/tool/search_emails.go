package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/bridge"
)

// SearchEmailsRequest holds structured search criteria, joined with AND.
type SearchEmailsRequest struct {
	Subject        string `json:"subject,omitempty" jsonschema:"subject substring to match"`
	Sender         string `json:"sender,omitempty" jsonschema:"sender name or address substring to match"`
	Body           string `json:"body,omitempty" jsonschema:"body substring to match"`
	Unread         *bool  `json:"unread,omitempty" jsonschema:"filter by unread status"`
	HasAttachments *bool  `json:"has_attachments,omitempty" jsonschema:"filter by attachment presence"`
	Folder         string `json:"folder,omitempty" jsonschema:"folder name, defaults to Inbox"`
	Limit          int    `json:"limit,omitempty" jsonschema:"max results"`
}

// SearchEmailsResponse contains matching summaries, newest first.
type SearchEmailsResponse struct {
	Emails       []bridge.MessageSummary `json:"emails" jsonschema:"array of matching email summaries"`
	TotalResults int                     `json:"total_results" jsonschema:"number of emails returned"`
}

type searchEmailsSvc interface {
	SearchEmails(ctx context.Context, c bridge.SearchCriteria) ([]bridge.MessageSummary, error)
}

// NewSearchEmails creates a new SearchEmails tool.
func NewSearchEmails(svc searchEmailsSvc) *SearchEmails {
	return &SearchEmails{svc: svc}
}

// SearchEmails searches a folder with structured criteria.
type SearchEmails struct {
	svc searchEmailsSvc
}

// SearchEmails lists messages matching all given criteria.
func (t *SearchEmails) SearchEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchEmailsRequest,
) (*mcp.CallToolResult, SearchEmailsResponse, error) {
	emails, err := t.svc.SearchEmails(ctx, bridge.SearchCriteria{
		Subject:        input.Subject,
		Sender:         input.Sender,
		Body:           input.Body,
		Unread:         input.Unread,
		HasAttachments: input.HasAttachments,
		Folder:         input.Folder,
		Limit:          normalizeLimit(input.Limit),
	})
	if err != nil {
		return nil, SearchEmailsResponse{}, fmt.Errorf("svc.SearchEmails failed: %w", err)
	}

	return nil, SearchEmailsResponse{
		Emails:       emails,
		TotalResults: len(emails),
	}, nil
}
