package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/bridge"
)

// ListEmailsRequest selects a folder and result cap.
type ListEmailsRequest struct {
	Folder string `json:"folder,omitempty" jsonschema:"folder name, defaults to Inbox"`
	Limit  int    `json:"limit,omitempty" jsonschema:"max emails to return"`
}

// ListEmailsResponse contains message summaries, newest first.
type ListEmailsResponse struct {
	Emails       []bridge.MessageSummary `json:"emails" jsonschema:"array of email summaries"`
	TotalResults int                     `json:"total_results" jsonschema:"number of emails returned"`
}

type listEmailsSvc interface {
	ListMessages(ctx context.Context, folder string, limit int) ([]bridge.MessageSummary, error)
}

// NewListEmails creates a new ListEmails tool.
func NewListEmails(svc listEmailsSvc) *ListEmails {
	return &ListEmails{svc: svc}
}

// ListEmails lists recent messages from a folder.
type ListEmails struct {
	svc listEmailsSvc
}

// ListEmails returns at most Limit summaries, received time descending.
func (t *ListEmails) ListEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListEmailsRequest,
) (*mcp.CallToolResult, ListEmailsResponse, error) {
	limit := normalizeLimit(input.Limit)

	emails, err := t.svc.ListMessages(ctx, input.Folder, limit)
	if err != nil {
		return nil, ListEmailsResponse{}, fmt.Errorf("svc.ListMessages failed: %w", err)
	}

	return nil, ListEmailsResponse{
		Emails:       emails,
		TotalResults: len(emails),
	}, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
