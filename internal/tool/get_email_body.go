package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/bridge"
	"github.com/olbridge/outlook-mcp/internal/store"
)

// GetEmailBodyRequest identifies the message to read.
type GetEmailBodyRequest struct {
	EntryID string `json:"entry_id" jsonschema:"message entry ID"`
}

// GetEmailBodyResponse carries the raw message body, or found=false when
// the entry ID does not resolve.
type GetEmailBodyResponse struct {
	Found bool              `json:"found" jsonschema:"whether the message was found"`
	Email *bridge.EmailBody `json:"email,omitempty" jsonschema:"message with raw body"`
}

type getEmailBodySvc interface {
	GetEmailBody(ctx context.Context, id string) (*bridge.EmailBody, error)
}

// NewGetEmailBody creates a new GetEmailBody tool.
func NewGetEmailBody(svc getEmailBodySvc) *GetEmailBody {
	return &GetEmailBody{svc: svc}
}

// GetEmailBody retrieves a message's full body without any normalization.
type GetEmailBody struct {
	svc getEmailBodySvc
}

// GetEmailBody reads a message by entry ID.
func (t *GetEmailBody) GetEmailBody(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetEmailBodyRequest,
) (*mcp.CallToolResult, GetEmailBodyResponse, error) {
	email, err := t.svc.GetEmailBody(ctx, input.EntryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, GetEmailBodyResponse{Found: false}, nil
		}
		return nil, GetEmailBodyResponse{}, fmt.Errorf("svc.GetEmailBody failed: %w", err)
	}

	return nil, GetEmailBodyResponse{Found: true, Email: email}, nil
}
