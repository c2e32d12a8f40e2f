package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/bridge"
	"github.com/olbridge/outlook-mcp/internal/store"
)

// GetEmailRequest identifies a message and the normalization to apply.
type GetEmailRequest struct {
	EntryID string `json:"entry_id" jsonschema:"message entry ID"`
	// Tier controls quoted-content stripping: none, low (strip when the
	// parent is found via reply-reference header), medium (also match by
	// normalized subject), high (currently same as medium).
	Tier string `json:"deduplication_tier,omitempty" jsonschema:"deduplication tier: none, low, medium or high"`
	// StripHTML defaults to true when omitted.
	StripHTML *bool `json:"strip_html,omitempty" jsonschema:"convert HTML body to plain text and clear HTML parts"`
}

// GetEmailResponse carries the parsed message, or found=false when the
// entry ID does not resolve.
type GetEmailResponse struct {
	Found bool                  `json:"found" jsonschema:"whether the message was found"`
	Email *bridge.ParsedMessage `json:"email,omitempty" jsonschema:"parsed message"`
}

type getEmailSvc interface {
	ParseMessage(ctx context.Context, id string, tier bridge.Tier, stripHTML bool) (*bridge.ParsedMessage, error)
}

// NewGetEmail creates a new GetEmail tool.
func NewGetEmail(svc getEmailSvc) *GetEmail {
	return &GetEmail{svc: svc}
}

// GetEmail retrieves one message as a structured record with deduplication
// and HTML normalization applied.
type GetEmail struct {
	svc getEmailSvc
}

// GetEmail parses a message by entry ID.
func (t *GetEmail) GetEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetEmailRequest,
) (*mcp.CallToolResult, GetEmailResponse, error) {
	tier := bridge.Tier(input.Tier)
	if input.Tier == "" {
		tier = bridge.TierNone
	}
	if !tier.Valid() {
		return nil, GetEmailResponse{}, fmt.Errorf("unknown deduplication tier %q", input.Tier)
	}

	stripHTML := true
	if input.StripHTML != nil {
		stripHTML = *input.StripHTML
	}

	email, err := t.svc.ParseMessage(ctx, input.EntryID, tier, stripHTML)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, GetEmailResponse{Found: false}, nil
		}
		return nil, GetEmailResponse{}, fmt.Errorf("svc.ParseMessage failed: %w", err)
	}

	return nil, GetEmailResponse{Found: true, Email: email}, nil
}
