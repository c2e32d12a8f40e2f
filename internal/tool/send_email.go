package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/bridge"
)

// SendEmailRequest describes a message to compose.
type SendEmailRequest struct {
	To        string   `json:"to" jsonschema:"recipient addresses, semicolon separated"`
	Subject   string   `json:"subject" jsonschema:"message subject"`
	Body      string   `json:"body,omitempty" jsonschema:"plain text body"`
	CC        string   `json:"cc,omitempty" jsonschema:"CC addresses, semicolon separated"`
	BCC       string   `json:"bcc,omitempty" jsonschema:"BCC addresses, semicolon separated"`
	HTMLBody  string   `json:"html_body,omitempty" jsonschema:"HTML body, takes precedence over body"`
	FilePaths []string `json:"file_paths,omitempty" jsonschema:"local file paths to attach"`
	SaveDraft bool     `json:"save_draft,omitempty" jsonschema:"save as draft instead of sending"`
}

// SendEmailResponse reports the outcome. DraftID is set only when saving a
// draft.
type SendEmailResponse struct {
	Status  string `json:"status" jsonschema:"sent or draft_saved"`
	DraftID string `json:"draft_entry_id,omitempty" jsonschema:"entry ID of the saved draft"`
}

type sendEmailSvc interface {
	SendEmail(ctx context.Context, opts bridge.SendOptions) (string, error)
}

// NewSendEmail creates a new SendEmail tool.
func NewSendEmail(svc sendEmailSvc) *SendEmail {
	return &SendEmail{svc: svc}
}

// SendEmail composes and sends a message, or saves it as a draft.
type SendEmail struct {
	svc sendEmailSvc
}

// SendEmail sends or drafts a message.
func (t *SendEmail) SendEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendEmailRequest,
) (*mcp.CallToolResult, SendEmailResponse, error) {
	if input.To == "" && !input.SaveDraft {
		return nil, SendEmailResponse{}, fmt.Errorf("to is required when sending")
	}

	draftID, err := t.svc.SendEmail(ctx, bridge.SendOptions{
		To:        input.To,
		Subject:   input.Subject,
		Body:      input.Body,
		CC:        input.CC,
		BCC:       input.BCC,
		HTMLBody:  input.HTMLBody,
		FilePaths: input.FilePaths,
		SaveDraft: input.SaveDraft,
	})
	if err != nil {
		return nil, SendEmailResponse{}, fmt.Errorf("svc.SendEmail failed: %w", err)
	}

	if input.SaveDraft {
		return nil, SendEmailResponse{Status: "draft_saved", DraftID: draftID}, nil
	}
	return nil, SendEmailResponse{Status: "sent"}, nil
}
