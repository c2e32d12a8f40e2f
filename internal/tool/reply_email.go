package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReplyEmailRequest describes a reply to an existing message.
type ReplyEmailRequest struct {
	EntryID  string `json:"entry_id" jsonschema:"message entry ID to reply to"`
	Body     string `json:"body" jsonschema:"reply body text"`
	ReplyAll bool   `json:"reply_all,omitempty" jsonschema:"reply to all recipients instead of sender only"`
}

// ReplyEmailResponse reports the outcome.
type ReplyEmailResponse struct {
	Status string `json:"status" jsonschema:"sent on success"`
}

type replyEmailSvc interface {
	ReplyEmail(ctx context.Context, id, body string, replyAll bool) error
}

// NewReplyEmail creates a new ReplyEmail tool.
func NewReplyEmail(svc replyEmailSvc) *ReplyEmail {
	return &ReplyEmail{svc: svc}
}

// ReplyEmail replies to a message, to the sender only or to all.
type ReplyEmail struct {
	svc replyEmailSvc
}

// ReplyEmail sends the reply.
func (t *ReplyEmail) ReplyEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReplyEmailRequest,
) (*mcp.CallToolResult, ReplyEmailResponse, error) {
	if err := t.svc.ReplyEmail(ctx, input.EntryID, input.Body, input.ReplyAll); err != nil {
		return nil, ReplyEmailResponse{}, fmt.Errorf("svc.ReplyEmail failed: %w", err)
	}
	return nil, ReplyEmailResponse{Status: "sent"}, nil
}

// ForwardEmailRequest describes forwarding a message.
type ForwardEmailRequest struct {
	EntryID string `json:"entry_id" jsonschema:"message entry ID to forward"`
	To      string `json:"to" jsonschema:"recipient addresses, semicolon separated"`
	Body    string `json:"body,omitempty" jsonschema:"text prepended above the forwarded content"`
}

// ForwardEmailResponse reports the outcome.
type ForwardEmailResponse struct {
	Status string `json:"status" jsonschema:"sent on success"`
}

type forwardEmailSvc interface {
	ForwardEmail(ctx context.Context, id, to, body string) error
}

// NewForwardEmail creates a new ForwardEmail tool.
func NewForwardEmail(svc forwardEmailSvc) *ForwardEmail {
	return &ForwardEmail{svc: svc}
}

// ForwardEmail forwards a message to new recipients.
type ForwardEmail struct {
	svc forwardEmailSvc
}

// ForwardEmail sends the forward.
func (t *ForwardEmail) ForwardEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ForwardEmailRequest,
) (*mcp.CallToolResult, ForwardEmailResponse, error) {
	if input.To == "" {
		return nil, ForwardEmailResponse{}, fmt.Errorf("to is required")
	}
	if err := t.svc.ForwardEmail(ctx, input.EntryID, input.To, input.Body); err != nil {
		return nil, ForwardEmailResponse{}, fmt.Errorf("svc.ForwardEmail failed: %w", err)
	}
	return nil, ForwardEmailResponse{Status: "sent"}, nil
}
