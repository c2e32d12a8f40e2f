package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MarkEmailRequest flips the unread flag on a message.
type MarkEmailRequest struct {
	EntryID string `json:"entry_id" jsonschema:"message entry ID"`
	Unread  bool   `json:"unread" jsonschema:"true to mark unread, false to mark read"`
}

// MarkEmailResponse reports the outcome.
type MarkEmailResponse struct {
	Status string `json:"status" jsonschema:"marked on success"`
}

type markEmailSvc interface {
	MarkEmail(ctx context.Context, id string, unread bool) error
}

// NewMarkEmail creates a new MarkEmail tool.
func NewMarkEmail(svc markEmailSvc) *MarkEmail {
	return &MarkEmail{svc: svc}
}

// MarkEmail sets a message's read state.
type MarkEmail struct {
	svc markEmailSvc
}

// MarkEmail applies the unread flag.
func (t *MarkEmail) MarkEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MarkEmailRequest,
) (*mcp.CallToolResult, MarkEmailResponse, error) {
	if err := t.svc.MarkEmail(ctx, input.EntryID, input.Unread); err != nil {
		return nil, MarkEmailResponse{}, fmt.Errorf("svc.MarkEmail failed: %w", err)
	}
	return nil, MarkEmailResponse{Status: "marked"}, nil
}

// MoveEmailRequest moves a message to another folder.
type MoveEmailRequest struct {
	EntryID string `json:"entry_id" jsonschema:"message entry ID"`
	Folder  string `json:"folder" jsonschema:"destination folder name"`
}

// MoveEmailResponse reports the outcome.
type MoveEmailResponse struct {
	Status string `json:"status" jsonschema:"moved on success"`
}

type moveEmailSvc interface {
	MoveEmail(ctx context.Context, id, folder string) error
}

// NewMoveEmail creates a new MoveEmail tool.
func NewMoveEmail(svc moveEmailSvc) *MoveEmail {
	return &MoveEmail{svc: svc}
}

// MoveEmail moves a message between folders.
type MoveEmail struct {
	svc moveEmailSvc
}

// MoveEmail performs the move.
func (t *MoveEmail) MoveEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MoveEmailRequest,
) (*mcp.CallToolResult, MoveEmailResponse, error) {
	if input.Folder == "" {
		return nil, MoveEmailResponse{}, fmt.Errorf("folder is required")
	}
	if err := t.svc.MoveEmail(ctx, input.EntryID, input.Folder); err != nil {
		return nil, MoveEmailResponse{}, fmt.Errorf("svc.MoveEmail failed: %w", err)
	}
	return nil, MoveEmailResponse{Status: "moved"}, nil
}

// DeleteEmailRequest deletes a message.
type DeleteEmailRequest struct {
	EntryID string `json:"entry_id" jsonschema:"message entry ID"`
}

// DeleteEmailResponse reports the outcome.
type DeleteEmailResponse struct {
	Status string `json:"status" jsonschema:"deleted on success"`
}

type deleteEmailSvc interface {
	DeleteEmail(ctx context.Context, id string) error
}

// NewDeleteEmail creates a new DeleteEmail tool.
func NewDeleteEmail(svc deleteEmailSvc) *DeleteEmail {
	return &DeleteEmail{svc: svc}
}

// DeleteEmail deletes a message from the store.
type DeleteEmail struct {
	svc deleteEmailSvc
}

// DeleteEmail performs the deletion.
func (t *DeleteEmail) DeleteEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteEmailRequest,
) (*mcp.CallToolResult, DeleteEmailResponse, error) {
	if err := t.svc.DeleteEmail(ctx, input.EntryID); err != nil {
		return nil, DeleteEmailResponse{}, fmt.Errorf("svc.DeleteEmail failed: %w", err)
	}
	return nil, DeleteEmailResponse{Status: "deleted"}, nil
}
