package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// DownloadAttachmentsRequest identifies a message and the target directory.
type DownloadAttachmentsRequest struct {
	EntryID   string `json:"entry_id" jsonschema:"message entry ID"`
	Directory string `json:"directory" jsonschema:"local directory to save attachments into"`
}

// DownloadAttachmentsResponse lists the saved file paths, or found=false
// when the entry ID does not resolve.
type DownloadAttachmentsResponse struct {
	Found        bool     `json:"found" jsonschema:"whether the message was found"`
	SavedPaths   []string `json:"saved_paths,omitempty" jsonschema:"paths of the saved attachment files"`
	TotalResults int      `json:"total_results" jsonschema:"number of attachments saved"`
}

type downloadAttachmentsSvc interface {
	DownloadAttachments(ctx context.Context, id, dir string) ([]string, error)
}

// NewDownloadAttachments creates a new DownloadAttachments tool.
func NewDownloadAttachments(svc downloadAttachmentsSvc) *DownloadAttachments {
	return &DownloadAttachments{svc: svc}
}

// DownloadAttachments saves a message's attachments to a local directory.
type DownloadAttachments struct {
	svc downloadAttachmentsSvc
}

// DownloadAttachments performs the save.
func (t *DownloadAttachments) DownloadAttachments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DownloadAttachmentsRequest,
) (*mcp.CallToolResult, DownloadAttachmentsResponse, error) {
	if input.Directory == "" {
		return nil, DownloadAttachmentsResponse{}, fmt.Errorf("directory is required")
	}

	paths, err := t.svc.DownloadAttachments(ctx, input.EntryID, input.Directory)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, DownloadAttachmentsResponse{Found: false}, nil
		}
		return nil, DownloadAttachmentsResponse{}, fmt.Errorf("svc.DownloadAttachments failed: %w", err)
	}

	return nil, DownloadAttachmentsResponse{
		Found:        true,
		SavedPaths:   paths,
		TotalResults: len(paths),
	}, nil
}
