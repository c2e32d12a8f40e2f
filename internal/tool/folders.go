package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/bridge"
)

// ListFoldersRequest selects the root to walk.
type ListFoldersRequest struct {
	Root string `json:"root,omitempty" jsonschema:"root folder name, defaults to the inbox's account root"`
}

// ListFoldersResponse contains the flattened folder tree, depth-first.
type ListFoldersResponse struct {
	Folders      []bridge.FolderInfo `json:"folders" jsonschema:"array of folders"`
	TotalResults int                 `json:"total_results" jsonschema:"number of folders returned"`
}

type listFoldersSvc interface {
	ListFolders(ctx context.Context, root string) ([]bridge.FolderInfo, error)
}

// NewListFolders creates a new ListFolders tool.
func NewListFolders(svc listFoldersSvc) *ListFolders {
	return &ListFolders{svc: svc}
}

// ListFolders lists the folder hierarchy.
type ListFolders struct {
	svc listFoldersSvc
}

// ListFolders walks and flattens the folder tree.
func (t *ListFolders) ListFolders(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListFoldersRequest,
) (*mcp.CallToolResult, ListFoldersResponse, error) {
	folders, err := t.svc.ListFolders(ctx, input.Root)
	if err != nil {
		return nil, ListFoldersResponse{}, fmt.Errorf("svc.ListFolders failed: %w", err)
	}
	return nil, ListFoldersResponse{Folders: folders, TotalResults: len(folders)}, nil
}
