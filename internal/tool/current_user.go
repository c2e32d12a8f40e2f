package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetCurrentUserRequest has no parameters.
type GetCurrentUserRequest struct{}

// GetCurrentUserResponse carries the signed-in account's address.
type GetCurrentUserResponse struct {
	Address string `json:"address" jsonschema:"address of the signed-in account"`
}

type currentUserSvc interface {
	CurrentUser(ctx context.Context) (string, error)
}

// NewGetCurrentUser creates a new GetCurrentUser tool.
func NewGetCurrentUser(svc currentUserSvc) *GetCurrentUser {
	return &GetCurrentUser{svc: svc}
}

// GetCurrentUser resolves the address of the signed-in account.
type GetCurrentUser struct {
	svc currentUserSvc
}

// GetCurrentUser reads the account address.
func (t *GetCurrentUser) GetCurrentUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetCurrentUserRequest,
) (*mcp.CallToolResult, GetCurrentUserResponse, error) {
	addr, err := t.svc.CurrentUser(ctx)
	if err != nil {
		return nil, GetCurrentUserResponse{}, fmt.Errorf("svc.CurrentUser failed: %w", err)
	}
	return nil, GetCurrentUserResponse{Address: addr}, nil
}
