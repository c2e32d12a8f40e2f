package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/olbridge/outlook-mcp/internal/tool"
)

func newTestSession(t *testing.T, svc *outlookSvcMock) *mcp.ClientSession {
	t.Helper()

	server := tool.NewServer(svc)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientSession.Close() })

	return clientSession
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()

	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	require.NoError(t, json.Unmarshal(
		[]byte(result.Content[0].(*mcp.TextContent).Text),
		out,
	))
}
