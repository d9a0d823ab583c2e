package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shouni/gemini-skin-kit/pkg/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMCPImpl = &mcp.Implementation{Name: "skinkit-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	newTestHandler(t).RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return result
}

func textOf[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.NoError(t, result.GetError())
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	var v T
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &v))
	return v
}

func TestMCP_GenerateAndList(t *testing.T) {
	session := mcpSession(t)

	result := callTool(t, session, "generate_skin", map[string]any{"prompt": "pirate captain", "seed": 7})
	skin := textOf[skinResponse](t, result)
	assert.Equal(t, "pirate captain", skin.Name)
	require.NotNil(t, skin.Seed)
	assert.Equal(t, int64(7), *skin.Seed)
	assert.Empty(t, skin.Texture)

	require.Len(t, result.Content, 2)
	img, ok := result.Content[1].(*mcp.ImageContent)
	require.True(t, ok, "expected ImageContent")
	assert.Equal(t, "image/png", img.MIMEType)
	decoded, err := png.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, texture.Size*4, decoded.Bounds().Dx())

	list := textOf[struct {
		Skins []struct {
			ID     string `json:"id"`
			Prompt string `json:"prompt"`
		} `json:"skins"`
	}](t, callTool(t, session, "list_skins", map[string]any{}))
	require.Len(t, list.Skins, 1)
	assert.Equal(t, skin.ID, list.Skins[0].ID)
	assert.Equal(t, "pirate captain", list.Skins[0].Prompt)
}

func TestMCP_EditGetDelete(t *testing.T) {
	session := mcpSession(t)
	skin := textOf[skinResponse](t, callTool(t, session, "generate_skin", map[string]any{"prompt": "robot"}))

	edited := textOf[skinResponse](t, callTool(t, session, "edit_skin", map[string]any{
		"id":  skin.ID,
		"ops": []map[string]any{{"tool": "eraser", "x": 8, "y": 8, "size": 8}},
	}))
	assert.Equal(t, skin.ID, edited.ID)
	require.NotNil(t, edited.Changed)
	assert.Equal(t, 1, *edited.Changed)

	got := textOf[skinResponse](t, callTool(t, session, "get_skin", map[string]any{"id": skin.ID}))
	assert.Equal(t, "robot", got.Name)

	deleted := textOf[map[string]string](t, callTool(t, session, "delete_skin", map[string]any{"id": skin.ID}))
	assert.Equal(t, "deleted", deleted["status"])

	result := callTool(t, session, "get_skin", map[string]any{"id": skin.ID})
	assert.Error(t, result.GetError())
}

func TestMCP_Errors(t *testing.T) {
	session := mcpSession(t)

	result := callTool(t, session, "generate_skin", map[string]any{"prompt": ""})
	assert.Error(t, result.GetError())

	result = callTool(t, session, "edit_skin", map[string]any{"id": "missing", "ops": []map[string]any{}})
	assert.Error(t, result.GetError())
}
