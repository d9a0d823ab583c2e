package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shouni/gemini-skin-kit/pkg/domain"
	"github.com/shouni/gemini-skin-kit/pkg/editor"
	"github.com/shouni/gemini-skin-kit/pkg/imgutil"
)

// RegisterMCP はスキン操作を MCP ツールとして登録します。
func (h *Handler) RegisterMCP(srv *mcp.Server) {
	h.registerGenerate(srv)
	h.registerList(srv)
	h.registerGet(srv)
	h.registerEdit(srv)
	h.registerDelete(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func toolError(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Errorf("marshal: %w", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// imageResult は拡大プレビューと JSON の概要を返します。
func (h *Handler) imageResult(ctx context.Context, id string, summary any) (*mcp.CallToolResult, error) {
	tex, _, err := h.studio.Texture(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	img, err := imgutil.PreviewPNG(tex.Image(), h.previewScale)
	if err != nil {
		return toolError(err), nil
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return toolError(fmt.Errorf("marshal: %w", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
			&mcp.ImageContent{Data: img, MIMEType: "image/png"},
		},
	}, nil
}

func (h *Handler) registerGenerate(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "generate_skin",
		Description: "Generate a 64x64 Minecraft skin from a text description and save it to history",
		InputSchema: inputSchema(map[string]any{
			"prompt": map[string]any{"type": "string", "description": "Character description"},
			"mode":   map[string]any{"type": "string", "description": "Generation mode: demo or ai"},
			"seed":   map[string]any{"type": "integer", "description": "Optional seed for reproducible detail placement"},
		}, []string{"prompt"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var p domain.GenerationRequest
		if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}
		skin, err := h.studio.Generate(ctx, p)
		if err != nil {
			return toolError(err), nil
		}
		resp := fromSkin(skin)
		resp.Texture = ""
		return h.imageResult(ctx, skin.Entry.ID, resp)
	})
}

func (h *Handler) registerList(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "list_skins",
		Description: "List saved skins, newest first",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := h.studio.History().List(ctx)
		if err != nil {
			return toolError(err), nil
		}
		type item struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Prompt string `json:"prompt,omitempty"`
		}
		items := make([]item, 0, len(entries))
		for _, e := range entries {
			items = append(items, item{ID: e.ID, Name: e.Name, Prompt: e.Prompt})
		}
		return jsonResult(map[string]any{"skins": items})
	})
}

func (h *Handler) registerGet(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "get_skin",
		Description: "Show a saved skin as an upscaled preview image",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Skin ID"},
		}, []string{"id"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var p struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}
		entry, err := h.studio.History().Get(ctx, p.ID)
		if err != nil {
			return toolError(err), nil
		}
		resp := newSkinResponse(entry)
		resp.Texture = ""
		return h.imageResult(ctx, entry.ID, resp)
	})
}

func (h *Handler) registerEdit(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "edit_skin",
		Description: "Apply pencil, eraser, fill or eyedropper operations to a saved skin",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Skin ID"},
			"ops": map[string]any{
				"type":        "array",
				"description": "Operations applied in order",
				"items": inputSchema(map[string]any{
					"tool":  map[string]any{"type": "string", "description": "pencil, eraser, fill or eyedropper"},
					"x":     map[string]any{"type": "integer"},
					"y":     map[string]any{"type": "integer"},
					"color": map[string]any{"type": "string", "description": "Hex color such as #ff0000"},
					"size":  map[string]any{"type": "integer", "description": "Brush size 1-8"},
				}, []string{"tool", "x", "y"}),
			},
		}, []string{"id", "ops"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var p struct {
			ID  string      `json:"id"`
			Ops []editor.Op `json:"ops"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}
		entry, changed, err := h.studio.Edit(ctx, p.ID, p.Ops)
		if err != nil {
			return toolError(err), nil
		}
		resp := newSkinResponse(entry)
		resp.Texture = ""
		resp.Changed = &changed
		return h.imageResult(ctx, entry.ID, resp)
	})
}

func (h *Handler) registerDelete(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "delete_skin",
		Description: "Delete a saved skin from history",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Skin ID"},
		}, []string{"id"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var p struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}
		if err := h.studio.History().Delete(ctx, p.ID); err != nil {
			return toolError(err), nil
		}
		return jsonResult(map[string]string{"status": "deleted"})
	})
}
