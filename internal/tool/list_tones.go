package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mailwright/internal/template"
)

type ListTonesRequest struct{}

type ListTonesResponse struct {
	Tones []template.ToneInfo `json:"tones" jsonschema:"supported tones in display order"`
}

func ListTones(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListTonesRequest,
) (*mcp.CallToolResult, ListTonesResponse, error) {
	return nil, ListTonesResponse{Tones: template.Tones()}, nil
}
