package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mailwright/internal/classify"
)

type ClassifyRequestRequest struct {
	Input string `json:"input" jsonschema:"free-text description of the email to write"`
}

// ClassifyRequest reports how the template generator would read the request.
func ClassifyRequest(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyRequestRequest,
) (*mcp.CallToolResult, classify.Context, error) {
	return nil, classify.Classify(input.Input), nil
}
