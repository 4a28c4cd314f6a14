package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with the email writing tools.
func NewServer(gen generator) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "mailwright", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_email",
		Description: "Write an email from a short request in the requested tone",
	}, NewGenerateEmail(gen).GenerateEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_request",
		Description: "Classify an email request by category, recipient and urgency",
	}, ClassifyRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tones",
		Description: "List the supported tones with their descriptions and aliases",
	}, ListTones)

	return server
}
