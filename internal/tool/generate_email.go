package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/mailwright/internal/generate"
)

type GenerateEmailResponse struct {
	Email    string `json:"email" jsonschema:"the complete email starting with the subject line"`
	Fallback bool   `json:"fallback" jsonschema:"true when the email was assembled from templates"`
	Message  string `json:"message,omitempty" jsonschema:"why the template generator was used"`
}

type generator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}

func NewGenerateEmail(gen generator) *GenerateEmail {
	return &GenerateEmail{
		gen: gen,
	}
}

type GenerateEmail struct {
	gen generator
}

func (t *GenerateEmail) GenerateEmail(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input generate.Request,
) (*mcp.CallToolResult, GenerateEmailResponse, error) {
	res, err := t.gen.Generate(ctx, input)
	if err != nil {
		return nil, GenerateEmailResponse{}, fmt.Errorf("gen.Generate failed: %w", err)
	}

	return nil, GenerateEmailResponse{
		Email:    res.Email,
		Fallback: res.Fallback,
		Message:  res.Message,
	}, nil
}
