package drafter

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini drafts emails with the Google GenAI API.
type Gemini struct {
	client    *genai.Client
	model     string
	maxTokens int64
}

// NewGemini creates a Gemini drafter.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient failed: %w", err)
	}

	return &Gemini{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

func (g *Gemini) Name() string { return ProviderGemini }

func (g *Gemini) Draft(ctx context.Context, req Request) (string, error) {
	prompt, err := Prompt(req)
	if err != nil {
		return "", fmt.Errorf("Prompt failed: %w", err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		MaxOutputTokens:   int32(g.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("client.Models.GenerateContent failed: %w", err)
	}

	return completion(resp.Text())
}
