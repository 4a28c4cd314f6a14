package drafter

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Ollama drafts emails with a locally hosted model.
type Ollama struct {
	llm       *ollama.LLM
	maxTokens int
}

// NewOllama creates an Ollama drafter talking to cfg.BaseURL.
func NewOllama(cfg Config) (*Ollama, error) {
	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("ollama.New failed: %w", err)
	}

	return &Ollama{llm: llm, maxTokens: int(cfg.MaxTokens)}, nil
}

func (o *Ollama) Name() string { return ProviderOllama }

func (o *Ollama) Draft(ctx context.Context, req Request) (string, error) {
	prompt, err := Prompt(req)
	if err != nil {
		return "", fmt.Errorf("Prompt failed: %w", err)
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := o.llm.GenerateContent(ctx, messages, llms.WithMaxTokens(o.maxTokens))
	if err != nil {
		return "", fmt.Errorf("llm.GenerateContent failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return completion(resp.Choices[0].Content)
}
