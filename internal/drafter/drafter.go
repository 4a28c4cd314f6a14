// Package drafter sends email requests to an external language model.
package drafter

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyCompletion is returned when a provider answers without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown provider")

// ErrMissingAPIKey is returned by New when the provider needs a key and none is set.
var ErrMissingAPIKey = errors.New("api key is required")

// Request is everything a provider needs to draft one email.
type Request struct {
	Input           string
	Tone            string
	RecipientName   string
	SenderName      string
	SenderSignature string
}

// Drafter produces an email text for a request.
type Drafter interface {
	Name() string
	Draft(ctx context.Context, req Request) (string, error)
}

func completion(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
