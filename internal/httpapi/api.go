// Package httpapi exposes email generation over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hal9000y/mailwright/internal/generate"
	"github.com/hal9000y/mailwright/internal/template"
)

type generator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}

// GenerateResponse is the body of a successful generate call.
type GenerateResponse struct {
	Email    string `json:"email"`
	Fallback bool   `json:"fallback,omitempty"`
	Message  string `json:"message,omitempty"`
}

// TonesResponse lists the tones a client may offer.
type TonesResponse struct {
	Tones []template.ToneInfo `json:"tones"`
}

// EmailService serves the email endpoints.
type EmailService struct {
	gen generator
	log *zap.Logger
}

// NewEmailService creates the email endpoints around gen.
func NewEmailService(gen generator, log *zap.Logger) *EmailService {
	return &EmailService{gen: gen, log: log}
}

// AddRoutes registers the email endpoints on r.
func (s *EmailService) AddRoutes(r chi.Router) {
	r.Post("/api/generate", RestHandler(s.log, s.Generate))
	r.Get("/api/tones", RestHandler(s.log, s.Tones))
}

// Generate handles POST /api/generate.
func (s *EmailService) Generate(r *http.Request) (any, error) {
	req, err := ParseRequest[generate.Request](r)
	if err != nil {
		return nil, err
	}

	res, err := s.gen.Generate(r.Context(), req)
	if errors.Is(err, generate.ErrInvalidRequest) {
		return nil, CodedErrorf(http.StatusBadRequest, "Input and tone are required")
	}
	if err != nil {
		return nil, err
	}

	return GenerateResponse{
		Email:    res.Email,
		Fallback: res.Fallback,
		Message:  res.Message,
	}, nil
}

// Tones handles GET /api/tones.
func (s *EmailService) Tones(_ *http.Request) (any, error) {
	return TonesResponse{Tones: template.Tones()}, nil
}
