// Package generate turns a request into an email, preferring the configured
// drafter and falling back to the template engine when it fails.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hal9000y/mailwright/internal/classify"
	"github.com/hal9000y/mailwright/internal/drafter"
	"github.com/hal9000y/mailwright/internal/template"
)

// ErrInvalidRequest is returned for a request without input or tone.
var ErrInvalidRequest = errors.New("invalid request")

// FallbackMessage explains to callers why a template email was returned.
const FallbackMessage = "Using fallback generator (AI temporarily unavailable)"

// DefaultTimeout bounds a drafter call when no timeout is configured.
const DefaultTimeout = 20 * time.Second

// DefaultIdentityTimeout bounds a sender identity lookup.
const DefaultIdentityTimeout = 5 * time.Second

type draftSvc interface {
	Name() string
	Draft(ctx context.Context, req drafter.Request) (string, error)
}

type identitySvc interface {
	Identity(ctx context.Context) (template.Identity, error)
}

// Request is one email generation request.
type Request struct {
	Input         string `json:"input" jsonschema:"Free-text description of the email to write"`
	Tone          string `json:"tone" jsonschema:"Desired tone, e.g. professional, warm, casual, formal"`
	RecipientName string `json:"recipient_name,omitempty" jsonschema:"Optional recipient name used in the greeting"`
	SenderName    string `json:"sender_name,omitempty" jsonschema:"Optional sender name used in the signature"`
}

// Result is a generated email and how it was produced.
type Result struct {
	Email    string            `json:"email"`
	Fallback bool              `json:"fallback,omitempty"`
	Message  string            `json:"message,omitempty"`
	Provider string            `json:"provider,omitempty"`
	Context  *classify.Context `json:"context,omitempty"`
}

// Generator produces emails. The zero drafter means every request uses templates.
type Generator struct {
	drafter         draftSvc
	identity        identitySvc
	timeout         time.Duration
	identityTimeout time.Duration
	log             *zap.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithIdentity resolves sender details for requests that do not name a sender.
func WithIdentity(svc identitySvc) Option {
	return func(g *Generator) { g.identity = svc }
}

// WithTimeout bounds each drafter call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithIdentityTimeout bounds each sender identity lookup. A lookup that runs
// out of time leaves the sender placeholders in place.
func WithIdentityTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.identityTimeout = d
		}
	}
}

// New creates a Generator. d may be nil.
func New(d draftSvc, log *zap.Logger, opts ...Option) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	g := &Generator{
		drafter:         d,
		timeout:         DefaultTimeout,
		identityTimeout: DefaultIdentityTimeout,
		log:             log,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate validates req and returns an email. Drafter failures never surface
// as errors; the template engine answers instead, exactly once.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Input) == "" || strings.TrimSpace(req.Tone) == "" {
		return Result{}, fmt.Errorf("%w: input and tone are required", ErrInvalidRequest)
	}

	id := g.resolveIdentity(ctx, req)

	if g.drafter != nil {
		text, err := g.draft(ctx, req, id)
		if err == nil {
			return Result{Email: text, Provider: g.drafter.Name()}, nil
		}

		g.log.Warn("drafter failed, using templates",
			zap.String("provider", g.drafter.Name()),
			zap.Error(err),
		)
	}

	return g.fallback(req, id), nil
}

func (g *Generator) draft(ctx context.Context, req Request, id template.Identity) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.drafter.Draft(ctx, drafter.Request{
		Input:           req.Input,
		Tone:            req.Tone,
		RecipientName:   id.RecipientName,
		SenderName:      id.SenderName,
		SenderSignature: id.SenderSignature,
	})
	if err != nil {
		return "", fmt.Errorf("drafter.Draft failed: %w", err)
	}

	g.log.Debug("drafted email",
		zap.String("provider", g.drafter.Name()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return text, nil
}

func (g *Generator) fallback(req Request, id template.Identity) Result {
	c := classify.Classify(req.Input)
	email := template.AssembleFor(c, req.Tone, req.Input, id)

	g.log.Info("generated template email",
		zap.String("category", string(c.Category)),
		zap.String("recipient", string(c.Recipient)),
		zap.String("urgency", string(c.Urgency)),
		zap.String("tone", string(template.ResolveTone(req.Tone))),
	)

	return Result{
		Email:    email.String(),
		Fallback: true,
		Message:  FallbackMessage,
		Context:  &c,
	}
}

func (g *Generator) resolveIdentity(ctx context.Context, req Request) template.Identity {
	id := template.Identity{
		RecipientName: strings.TrimSpace(req.RecipientName),
		SenderName:    strings.TrimSpace(req.SenderName),
	}
	if id.SenderName != "" || g.identity == nil {
		return id
	}

	ctx, cancel := context.WithTimeout(ctx, g.identityTimeout)
	defer cancel()

	resolved, err := g.identity.Identity(ctx)
	if err != nil {
		g.log.Warn("sender identity unavailable", zap.Error(err))
		return id
	}

	id.SenderName = resolved.SenderName
	id.SenderSignature = resolved.SenderSignature

	return id
}
