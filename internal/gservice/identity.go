package gservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/mailwright/internal/format"
	"github.com/hal9000y/mailwright/internal/template"
)

// ErrNoSendAs is returned when the account has no send-as entries.
var ErrNoSendAs = errors.New("account has no send-as identity")

type sendAsSvc interface {
	ListSendAs(ctx context.Context) ([]*gmail.SendAs, error)
}

// IdentityCache resolves the sender identity from the primary send-as entry
// and keeps it for ttl. Failures are not cached. Concurrent callers share one
// lookup and each stops waiting when its own context ends.
type IdentityCache struct {
	svc sendAsSvc
	ttl time.Duration

	group singleflight.Group

	mu      sync.Mutex
	cached  template.Identity
	expires time.Time
}

// NewIdentityCache creates a cache over svc. A ttl of zero disables caching.
func NewIdentityCache(svc sendAsSvc, ttl time.Duration) *IdentityCache {
	return &IdentityCache{svc: svc, ttl: ttl}
}

// Identity returns the sender name and plain-text signature.
func (c *IdentityCache) Identity(ctx context.Context) (template.Identity, error) {
	if id, ok := c.load(); ok {
		return id, nil
	}

	ch := c.group.DoChan("identity", func() (any, error) {
		return c.fetch(ctx)
	})

	select {
	case <-ctx.Done():
		return template.Identity{}, fmt.Errorf("identity lookup abandoned: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return template.Identity{}, res.Err
		}
		return res.Val.(template.Identity), nil
	}
}

func (c *IdentityCache) load() (template.Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.expires) {
		return c.cached, true
	}

	return template.Identity{}, false
}

func (c *IdentityCache) fetch(ctx context.Context) (template.Identity, error) {
	list, err := c.svc.ListSendAs(ctx)
	if err != nil {
		return template.Identity{}, fmt.Errorf("svc.ListSendAs failed: %w", err)
	}

	sendAs := primarySendAs(list)
	if sendAs == nil {
		return template.Identity{}, ErrNoSendAs
	}

	id := template.Identity{
		SenderName:      strings.TrimSpace(sendAs.DisplayName),
		SenderSignature: format.PlainText(sendAs.Signature),
	}
	if id.SenderName == "" {
		id.SenderName = sendAs.SendAsEmail
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.cached = id
		c.expires = time.Now().Add(c.ttl)
		c.mu.Unlock()
	}

	return id, nil
}

func primarySendAs(list []*gmail.SendAs) *gmail.SendAs {
	var fallback *gmail.SendAs
	for _, s := range list {
		if s == nil {
			continue
		}
		if s.IsPrimary {
			return s
		}
		if fallback == nil || (s.IsDefault && !fallback.IsDefault) {
			fallback = s
		}
	}

	return fallback
}
