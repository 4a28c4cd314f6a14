// Package auth handles the Google OAuth2 token used to read the sender identity.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ErrTokenNotSet indicates no OAuth token is available.
var ErrTokenNotSet = errors.New("no token defined")

// ErrInvalidState is returned for an unknown or expired OAuth state parameter.
var ErrInvalidState = errors.New("invalid or expired state parameter")

// Token owns the account token: it runs the authorization code flow, hands
// out authorized clients and writes the token back to disk.
type Token struct {
	cfg    *oauth2.Config
	path   string
	states *stateStore
	log    *zap.Logger

	mu    sync.RWMutex
	token *oauth2.Token
	dirty bool
}

// NewToken creates a Token. When path names an existing file the token is
// loaded from it; a missing file is created by Persist.
func NewToken(cfg *oauth2.Config, path string, log *zap.Logger) (*Token, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tok, err := readTokenFile(path)
	if err != nil {
		return nil, fmt.Errorf("readTokenFile failed: %w", err)
	}
	if tok == nil && path != "" {
		log.Info("no token file yet, it will be written on shutdown", zap.String("path", path))
	}

	return &Token{
		cfg:    cfg,
		path:   path,
		states: newStateStore(stateTTL),
		log:    log,
		token:  tok,
	}, nil
}

// RedirectURL returns the consent page URL carrying a fresh state value.
func (t *Token) RedirectURL() (string, error) {
	state, err := t.states.issue()
	if err != nil {
		return "", fmt.Errorf("states.issue failed: %w", err)
	}

	return t.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// AuthorizeCode exchanges code for a token once state checks out.
func (t *Token) AuthorizeCode(ctx context.Context, code, state string) error {
	if !t.states.consume(state) {
		return ErrInvalidState
	}

	tok, err := t.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("cfg.Exchange failed: %w", err)
	}

	t.set(tok)
	t.log.Info("oauth token authorized", zap.Time("expiry", tok.Expiry))

	return nil
}

// OAuthToken returns the current token.
func (t *Token) OAuthToken() (*oauth2.Token, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.token == nil {
		return nil, ErrTokenNotSet
	}

	return t.token, nil
}

// HTTPClient returns a client authorized with the current token. Refreshed
// tokens replace the stored one so a later Persist writes them.
func (t *Token) HTTPClient(ctx context.Context) (*http.Client, error) {
	tok, err := t.OAuthToken()
	if err != nil {
		return nil, fmt.Errorf("OAuthToken failed: %w", err)
	}

	src := oauth2.ReuseTokenSource(tok, refreshRecorder{t: t, src: t.cfg.TokenSource(ctx, tok)})

	return oauth2.NewClient(ctx, src), nil
}

// Persist writes the token to disk when it changed since it was loaded.
func (t *Token) Persist() error {
	t.mu.Lock()
	tok, dirty := t.token, t.dirty
	t.dirty = false
	t.mu.Unlock()

	if t.path == "" || tok == nil || !dirty {
		return nil
	}

	if err := writeTokenFile(t.path, tok); err != nil {
		t.mu.Lock()
		t.dirty = true
		t.mu.Unlock()

		return fmt.Errorf("writeTokenFile failed: %w", err)
	}

	return nil
}

func (t *Token) set(tok *oauth2.Token) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.token = tok
	t.dirty = true
}

type refreshRecorder struct {
	t   *Token
	src oauth2.TokenSource
}

func (r refreshRecorder) Token() (*oauth2.Token, error) {
	tok, err := r.src.Token()
	if err != nil {
		return nil, err
	}

	if cur, _ := r.t.OAuthToken(); cur == nil || cur.AccessToken != tok.AccessToken {
		r.t.set(tok)
		r.t.log.Debug("oauth token refreshed", zap.Time("expiry", tok.Expiry))
	}

	return tok, nil
}

func readTokenFile(path string) (*oauth2.Token, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile failed: %w", err)
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("json.Unmarshal failed: %w", err)
	}

	return tok, nil
}

// writeTokenFile replaces path atomically so a crash never leaves a
// truncated token behind.
func writeTokenFile(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("json.Marshal failed: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".token-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp failed: %w", err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("f.Write failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("f.Close failed: %w", err)
	}

	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("os.Rename failed: %w", err)
	}

	return nil
}
