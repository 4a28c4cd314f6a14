// Package gservice reads account settings from the Gmail API.
package gservice

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const gmailUserID = "me"

type httpClientSource interface {
	HTTPClient(ctx context.Context) (*http.Client, error)
}

// NewGmail creates a Gmail settings reader. opts are appended to every
// service construction.
func NewGmail(tok httpClientSource, opts ...option.ClientOption) *GMail {
	return &GMail{
		tok:  tok,
		opts: opts,
	}
}

type GMail struct {
	tok  httpClientSource
	opts []option.ClientOption
}

// ListSendAs returns the "send as" aliases of the authorized account.
func (m *GMail) ListSendAs(ctx context.Context) ([]*gmail.SendAs, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	res, err := svc.Users.Settings.SendAs.List(gmailUserID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sendAs.List failed: %w", err)
	}

	return res.SendAs, nil
}

func (m *GMail) newSvc(ctx context.Context) (*gmail.Service, error) {
	clt, err := m.tok.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("tok.HTTPClient failed: %w", err)
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(clt)}, m.opts...)

	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService failed: %w", err)
	}

	return svc, nil
}
