package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestDraftOffline(t *testing.T) {
	out, err := execute(t, "draft", "--offline", "--tone", "formal", "Can", "we", "schedule", "a", "meeting", "next", "week?")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Subject: Meeting Request\n\nDear [Recipient Name],\n\n"), out)
	assert.True(t, strings.HasSuffix(out, "Best regards,\n[Your Name]\n"), out)
}

func TestDraftOfflineNames(t *testing.T) {
	out, err := execute(t, "draft", "--offline", "--tone", "casual", "--recipient", "Sam", "--sender", "Alex", "just checking in on progress")
	require.NoError(t, err)

	assert.Contains(t, out, "Hey Sam,")
	assert.True(t, strings.HasSuffix(out, "Cheers,\nAlex\n"), out)
}

func TestDraftErrors(t *testing.T) {
	_, err := execute(t, "draft", "--offline")
	require.Error(t, err)

	_, err = execute(t, "draft", "--offline", "   ")
	require.ErrorContains(t, err, "input and tone are required")

	_, err = execute(t, "draft", "--offline", "--tone", "", "hello")
	require.ErrorContains(t, err, "input and tone are required")
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "classify", "need approval for a $2,324 travel budget")
	require.NoError(t, err)

	assert.Equal(t, "category:  approval\nrecipient: colleague\nurgency:   high\n", out)
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(false, "", "")
	require.NoError(t, err)
	log.Info("discarded")

	path := filepath.Join(t.TempDir(), "mailwright.log")
	log, err = newLogger(false, path, "stdout")
	require.NoError(t, err)

	log.Info("hello from test")
	require.NoError(t, log.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from test")
}

func freeAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	return addr
}

func TestServe(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "none")
	t.Setenv("OAUTH_GOOGLE_CLIENT_ID", "")
	t.Setenv("OAUTH_GOOGLE_CLIENT_SECRET", "")

	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, &rootOptions{}, serveOptions{
			httpAddr: addr,
			logFile:  filepath.Join(t.TempDir(), "serve.log"),
		})
	}()

	base := "http://" + addr
	require.Eventually(t, func() bool {
		res, err := http.Get(base + "/healthz")
		if err != nil {
			return false
		}
		_ = res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	res, err := http.Post(base+"/api/generate", "application/json", strings.NewReader(`{"input": "unknown-tone-xyz", "tone": "unknown-tone-xyz"}`))
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, true, body["fallback"])
	assert.Contains(t, body["email"], "Dear [Recipient Name],\n\nI hope this message finds you well.")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
