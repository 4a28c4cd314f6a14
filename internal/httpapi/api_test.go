package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hal9000y/mailwright/internal/generate"
	"github.com/hal9000y/mailwright/internal/httpapi"
)

type generatorMock struct {
	GenerateFunc func(ctx context.Context, req generate.Request) (generate.Result, error)
}

func (g *generatorMock) Generate(ctx context.Context, req generate.Request) (generate.Result, error) {
	return g.GenerateFunc(ctx, req)
}

func newTestRouter(t *testing.T, gen interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}, opts httpapi.Options) http.Handler {
	t.Helper()

	log := zaptest.NewLogger(t)
	return httpapi.NewRouter(httpapi.NewEmailService(gen, log), log, opts)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	}

	return rec, payload
}

func TestGenerateEndpoint(t *testing.T) {
	h := newTestRouter(t, generate.New(nil, zaptest.NewLogger(t)), httpapi.Options{})

	cases := []struct {
		name          string
		method        string
		body          string
		expectedCode  int
		expectedError string
	}{
		{
			name:          "malformed json",
			method:        http.MethodPost,
			body:          `{"input": "hello"`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "unable to parse request body",
		},
		{
			name:          "empty input",
			method:        http.MethodPost,
			body:          `{"input": "", "tone": "formal"}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Input and tone are required",
		},
		{
			name:          "missing tone",
			method:        http.MethodPost,
			body:          `{"input": "hello"}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Input and tone are required",
		},
		{
			name:          "get not allowed",
			method:        http.MethodGet,
			expectedCode:  http.StatusMethodNotAllowed,
			expectedError: "Method not allowed",
		},
		{
			name:          "put not allowed",
			method:        http.MethodPut,
			body:          `{}`,
			expectedCode:  http.StatusMethodNotAllowed,
			expectedError: "Method not allowed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, payload := do(t, h, tc.method, "/api/generate", tc.body)

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, map[string]any{"error": tc.expectedError}, payload)
		})
	}
}

func TestGenerateEndpointFallback(t *testing.T) {
	h := newTestRouter(t, generate.New(nil, zaptest.NewLogger(t)), httpapi.Options{})

	rec, payload := do(t, h, http.MethodPost, "/api/generate", `{"input": "Can we schedule a meeting next week?", "tone": "formal"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, true, payload["fallback"])
	assert.Equal(t, generate.FallbackMessage, payload["message"])

	email, ok := payload["email"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(email, "Subject: Meeting Request\n\nDear [Recipient Name],\n\nI hope this message finds you well."), email)
}

func TestGenerateEndpointDrafted(t *testing.T) {
	var got generate.Request
	gen := &generatorMock{GenerateFunc: func(_ context.Context, req generate.Request) (generate.Result, error) {
		got = req
		return generate.Result{Email: "Subject: Hi\n\nHello Sam,", Provider: "mock"}, nil
	}}
	h := newTestRouter(t, gen, httpapi.Options{})

	rec, payload := do(t, h, http.MethodPost, "/api/generate", `{"input": "say hi", "tone": "warm", "recipient_name": "Sam"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, map[string]any{"email": "Subject: Hi\n\nHello Sam,"}, payload)
	assert.Equal(t, generate.Request{Input: "say hi", Tone: "warm", RecipientName: "Sam"}, got)
}

func TestGenerateEndpointInternalError(t *testing.T) {
	gen := &generatorMock{GenerateFunc: func(_ context.Context, _ generate.Request) (generate.Result, error) {
		return generate.Result{}, errors.New("boom")
	}}
	h := newTestRouter(t, gen, httpapi.Options{})

	rec, payload := do(t, h, http.MethodPost, "/api/generate", `{"input": "x", "tone": "y"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Internal Server Error"}, payload)
}

func TestTonesEndpoint(t *testing.T) {
	h := newTestRouter(t, generate.New(nil, zaptest.NewLogger(t)), httpapi.Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tones", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res httpapi.TonesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Tones, 7)
	assert.Equal(t, "professional", string(res.Tones[0].Name))
	assert.Equal(t, []string{"business", "formal"}, res.Tones[0].Aliases)
}

func TestHealthAndMounts(t *testing.T) {
	mount := func(name string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, name)
		})
	}

	h := newTestRouter(t, generate.New(nil, zaptest.NewLogger(t)), httpapi.Options{
		MCP:   mount("mcp"),
		OAuth: mount("oauth"),
	})

	rec, payload := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{}, payload)

	for _, path := range []string{"/mcp", "/oauth"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, strings.TrimPrefix(path, "/"), rec.Body.String())
	}

	rec, payload = do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"error": "Not found"}, payload)
}

func TestOAuthNotMounted(t *testing.T) {
	h := newTestRouter(t, generate.New(nil, zaptest.NewLogger(t)), httpapi.Options{})

	rec, _ := do(t, h, http.MethodGet, "/oauth", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, generate.New(nil, zaptest.NewLogger(t)), httpapi.Options{
		AllowedOrigins: []string{"https://app.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
