package generate_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/hal9000y/mailwright/internal/classify"
	"github.com/hal9000y/mailwright/internal/drafter"
	"github.com/hal9000y/mailwright/internal/generate"
	"github.com/hal9000y/mailwright/internal/template"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type drafterMock struct {
	calls     atomic.Int32
	DraftFunc func(ctx context.Context, req drafter.Request) (string, error)
}

func (d *drafterMock) Name() string { return "mock" }

func (d *drafterMock) Draft(ctx context.Context, req drafter.Request) (string, error) {
	d.calls.Add(1)
	return d.DraftFunc(ctx, req)
}

type identityMock struct {
	IdentityFunc func(ctx context.Context) (template.Identity, error)
}

func (i *identityMock) Identity(ctx context.Context) (template.Identity, error) {
	return i.IdentityFunc(ctx)
}

func TestGenerate(t *testing.T) {
	cases := []struct {
		name             string
		draft            func(ctx context.Context, req drafter.Request) (string, error)
		req              generate.Request
		expectedFallback bool
		expectedEmail    string
		expectedCategory classify.Category
	}{
		{
			name: "drafter succeeds",
			draft: func(_ context.Context, _ drafter.Request) (string, error) {
				return "Subject: Lunch\n\nHey team,", nil
			},
			req:           generate.Request{Input: "team lunch on friday", Tone: "casual"},
			expectedEmail: "Subject: Lunch\n\nHey team,",
		},
		{
			name: "drafter error",
			draft: func(_ context.Context, _ drafter.Request) (string, error) {
				return "", errors.New("connection refused")
			},
			req:              generate.Request{Input: "Can we schedule a meeting next week?", Tone: "formal"},
			expectedFallback: true,
			expectedCategory: classify.CategoryMeeting,
		},
		{
			name: "empty completion",
			draft: func(_ context.Context, _ drafter.Request) (string, error) {
				return "", drafter.ErrEmptyCompletion
			},
			req:              generate.Request{Input: "just checking in on progress", Tone: "casual"},
			expectedFallback: true,
			expectedCategory: classify.CategoryUpdate,
		},
		{
			name: "timeout",
			draft: func(ctx context.Context, _ drafter.Request) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
			req:              generate.Request{Input: "need approval for a $2,324 travel budget", Tone: "urgent"},
			expectedFallback: true,
			expectedCategory: classify.CategoryApproval,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &drafterMock{DraftFunc: tc.draft}
			g := generate.New(d, zaptest.NewLogger(t), generate.WithTimeout(50*time.Millisecond))

			res, err := g.Generate(context.Background(), tc.req)
			require.NoError(t, err)
			assert.Equal(t, int32(1), d.calls.Load())
			assert.Equal(t, tc.expectedFallback, res.Fallback)

			if !tc.expectedFallback {
				assert.Equal(t, tc.expectedEmail, res.Email)
				assert.Equal(t, "mock", res.Provider)
				assert.Empty(t, res.Message)
				assert.Nil(t, res.Context)
				return
			}

			assert.Equal(t, generate.FallbackMessage, res.Message)
			require.NotNil(t, res.Context)
			assert.Equal(t, tc.expectedCategory, res.Context.Category)

			c := classify.Classify(tc.req.Input)
			assert.Equal(t, template.Assemble(c, tc.req.Tone, tc.req.Input).String(), res.Email)
		})
	}
}

func TestGenerateWithoutDrafter(t *testing.T) {
	g := generate.New(nil, zaptest.NewLogger(t))

	res, err := g.Generate(context.Background(), generate.Request{
		Input: "need approval for a $2,324 travel budget",
		Tone:  "urgent",
	})
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	require.NotNil(t, res.Context)
	assert.Equal(t, classify.UrgencyHigh, res.Context.Urgency)
	assert.True(t, strings.HasPrefix(res.Email, "Subject: Urgent: Approval Request\n\n"))
	assert.Contains(t, res.Email, "$2,324 travel budget")
}

func TestGenerateInvalidRequest(t *testing.T) {
	cases := []struct {
		name string
		req  generate.Request
	}{
		{name: "empty input", req: generate.Request{Input: "", Tone: "formal"}},
		{name: "blank input", req: generate.Request{Input: "   ", Tone: "formal"}},
		{name: "empty tone", req: generate.Request{Input: "hello", Tone: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &drafterMock{DraftFunc: func(_ context.Context, _ drafter.Request) (string, error) {
				return "unexpected", nil
			}}
			g := generate.New(d, zaptest.NewLogger(t))

			res, err := g.Generate(context.Background(), tc.req)
			require.ErrorIs(t, err, generate.ErrInvalidRequest)
			assert.Empty(t, res.Email)
			assert.Zero(t, d.calls.Load())
		})
	}
}

func TestGenerateIdentity(t *testing.T) {
	resolver := &identityMock{IdentityFunc: func(_ context.Context) (template.Identity, error) {
		return template.Identity{SenderName: "Jordan Reyes", SenderSignature: "Head of Ops"}, nil
	}}

	t.Run("resolved identity reaches drafter", func(t *testing.T) {
		var got drafter.Request
		d := &drafterMock{DraftFunc: func(_ context.Context, req drafter.Request) (string, error) {
			got = req
			return "Subject: Hi", nil
		}}
		g := generate.New(d, zaptest.NewLogger(t), generate.WithIdentity(resolver))

		_, err := g.Generate(context.Background(), generate.Request{Input: "hello", Tone: "warm", RecipientName: "Sam"})
		require.NoError(t, err)
		assert.Equal(t, "Sam", got.RecipientName)
		assert.Equal(t, "Jordan Reyes", got.SenderName)
		assert.Equal(t, "Head of Ops", got.SenderSignature)
	})

	t.Run("resolved identity fills template", func(t *testing.T) {
		g := generate.New(nil, zaptest.NewLogger(t), generate.WithIdentity(resolver))

		res, err := g.Generate(context.Background(), generate.Request{Input: "hello", Tone: "warm"})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(res.Email, "Warm regards,\nJordan Reyes\nHead of Ops"))
		assert.Contains(t, res.Email, "Hi [Recipient Name],")
	})

	t.Run("explicit sender wins", func(t *testing.T) {
		called := false
		r := &identityMock{IdentityFunc: func(_ context.Context) (template.Identity, error) {
			called = true
			return template.Identity{}, nil
		}}
		g := generate.New(nil, zaptest.NewLogger(t), generate.WithIdentity(r))

		res, err := g.Generate(context.Background(), generate.Request{Input: "hello", Tone: "formal", SenderName: "Alex"})
		require.NoError(t, err)
		assert.False(t, called)
		assert.True(t, strings.HasSuffix(res.Email, "Best regards,\nAlex"))
	})

	t.Run("identity failure keeps placeholders", func(t *testing.T) {
		r := &identityMock{IdentityFunc: func(_ context.Context) (template.Identity, error) {
			return template.Identity{}, errors.New("token not set")
		}}
		g := generate.New(nil, zaptest.NewLogger(t), generate.WithIdentity(r))

		res, err := g.Generate(context.Background(), generate.Request{Input: "hello", Tone: "formal"})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(res.Email, "Best regards,\n"+template.SenderPlaceholder))
	})

	t.Run("stalled lookup times out", func(t *testing.T) {
		r := &identityMock{IdentityFunc: func(ctx context.Context) (template.Identity, error) {
			<-ctx.Done()
			return template.Identity{}, ctx.Err()
		}}
		g := generate.New(nil, zaptest.NewLogger(t),
			generate.WithIdentity(r),
			generate.WithIdentityTimeout(50*time.Millisecond),
		)

		done := make(chan generate.Result, 1)
		go func() {
			res, _ := g.Generate(context.Background(), generate.Request{Input: "hello", Tone: "formal"})
			done <- res
		}()

		select {
		case res := <-done:
			assert.True(t, res.Fallback)
			assert.True(t, strings.HasSuffix(res.Email, "Best regards,\n"+template.SenderPlaceholder))
		case <-time.After(2 * time.Second):
			t.Fatal("Generate blocked on identity lookup")
		}
	})
}

func TestGenerateConcurrent(t *testing.T) {
	d := &drafterMock{DraftFunc: func(_ context.Context, _ drafter.Request) (string, error) {
		return "", errors.New("unavailable")
	}}
	g := generate.New(d, zaptest.NewLogger(t))

	const n = 16
	results := make(chan generate.Result, n)
	for range n {
		go func() {
			res, _ := g.Generate(context.Background(), generate.Request{Input: "project update", Tone: "concise"})
			results <- res
		}()
	}

	first := <-results
	for range n - 1 {
		assert.Equal(t, first, <-results)
	}
	assert.Equal(t, int32(n), d.calls.Load())
}
