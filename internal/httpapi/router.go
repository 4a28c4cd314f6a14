package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const apiTimeout = 60 * time.Second

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	// MCP serves /mcp when set.
	MCP http.Handler
	// OAuth serves /oauth when set.
	OAuth http.Handler
}

// NewRouter builds the service router with the shared middleware stack.
func NewRouter(svc *EmailService, log *zap.Logger, opts Options) chi.Router {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.MethodNotAllowed(RestHandler(log, func(_ *http.Request) (any, error) {
		return nil, CodedErrorf(http.StatusMethodNotAllowed, "Method not allowed")
	}))
	r.NotFound(RestHandler(log, func(_ *http.Request) (any, error) {
		return nil, CodedErrorf(http.StatusNotFound, "Not found")
	}))

	r.Get("/healthz", RestHandler(log, func(_ *http.Request) (any, error) { return nil, nil }))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(apiTimeout))
		svc.AddRoutes(r)
	})

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}
	if opts.OAuth != nil {
		r.Handle("/oauth", opts.OAuth)
	}

	return r
}

// RequestLogger logs one line per request with zap.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("remote", r.RemoteAddr),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
