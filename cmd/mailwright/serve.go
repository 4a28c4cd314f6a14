package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/mailwright/internal/auth"
	"github.com/hal9000y/mailwright/internal/config"
	"github.com/hal9000y/mailwright/internal/drafter"
	"github.com/hal9000y/mailwright/internal/generate"
	"github.com/hal9000y/mailwright/internal/gservice"
	"github.com/hal9000y/mailwright/internal/httpapi"
	"github.com/hal9000y/mailwright/internal/tool"
)

const shutdownTimeout = 3 * time.Second

type serveOptions struct {
	httpAddr       string
	oauthTokenFile string
	oauthURL       string
	logFile        string
	stdio          bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and MCP tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", "", "HTTP server listen addr (overrides HTTP_ADDR)")
	cmd.Flags().StringVar(&opts.oauthTokenFile, "oauth-token-file", "./data/mailwright-token.json", "Path to cache google oauth token, empty to avoid storing")
	cmd.Flags().StringVar(&opts.oauthURL, "oauth-url", "", "OAuth redirect URL")
	cmd.Flags().BoolVar(&opts.stdio, "stdio", false, "Enable stdio transport for MCP (disables stdout logging)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Path to log file (otherwise logs to stdout)")

	return cmd
}

func runServe(ctx context.Context, root *rootOptions, opts serveOptions) error {
	cfg, err := config.Load(root.envFile)
	if err != nil {
		return fmt.Errorf("config.Load failed: %w", err)
	}
	if opts.httpAddr != "" {
		cfg.HTTPAddr = opts.httpAddr
	}

	defaultOut := "stdout"
	if opts.stdio {
		defaultOut = ""
	}
	log, err := newLogger(cfg.LogDevelopment, opts.logFile, defaultOut)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("net.Listen failed: %w", err)
	}

	d, err := drafter.New(ctx, cfg.Drafter())
	if err != nil {
		log.Warn("drafter disabled, every email uses templates", zap.Error(err))
		d = nil
	}

	genOpts := []generate.Option{generate.WithTimeout(cfg.LLMTimeout)}
	routerOpts := httpapi.Options{AllowedOrigins: cfg.CORSAllowedOrigins}

	if cfg.OAuthEnabled() {
		oauthCfg := newOAuthConfig(cfg, ln.Addr().String(), opts.oauthURL)

		tok, err := auth.NewToken(oauthCfg, opts.oauthTokenFile, log)
		if err != nil {
			return fmt.Errorf("auth.NewToken failed: %w", err)
		}
		defer func() {
			log.Info("persisting token if exists")
			if err := tok.Persist(); err != nil {
				log.Error("tok.Persist failed", zap.Error(err))
			}
		}()

		routerOpts.OAuth = auth.NewHTTPHandler(tok, log)
		identity := gservice.NewIdentityCache(gservice.NewGmail(tok), cfg.IdentityCacheTTL)
		genOpts = append(genOpts,
			generate.WithIdentity(identity),
			generate.WithIdentityTimeout(cfg.IdentityTimeout),
		)

		if _, err := tok.OAuthToken(); errors.Is(err, auth.ErrTokenNotSet) {
			openBrowser(log, oauthCfg.RedirectURL)
		}
	}

	gen := generate.New(d, log, genOpts...)

	mcpServer := tool.NewServer(gen)
	routerOpts.MCP = mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return mcpServer }, nil)

	srv := &http.Server{
		Handler:           httpapi.NewRouter(httpapi.NewEmailService(gen, log), log, routerOpts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", zap.String("addr", ln.Addr().String()))

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.Serve failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("srv.Shutdown failed", zap.Error(err))
		}
		return nil
	})

	if opts.stdio {
		g.Go(func() error {
			defer cancel()
			log.Info("starting stdio transport")

			err := mcpServer.Run(gctx, &mcp.StdioTransport{})
			log.Info("stdio transport stopped")
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("mcpServer.Run failed: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}

func newOAuthConfig(cfg config.Config, lnAddr, oauthURL string) *oauth2.Config {
	redirect := fmt.Sprintf("http://%s/oauth", lnAddr)
	if oauthURL != "" {
		redirect = oauthURL
	}

	return &oauth2.Config{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		RedirectURL:  redirect,
		Scopes:       []string{gmail.GmailReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

func openBrowser(log *zap.Logger, url string) {
	url = fmt.Sprintf("%s?redirect=1", url)
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}

	if err != nil {
		log.Warn("could not open browser automatically, please open the link manually",
			zap.String("url", url),
			zap.Error(err),
		)
	}
}
