package http

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/relnote/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	triggerSecret string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithTriggerSecret requires a JWT signed with secret on every /api request
func WithTriggerSecret(secret string) Option {
	return func(c *config) {
		c.triggerSecret = secret
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	releaseNoteUC interfaces.ReleaseNoteUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	releaseNoteHandler, err := NewReleaseNoteHandler(ctx, releaseNoteUC)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)

	// Health check
	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Use(RecoverAsBadRequest)
		if cfg.triggerSecret != "" {
			r.Use(TriggerAuth(cfg.triggerSecret))
		}
		r.Post("/releasenotes", releaseNoteHandler.Generate)
		r.Get("/releasenotes/{name}", releaseNoteHandler.Fetch)
		r.Get("/generations/{id}", releaseNoteHandler.Generation)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}

// captureError reports err to the request's Sentry hub, if any
func captureError(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	}
}
