package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"figrelay/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr     string
	passcode string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithPasscode sets the shared webhook passcode
func WithPasscode(passcode string) Option {
	return func(c *config) {
		c.passcode = passcode
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	notifyUC interfaces.NotifyUseCase,
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

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Webhook endpoint
	webhookHandler := NewWebhookHandler(cfg.passcode, notifyUC)
	router.Post("/hooks/figma", webhookHandler.Handle)

	// Sent message inspection and retraction
	messagesHandler := NewMessagesHandler(notifyUC)
	router.Route("/api/messages", func(r chi.Router) {
		r.Get("/", messagesHandler.List)
		r.Get("/{fingerprint}", messagesHandler.Get)
		r.Delete("/{fingerprint}", messagesHandler.Retract)
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
