package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fitcoach/fitcoach-be/internal/coach"
	"github.com/fitcoach/fitcoach-be/internal/config"
	"github.com/fitcoach/fitcoach-be/internal/http/handlers"
	"github.com/fitcoach/fitcoach-be/internal/middleware"
	"github.com/fitcoach/fitcoach-be/internal/session"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, sessions *session.Service, generator coach.Generator) *Server {
	mux := http.NewServeMux()

	health := handlers.NewHealthHandler(time.Now(), cfg.Environment, generator)
	mux.HandleFunc("GET /{$}", health.HandleRoot)
	mux.HandleFunc("GET /health", health.HandleHealth)
	mux.HandleFunc("GET /health/ready", health.HandleReady)
	mux.HandleFunc("GET /health/live", health.HandleLive)

	authHandler := handlers.NewAuthHandler(sessions)
	mux.HandleFunc("POST /auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)
	mux.Handle("POST /auth/logout", authed(sessions, authHandler.HandleLogout))

	chat := handlers.NewChatHandler(sessions)
	mux.Handle("POST /chat", authed(sessions, chat.HandleChat))
	mux.Handle("GET /chat/history/{user_id}", authed(sessions, chat.HandleHistory))

	profile := handlers.NewProfileHandler(sessions)
	mux.Handle("GET /profile", authed(sessions, profile.HandleGetProfile))
	mux.Handle("PUT /profile", authed(sessions, profile.HandleUpdateProfile))
	mux.Handle("GET /stats", authed(sessions, profile.HandleStats))

	handler := middleware.CORS(cfg.CORSOrigins, middleware.RequestLogger(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the configured middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

func authed(sessions *session.Service, handler http.HandlerFunc) http.Handler {
	return middleware.Auth(sessions, handler)
}
