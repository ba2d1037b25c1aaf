package server

import (
	"net/http"
	"time"

	"lead-crm-service/internal/adapter/gin/router"
	"lead-crm-service/internal/config"
	"lead-crm-service/internal/usecase/auth"
	"lead-crm-service/pkg/token"

	ginhandler "lead-crm-service/internal/adapter/gin/handler"

	"go.uber.org/zap"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the router mounted.
func New(
	cfg *config.Config,
	l *zap.Logger,
	authHandler *ginhandler.AuthHandler,
	leadHandler *ginhandler.LeadHandler,
	tokens *token.Manager,
	users auth.Repository,
) *Server {
	engine := router.SetupRouter(authHandler, leadHandler, tokens, users, l)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
