package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-admin-frontend/auth"
	"github.com/jrsteele09/go-admin-frontend/dashboard"
	"github.com/jrsteele09/go-admin-frontend/i18n"
	"github.com/jrsteele09/go-admin-frontend/internal/config"
	"github.com/jrsteele09/go-admin-frontend/server/loginsession"
	"github.com/jrsteele09/go-admin-frontend/token"
	"github.com/jrsteele09/go-admin-frontend/upstream"
	"github.com/jrsteele09/go-admin-frontend/users"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	renderer  Renderer
	bundle    *i18n.Bundle
	validator *auth.Validator
	signer    *token.SessionSigner
	limiter   *ipRateLimiter

	loginSessions loginsession.Repo
	auth          *auth.Service
	accounts      users.AccountRepo
	dashboard     *dashboard.Service
}

type Option func(*Server)

// WithRenderer replaces the HTML template renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

func New(cfg config.Config, loginSessionRepo loginsession.Repo, opts ...Option) (*Server, error) {
	if loginSessionRepo == nil {
		return nil, fmt.Errorf("[Server New] login session repo is required")
	}

	if cfg.GetSessionSecret() == config.DefaultSessionSecret && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("[Server New] session.secret must be set outside DEV")
	}

	client, err := upstream.NewClient(cfg.GetUpstreamBaseURL(), cfg.GetUpstreamTimeout())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create upstream client: %w", err)
	}

	signer, err := token.NewSessionSigner(cfg.GetSessionSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session signer: %w", err)
	}

	bundle, err := i18n.Load()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load translations: %w", err)
	}

	s := &Server{
		env:           cfg.GetEnv(),
		mux:           http.NewServeMux(),
		config:        cfg,
		bundle:        bundle,
		validator:     auth.NewValidator(),
		signer:        signer,
		limiter:       newIPRateLimiter(cfg.GetRateLimitPerSecond(), cfg.GetRateLimitBurst()),
		loginSessions: loginSessionRepo,
		auth:          auth.NewService(client),
		accounts:      users.NewService(client),
		dashboard:     dashboard.NewService(client),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		renderer, err := NewTemplateRenderer(bundle, cfg.GetAppName())
		if err != nil {
			return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
		}
		s.renderer = renderer
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered route patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

// Close stops background work started by the server.
func (s *Server) Close() {
	s.limiter.Stop()
}

func (s *Server) isDev() bool {
	return s.env == "DEV"
}

func (s *Server) logRoutes() {
	if !s.isDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
