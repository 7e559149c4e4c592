package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"signature_go/internal/auth"
	"signature_go/internal/config"
	"signature_go/internal/ratelimit"
	"signature_go/pkg/logger"
)

// RouterOptions configura a proteção das rotas
type RouterOptions struct {
	Role           string
	MaxRequestSize int64

	NormalizeLimiter ratelimit.Limiter
	NormalizeLimit   int
	ValidateLimiter  ratelimit.Limiter
	ValidateLimit    int
	Window           time.Duration

	Credentials auth.BasicAuth
	JWT         *auth.JWTVerifier
}

// Router gerencia as rotas da API
type Router struct {
	handler     *Handler
	mux         *mux.Router
	opts        RouterOptions
	middlewares []Middleware
}

// NewRouter cria um novo router para a API
func NewRouter(handler *Handler, opts RouterOptions) *Router {
	// Configurar middlewares padrão
	middlewares := []Middleware{
		RecoveryMiddleware,
		RequestIDMiddleware,
		LoggingMiddleware,
		CorsMiddleware,
	}

	return &Router{
		handler:     handler,
		mux:         mux.NewRouter(),
		opts:        opts,
		middlewares: middlewares,
	}
}

// Setup configura as rotas do papel atual
func (r *Router) Setup() {
	r.mux.HandleFunc("/health", r.handler.Health).Methods(http.MethodGet)
	r.mux.HandleFunc("/", r.handler.Root).Methods(http.MethodGet)

	size := RequestSizeMiddleware(r.opts.MaxRequestSize)

	if r.opts.Role == config.RoleGateway || r.opts.Role == config.RoleStandalone {
		normalize := Chain(
			JWTMiddleware(r.opts.JWT),
			RateLimitMiddleware(r.opts.NormalizeLimiter, r.opts.NormalizeLimit, r.opts.Window),
			size,
		)
		r.mux.Handle("/normalize", normalize(http.HandlerFunc(r.handler.Normalize))).Methods(http.MethodPost)
	}

	if r.opts.Role == config.RoleValidator || r.opts.Role == config.RoleStandalone {
		protected := Chain(
			BasicAuthMiddleware(r.opts.Credentials),
			RateLimitMiddleware(r.opts.ValidateLimiter, r.opts.ValidateLimit, r.opts.Window),
			size,
		)

		biometric := r.mux.PathPrefix("/api/biometric").Subrouter()
		biometric.Handle("/validate", protected(http.HandlerFunc(r.handler.Validate))).Methods(http.MethodPost)
		biometric.Handle("/preprocess", protected(http.HandlerFunc(r.handler.Preprocess))).Methods(http.MethodPost)
	}

	r.mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "Rota não encontrada")
	})
	r.mux.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Método não permitido")
	})

	logger.Infof("API configurada para o papel %s", r.opts.Role)
}

// Mux expõe o roteador para rotas adicionais (WebSocket)
func (r *Router) Mux() *mux.Router {
	return r.mux
}

// Handler retorna o handler HTTP final com todos os middlewares aplicados
func (r *Router) Handler() http.Handler {
	return Chain(r.middlewares...)(r.mux)
}

// AddMiddleware adiciona um novo middleware
func (r *Router) AddMiddleware(middleware Middleware) {
	r.middlewares = append(r.middlewares, middleware)
}
