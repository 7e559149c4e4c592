package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"signature_go/internal/auth"
	"signature_go/internal/cloud"
	"signature_go/internal/models"
	"signature_go/internal/ratelimit"
	"signature_go/pkg/logger"
)

// Middleware representa uma função de middleware HTTP
type Middleware func(http.Handler) http.Handler

// Chain combina múltiplos middlewares em uma única função
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// LoggingMiddleware registra informações sobre requisições HTTP
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With("request_id", cloud.RequestIDFromContext(r.Context()))

		log.Debugf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)

		// Criar um wrapper para o ResponseWriter para capturar o status code
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Infof("%d %s %s %s (%.3fs)", rw.statusCode, r.Method, r.URL.Path, r.RemoteAddr, duration.Seconds())
	})
}

// RecoveryMiddleware recupera de panics na aplicação
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorf("Panic capturado: %v", err)
				writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// CorsMiddleware adiciona cabeçalhos CORS à resposta
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware propaga ou gera o X-Request-ID
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		next.ServeHTTP(w, r.WithContext(cloud.WithRequestID(r.Context(), id)))
	})
}

// RequestSizeMiddleware recusa corpos maiores que limit bytes
func RequestSizeMiddleware(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				logger.Warnf("Corpo de %d bytes recusado de %s", r.ContentLength, ratelimit.ClientIdentifier(r))
				writeError(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("Requisição muito grande: máximo %d bytes", limit))
				return
			}

			// Corpos sem Content-Length são cortados na leitura
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware aplica a janela deslizante por cliente. Falhas do
// limitador deixam a requisição passar.
func RateLimitMiddleware(limiter ratelimit.Limiter, limit int, window time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ratelimit.ClientIdentifier(r)

			allowed, err := limiter.Allow(r.Context(), id)
			if err != nil {
				logger.Errorf("Erro no rate limit para %s: %v", id, err)
				allowed = true
			}

			if !allowed {
				logger.Warnf("Limite de requisições excedido para %s", id)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				writeError(w, http.StatusTooManyRequests,
					fmt.Sprintf("Limite de requisições excedido: máximo %d por %v", limit, window))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BasicAuthMiddleware exige as credenciais do validador
func BasicAuthMiddleware(credentials auth.BasicAuth) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !credentials.Check(r) {
				logger.Warnf("Credenciais inválidas de %s", ratelimit.ClientIdentifier(r))
				w.Header().Set("WWW-Authenticate", `Basic realm="signature"`)
				writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// JWTMiddleware exige um token Bearer válido quando o verificador existe
func JWTMiddleware(verifier *auth.JWTVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.BearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Token ausente")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Warnf("Token recusado de %s: %v", ratelimit.ClientIdentifier(r), err)
				writeError(w, http.StatusUnauthorized, "Token inválido")
				return
			}

			logger.Debugf("Token aceito para %s", claims.Subject)
			next.ServeHTTP(w, r)
		})
	}
}

// writeError escreve o corpo de erro padrão fora de um Handler
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: message})
}

// responseWriter é um wrapper para http.ResponseWriter que captura o status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// newResponseWriter cria um novo responseWriter
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

// WriteHeader implementa a interface http.ResponseWriter
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack permite o upgrade para WebSocket através do wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("ResponseWriter não suporta hijack")
	}
	return hijacker.Hijack()
}
