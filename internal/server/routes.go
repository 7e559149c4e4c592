package server

import (
	"encoding/json"
	"net/http"
	"time"

	"signature_go/internal/api"
	"signature_go/internal/auth"
	"signature_go/internal/websocket"
	"signature_go/pkg/utils"
)

// setupRoutes configura todas as rotas do servidor
func (s *Server) setupRoutes() {
	wsHandler := websocket.NewHandler(s.wsHub)

	apiHandler := api.NewHandler(s.config, api.Dependencies{
		Forwarder: s.forwarder,
		Service:   s.service,
		Events:    s.wsHub,
		Services:  s.serviceStates,
	})

	router := api.NewRouter(apiHandler, api.RouterOptions{
		Role:             s.config.Server.Role,
		MaxRequestSize:   s.config.Server.MaxRequestSize,
		NormalizeLimiter: s.normalizeLimiter,
		NormalizeLimit:   s.config.RateLimit.NormalizeRequests,
		ValidateLimiter:  s.validateLimiter,
		ValidateLimit:    s.config.RateLimit.ValidateRequests,
		Window:           s.config.RateLimit.Window,
		Credentials: auth.BasicAuth{
			Username: s.config.Validator.Username,
			Password: s.config.Validator.Password,
		},
		JWT: s.jwtVerifier,
	})
	router.Setup()

	mux := router.Mux()

	// WebSocket
	mux.Handle("/ws", wsHandler).Methods(http.MethodGet)
	mux.HandleFunc("/ws/health", wsHandler.GetHealthHandler()).Methods(http.MethodGet)

	// Informações do servidor
	mux.HandleFunc("/info", s.infoHandler).Methods(http.MethodGet)

	s.handler = router.Handler()
}

// serviceStates informa o estado de cada componente para /health
func (s *Server) serviceStates() map[string]string {
	states := map[string]string{
		"websocket": "ok",
		"redis":     "disabled",
		"discovery": "disabled",
	}

	if s.config.Redis.Enabled {
		states["redis"] = "ok"
		if !s.redisClient.IsConnected() {
			// Sem Redis os limitadores seguem em memória
			states["redis"] = "fallback"
		}
	}

	if s.discoveryService != nil {
		states["discovery"] = "ok"
		if !s.discoveryService.IsRunning() {
			states["discovery"] = "offline"
		}
	}

	if s.forwarder != nil && s.service == nil {
		states["validator"] = s.config.Cloud.Endpoint
	}

	return states
}

// infoHandler retorna informações básicas sobre o servidor
func (s *Server) infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	info := s.GetServerInfo()

	response := map[string]interface{}{
		"name":        "Signature Validation Service",
		"version":     info.Version,
		"role":        info.Role,
		"ip":          info.IP,
		"port":        info.Port,
		"websocket":   info.WebSocketURL,
		"api":         info.APIURL,
		"startTime":   utils.FormatDateTimeMs(info.StartTime),
		"uptime":      utils.FormatDuration(time.Since(info.StartTime)),
		"connections": info.Connections,
		"stats":       s.wsHub.Stats(),
	}

	if s.service != nil {
		response["validator"] = s.service.Stats()
	}

	json.NewEncoder(w).Encode(response)
}
