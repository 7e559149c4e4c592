package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"signature_go/internal/ratelimit"
	"signature_go/pkg/logger"
)

// Upgrader específico para WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// Handler gerencia conexões WebSocket
type Handler struct {
	hub *Hub
}

// NewHandler cria um novo gerenciador de WebSocket
func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
	}
}

// ServeHTTP implementa a interface http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.HandleWebSocket(w, r)
}

// HandleWebSocket gerencia requisições WebSocket
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("Erro ao fazer upgrade para WebSocket: %v", err)
		return
	}

	userAgent := r.UserAgent()
	ipAddress := ratelimit.ClientIdentifier(r)

	logger.Infof("Nova conexão WebSocket de %s (%s)", ipAddress, userAgent)

	client := newClient(h.hub, conn, userAgent, ipAddress)

	select {
	case h.hub.register <- client:
	case <-h.hub.ctx.Done():
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// checkOrigin verifica a origem da requisição WebSocket
func checkOrigin(r *http.Request) bool {
	// O stream só publica resumos sem pontos do traço
	return true
}

// GetHealthHandler retorna um handler para verificação de saúde do WebSocket
func (h *Handler) GetHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		status := struct {
			Status    string    `json:"status"`
			Clients   int       `json:"clients"`
			Timestamp time.Time `json:"timestamp"`
		}{
			Status:    "ok",
			Clients:   h.hub.ClientCount(),
			Timestamp: time.Now(),
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	}
}
