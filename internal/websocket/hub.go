package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"signature_go/internal/models"
	"signature_go/pkg/logger"
)

// Hub gerencia todas as conexões WebSocket e distribuição de eventos
type Hub struct {
	// Clientes registrados
	clients map[*Client]bool

	// Canal para registrar clientes
	register chan *Client

	// Canal para desregistrar clientes
	unregister chan *Client

	// Canal para mensagens de broadcast
	broadcast chan []byte

	// Comando recebido dos clientes
	commands chan models.ClientCommand

	// Mutex para operações concorrentes no mapa de clientes
	mu sync.RWMutex

	// Contadores de processamento
	normalized atomic.Int64
	validated  atomic.Int64
	accepted   atomic.Int64
	rejected   atomic.Int64

	// Estatísticas de mensagens
	stats struct {
		totalMessages      int64
		totalClients       int64
		messagesPerSecond  float64
		lastStatsReset     time.Time
		messagesSinceReset int64
	}
	statsLock sync.Mutex

	// Sinal para encerramento do hub
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub cria uma nova instância do Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		commands:   make(chan models.ClientCommand, 100),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	h.stats.lastStatsReset = time.Now()

	return h
}

// Run inicia o loop principal do hub para gerenciar clientes e mensagens
func (h *Hub) Run() {
	logger.Info("Iniciando WebSocket Hub")
	defer close(h.done)

	// Ticker para estatísticas periódicas
	statsTicker := time.NewTicker(30 * time.Second)
	defer statsTicker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			logger.Info("Encerrando WebSocket Hub")
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()

			logger.Infof("Novo cliente WebSocket conectado. ID: %s. Total: %d", client.id, clientCount)

			h.statsLock.Lock()
			h.stats.totalClients++
			h.statsLock.Unlock()

			h.sendWelcome(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.statsLock.Lock()
			h.stats.totalMessages++
			h.stats.messagesSinceReset++
			h.statsLock.Unlock()

			h.mu.RLock()
			deadClients := make([]*Client, 0, 4)
			for client := range h.clients {
				if !client.enqueue(message) {
					// Canal do cliente está cheio, marcar para desconexão
					deadClients = append(deadClients, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range deadClients {
				h.removeClient(client)
			}

		case cmd := <-h.commands:
			h.handleClientCommand(cmd)

		case <-statsTicker.C:
			h.statsLock.Lock()
			elapsed := time.Since(h.stats.lastStatsReset).Seconds()
			if elapsed > 0 {
				h.stats.messagesPerSecond = float64(h.stats.messagesSinceReset) / elapsed
			}
			h.stats.messagesSinceReset = 0
			h.stats.lastStatsReset = time.Now()
			mps := h.stats.messagesPerSecond
			total := h.stats.totalMessages
			h.statsLock.Unlock()

			logger.Debugf("Estatísticas WebSocket: %d clientes, %.2f msgs/seg, total: %d mensagens",
				h.ClientCount(), mps, total)
		}
	}
}

// BroadcastEvent atualiza os contadores e publica o evento para todos os clientes
func (h *Hub) BroadcastEvent(event models.ProcessingEvent) {
	switch event.Stage {
	case models.EventNormalization:
		h.normalized.Add(1)
	case models.EventValidation:
		h.validated.Add(1)
		if event.IsValid != nil && *event.IsValid {
			h.accepted.Add(1)
		} else {
			h.rejected.Add(1)
		}
	case models.EventRejection:
		h.rejected.Add(1)
	}

	jsonMessage, err := SerializeMessage(NewEventMessage(event))
	if err != nil {
		logger.Error("Erro ao serializar evento de processamento", err)
		return
	}

	select {
	case h.broadcast <- jsonMessage:
	default:
		logger.Warn("Fila de broadcast cheia, evento descartado")
	}
}

// Stats retorna os contadores acumulados
func (h *Hub) Stats() models.ProcessingStats {
	return models.ProcessingStats{
		Normalized: h.normalized.Load(),
		Validated:  h.validated.Load(),
		Accepted:   h.accepted.Load(),
		Rejected:   h.rejected.Load(),
		Clients:    h.ClientCount(),
	}
}

// handleClientCommand processa comandos recebidos dos clientes
func (h *Hub) handleClientCommand(cmd models.ClientCommand) {
	logger.Debugf("Comando recebido do cliente %s: %s", cmd.ClientID, cmd.Command)

	client := h.getClientByID(cmd.ClientID)
	if client == nil {
		return
	}

	switch cmd.Command {
	case "get_stats":
		if jsonMsg, err := SerializeMessage(NewStatsMessage(h.Stats())); err == nil {
			client.enqueue(jsonMsg)
		}
	default:
		logger.Warnf("Comando desconhecido: %s", cmd.Command)
		client.sendErrorMessage("unknown_command", "Comando desconhecido: "+cmd.Command)
	}
}

// sendWelcome envia a mensagem inicial para um novo cliente
func (h *Hub) sendWelcome(client *Client) {
	welcome := models.WebSocketMessage{
		Type:      "welcome",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message":  "Conectado ao serviço de validação de assinaturas",
			"clientId": client.id,
		},
	}

	if jsonMsg, err := SerializeMessage(welcome); err == nil {
		client.enqueue(jsonMsg)
	}
}

// Shutdown encerra graciosamente o hub
func (h *Hub) Shutdown() {
	h.cancel()
	select {
	case <-h.done:
	case <-time.After(time.Second):
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.close()
		logger.Infof("Cliente WebSocket desconectado. ID: %s (%s), conectado por %v. Total: %d",
			client.id, client.ipAddress, time.Since(client.connectedAt).Round(time.Second), len(h.clients))
	}
}

// closeAllClients fecha todas as conexões dos clientes
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger.Info("Fechando todas as conexões de clientes WebSocket")
	for client := range h.clients {
		client.close()
		delete(h.clients, client)
	}
}

// ClientCount retorna o número atual de clientes conectados
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// getClientByID retorna um cliente pelo seu ID
func (h *Hub) getClientByID(clientID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.id == clientID {
			return client
		}
	}
	return nil
}
