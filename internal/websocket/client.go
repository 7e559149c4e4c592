package websocket

import (
	"bytes"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"signature_go/internal/models"
	"signature_go/pkg/logger"
)

const (
	// Tempo permitido para escrever uma mensagem para o peer.
	writeWait = 10 * time.Second

	// Tempo permitido para ler a próxima mensagem do peer.
	pongWait = 60 * time.Second

	// Envia pings ao peer com esse intervalo. Deve ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Tamanho máximo da mensagem permitido.
	maxMessageSize = 64 * 1024

	// Tamanho do buffer de canal para mensagens de saída.
	sendBufferSize = 256
)

// Client representa uma conexão WebSocket individual
type Client struct {
	hub *Hub

	// Conexão WebSocket.
	conn *websocket.Conn

	// Buffer de mensagens para envio.
	send chan []byte

	// Protege send contra escrita após o fechamento
	sendMu sync.Mutex
	closed bool

	// ID único do cliente
	id string

	// Informações do cliente (IP, agente, etc.)
	userAgent string
	ipAddress string

	// Timestamp da conexão
	connectedAt time.Time
}

// newClient cria um novo cliente WebSocket
func newClient(hub *Hub, conn *websocket.Conn, userAgent, ipAddress string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		id:          uuid.New().String(),
		userAgent:   userAgent,
		ipAddress:   ipAddress,
		connectedAt: time.Now(),
	}
}

// enqueue coloca a mensagem na fila de saída; descarta se a fila estiver
// cheia ou o cliente já tiver sido fechado
func (c *Client) enqueue(message []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// close fecha a fila de saída uma única vez
func (c *Client) close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump bombeia mensagens do WebSocket para o hub.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				logger.Errorf("Erro de leitura WebSocket: %v", err)
			}
			break
		}

		c.processIncomingMessage(message)
	}
}

// writePump bombeia mensagens do hub para a conexão WebSocket.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// O hub fechou o canal.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Adicionar mensagens na fila ao escritor atual
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processIncomingMessage processa uma mensagem recebida do cliente
func (c *Client) processIncomingMessage(message []byte) {
	var cmd models.CommandMessage
	decoder := json.NewDecoder(bytes.NewReader(message))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&cmd); err != nil {
		logger.Errorf("Erro ao decodificar mensagem do cliente %s: %v", c.id, err)
		c.sendErrorMessage("invalid_format", "Formato de mensagem inválido")
		return
	}

	switch cmd.Type {
	case "ping":
		c.handlePing(cmd)
	default:
		// Encaminhar comando para o hub processar
		select {
		case c.hub.commands <- models.ClientCommand{Command: cmd.Type, Params: cmd.Params, ClientID: c.id}:
		default:
			c.sendErrorMessage("busy", "Servidor ocupado, tente novamente")
		}
	}
}

// handlePing processa comandos de ping e envia um pong
func (c *Client) handlePing(cmd models.CommandMessage) {
	var pingTime int64
	if params, ok := cmd.Params.(map[string]interface{}); ok {
		if timeVal, ok := params["time"].(float64); ok {
			pingTime = int64(timeVal)
		}
	}

	if jsonMsg, err := SerializeMessage(CreatePongResponse(pingTime)); err == nil {
		c.enqueue(jsonMsg)
	}
}

// sendErrorMessage envia uma mensagem de erro para o cliente
func (c *Client) sendErrorMessage(code string, message string) {
	if jsonMsg, err := SerializeMessage(NewErrorMessage(message, code)); err == nil {
		c.enqueue(jsonMsg)
	}
}
