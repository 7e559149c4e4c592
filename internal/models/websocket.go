package models

import "time"

// Tipos de evento publicados no WebSocket
const (
	EventNormalization = "normalization"
	EventValidation    = "validation"
	EventRejection     = "rejection"
	EventStats         = "stats"
)

// WebSocketMessage representa a estrutura base de todas as mensagens WebSocket
type WebSocketMessage struct {
	Type      string      `json:"type"`            // Tipo da mensagem: "validation", "rejection", "stats", etc.
	Timestamp time.Time   `json:"timestamp"`       // Timestamp da mensagem
	Data      interface{} `json:"data,omitempty"`  // Dados adicionais específicos do tipo
	Error     string      `json:"error,omitempty"` // Mensagem de erro, se houver
}

// ProcessingEvent resume uma requisição processada, sem os pontos do traço
type ProcessingEvent struct {
	RequestID   string  `json:"requestId,omitempty"`
	Stage       string  `json:"stage"`
	RealLength  int     `json:"realLength"`
	NumPoints   int     `json:"numPoints"`
	ValidPoints int     `json:"validPoints,omitempty"`
	IsValid     *bool   `json:"isValid,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	DurationMs  float64 `json:"durationMs"`
	Reason      string  `json:"reason,omitempty"`
}

// ProcessingEventMessage é a mensagem publicada para cada requisição processada
type ProcessingEventMessage struct {
	WebSocketMessage
	Event ProcessingEvent `json:"event"`
}

// ProcessingStats acumula contadores desde o início do processo
type ProcessingStats struct {
	Normalized int64 `json:"normalized"`
	Validated  int64 `json:"validated"`
	Accepted   int64 `json:"accepted"`
	Rejected   int64 `json:"rejected"`
	Clients    int   `json:"clients"`
}

// StatsMessage é a resposta ao comando get_stats
type StatsMessage struct {
	WebSocketMessage
	Stats ProcessingStats `json:"stats"`
}

// CommandMessage é uma mensagem de comando do cliente para o servidor
type CommandMessage struct {
	Type   string      `json:"type"`             // Tipo de comando: "ping", "get_stats", etc.
	Params interface{} `json:"params,omitempty"` // Parâmetros adicionais
	ID     string      `json:"id,omitempty"`     // ID opcional para correlacionar solicitações/respostas
}

// ClientCommand representa um comando enviado pelo cliente
type ClientCommand struct {
	Command  string      `json:"command"`
	Params   interface{} `json:"params,omitempty"`
	ClientID string      `json:"-"` // Usado internamente, não enviado no JSON
}

// PingMessage representa um ping enviado pelo cliente
type PingMessage struct {
	WebSocketMessage
	Time int64 `json:"time"` // Timestamp em milissegundos
}

// PongMessage representa um pong enviado pelo servidor
type PongMessage struct {
	WebSocketMessage
	Time       int64 `json:"time"`       // Timestamp original do ping
	ServerTime int64 `json:"serverTime"` // Timestamp do servidor em milissegundos
}
