package websocket

import (
	"encoding/json"
	"time"

	"signature_go/internal/models"
)

// Funções utilitárias para criação e processamento de mensagens WebSocket

// NewEventMessage cria a mensagem publicada para uma requisição processada
func NewEventMessage(event models.ProcessingEvent) *models.ProcessingEventMessage {
	return &models.ProcessingEventMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      event.Stage,
			Timestamp: time.Now(),
		},
		Event: event,
	}
}

// NewStatsMessage cria a resposta ao comando get_stats
func NewStatsMessage(stats models.ProcessingStats) *models.StatsMessage {
	return &models.StatsMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      models.EventStats,
			Timestamp: time.Now(),
		},
		Stats: stats,
	}
}

// NewErrorMessage cria uma nova mensagem de erro
func NewErrorMessage(message string, errorCode string) models.WebSocketMessage {
	return models.WebSocketMessage{
		Type:      "error",
		Timestamp: time.Now(),
		Error:     message,
		Data: map[string]string{
			"code": errorCode,
		},
	}
}

// CreatePongResponse cria uma resposta para um ping do cliente
func CreatePongResponse(pingTime int64) *models.PongMessage {
	return &models.PongMessage{
		WebSocketMessage: models.WebSocketMessage{
			Type:      "pong",
			Timestamp: time.Now(),
		},
		Time:       pingTime,
		ServerTime: time.Now().UnixMilli(),
	}
}

// SerializeMessage serializa uma mensagem para JSON
func SerializeMessage(message interface{}) ([]byte, error) {
	return json.Marshal(message)
}

// ParseClientCommand analisa um comando recebido do cliente
func ParseClientCommand(data []byte) (models.CommandMessage, error) {
	var command models.CommandMessage
	err := json.Unmarshal(data, &command)
	return command, err
}
