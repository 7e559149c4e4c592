package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"signature_go/internal/cloud"
	"signature_go/internal/config"
	"signature_go/internal/ingestion"
	"signature_go/internal/models"
	"signature_go/internal/pipeline"
	"signature_go/internal/validator"
	"signature_go/pkg/logger"
	"signature_go/pkg/utils"
)

// Version é a versão anunciada pela API
const Version = "1.0.0"

// EventPublisher recebe um resumo de cada requisição processada
type EventPublisher interface {
	BroadcastEvent(event models.ProcessingEvent)
}

// Dependencies reúne os componentes usados pelos handlers. Forwarder é nil
// no papel validator; Service é nil no papel gateway.
type Dependencies struct {
	Forwarder cloud.Validator
	Service   *validator.Service
	Events    EventPublisher
	// Services informa o estado dos componentes para /health
	Services func() map[string]string
}

// Handler contém os handlers HTTP para a API
type Handler struct {
	role      string
	ingestion config.IngestionConfig
	deps      Dependencies
	startTime time.Time
}

// NewHandler cria um novo handler de API
func NewHandler(cfg *config.Config, deps Dependencies) *Handler {
	return &Handler{
		role:      cfg.Server.Role,
		ingestion: cfg.Ingestion,
		deps:      deps,
		startTime: time.Now(),
	}
}

// Normalize recebe o traço do cliente, completa-o e encaminha ao validador
func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := cloud.RequestIDFromContext(r.Context())
	log := logger.With("request_id", requestID)

	var req models.NormalizationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.reject(w, requestID, start, 0, err)
		return
	}

	if _, err := utils.ParseTimestamp(req.Timestamp); err != nil {
		h.reject(w, requestID, start, len(req.StrokePoints), errors.Wrap(errBadRequest, err.Error()))
		return
	}

	log.Infof("Recebido traço com %d pontos, duração: %dms", len(req.StrokePoints), req.StrokeDurationMs)

	normalized, err := ingestion.Normalize(req.StrokePoints, req.StrokeDurationMs, h.ingestion)
	if err != nil {
		h.reject(w, requestID, start, len(req.StrokePoints), err)
		return
	}

	h.publish(models.ProcessingEvent{
		RequestID:  requestID,
		Stage:      models.EventNormalization,
		RealLength: normalized.RealLength,
		NumPoints:  len(normalized.Points),
		DurationMs: elapsedMs(start),
	})

	log.Infof("Traço normalizado: %d → %d pontos", normalized.RealLength, len(normalized.Points))

	features := normalized.Features
	mlResponse, err := h.deps.Forwarder.Validate(r.Context(), models.BiometricRequest{
		NormalizedStroke: normalized.Points,
		RealLength:       normalized.RealLength,
		PaddingStrategy:  normalized.Strategy,
		Features:         &features,
	})
	if err != nil {
		h.reject(w, requestID, start, len(normalized.Points), err)
		return
	}

	h.publishVerdict(requestID, start, normalized.RealLength, len(normalized.Points), mlResponse)

	h.respondWithJSON(w, http.StatusOK, models.NormalizationResponse{
		Status:           "success",
		Message:          "Dados biométricos normalizados e validados com sucesso",
		NormalizedStroke: normalized.Points,
		Features:         &features,
		MLResponse:       mlResponse,
	})
}

// Validate executa o pipeline e o classificador sobre um traço preenchido
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := cloud.RequestIDFromContext(r.Context())

	var req models.BiometricRequest
	if err := decodeJSON(r, &req); err != nil {
		h.reject(w, requestID, start, 0, err)
		return
	}

	response, err := h.deps.Service.Validate(r.Context(), req)
	if err != nil {
		h.reject(w, requestID, start, len(req.NormalizedStroke), err)
		return
	}

	h.publishVerdict(requestID, start, req.RealLength, len(req.NormalizedStroke), response)
	h.respondWithJSON(w, http.StatusOK, response)
}

// Preprocess devolve o tensor, a máscara e o rastro do pipeline
func (h *Handler) Preprocess(w http.ResponseWriter, r *http.Request) {
	var req models.BiometricRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithDomainError(w, err)
		return
	}

	result, err := h.deps.Service.Preprocess(r.Context(), req)
	if err != nil {
		h.respondWithDomainError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, models.PreprocessResponse{
		Features: result.Features.Rows(),
		Mask:     result.Mask,
		Columns:  pipeline.ColumnNames,
		Trace:    result.Trace,
	})
}

// Health responde com o estado do processo e dos componentes
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{}
	if h.deps.Services != nil {
		services = h.deps.Services()
	}

	status := "healthy"
	for _, state := range services {
		if state == "offline" {
			status = "degraded"
		}
	}

	h.respondWithJSON(w, http.StatusOK, models.HealthResponse{
		Status:      status,
		Version:     Version,
		Role:        h.role,
		ModelLoaded: h.deps.Service != nil,
		Timestamp:   time.Now(),
		Services:    services,
	})
}

// Root descreve o serviço e os endpoints disponíveis no papel atual
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	endpoints := []string{"GET /health", "GET /ws", "GET /ws/health"}
	if h.deps.Forwarder != nil {
		endpoints = append(endpoints, "POST /normalize")
	}
	if h.deps.Service != nil {
		endpoints = append(endpoints, "POST /api/biometric/validate", "POST /api/biometric/preprocess")
	}

	response := map[string]interface{}{
		"service":   "Signature Validation Service",
		"version":   Version,
		"role":      h.role,
		"uptime":    utils.FormatDuration(time.Since(h.startTime)),
		"endpoints": endpoints,
	}
	if h.deps.Service != nil {
		response["model_version"] = h.deps.Service.ModelVersion()
	}

	h.respondWithJSON(w, http.StatusOK, response)
}

// reject responde com o erro e publica o evento de rejeição
func (h *Handler) reject(w http.ResponseWriter, requestID string, start time.Time, numPoints int, err error) {
	h.respondWithDomainError(w, err)
	h.publish(models.ProcessingEvent{
		RequestID:  requestID,
		Stage:      models.EventRejection,
		NumPoints:  numPoints,
		DurationMs: elapsedMs(start),
		Reason:     err.Error(),
	})
}

func (h *Handler) publishVerdict(requestID string, start time.Time, realLength, numPoints int, resp *models.BiometricResponse) {
	event := models.ProcessingEvent{
		RequestID:  requestID,
		Stage:      models.EventValidation,
		RealLength: realLength,
		NumPoints:  numPoints,
		IsValid:    &resp.IsValid,
		Confidence: resp.Confidence,
		DurationMs: elapsedMs(start),
	}
	if resp.Details != nil {
		event.ValidPoints = resp.Details.Preprocessing.ValidPoints
	}
	h.publish(event)
}

func (h *Handler) publish(event models.ProcessingEvent) {
	if h.deps.Events != nil {
		h.deps.Events.BroadcastEvent(event)
	}
}

// decodeJSON lê o corpo; erros de tamanho são preservados para virar 413
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.WithStack(err)
		}
		return errors.Wrap(errBadRequest, fmt.Sprintf("JSON inválido: %v", err))
	}
	return nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

// respondWithError responde com erro em formato JSON
func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, models.ErrorResponse{Error: message})
}

// respondWithJSON responde com JSON
func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("Erro ao codificar resposta JSON: %v", err)
	}
}
