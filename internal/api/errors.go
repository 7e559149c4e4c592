package api

import (
	"net/http"

	"github.com/pkg/errors"

	"signature_go/internal/cloud"
	"signature_go/internal/ingestion"
	"signature_go/internal/pipeline"
	"signature_go/internal/validator"
	"signature_go/pkg/logger"
)

// errBadRequest marca falhas de decodificação e validação de campos
var errBadRequest = errors.New("requisição inválida")

// statusForError traduz erros do domínio para status HTTP
func statusForError(err error) int {
	var cloudErr *cloud.Error
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &cloudErr):
		return cloudErr.Status
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, validator.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, errBadRequest),
		errors.Is(err, validator.ErrInvalidRequest),
		errors.Is(err, ingestion.ErrTooManyPoints),
		errors.Is(err, ingestion.ErrEmptyStroke),
		errors.Is(err, ingestion.ErrUnknownPaddingStrategy),
		errors.Is(err, ingestion.ErrInvalidPoint),
		errors.Is(err, ingestion.ErrInvalidDuration),
		pipeline.IsInputError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondWithDomainError escolhe o status e registra falhas internas com a pilha
func (h *Handler) respondWithDomainError(w http.ResponseWriter, err error) int {
	code := statusForError(err)
	if code >= http.StatusInternalServerError {
		logger.Errorf("Erro ao processar requisição: %+v", err)
	} else {
		logger.Warnf("Requisição recusada (%d): %v", code, err)
	}
	h.respondWithError(w, code, err.Error())
	return code
}
