// Package ingestion completa traços curtos até o tamanho mínimo aceito pelo
// validador e resume suas características.
package ingestion

import (
	"github.com/pkg/errors"

	"signature_go/internal/config"
	"signature_go/internal/models"
	"signature_go/pkg/logger"
)

var (
	// ErrTooManyPoints indica traço maior que o máximo configurado
	ErrTooManyPoints = errors.New("traço excede o número máximo de pontos")

	// ErrEmptyStroke indica traço sem pontos
	ErrEmptyStroke = errors.New("traço sem pontos")

	// ErrUnknownPaddingStrategy indica estratégia de preenchimento não suportada
	ErrUnknownPaddingStrategy = errors.New("estratégia de preenchimento desconhecida")

	// ErrInvalidDuration indica stroke_duration_ms negativo
	ErrInvalidDuration = errors.New("duração do traço inválida")

	// ErrInvalidPoint indica amostra fora dos limites (t negativo ou pressão fora de [0, 1])
	ErrInvalidPoint = errors.New("ponto inválido")
)

// Result é o traço pronto para envio ao validador
type Result struct {
	Points     []models.StrokePoint
	RealLength int
	// Strategy fica vazio quando nenhum ponto foi acrescentado
	Strategy string
	Features models.StrokeFeatures
}

// Normalize valida o traço, completa-o até cfg.MinStrokePoints e calcula o resumo
func Normalize(points []models.StrokePoint, durationMs int64, cfg config.IngestionConfig) (*Result, error) {
	n := len(points)
	if n == 0 {
		return nil, errors.WithStack(ErrEmptyStroke)
	}
	if durationMs < 0 {
		return nil, errors.Wrapf(ErrInvalidDuration, "%dms", durationMs)
	}
	if n > cfg.MaxStrokePoints {
		return nil, errors.Wrapf(ErrTooManyPoints, "%d pontos, máximo %d", n, cfg.MaxStrokePoints)
	}
	for i, p := range points {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(ErrInvalidPoint, "ponto %d: %v", i, err)
		}
	}

	result := &Result{RealLength: n}

	if n < cfg.MinStrokePoints {
		padded, err := Pad(points, cfg.MinStrokePoints, cfg.PaddingStrategy)
		if err != nil {
			return nil, err
		}
		result.Points = padded
		result.Strategy = cfg.PaddingStrategy
		logger.Debugf("Traço completado de %d para %d pontos (%s)", n, len(padded), cfg.PaddingStrategy)
	} else {
		result.Points = make([]models.StrokePoint, n)
		copy(result.Points, points)
	}

	result.Features = Summarize(result.Points, n, durationMs)
	return result, nil
}
