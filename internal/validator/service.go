// Package validator executa o pipeline de pré-processamento e o
// classificador simulado, limitando execuções simultâneas.
package validator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"signature_go/internal/config"
	"signature_go/internal/ingestion"
	"signature_go/internal/models"
	"signature_go/internal/pipeline"
	"signature_go/pkg/logger"
)

var (
	// ErrBusy indica que nenhuma vaga de processamento ficou livre antes do fim do contexto
	ErrBusy = errors.New("validador sem capacidade disponível")

	// ErrInvalidRequest indica corpo fora dos limites aceitos
	ErrInvalidRequest = errors.New("requisição biométrica inválida")
)

// Stats são contadores acumulados do serviço
type Stats struct {
	Validated int64
	Accepted  int64
	Rejected  int64
}

// Service valida traços já preenchidos pelo gateway
type Service struct {
	limits       config.IngestionConfig
	opts         pipeline.Options
	modelVersion string
	sem          *semaphore.Weighted

	validated atomic.Int64
	accepted  atomic.Int64
	rejected  atomic.Int64
}

// NewService cria o serviço a partir da configuração
func NewService(cfg *config.Config) *Service {
	slots := cfg.Validator.MaxConcurrent
	if slots <= 0 {
		slots = 1
	}

	logger.Infof("Validador: até %d execuções simultâneas, modelo %s", slots, cfg.Validator.ModelVersion)

	return &Service{
		limits:       cfg.Ingestion,
		opts:         pipeline.OptionsFromConfig(cfg.Pipeline),
		modelVersion: cfg.Validator.ModelVersion,
		sem:          semaphore.NewWeighted(slots),
	}
}

// ModelVersion retorna a versão anunciada do modelo
func (s *Service) ModelVersion() string {
	return s.modelVersion
}

// Stats retorna os contadores atuais
func (s *Service) Stats() Stats {
	return Stats{
		Validated: s.validated.Load(),
		Accepted:  s.accepted.Load(),
		Rejected:  s.rejected.Load(),
	}
}

// Preprocess valida o corpo e executa o pipeline, esperando uma vaga livre
func (s *Service) Preprocess(ctx context.Context, req models.BiometricRequest) (*pipeline.Result, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(ErrBusy, err.Error())
	}
	defer s.sem.Release(1)

	opts := s.opts
	opts.PaddingStrategy = req.PaddingStrategy
	return pipeline.Preprocess(req.NormalizedStroke, req.RealLength, opts)
}

// Validate pré-processa o traço e aplica o classificador
func (s *Service) Validate(ctx context.Context, req models.BiometricRequest) (*models.BiometricResponse, error) {
	start := time.Now()

	result, err := s.Preprocess(ctx, req)
	if err != nil {
		return nil, err
	}

	features := ingestion.Summarize(req.NormalizedStroke, req.RealLength, 0)
	if req.Features != nil {
		features = *req.Features
	}

	verdict := Classify(result.ValidPoints(), features)
	elapsed := time.Since(start)

	s.validated.Add(1)
	if verdict.IsValid {
		s.accepted.Add(1)
	} else {
		s.rejected.Add(1)
	}

	response := &models.BiometricResponse{
		IsValid:    verdict.IsValid,
		Confidence: verdict.Confidence,
		Details: &models.ValidationDetails{
			ModelVersion:       s.modelVersion,
			ProcessingTimeMs:   float64(elapsed.Microseconds()) / 1000,
			FeaturesAnalyzed:   AnalyzedFeatures,
			NumPointsProcessed: result.ValidPoints(),
			Preprocessing: models.PreprocessingDetails{
				RealLength:         req.RealLength,
				AfterPreprocessing: len(result.Features),
				ValidPoints:        result.ValidPoints(),
				PaddedPoints:       len(result.Features) - result.ValidPoints(),
			},
		},
	}

	if verdict.IsValid {
		response.UserID = MockUserID
		response.Details.MatchedUser = MockMatchedUser
		response.Message = fmt.Sprintf("Assinatura válida com %.0f%% de confiança", verdict.Confidence*100)
	} else {
		response.Message = fmt.Sprintf("Assinatura inválida com %.0f%% de confiança", verdict.Confidence*100)
	}

	logger.Infof("Validação concluída: válida=%v, confiança=%.2f, %d pontos válidos",
		verdict.IsValid, verdict.Confidence, result.ValidPoints())

	return response, nil
}

func (s *Service) checkRequest(req models.BiometricRequest) error {
	n := len(req.NormalizedStroke)
	if n < s.limits.MinStrokePoints || n > s.limits.MaxStrokePoints {
		return errors.Wrapf(ErrInvalidRequest, "%d pontos, esperado entre %d e %d",
			n, s.limits.MinStrokePoints, s.limits.MaxStrokePoints)
	}

	switch req.PaddingStrategy {
	case "", config.PaddingLinearInterpolation, config.PaddingRepeatLast:
	default:
		return errors.Wrapf(ErrInvalidRequest, "estratégia de preenchimento %q", req.PaddingStrategy)
	}

	for i, p := range req.NormalizedStroke {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidRequest, "ponto %d: %v", i, err)
		}
	}

	return nil
}
