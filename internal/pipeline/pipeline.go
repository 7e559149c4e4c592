// Package pipeline transforma um traço preenchido no tensor (L, 8) de
// entrada do classificador: recuperação, reamostragem, suavização, extração
// de características, normalização, truncamento e preenchimento com máscara.
//
// Cada etapa é uma função pura que devolve valores novos.
package pipeline

import (
	"time"

	"github.com/pkg/errors"

	"signature_go/internal/config"
	"signature_go/internal/models"
	"signature_go/pkg/logger"
)

// Options parametriza Preprocess
type Options struct {
	TargetFrequency    float64
	TargetLength       int
	MinLength          int
	MinResampled       int
	MaxResampled       int
	SmoothWindow       int
	SmoothPolyOrder    int
	StrictAntiAliasing bool
	// PaddingStrategy é a estratégia aplicada na ingestão (vazia se desconhecida)
	PaddingStrategy string
}

// DefaultOptions retorna os parâmetros padrão do pipeline
func DefaultOptions() Options {
	return Options{
		TargetFrequency: 100,
		TargetLength:    400,
		MinLength:       100,
		MinResampled:    100,
		MaxResampled:    2000,
		SmoothWindow:    7,
		SmoothPolyOrder: 3,
	}
}

// OptionsFromConfig converte a seção pipeline da configuração
func OptionsFromConfig(cfg config.PipelineConfig) Options {
	return Options{
		TargetFrequency:    cfg.TargetFrequency,
		TargetLength:       cfg.TargetLength,
		MinLength:          cfg.MinLength,
		MinResampled:       cfg.MinResampled,
		MaxResampled:       cfg.MaxResampled,
		SmoothWindow:       cfg.SmoothWindow,
		SmoothPolyOrder:    cfg.SmoothPolyOrder,
		StrictAntiAliasing: cfg.StrictAntiAliasing,
	}
}

// Result é a saída do pipeline
type Result struct {
	Features FeatureTensor
	Mask     []float64
	Trace    models.PreprocessTrace
}

// ValidPoints retorna quantas linhas do tensor são genuínas
func (r *Result) ValidPoints() int {
	return r.Trace.ValidPoints
}

// Preprocess executa o pipeline completo sobre um traço preenchido
func Preprocess(points []models.StrokePoint, realLength int, opts Options) (*Result, error) {
	start := time.Now()

	recovered, err := RecoverPadded(points, realLength, opts.PaddingStrategy)
	if err != nil {
		return nil, err
	}
	if len(recovered) < opts.MinLength {
		return nil, errors.Wrapf(ErrSignatureTooShort, "%d pontos reais, mínimo %d", len(recovered), opts.MinLength)
	}

	resampled, antiAliased, err := Resample(ChannelsFromPoints(recovered), ResampleOptions{
		TargetFrequency:    opts.TargetFrequency,
		MinSamples:         opts.MinResampled,
		MaxSamples:         opts.MaxResampled,
		StrictAntiAliasing: opts.StrictAntiAliasing,
	})
	if err != nil {
		return nil, err
	}

	smoothed, err := Smooth(resampled, opts.SmoothWindow, opts.SmoothPolyOrder)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(ExtractFeatures(smoothed))
	if err := CheckNormalization(normalized); err != nil {
		logger.Errorf("Normalização inconsistente: %v", err)
		return nil, err
	}

	truncation := Truncate(normalized, opts.TargetLength)
	features, mask := PadWithMask(truncation.Features, opts.TargetLength)

	result := &Result{
		Features: features,
		Mask:     mask,
		Trace: models.PreprocessTrace{
			RealLength:      realLength,
			RecoveredLength: len(recovered),
			ResampledLength: resampled.Len(),
			AntiAliased:     antiAliased,
			WarmupEnd:       truncation.WarmupEnd,
			LiftingStart:    truncation.LiftingStart,
			WindowStart:     truncation.Start,
			WindowEnd:       truncation.End,
			ValidPoints:     min(len(truncation.Features), opts.TargetLength),
		},
	}

	logger.Infof("Pré-processamento: %d recebidos, %d reais, %d reamostrados, %d válidos de %d (%v)",
		len(points), len(recovered), resampled.Len(), result.Trace.ValidPoints, opts.TargetLength, time.Since(start))

	return result, nil
}
