package pipeline

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"signature_go/internal/dsp"
	"signature_go/pkg/logger"
)

const (
	antiAliasOrder  = 4
	antiAliasCutoff = 0.8
	// Abaixo disso o filtro não é aplicado mesmo com sub-amostragem
	antiAliasMinSamples = 10
)

// ResampleOptions parametriza a reamostragem
type ResampleOptions struct {
	TargetFrequency float64
	MinSamples      int
	MaxSamples      int
	// StrictAntiAliasing transforma falha do filtro em erro em vez de seguir sem filtro
	StrictAntiAliasing bool
}

// Resample leva a sequência para uma grade uniforme de TargetFrequency Hz.
// O número de amostras é round(D·F) limitado a [MinSamples, MaxSamples].
// Quando a taxa original está abaixo de F/2 os canais x, y e p passam antes
// por um Butterworth de fase zero. O canal t de saída é a grade uniforme. O
// segundo retorno indica se o filtro foi aplicado.
func Resample(in Channels, opts ResampleOptions) (Channels, bool, error) {
	n := in.Len()
	if n < 2 {
		logger.Warnf("Reamostragem ignorada: %d amostras", n)
		return in.Clone(), false, nil
	}

	t0, t1 := in.T[0], in.T[n-1]
	duration := (t1 - t0) / 1000
	if duration <= 0 {
		logger.Warnf("Reamostragem ignorada: duração %.3fs", duration)
		return in.Clone(), false, nil
	}

	count := int(math.Round(duration * opts.TargetFrequency))
	count = max(opts.MinSamples, min(count, opts.MaxSamples))
	count = max(count, 2)

	grid := make([]float64, count)
	floats.Span(grid, t0, t1)

	source := in
	antiAliased := false

	originalRate := float64(n-1) / duration
	if originalRate < opts.TargetFrequency/2 && n > antiAliasMinSamples {
		filtered, err := antiAlias(source)
		if err != nil {
			if opts.StrictAntiAliasing {
				return Channels{}, false, errors.Wrap(ErrAntiAliasing, err.Error())
			}
			logger.Warnf("Filtro anti-aliasing falhou (%v), usando sinal sem filtro", err)
		} else {
			source = filtered
			antiAliased = true
		}
	}

	// O canal t passa a ser a própria grade uniforme
	out := Channels{T: grid}
	targets := []*[]float64{&out.X, &out.Y, &out.P}
	for i, ch := range [][]float64{source.X, source.Y, source.P} {
		values, err := dsp.Interp(grid, in.T, ch)
		if err != nil {
			return Channels{}, false, errors.Wrap(err, "interpolação")
		}
		*targets[i] = values
	}

	logger.Debugf("Reamostragem: %d -> %d amostras (%.1f Hz -> %.1f Hz, filtro=%v)",
		n, count, originalRate, opts.TargetFrequency, antiAliased)

	return out, antiAliased, nil
}

// antiAlias filtra x, y e p; qualquer falha descarta o resultado. A pressão
// filtrada é limitada a [0, 1].
func antiAlias(in Channels) (Channels, error) {
	sections, err := dsp.Butter(antiAliasOrder, antiAliasCutoff)
	if err != nil {
		return Channels{}, err
	}

	out := Channels{T: in.T}
	targets := []*[]float64{&out.X, &out.Y, &out.P}
	for i, ch := range [][]float64{in.X, in.Y, in.P} {
		y, err := dsp.SOSFiltFilt(sections, ch)
		if err != nil {
			return Channels{}, err
		}
		*targets[i] = y
	}

	// Overshoot do filtro não pode levar a pressão para fora de [0, 1]
	for i, v := range out.P {
		out.P[i] = math.Max(0, math.Min(v, 1))
	}
	return out, nil
}
