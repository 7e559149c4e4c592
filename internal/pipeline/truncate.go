package pipeline

import (
	"gonum.org/v1/gonum/floats"

	"signature_go/pkg/logger"
)

const (
	warmupSpeedRatio = 0.2
	liftingFraction  = 0.95
)

// Truncation é a janela escolhida pelo truncamento, em índices absolutos
// do tensor de entrada
type Truncation struct {
	Features     FeatureTensor
	Start        int
	End          int
	WarmupEnd    int
	LiftingStart int
}

// Indices lista os índices absolutos mantidos
func (t Truncation) Indices() []int {
	idx := make([]int, 0, t.End-t.Start)
	for i := t.Start; i < t.End; i++ {
		idx = append(idx, i)
	}
	return idx
}

// Truncate reduz o tensor a no máximo target linhas. Descarta o aquecimento
// inicial (até a velocidade passar de 20% do máximo) e os últimos 5%
// (levantamento da caneta); se o interior ainda for maior que target, toma
// uma janela centrada.
func Truncate(ft FeatureTensor, target int) Truncation {
	n := len(ft)
	if n <= target {
		return Truncation{
			Features:     ft.Clone(),
			End:          n,
			LiftingStart: n,
		}
	}

	speed := ft.Column(ColSpeed)
	warmupEnd := 0
	if peak := floats.Max(speed); peak > 0 {
		threshold := warmupSpeedRatio * peak
		for i, v := range speed {
			if v > threshold {
				warmupEnd = i
				break
			}
		}
	}

	liftingStart := int(float64(n) * liftingFraction)
	if warmupEnd >= liftingStart {
		logger.Warnf("Aquecimento (%d) alcança o levantamento (%d); ignorando corte inicial", warmupEnd, liftingStart)
		warmupEnd = 0
	}

	start, end := warmupEnd, liftingStart
	if interior := end - start; interior > target {
		offset := max(0, interior/2-target/2)
		stop := min(interior, offset+target)
		if stop-offset < target {
			offset = max(0, stop-target)
		}
		start, end = warmupEnd+offset, warmupEnd+stop
	}

	logger.Debugf("Truncamento: %d linhas -> [%d, %d) (aquecimento %d, levantamento %d)",
		n, start, end, warmupEnd, liftingStart)

	out := make(FeatureTensor, end-start)
	copy(out, ft[start:end])

	return Truncation{
		Features:     out,
		Start:        start,
		End:          end,
		WarmupEnd:    warmupEnd,
		LiftingStart: liftingStart,
	}
}
