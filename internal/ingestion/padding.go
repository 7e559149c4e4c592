package ingestion

import (
	"math"

	"github.com/pkg/errors"

	"signature_go/internal/config"
	"signature_go/internal/models"
)

// Pad completa o traço até target pontos com a estratégia indicada. Traços
// com target pontos ou mais são devolvidos como cópia, sem alteração.
func Pad(points []models.StrokePoint, target int, strategy string) ([]models.StrokePoint, error) {
	if len(points) == 0 {
		return nil, errors.WithStack(ErrEmptyStroke)
	}
	if len(points) >= target {
		out := make([]models.StrokePoint, len(points))
		copy(out, points)
		return out, nil
	}

	switch strategy {
	case config.PaddingLinearInterpolation:
		return padLinear(points, target), nil
	case config.PaddingRepeatLast:
		return topUp(copyWithCapacity(points, target), target), nil
	default:
		return nil, errors.Wrapf(ErrUnknownPaddingStrategy, "%q", strategy)
	}
}

// SegmentCounts distribui target-n pontos sintéticos entre os n-1 segmentos.
// Os primeiros (target-n) mod (n-1) segmentos recebem um ponto a mais.
func SegmentCounts(n, target int) []int {
	if n < 2 || target <= n {
		return make([]int, max(n-1, 0))
	}

	segments := n - 1
	missing := target - n
	base, extra := missing/segments, missing%segments

	counts := make([]int, segments)
	for i := range counts {
		counts[i] = base
		if i < extra {
			counts[i]++
		}
	}
	return counts
}

// OriginalIndices devolve, para um traço de total pontos gerado por
// interpolação linear a partir de realLength pontos, as posições onde ficaram
// os pontos originais.
func OriginalIndices(total, realLength int) []int {
	if realLength <= 0 {
		return nil
	}
	if realLength == 1 || realLength >= total {
		idx := make([]int, min(realLength, total))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	counts := SegmentCounts(realLength, total)
	idx := make([]int, 0, realLength)
	pos := 0
	for _, k := range counts {
		idx = append(idx, pos)
		pos += 1 + k
	}
	return append(idx, pos)
}

// padLinear insere pontos interpolados entre amostras consecutivas
func padLinear(points []models.StrokePoint, target int) []models.StrokePoint {
	n := len(points)
	if n == 1 {
		return topUp(copyWithCapacity(points, target), target)
	}

	counts := SegmentCounts(n, target)
	out := make([]models.StrokePoint, 0, target)

	for i, k := range counts {
		a, b := points[i], points[i+1]
		out = append(out, a)
		for j := 1; j <= k; j++ {
			f := float64(j) / float64(k+1)
			out = append(out, models.StrokePoint{
				X: a.X + f*(b.X-a.X),
				Y: a.Y + f*(b.Y-a.Y),
				T: int64(math.Round(float64(a.T) + f*float64(b.T-a.T))),
				P: a.P + f*(b.P-a.P),
			})
		}
	}
	out = append(out, points[n-1])

	return topUp(out, target)
}

// topUp repete o último ponto, avançando 1 ms a cada cópia, até target pontos
func topUp(points []models.StrokePoint, target int) []models.StrokePoint {
	last := points[len(points)-1]
	for len(points) < target {
		last.T++
		points = append(points, last)
	}
	return points[:target]
}

func copyWithCapacity(points []models.StrokePoint, capacity int) []models.StrokePoint {
	out := make([]models.StrokePoint, len(points), max(capacity, len(points)))
	copy(out, points)
	return out
}
