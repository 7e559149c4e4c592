package dsp

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Interp interpola linearmente fp (amostrado em xp) nos pontos x. Fora do
// intervalo de xp devolve o valor da extremidade. xp deve ser não
// decrescente; timestamps repetidos são aceitos.
func Interp(x, xp, fp []float64) ([]float64, error) {
	if len(xp) == 0 || len(xp) != len(fp) {
		return nil, errors.Errorf("abscissas (%d) e valores (%d) incompatíveis", len(xp), len(fp))
	}

	n := len(xp)
	out := make([]float64, len(x))

	for i, v := range x {
		switch {
		case math.IsNaN(v):
			out[i] = math.NaN()
		case v <= xp[0]:
			out[i] = fp[0]
		case v >= xp[n-1]:
			out[i] = fp[n-1]
		default:
			// Primeiro índice com xp[j] > v, logo xp[j-1] <= v < xp[j]
			j := sort.Search(n, func(k int) bool { return xp[k] > v })
			x0, x1 := xp[j-1], xp[j]
			f0, f1 := fp[j-1], fp[j]
			if x1 <= x0 {
				// Só acontece com xp fora de ordem
				out[i] = f1
				continue
			}
			out[i] = f0 + (f1-f0)*(v-x0)/(x1-x0)
		}
	}

	return out, nil
}
