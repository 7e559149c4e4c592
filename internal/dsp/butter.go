// Package dsp contém os núcleos numéricos do pipeline: projeto de filtros
// Butterworth em seções de segunda ordem, filtragem de fase zero,
// interpolação linear e desdobramento de fase.
package dsp

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

// Section é uma seção de segunda ordem com a0 normalizado em 1
type Section struct {
	B [3]float64
	A [3]float64
}

// Butter projeta um filtro passa-baixas Butterworth digital de ordem order.
// wn é o corte normalizado pela frequência de Nyquist (0 < wn < 1). O ganho
// total fica na primeira seção.
func Butter(order int, wn float64) ([]Section, error) {
	if order < 1 {
		return nil, errors.Errorf("ordem do filtro inválida: %d", order)
	}
	if !(wn > 0 && wn < 1) {
		return nil, errors.Errorf("frequência de corte fora de (0, 1): %g", wn)
	}

	// Pré-distorção para a transformação bilinear com fs = 2
	const fs = 2.0
	warped := 2 * fs * math.Tan(math.Pi*wn/fs)

	// Polos do protótipo analógico escalados para o corte
	poles := make([]complex128, order)
	for k := range poles {
		m := float64(-order + 1 + 2*k)
		poles[k] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*order))) * complex(warped, 0)
	}
	gain := math.Pow(warped, float64(order))

	// Transformação bilinear: zeros vão todos para z = -1
	fs2 := complex(2*fs, 0)
	den := complex(1, 0)
	digital := make([]complex128, order)
	for i, p := range poles {
		digital[i] = (fs2 + p) / (fs2 - p)
		den *= fs2 - p
	}
	gain *= real(1 / den)

	sections := make([]Section, 0, (order+1)/2)
	// Polos k e order-1-k são conjugados
	for k := 0; k < order/2; k++ {
		p := digital[k]
		sections = append(sections, Section{
			B: [3]float64{1, 2, 1},
			A: [3]float64{1, -2 * real(p), real(p)*real(p) + imag(p)*imag(p)},
		})
	}
	if order%2 == 1 {
		p := real(digital[order/2])
		sections = append(sections, Section{
			B: [3]float64{1, 1, 0},
			A: [3]float64{1, -p, 0},
		})
	}

	for i := range sections[0].B {
		sections[0].B[i] *= gain
	}

	return sections, nil
}

// DCGain retorna o ganho da cascata em z = 1
func DCGain(sections []Section) float64 {
	g := 1.0
	for _, s := range sections {
		g *= (s.B[0] + s.B[1] + s.B[2]) / (s.A[0] + s.A[1] + s.A[2])
	}
	return g
}
