package dsp

import (
	"math"

	"github.com/pkg/errors"
)

// ErrSignalTooShort indica que o sinal não é maior que o comprimento de extensão do filtro
var ErrSignalTooShort = errors.New("sinal mais curto que a extensão do filtro")

// ErrUnstableOutput indica que a filtragem produziu NaN ou Inf
var ErrUnstableOutput = errors.New("filtragem produziu valores não finitos")

// SOSFilt aplica as seções em cascata na forma direta II transposta.
// Se zi não for nil, é usado como estado inicial de cada seção e recebe o
// estado final.
func SOSFilt(sections []Section, x []float64, zi [][2]float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)

	for s, sec := range sections {
		var z0, z1 float64
		if zi != nil {
			z0, z1 = zi[s][0], zi[s][1]
		}
		for i, xi := range y {
			yi := sec.B[0]*xi + z0
			z0 = sec.B[1]*xi - sec.A[1]*yi + z1
			z1 = sec.B[2]*xi - sec.A[2]*yi
			y[i] = yi
		}
		if zi != nil {
			zi[s] = [2]float64{z0, z1}
		}
	}

	return y
}

// SOSFiltZi calcula o estado inicial de regime para uma entrada degrau unitário
func SOSFiltZi(sections []Section) [][2]float64 {
	zi := make([][2]float64, len(sections))
	scale := 1.0

	for s, sec := range sections {
		c := (sec.B[0] + sec.B[1] + sec.B[2]) / (sec.A[0] + sec.A[1] + sec.A[2])
		z1 := sec.B[2] - sec.A[2]*c
		z0 := sec.B[1] + sec.B[2] - (sec.A[1]+sec.A[2])*c
		zi[s] = [2]float64{scale * z0, scale * z1}
		scale *= c
	}

	return zi
}

// PadLen retorna quantas amostras são espelhadas em cada borda por SOSFiltFilt
func PadLen(sections []Section) int {
	var zerosB, zerosA int
	for _, s := range sections {
		if s.B[2] == 0 {
			zerosB++
		}
		if s.A[2] == 0 {
			zerosA++
		}
	}
	taps := 2*len(sections) + 1
	if zerosB < zerosA {
		taps -= zerosB
	} else {
		taps -= zerosA
	}
	return 3 * taps
}

// SOSFiltFilt filtra x para frente e para trás (fase zero). As bordas são
// estendidas por reflexão ímpar e o estado inicial de cada passada parte do
// regime para o primeiro valor.
func SOSFiltFilt(sections []Section, x []float64) ([]float64, error) {
	if len(sections) == 0 {
		return nil, errors.New("nenhuma seção de filtro")
	}

	padlen := PadLen(sections)
	if len(x) <= padlen {
		return nil, errors.Wrapf(ErrSignalTooShort, "%d amostras, extensão %d", len(x), padlen)
	}

	ext := oddExtend(x, padlen)
	zi := SOSFiltZi(sections)

	y := SOSFilt(sections, ext, scaledState(zi, ext[0]))
	reverse(y)
	y = SOSFilt(sections, y, scaledState(zi, y[0]))
	reverse(y)

	out := make([]float64, len(x))
	copy(out, y[padlen:padlen+len(x)])

	for _, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.WithStack(ErrUnstableOutput)
		}
	}

	return out, nil
}

// oddExtend reflete o sinal em torno das extremidades
func oddExtend(x []float64, n int) []float64 {
	last := len(x) - 1
	ext := make([]float64, 0, len(x)+2*n)
	for i := n; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := last - 1; i >= last-n; i-- {
		ext = append(ext, 2*x[last]-x[i])
	}
	return ext
}

func scaledState(zi [][2]float64, v float64) [][2]float64 {
	out := make([][2]float64, len(zi))
	for i, z := range zi {
		out[i] = [2]float64{z[0] * v, z[1] * v}
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
