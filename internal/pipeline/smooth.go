package pipeline

import (
	"github.com/pconstantinou/savitzkygolay"
	"github.com/pkg/errors"

	"signature_go/pkg/logger"
)

// SmoothingWindow ajusta a janela do Savitzky-Golay ao tamanho da sequência:
// maior ímpar <= n, nunca menor que polyorder+2, sempre ímpar.
func SmoothingWindow(n, window, polyorder int) int {
	if window >= n {
		if n%2 == 1 {
			window = n
		} else {
			window = n - 1
		}
	}
	if window < polyorder+2 {
		window = polyorder + 2
	}
	if window%2 == 0 {
		window++
	}
	return window
}

// Smooth aplica Savitzky-Golay em x e y; t e p são copiados.
func Smooth(in Channels, window, polyorder int) (Channels, error) {
	n := in.Len()
	w := SmoothingWindow(n, window, polyorder)
	if w > n {
		return Channels{}, errors.Wrapf(ErrSequenceTooShort, "%d amostras, janela %d", n, w)
	}
	if w != window {
		logger.Debugf("Janela de suavização ajustada de %d para %d", window, w)
	}

	filter, err := savitzkygolay.NewFilter(w, 0, polyorder)
	if err != nil {
		return Channels{}, errors.Wrap(err, "criação do filtro Savitzky-Golay")
	}

	// A grade já é uniforme: o eixo é o índice da amostra
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = float64(i)
	}

	out := in.Clone()
	if out.X, err = filter.Process(in.X, axis); err != nil {
		return Channels{}, errors.Wrap(err, "suavização de x")
	}
	if out.Y, err = filter.Process(in.Y, axis); err != nil {
		return Channels{}, errors.Wrap(err, "suavização de y")
	}
	if len(out.X) != n || len(out.Y) != n {
		return Channels{}, errors.Errorf("suavização alterou o tamanho: %d/%d, esperado %d", len(out.X), len(out.Y), n)
	}

	return out, nil
}
