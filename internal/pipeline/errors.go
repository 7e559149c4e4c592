package pipeline

import "github.com/pkg/errors"

var (
	// ErrSignatureTooShort indica menos amostras reais que o mínimo após a recuperação
	ErrSignatureTooShort = errors.New("assinatura muito curta")

	// ErrInconsistentRealLength indica real_length fora de (0, len(traço)]
	ErrInconsistentRealLength = errors.New("real_length inconsistente com o traço")

	// ErrNormalizationInvariantViolated indica que a normalização produziu valores fora dos limites
	ErrNormalizationInvariantViolated = errors.New("invariante de normalização violada")

	// ErrAntiAliasing indica falha do filtro anti-aliasing em modo estrito
	ErrAntiAliasing = errors.New("falha no filtro anti-aliasing")

	// ErrSequenceTooShort indica sequência curta demais para a janela de suavização
	ErrSequenceTooShort = errors.New("sequência curta demais para suavização")
)

// IsInputError informa se o erro decorre do traço recebido e não de falha interna
func IsInputError(err error) bool {
	return errors.Is(err, ErrSignatureTooShort) ||
		errors.Is(err, ErrInconsistentRealLength) ||
		errors.Is(err, ErrSequenceTooShort)
}
