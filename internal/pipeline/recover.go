package pipeline

import (
	"github.com/pkg/errors"

	"signature_go/internal/config"
	"signature_go/internal/ingestion"
	"signature_go/internal/models"
	"signature_go/pkg/logger"
)

// Recover devolve os primeiros realLength pontos do traço recebido
func Recover(points []models.StrokePoint, realLength int) ([]models.StrokePoint, error) {
	if err := checkRealLength(len(points), realLength); err != nil {
		return nil, err
	}

	out := make([]models.StrokePoint, realLength)
	copy(out, points[:realLength])
	return out, nil
}

// RecoverPadded desfaz o preenchimento conhecendo a estratégia usada na
// ingestão. Na interpolação linear os pontos originais estão intercalados com
// os sintéticos e são localizados pela mesma aritmética de segmentos.
func RecoverPadded(points []models.StrokePoint, realLength int, strategy string) ([]models.StrokePoint, error) {
	if strategy != config.PaddingLinearInterpolation || realLength >= len(points) {
		return Recover(points, realLength)
	}
	if err := checkRealLength(len(points), realLength); err != nil {
		return nil, err
	}

	idx := ingestion.OriginalIndices(len(points), realLength)
	out := make([]models.StrokePoint, len(idx))
	for i, j := range idx {
		out[i] = points[j]
	}
	return out, nil
}

func checkRealLength(n, realLength int) error {
	if realLength <= 0 || realLength > n {
		logger.Warnf("real_length %d inconsistente com traço de %d pontos", realLength, n)
		return errors.Wrapf(ErrInconsistentRealLength, "real_length=%d, pontos=%d", realLength, n)
	}
	return nil
}
