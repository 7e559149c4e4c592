package pipeline

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	boundTolerance = 0.01
	maxMeanAbsZ    = 2.5
)

var (
	minMaxColumns = []int{ColX, ColY}
	zScoreColumns = []int{ColVx, ColVy, ColSpeed, ColTheta, ColCurvature}
)

// Normalize devolve um novo tensor com x e y em [0, 1] (min-max) e as
// colunas cinemáticas em z-score com desvio populacional. Coluna constante em
// x/y fica como está; coluna cinemática constante vira zero. A pressão não
// é alterada.
func Normalize(ft FeatureTensor) FeatureTensor {
	out := ft.Clone()
	if len(out) == 0 {
		return out
	}

	for _, c := range minMaxColumns {
		col := out.Column(c)
		lo, hi := floats.Min(col), floats.Max(col)
		span := hi - lo
		if !(span > 0) {
			continue
		}
		for i := range col {
			col[i] = (col[i] - lo) / span
		}
		out.setColumn(c, col)
	}

	for _, c := range zScoreColumns {
		col := out.Column(c)
		mean, std := stat.PopMeanStdDev(col, nil)
		for i := range col {
			if std > 0 {
				col[i] = (col[i] - mean) / std
			} else {
				col[i] = 0
			}
		}
		out.setColumn(c, col)
	}

	return out
}

// CheckNormalization verifica os limites esperados após Normalize
func CheckNormalization(ft FeatureTensor) error {
	if len(ft) == 0 {
		return nil
	}

	for i, row := range ft {
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Wrapf(ErrNormalizationInvariantViolated,
					"valor não finito na linha %d, coluna %s", i, ColumnNames[c])
			}
		}
	}

	for _, c := range append(append([]int{}, minMaxColumns...), ColPressure) {
		col := ft.Column(c)
		lo, hi := floats.Min(col), floats.Max(col)
		if lo < -boundTolerance || hi > 1+boundTolerance {
			return errors.Wrapf(ErrNormalizationInvariantViolated,
				"%s fora de [0, 1]: [%.4f, %.4f]", ColumnNames[c], lo, hi)
		}
	}

	var sum float64
	for _, row := range ft {
		for _, c := range zScoreColumns {
			sum += math.Abs(row[c])
		}
	}
	if mean := sum / float64(len(ft)*len(zScoreColumns)); mean >= maxMeanAbsZ {
		return errors.Wrapf(ErrNormalizationInvariantViolated,
			"média de |z| = %.3f, limite %.1f", mean, maxMeanAbsZ)
	}

	return nil
}
