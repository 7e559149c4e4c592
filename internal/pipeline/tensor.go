package pipeline

import "signature_go/internal/models"

// NumFeatures é a largura de cada linha do tensor
const NumFeatures = 8

// Colunas do tensor de características
const (
	ColX = iota
	ColY
	ColVx
	ColVy
	ColSpeed
	ColTheta
	ColCurvature
	ColPressure
)

// ColumnNames nomeia as colunas na ordem do tensor
var ColumnNames = []string{"x", "y", "vx", "vy", "v_mag", "theta", "curvature", "pressure"}

// Row é uma amostra do tensor
type Row [NumFeatures]float64

// FeatureTensor é a matriz (n, 8) produzida pelo extrator
type FeatureTensor []Row

// Column copia uma coluna do tensor
func (ft FeatureTensor) Column(c int) []float64 {
	col := make([]float64, len(ft))
	for i := range ft {
		col[i] = ft[i][c]
	}
	return col
}

// Clone devolve uma cópia independente
func (ft FeatureTensor) Clone() FeatureTensor {
	out := make(FeatureTensor, len(ft))
	copy(out, ft)
	return out
}

// Rows converte para o formato serializado na API
func (ft FeatureTensor) Rows() [][NumFeatures]float64 {
	out := make([][NumFeatures]float64, len(ft))
	for i := range ft {
		out[i] = ft[i]
	}
	return out
}

func (ft FeatureTensor) setColumn(c int, values []float64) {
	for i := range ft {
		ft[i][c] = values[i]
	}
}

// Channels é a sequência de 4 canais (x, y, t, p) armazenada por canal
type Channels struct {
	X []float64
	Y []float64
	T []float64
	P []float64
}

// ChannelsFromPoints separa os pontos em canais
func ChannelsFromPoints(points []models.StrokePoint) Channels {
	c := Channels{
		X: make([]float64, len(points)),
		Y: make([]float64, len(points)),
		T: make([]float64, len(points)),
		P: make([]float64, len(points)),
	}
	for i, p := range points {
		c.X[i] = p.X
		c.Y[i] = p.Y
		c.T[i] = float64(p.T)
		c.P[i] = p.P
	}
	return c
}

// Len retorna o número de amostras
func (c Channels) Len() int {
	return len(c.T)
}

// Clone devolve uma cópia independente
func (c Channels) Clone() Channels {
	return Channels{
		X: append([]float64(nil), c.X...),
		Y: append([]float64(nil), c.Y...),
		T: append([]float64(nil), c.T...),
		P: append([]float64(nil), c.P...),
	}
}
