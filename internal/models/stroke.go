package models

import "fmt"

// StrokePoint é uma amostra da caneta: posição em pixels, tempo em ms e pressão normalizada
type StrokePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T int64   `json:"t"`
	P float64 `json:"p"`
}

// Validate verifica os limites de uma amostra recebida do cliente
func (p StrokePoint) Validate() error {
	if p.T < 0 {
		return fmt.Errorf("timestamp negativo: %d", p.T)
	}
	if p.P < 0 || p.P > 1 {
		return fmt.Errorf("pressão fora de [0, 1]: %g", p.P)
	}
	return nil
}

// NormalizationRequest é o corpo recebido em POST /normalize
type NormalizationRequest struct {
	Timestamp        string        `json:"timestamp"`
	StrokePoints     []StrokePoint `json:"stroke_points"`
	StrokeDurationMs int64         `json:"stroke_duration_ms"`
}

// StrokeFeatures resume o traço preenchido
type StrokeFeatures struct {
	TotalDistance float64 `json:"total_distance"`
	VelocityMean  float64 `json:"velocity_mean"`
	VelocityMax   float64 `json:"velocity_max"`
	NumPoints     int     `json:"num_points"`
	RealLength    int     `json:"real_length"`
	DurationMs    int64   `json:"duration_ms"`
}

// NormalizationResponse é a resposta do gateway
type NormalizationResponse struct {
	Status           string             `json:"status"`
	Message          string             `json:"message"`
	NormalizedStroke []StrokePoint      `json:"normalized_stroke,omitempty"`
	Features         *StrokeFeatures    `json:"features,omitempty"`
	MLResponse       *BiometricResponse `json:"ml_response,omitempty"`
	Error            string             `json:"error,omitempty"`
}
