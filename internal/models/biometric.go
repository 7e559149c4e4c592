package models

import "time"

// BiometricRequest é o corpo enviado do gateway para o validador
type BiometricRequest struct {
	NormalizedStroke []StrokePoint   `json:"normalized_stroke"`
	RealLength       int             `json:"real_length"`
	PaddingStrategy  string          `json:"padding_strategy,omitempty"`
	Features         *StrokeFeatures `json:"features,omitempty"`
}

// PreprocessingDetails descreve o que sobrou do traço em cada etapa
type PreprocessingDetails struct {
	RealLength         int `json:"real_length"`
	AfterPreprocessing int `json:"after_preprocessing"`
	ValidPoints        int `json:"valid_points"`
	PaddedPoints       int `json:"padded_points"`
}

// ValidationDetails acompanha o veredito do classificador
type ValidationDetails struct {
	ModelVersion       string               `json:"model_version"`
	ProcessingTimeMs   float64              `json:"processing_time_ms"`
	FeaturesAnalyzed   []string             `json:"features_analyzed"`
	MatchedUser        string               `json:"matched_user,omitempty"`
	NumPointsProcessed int                  `json:"num_points_processed"`
	Preprocessing      PreprocessingDetails `json:"preprocessing"`
}

// BiometricResponse é o veredito devolvido pelo validador
type BiometricResponse struct {
	IsValid    bool               `json:"is_valid"`
	Confidence float64            `json:"confidence"`
	UserID     string             `json:"user_id,omitempty"`
	Message    string             `json:"message"`
	Details    *ValidationDetails `json:"details,omitempty"`
}

// PreprocessTrace registra as decisões tomadas pelo pipeline
type PreprocessTrace struct {
	RealLength      int  `json:"real_length"`
	RecoveredLength int  `json:"recovered_length"`
	ResampledLength int  `json:"resampled_length"`
	AntiAliased     bool `json:"anti_aliased"`
	WarmupEnd       int  `json:"warmup_end"`
	LiftingStart    int  `json:"lifting_start"`
	WindowStart     int  `json:"window_start"`
	WindowEnd       int  `json:"window_end"`
	ValidPoints     int  `json:"valid_points"`
}

// PreprocessResponse expõe o tensor final e a máscara
type PreprocessResponse struct {
	Features [][8]float64    `json:"features"`
	Mask     []float64       `json:"mask"`
	Columns  []string        `json:"columns"`
	Trace    PreprocessTrace `json:"trace"`
}

// HealthResponse é a resposta de GET /health
type HealthResponse struct {
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	Role        string            `json:"role"`
	ModelLoaded bool              `json:"model_loaded"`
	Timestamp   time.Time         `json:"timestamp"`
	Services    map[string]string `json:"services"`
}

// ErrorResponse é o corpo padrão de erro da API
type ErrorResponse struct {
	Error string `json:"error"`
}
