package config

import "time"

// getDefaultConfig retorna uma configuração padrão
func getDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Role:            RoleStandalone,
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  100 * 1024,
		},
		Ingestion: IngestionConfig{
			MinStrokePoints: 100,
			MaxStrokePoints: 1200,
			PaddingStrategy: PaddingLinearInterpolation,
		},
		Pipeline: PipelineConfig{
			TargetFrequency: 100,
			TargetLength:    400,
			MinLength:       100,
			MinResampled:    100,
			MaxResampled:    2000,
			SmoothWindow:    7,
			SmoothPolyOrder: 3,
		},
		Validator: ValidatorConfig{
			Username:      "admin",
			Password:      "admin123",
			MaxConcurrent: 8,
			ModelVersion:  "lstm_v2.1_mock",
		},
		Cloud: CloudConfig{
			Endpoint:  "http://localhost:8081/api/biometric/validate",
			Username:  "admin",
			Password:  "admin123",
			Timeout:   30 * time.Second,
			VerifySSL: true,
		},
		Auth: AuthConfig{
			JWTIssuer:   "LocalAzure",
			JWTAudience: "bmfa-processor",
		},
		RateLimit: RateLimitConfig{
			NormalizeRequests: 8,
			ValidateRequests:  20,
			Window:            time.Minute,
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			Password: "",
			DB:       0,
			Prefix:   "signature",
			Enabled:  false,
		},
		Discovery: DiscoveryConfig{
			Enabled: false,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "./logs",
		},
	}
}
