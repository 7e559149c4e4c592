package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Papéis possíveis do processo
const (
	RoleGateway    = "gateway"
	RoleValidator  = "validator"
	RoleStandalone = "standalone"
)

// Estratégias de preenchimento aceitas na ingestão
const (
	PaddingLinearInterpolation = "linear_interpolation"
	PaddingRepeatLast          = "repeat_last"
)

// DefaultConfigFile é o arquivo lido quando CONFIG_FILE não está definido
const DefaultConfigFile = "config.yaml"

// Config representa a configuração completa da aplicação
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Ingestion IngestionConfig `yaml:"ingestion"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Validator ValidatorConfig `yaml:"validator"`
	Cloud     CloudConfig     `yaml:"cloud"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Redis     RedisConfig     `yaml:"redis"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig contém configurações do servidor HTTP/WebSocket
type ServerConfig struct {
	Role            string        `yaml:"role"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxRequestSize  int64         `yaml:"maxRequestSize"`
	TLS             TLSConfig     `yaml:"tls"`
}

// TLSConfig habilita HTTPS no servidor
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"certFile"`
	KeyFile  string `yaml:"keyFile"`
}

// IngestionConfig controla o preenchimento feito pelo gateway
type IngestionConfig struct {
	MinStrokePoints int    `yaml:"minStrokePoints"`
	MaxStrokePoints int    `yaml:"maxStrokePoints"`
	PaddingStrategy string `yaml:"paddingStrategy"`
}

// PipelineConfig controla o pré-processamento feito pelo validador
type PipelineConfig struct {
	TargetFrequency    float64 `yaml:"targetFrequency"`
	TargetLength       int     `yaml:"targetLength"`
	MinLength          int     `yaml:"minLength"`
	MinResampled       int     `yaml:"minResampled"`
	MaxResampled       int     `yaml:"maxResampled"`
	SmoothWindow       int     `yaml:"smoothWindow"`
	SmoothPolyOrder    int     `yaml:"smoothPolyOrder"`
	StrictAntiAliasing bool    `yaml:"strictAntiAliasing"`
}

// ValidatorConfig contém as credenciais aceitas e o limite de execuções simultâneas
type ValidatorConfig struct {
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	MaxConcurrent int64  `yaml:"maxConcurrent"`
	ModelVersion  string `yaml:"modelVersion"`
}

// CloudConfig descreve como o gateway alcança o validador
type CloudConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	Timeout   time.Duration `yaml:"timeout"`
	VerifySSL bool          `yaml:"verifySSL"`
}

// AuthConfig contém a validação opcional de tokens JWT no gateway
type AuthConfig struct {
	JWTPublicKeyPath string `yaml:"jwtPublicKeyPath"`
	JWTIssuer        string `yaml:"jwtIssuer"`
	JWTAudience      string `yaml:"jwtAudience"`
}

// RateLimitConfig define as janelas deslizantes por cliente
type RateLimitConfig struct {
	NormalizeRequests int           `yaml:"normalizeRequests"`
	ValidateRequests  int           `yaml:"validateRequests"`
	Window            time.Duration `yaml:"window"`
}

// RedisConfig contém configurações do Redis
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
	Enabled  bool   `yaml:"enabled"`
}

// DiscoveryConfig controla o anúncio mDNS
type DiscoveryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LogConfig controla o logger
type LogConfig struct {
	Level       string `yaml:"level"`
	FileEnabled bool   `yaml:"fileEnabled"`
	Dir         string `yaml:"dir"`
}

// Load carrega a configuração do arquivo ou usa valores padrão
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = DefaultConfigFile
	}
	return LoadFile(path)
}

// LoadFile carrega a configuração a partir de um arquivo YAML. Um arquivo
// inexistente não é erro: ficam os valores padrão.
func LoadFile(path string) (*Config, error) {
	config := getDefaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("erro ao ler %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("erro ao abrir %s: %w", path, err)
	}

	// Sobrescrever com variáveis de ambiente, se existirem
	if err := applyEnvironmentOverrides(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate verifica a consistência da configuração
func (c *Config) Validate() error {
	switch c.Server.Role {
	case RoleGateway, RoleValidator, RoleStandalone:
	default:
		return fmt.Errorf("papel do servidor inválido: %q", c.Server.Role)
	}

	if c.Ingestion.MinStrokePoints <= 0 || c.Ingestion.MaxStrokePoints < c.Ingestion.MinStrokePoints {
		return fmt.Errorf("limites de pontos inválidos: min=%d max=%d",
			c.Ingestion.MinStrokePoints, c.Ingestion.MaxStrokePoints)
	}

	switch c.Ingestion.PaddingStrategy {
	case PaddingLinearInterpolation, PaddingRepeatLast:
	default:
		return fmt.Errorf("estratégia de preenchimento desconhecida: %q", c.Ingestion.PaddingStrategy)
	}

	p := c.Pipeline
	if p.TargetFrequency <= 0 || p.TargetLength <= 0 || p.MinLength <= 0 {
		return fmt.Errorf("parâmetros do pipeline devem ser positivos")
	}
	if p.MinResampled <= 0 || p.MaxResampled < p.MinResampled {
		return fmt.Errorf("limites de reamostragem inválidos: min=%d max=%d", p.MinResampled, p.MaxResampled)
	}
	if p.SmoothPolyOrder < 0 || p.SmoothWindow <= p.SmoothPolyOrder {
		return fmt.Errorf("janela de suavização %d incompatível com ordem %d", p.SmoothWindow, p.SmoothPolyOrder)
	}

	if c.Server.MaxRequestSize <= 0 {
		return fmt.Errorf("tamanho máximo de requisição deve ser positivo")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("janela de rate limit deve ser positiva")
	}

	if c.Server.Role == RoleGateway && c.Cloud.Endpoint == "" {
		return fmt.Errorf("cloud.endpoint é obrigatório no papel gateway")
	}

	return nil
}

// applyEnvironmentOverrides sobrescreve configurações com variáveis de ambiente
func applyEnvironmentOverrides(config *Config) error {
	var errs []string

	setString := func(name string, target *string) {
		if v, ok := os.LookupEnv(name); ok {
			*target = v
		}
	}
	setInt := func(name string, target *int) {
		if v, ok := os.LookupEnv(name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q", name, v))
				return
			}
			*target = n
		}
	}
	setInt64 := func(name string, target *int64) {
		if v, ok := os.LookupEnv(name); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q", name, v))
				return
			}
			*target = n
		}
	}
	setBool := func(name string, target *bool) {
		if v, ok := os.LookupEnv(name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q", name, v))
				return
			}
			*target = b
		}
	}
	setDuration := func(name string, target *time.Duration) {
		if v, ok := os.LookupEnv(name); ok {
			v = strings.TrimSpace(v)
			// Aceita segundos inteiros, como nos serviços antigos
			if secs, err := strconv.Atoi(v); err == nil {
				*target = time.Duration(secs) * time.Second
				return
			}
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q", name, v))
				return
			}
			*target = d
		}
	}

	setString("SERVER_ROLE", &config.Server.Role)
	setInt("API_PORT", &config.Server.Port)
	setInt64("MAX_REQUEST_SIZE", &config.Server.MaxRequestSize)
	setBool("TLS_ENABLED", &config.Server.TLS.Enabled)
	setString("TLS_CERT_FILE", &config.Server.TLS.CertFile)
	setString("TLS_KEY_FILE", &config.Server.TLS.KeyFile)

	setInt("MIN_STROKE_POINTS", &config.Ingestion.MinStrokePoints)
	setInt("MAX_STROKE_POINTS", &config.Ingestion.MaxStrokePoints)
	setString("PADDING_STRATEGY", &config.Ingestion.PaddingStrategy)

	setInt("TARGET_LENGTH", &config.Pipeline.TargetLength)
	setBool("STRICT_ANTI_ALIASING", &config.Pipeline.StrictAntiAliasing)

	setString("ML_SERVICE_USERNAME", &config.Validator.Username)
	setString("ML_SERVICE_PASSWORD", &config.Validator.Password)
	setInt64("MAX_CONCURRENT_VALIDATIONS", &config.Validator.MaxConcurrent)

	setString("CLOUD_PROVIDER_ENDPOINT", &config.Cloud.Endpoint)
	setString("CLOUD_PROVIDER_USERNAME", &config.Cloud.Username)
	setString("CLOUD_PROVIDER_PASSWORD", &config.Cloud.Password)
	setDuration("CLOUD_PROVIDER_TIMEOUT", &config.Cloud.Timeout)
	setBool("CLOUD_PROVIDER_VERIFY_SSL", &config.Cloud.VerifySSL)

	setString("JWT_PUBLIC_KEY_PATH", &config.Auth.JWTPublicKeyPath)
	setString("JWT_ISSUER", &config.Auth.JWTIssuer)
	setString("JWT_AUDIENCE", &config.Auth.JWTAudience)

	setInt("RATE_LIMIT_REQUESTS", &config.RateLimit.NormalizeRequests)
	setInt("RATE_LIMIT_VALIDATE_REQUESTS", &config.RateLimit.ValidateRequests)
	setDuration("RATE_LIMIT_WINDOW", &config.RateLimit.Window)

	setBool("REDIS_ENABLED", &config.Redis.Enabled)
	setString("REDIS_HOST", &config.Redis.Host)
	setInt("REDIS_PORT", &config.Redis.Port)
	setString("REDIS_PASSWORD", &config.Redis.Password)

	setBool("DISCOVERY_ENABLED", &config.Discovery.Enabled)
	setString("LOG_LEVEL", &config.Log.Level)

	if len(errs) > 0 {
		return fmt.Errorf("variáveis de ambiente inválidas: %s", strings.Join(errs, ", "))
	}
	return nil
}
