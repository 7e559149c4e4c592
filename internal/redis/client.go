package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"signature_go/internal/config"
	"signature_go/pkg/logger"
)

// reconnectInterval é o intervalo mínimo entre pings enquanto o Redis está fora
const reconnectInterval = 10 * time.Second

// Client encapsula a conexão com o Redis compartilhada pelas instâncias
type Client struct {
	client    *redis.Client
	prefix    string
	config    config.RedisConfig
	connected bool
	mutex     sync.RWMutex

	// Última tentativa de conexão que falhou
	lastAttempt time.Time
	now         func() time.Time
}

// NewClient cria um novo cliente Redis
func NewClient(cfg config.RedisConfig) *Client {
	// Se Redis estiver desabilitado, retornar cliente vazio
	if !cfg.Enabled {
		logger.Info("Cliente Redis desabilitado por configuração")
		return &Client{
			config: cfg,
			prefix: cfg.Prefix,
			now:    time.Now,
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Client{
		client: redisClient,
		config: cfg,
		prefix: cfg.Prefix,
		now:    time.Now,
	}
}

// Connect tenta estabelecer conexão com o Redis
func (c *Client) Connect(ctx context.Context) error {
	if !c.config.Enabled {
		return fmt.Errorf("cliente Redis desabilitado por configuração")
	}

	if c.client == nil {
		return fmt.Errorf("cliente Redis não inicializado")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := c.client.Ping(ctx).Result(); err != nil {
		c.MarkDisconnected()
		return fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}

	c.setConnected(true)
	logger.Infof("Conexão estabelecida com Redis em %s:%d", c.config.Host, c.config.Port)
	return nil
}

// IsConnected informa se o Redis está disponível. Desconectado, tenta um
// ping no máximo uma vez a cada reconnectInterval.
func (c *Client) IsConnected() bool {
	if !c.config.Enabled || c.client == nil {
		return false
	}

	c.mutex.Lock()
	if c.connected {
		c.mutex.Unlock()
		return true
	}
	now := c.now()
	if !c.lastAttempt.IsZero() && now.Sub(c.lastAttempt) < reconnectInterval {
		c.mutex.Unlock()
		return false
	}
	c.lastAttempt = now
	c.mutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := c.client.Ping(ctx).Result(); err != nil {
		logger.Debugf("Redis indisponível, nova tentativa em %v: %v", reconnectInterval, err)
		return false
	}
	c.setConnected(true)
	logger.Info("Conexão com Redis restabelecida")
	return true
}

// MarkDisconnected registra a falha; a próxima verificação espera reconnectInterval
func (c *Client) MarkDisconnected() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.connected = false
	c.lastAttempt = c.now()
}

// Close fecha a conexão com o Redis
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if err := c.client.Close(); err != nil {
		return fmt.Errorf("erro ao fechar conexão Redis: %w", err)
	}

	c.setConnected(false)
	logger.Info("Conexão com Redis fechada")
	return nil
}

// GetClient retorna o cliente Redis subjacente
func (c *Client) GetClient() *redis.Client {
	return c.client
}

// FormatKey formata uma chave com o prefixo configurado
func (c *Client) FormatKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

func (c *Client) setConnected(v bool) {
	c.mutex.Lock()
	c.connected = v
	c.mutex.Unlock()
}
