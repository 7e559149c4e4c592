package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"signature_go/internal/api"
	"signature_go/internal/auth"
	"signature_go/internal/cloud"
	"signature_go/internal/config"
	"signature_go/internal/discovery"
	"signature_go/internal/ratelimit"
	"signature_go/internal/redis"
	"signature_go/internal/validator"
	"signature_go/internal/websocket"
	"signature_go/pkg/logger"
)

// Server encapsula o servidor HTTP com todos os componentes
type Server struct {
	config           *config.Config
	httpServer       *http.Server
	handler          http.Handler
	redisClient      *redis.Client
	normalizeLimiter ratelimit.Limiter
	validateLimiter  ratelimit.Limiter
	service          *validator.Service
	forwarder        cloud.Validator
	jwtVerifier      *auth.JWTVerifier
	wsHub            *websocket.Hub
	discoveryService *discovery.DiscoveryService
	serverInfo       ServerInfo
}

// ServerInfo contém informações sobre o servidor
type ServerInfo struct {
	IP           string
	Port         int
	Role         string
	StartTime    time.Time
	Connections  int
	Version      string
	WebSocketURL string
	APIURL       string
}

// NewServer cria uma nova instância do servidor
func NewServer(cfg *config.Config) (*Server, error) {
	server := &Server{
		config: cfg,
		serverInfo: ServerInfo{
			StartTime: time.Now(),
			Version:   api.Version,
			Port:      cfg.Server.Port,
			Role:      cfg.Server.Role,
		},
	}

	ip := getLocalIP()
	server.serverInfo.IP = ip

	scheme, wsScheme := "http", "ws"
	if cfg.Server.TLS.Enabled {
		scheme, wsScheme = "https", "wss"
	}
	server.serverInfo.WebSocketURL = fmt.Sprintf("%s://%s:%d/ws", wsScheme, ip, cfg.Server.Port)
	server.serverInfo.APIURL = fmt.Sprintf("%s://%s:%d", scheme, ip, cfg.Server.Port)

	if err := server.initComponents(); err != nil {
		return nil, err
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return server, nil
}

// initComponents inicializa os componentes do papel configurado
func (s *Server) initComponents() error {
	s.wsHub = websocket.NewHub()
	go s.wsHub.Run()

	// Redis é opcional: sem ele os limitadores ficam em memória
	s.redisClient = redis.NewClient(s.config.Redis)
	window := s.config.RateLimit.Window
	s.normalizeLimiter = ratelimit.NewRedisLimiter(s.redisClient, "normalize", s.config.RateLimit.NormalizeRequests, window)
	s.validateLimiter = ratelimit.NewRedisLimiter(s.redisClient, "validate", s.config.RateLimit.ValidateRequests, window)

	role := s.config.Server.Role

	if role == config.RoleValidator || role == config.RoleStandalone {
		s.service = validator.NewService(s.config)
	}

	switch role {
	case config.RoleGateway:
		s.forwarder = cloud.NewClient(s.config.Cloud)
		logger.Infof("Validações serão encaminhadas para %s", s.config.Cloud.Endpoint)
	case config.RoleStandalone:
		s.forwarder = s.service
	}

	if role != config.RoleValidator {
		verifier, err := auth.NewJWTVerifier(s.config.Auth)
		if err != nil {
			return fmt.Errorf("erro ao inicializar validação JWT: %w", err)
		}
		s.jwtVerifier = verifier
	}

	if s.config.Discovery.Enabled {
		s.discoveryService = discovery.NewDiscoveryService(s.config.Server.Port, role, api.Version)
	}

	return nil
}

// Start inicia o servidor e todos os serviços
func (s *Server) Start() error {
	if s.config.Redis.Enabled {
		if err := s.redisClient.Connect(context.Background()); err != nil {
			logger.Warnf("Aviso: %v. Rate limit seguirá em memória.", err)
		}
	}

	if s.discoveryService != nil {
		if err := s.discoveryService.Start(); err != nil {
			logger.Warnf("Erro ao iniciar serviço de descoberta: %v", err)
		}
	}

	s.logServerInfo()

	tls := s.config.Server.TLS
	var err error
	if tls.Enabled {
		logger.Infof("Iniciando servidor HTTPS na porta %d", s.config.Server.Port)
		err = s.httpServer.ListenAndServeTLS(tls.CertFile, tls.KeyFile)
	} else {
		logger.Infof("Iniciando servidor HTTP na porta %d", s.config.Server.Port)
		err = s.httpServer.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("erro ao iniciar servidor HTTP: %w", err)
	}

	return nil
}

// Shutdown encerra graciosamente o servidor e todos os serviços
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Iniciando shutdown do servidor")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Erro ao encerrar servidor HTTP: %v", err)
	}

	if s.discoveryService != nil {
		s.discoveryService.Stop()
	}

	if s.wsHub != nil {
		s.wsHub.Shutdown()
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			logger.Errorf("%v", err)
		}
	}

	logger.Info("Shutdown completo")
	return nil
}

// Handler retorna o handler HTTP com todas as rotas e middlewares
func (s *Server) Handler() http.Handler {
	return s.handler
}

// getLocalIP obtém o endereço IP local
func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "localhost"
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}

	return "localhost"
}

// GetServerInfo retorna informações sobre o servidor
func (s *Server) GetServerInfo() ServerInfo {
	info := s.serverInfo
	info.Connections = s.wsHub.ClientCount()
	return info
}

// logServerInfo exibe informações do servidor no log
func (s *Server) logServerInfo() {
	logger.Info("===============================================")
	logger.Info("        Signature Validation Service          ")
	logger.Info("===============================================")
	logger.Infof("Versão: %s", s.serverInfo.Version)
	logger.Infof("Papel: %s", s.serverInfo.Role)
	logger.Infof("Endereço IP: %s", s.serverInfo.IP)
	logger.Infof("Porta: %d", s.serverInfo.Port)
	logger.Infof("WebSocket URL: %s", s.serverInfo.WebSocketURL)
	logger.Infof("API URL: %s", s.serverInfo.APIURL)
	if s.service != nil {
		logger.Infof("Modelo: %s", s.service.ModelVersion())
	}
	if s.discoveryService != nil {
		logger.Infof("mDNS: %s.%s.%s",
			s.discoveryService.GetInstanceName(),
			discovery.ServiceType,
			discovery.ServiceDomain)
	}
	logger.Info("===============================================")
	logger.Info("Servidor pronto para conexões!")
}
