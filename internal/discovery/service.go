package discovery

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/grandcat/zeroconf"

	"signature_go/pkg/logger"
)

const (
	// ServiceName é o nome anunciado na rede
	ServiceName = "Signature Validation Service"

	// ServiceDomain é o domínio para descoberta na rede
	ServiceDomain = "local."

	// ServiceType define o tipo de serviço
	ServiceType = "_sigvalidator._tcp"
)

// DiscoveryService anuncia o processo via mDNS para que gateways
// encontrem validadores na rede local
type DiscoveryService struct {
	server       *zeroconf.Server
	mutex        sync.Mutex
	instanceName string
	port         int
	role         string
	version      string
	running      bool
	serverIP     string
}

// NewDiscoveryService cria um novo serviço de descoberta
func NewDiscoveryService(port int, role, version string) *DiscoveryService {
	hostname, _ := os.Hostname()

	return &DiscoveryService{
		port:         port,
		role:         role,
		version:      version,
		instanceName: fmt.Sprintf("%s-%s", hostname, role),
	}
}

// Start registra o serviço no mDNS
func (s *DiscoveryService) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return nil
	}

	ip, err := localIP()
	if err != nil {
		return fmt.Errorf("erro ao obter IP local: %w", err)
	}
	s.serverIP = ip

	server, err := zeroconf.Register(
		s.instanceName,
		ServiceType,
		ServiceDomain,
		s.port,
		s.txtRecords(),
		nil, // Interfaces de rede (todas)
	)
	if err != nil {
		return fmt.Errorf("erro ao registrar serviço de descoberta: %w", err)
	}

	s.server = server
	s.running = true

	logger.Infof("Serviço de descoberta iniciado em %s:%d (mDNS: %s.%s)",
		ip, s.port, s.instanceName, ServiceType)

	return nil
}

// Stop remove o anúncio
func (s *DiscoveryService) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}

	if s.server != nil {
		s.server.Shutdown()
		s.server = nil
	}
	s.running = false

	logger.Info("Serviço de descoberta parado")
}

// txtRecords monta os metadados publicados junto com o serviço
func (s *DiscoveryService) txtRecords() []string {
	records := []string{
		"version=" + s.version,
		"role=" + s.role,
		"name=" + ServiceName,
	}
	if s.serverIP != "" {
		records = append(records, "ip="+s.serverIP)
	}
	if s.role != "gateway" {
		records = append(records, "validate=/api/biometric/validate")
	}
	return records
}

// GetInstanceName retorna o nome da instância do serviço
func (s *DiscoveryService) GetInstanceName() string {
	return s.instanceName
}

// IsRunning verifica se o serviço está em execução
func (s *DiscoveryService) IsRunning() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running
}

// localIP obtém o primeiro endereço IPv4 que não é loopback
func localIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}

	return "", fmt.Errorf("não foi possível determinar o endereço IP local")
}
