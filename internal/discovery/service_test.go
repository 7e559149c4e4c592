package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxtRecords(t *testing.T) {
	s := NewDiscoveryService(8081, "validator", "1.0.0")
	s.serverIP = "192.168.0.10"

	records := s.txtRecords()
	assert.Contains(t, records, "version=1.0.0")
	assert.Contains(t, records, "role=validator")
	assert.Contains(t, records, "ip=192.168.0.10")
	assert.Contains(t, records, "validate=/api/biometric/validate")
	assert.Contains(t, s.GetInstanceName(), "-validator")
	assert.False(t, s.IsRunning())
}

func TestTxtRecordsGateway(t *testing.T) {
	s := NewDiscoveryService(8080, "gateway", "1.0.0")

	records := s.txtRecords()
	assert.Contains(t, records, "role=gateway")
	for _, r := range records {
		assert.NotContains(t, r, "validate=")
	}

	// Parar sem ter iniciado não faz nada
	s.Stop()
	assert.False(t, s.IsRunning())
}
