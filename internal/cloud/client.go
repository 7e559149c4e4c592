// Package cloud encaminha traços normalizados do gateway ao validador.
package cloud

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"signature_go/internal/auth"
	"signature_go/internal/config"
	"signature_go/internal/models"
	"signature_go/pkg/logger"
)

// Validator valida um traço já preenchido. Implementado pelo cliente HTTP
// e pelo serviço local no papel standalone.
type Validator interface {
	Validate(ctx context.Context, req models.BiometricRequest) (*models.BiometricResponse, error)
}

// Error é uma falha do serviço remoto já traduzida para status HTTP
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap expõe a causa original
func (e *Error) Unwrap() error {
	return e.cause
}

// Client envia requisições ao endpoint do validador com Basic auth
type Client struct {
	endpoint   string
	username   string
	password   string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient cria o cliente a partir da configuração
func NewClient(cfg config.CloudConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.VerifySSL {
		logger.Warn("Verificação TLS do validador desabilitada")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		endpoint: cfg.Endpoint,
		username: cfg.Username,
		password: cfg.Password,
		timeout:  cfg.Timeout,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// Endpoint retorna a URL configurada
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Validate envia o traço e decodifica a resposta do validador
func (c *Client) Validate(ctx context.Context, req models.BiometricRequest) (*models.BiometricResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "serializar requisição")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Status: http.StatusBadGateway, Message: "endpoint do validador inválido", cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", auth.Header(c.username, c.password))
	if id := RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Errorf("Erro do validador: %d - %s", resp.StatusCode, bytes.TrimSpace(detail))
		return nil, &Error{
			Status:  http.StatusBadGateway,
			Message: fmt.Sprintf("erro do validador: %d", resp.StatusCode),
		}
	}

	var result models.BiometricResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Status: http.StatusBadGateway, Message: "resposta do validador inválida", cause: err}
	}

	logger.Debugf("Validador respondeu em %v: válida=%v confiança=%.2f",
		time.Since(start), result.IsValid, result.Confidence)

	return &result, nil
}

// classify traduz erros de transporte: tempo esgotado vira 504, TLS 502 e
// falha de conexão 503
func (c *Client) classify(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		logger.Errorf("Validador não respondeu em %v", c.timeout)
		return &Error{Status: http.StatusGatewayTimeout, Message: "tempo esgotado aguardando o validador", cause: err}
	}

	if isTLSError(err) {
		logger.Errorf("Erro TLS com o validador: %v", err)
		return &Error{Status: http.StatusBadGateway, Message: "erro TLS com o validador", cause: err}
	}

	logger.Errorf("Erro de conexão com o validador: %v", err)
	return &Error{Status: http.StatusServiceUnavailable, Message: "não foi possível conectar ao validador", cause: err}
}

func isTLSError(err error) bool {
	var verification *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var invalid x509.CertificateInvalidError
	var header tls.RecordHeaderError

	return errors.As(err, &verification) ||
		errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid) ||
		errors.As(err, &header)
}
