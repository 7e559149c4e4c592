package auth

import (
	"crypto/rsa"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"signature_go/internal/config"
	"signature_go/pkg/logger"
)

// ErrInvalidToken indica token ausente, malformado ou recusado
var ErrInvalidToken = errors.New("token inválido")

// Claims são as declarações esperadas do provedor de identidade
type Claims struct {
	jwt.RegisteredClaims
}

// JWTVerifier valida tokens RS256 contra a chave pública configurada
type JWTVerifier struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
}

// NewJWTVerifier carrega a chave pública. Sem arquivo configurado ou
// existente retorna nil: a verificação fica desabilitada.
func NewJWTVerifier(cfg config.AuthConfig) (*JWTVerifier, error) {
	if cfg.JWTPublicKeyPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if os.IsNotExist(err) {
		logger.Warnf("Chave pública JWT não encontrada em %s, validação de token desabilitada", cfg.JWTPublicKeyPath)
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "ler chave pública %s", cfg.JWTPublicKeyPath)
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, errors.Wrap(err, "chave pública JWT inválida")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWTIssuer))
	}
	if cfg.JWTAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.JWTAudience))
	}

	logger.Infof("Validação JWT habilitada (emissor %q, audiência %q)", cfg.JWTIssuer, cfg.JWTAudience)

	return &JWTVerifier{key: key, parser: jwt.NewParser(opts...)}, nil
}

// Verify valida assinatura, expiração, emissor e audiência
func (v *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// BearerToken extrai o token do cabeçalho Authorization
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
