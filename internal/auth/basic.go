// Package auth contém a autenticação Basic do validador e a verificação
// opcional de tokens JWT no gateway.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

// BasicAuth guarda as credenciais aceitas pelo validador
type BasicAuth struct {
	Username string
	Password string
}

// Check compara as credenciais da requisição em tempo constante
func (b BasicAuth) Check(r *http.Request) bool {
	username, password, ok := r.BasicAuth()
	if !ok {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(b.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(b.Password)) == 1
	return userOK && passOK
}

// Header monta o valor do cabeçalho Authorization
func Header(username, password string) string {
	credentials := username + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}
