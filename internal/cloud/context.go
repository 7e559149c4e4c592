package cloud

import "context"

type requestIDKey struct{}

// WithRequestID anexa o identificador da requisição ao contexto
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext retorna o identificador anexado, se houver
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
