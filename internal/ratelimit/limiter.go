// Package ratelimit implementa janelas deslizantes por cliente, em memória
// ou compartilhadas via Redis.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter decide se mais uma requisição do cliente cabe na janela
type Limiter interface {
	Allow(ctx context.Context, id string) (bool, error)
}

// MemoryLimiter guarda os instantes das requisições aceitas por cliente
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mutex     sync.Mutex
	requests  map[string][]time.Time
	lastSweep time.Time
}

// NewMemoryLimiter cria um limitador local ao processo
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		requests: make(map[string][]time.Time),
	}
}

// Allow registra a requisição se ainda houver espaço na janela.
// Requisições recusadas não contam.
func (l *MemoryLimiter) Allow(_ context.Context, id string) (bool, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	start := now.Add(-l.window)

	recent := prune(l.requests[id], start)
	if len(recent) >= l.limit {
		l.requests[id] = recent
		return false, nil
	}
	l.requests[id] = append(recent, now)

	if now.Sub(l.lastSweep) > l.window {
		l.sweep(start)
		l.lastSweep = now
	}

	return true, nil
}

// Clients retorna quantos clientes têm requisições registradas
func (l *MemoryLimiter) Clients() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.requests)
}

// sweep remove clientes sem requisições dentro da janela
func (l *MemoryLimiter) sweep(start time.Time) {
	for id, times := range l.requests {
		if len(prune(times, start)) == 0 {
			delete(l.requests, id)
		}
	}
}

func prune(times []time.Time, start time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(start) {
		i++
	}
	return times[i:]
}

// ClientIdentifier extrai o IP do cliente: primeiro X-Forwarded-For,
// depois X-Real-IP, por fim o endereço remoto.
func ClientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
