// Package session guarda los tokens revocados por logout hasta que expiran.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/pkg/config"
)

const keyPrefix = "perfumeria:session:revoked:"

var (
	_ ports.RevocationList = (*RedisRevocationList)(nil)
	_ ports.RevocationList = (*MemoryRevocationList)(nil)
)

// RedisRevocationList implementa ports.RevocationList en Redis; cada jti vive hasta la expiración del token.
type RedisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList conecta a Redis y verifica la conexión con PING.
func NewRedisRevocationList(ctx context.Context, cfg config.RedisConfig) (*RedisRevocationList, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: no se pudo conectar a %s: %w", cfg.Addr, err)
	}
	return &RedisRevocationList{client: client}, nil
}

// NewRedisRevocationListWithClient usa un cliente ya creado.
func NewRedisRevocationListWithClient(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

// Revoke guarda el jti con TTL igual al tiempo que le queda al token. Un token ya vencido no se guarda.
func (r *RedisRevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis: revocar token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti fue revocado.
func (r *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis: consultar revocación: %w", err)
	}
	return n > 0, nil
}

// Close cierra el cliente.
func (r *RedisRevocationList) Close() error {
	return r.client.Close()
}

// MemoryRevocationList implementación en memoria para una sola instancia.
type MemoryRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiración
	now     func() time.Time
}

// NewMemoryRevocationList construye la lista vacía.
func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke guarda el jti y de paso limpia los vencidos.
func (m *MemoryRevocationList) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, k)
		}
	}
	if expiresAt.After(now) {
		m.revoked[jti] = expiresAt
	}
	return nil
}

// IsRevoked indica si el jti sigue revocado.
func (m *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[jti]
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		delete(m.revoked, jti)
		return false, nil
	}
	return true, nil
}

// Len devuelve cuántos tokens hay guardados.
func (m *MemoryRevocationList) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.revoked)
}
