package ports

import (
	"context"
	"time"
)

// RevocationList guarda los IDs de token (jti) revocados hasta su expiración.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
