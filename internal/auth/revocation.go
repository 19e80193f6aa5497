package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationList tracks revoked token IDs in Redis until their natural
// expiry. Tokens are otherwise stateless; this list exists so logout takes
// effect immediately rather than at token expiry.
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList wraps a Redis client. A nil client yields a list that
// never revokes, preserving the stateless behavior when Redis is absent.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke stores the token ID until expiresAt.
func (l *RevocationList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if l == nil || l.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked. Redis errors are
// treated as not-revoked so an unavailable Redis does not lock everyone out.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) bool {
	if l == nil || l.client == nil || tokenID == "" {
		return false
	}
	n, err := l.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
