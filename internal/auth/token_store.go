package auth

import (
	"context"
	"time"

	"askstack/internal/cache"
)

const revokedSessionKeyPrefix = "revoked:session:"

// RevocationStore records session token ids invalidated by logout. Signed
// tokens stay cryptographically valid until expiry, so revocation is a
// best-effort deny list with TTLs matching the token's remaining lifetime.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// TokenStore keeps revoked session ids in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements RevocationStore
var _ RevocationStore = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke marks a session token id as invalid until its natural expiry.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedSessionKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether a session token id was revoked. Redis being
// unavailable reads as "not revoked" (fail safe), which degrades to the
// cookie-clearing-only logout behavior.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	data, _ := s.cache.Get(ctx, revokedSessionKeyPrefix+tokenID)
	return data != nil
}
