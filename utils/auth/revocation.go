package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tuyensinh/admission-advisor/utils/cache"
)

// RevocationList reports whether a token id was revoked before it expired
type RevocationList interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevocationList stores revoked JTIs in Redis until the token would have expired anyway
type RedisRevocationList struct {
	cache *cache.RedisCache
}

// NewRedisRevocationList creates a revocation list backed by c
func NewRedisRevocationList(c *cache.RedisCache) *RedisRevocationList {
	return &RedisRevocationList{cache: c}
}

func revocationKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

// Revoke marks jti as revoked for ttl. A non-positive ttl is a no-op since the token is already dead.
func (r *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return ErrInvalidToken
	}
	if ttl <= 0 {
		return nil
	}
	return r.cache.Set(ctx, revocationKey(jti), "1", ttl)
}

// IsRevoked checks if a token is in the revocation list
func (r *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := r.cache.Get(ctx, revocationKey(jti))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
