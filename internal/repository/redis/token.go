package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/globalhospital/portal-api/internal/repository"
)

const tokenKeyPrefix = "revoked_token:"

type tokenRepository struct {
	client *redis.Client
}

// NewTokenRepository returns a Redis-backed revocation list for issued
// tokens. Entries expire with the token itself.
func NewTokenRepository(url string) (repository.TokenRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &tokenRepository{client: client}, nil
}

func (r *tokenRepository) Invalidate(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to revoke.
		return nil
	}
	if err := r.client.Set(ctx, tokenKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}
	return nil
}

func (r *tokenRepository) IsInvalidated(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}
