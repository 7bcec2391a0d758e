package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenRevocationStore is a TTL-bounded denylist of access token IDs,
// written on logout and consulted during token verification. Entries
// expire with the token itself, so the set never grows unbounded.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenRevocationStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewTokenRevocationStore(redisClient *redis.Client, log *logrus.Logger) TokenRevocationStore {
	return &tokenRevocationStore{
		redisClient: redisClient,
		log:         log,
	}
}

func (s *tokenRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// The token already expired on its own; nothing to track.
		return nil
	}

	key := fmt.Sprintf("%s%s", revokedTokenKeyPrefix, tokenID)
	if err := s.redisClient.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store revoked token %s: %+v", tokenID, err)
		return err
	}
	return nil
}

func (s *tokenRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := fmt.Sprintf("%s%s", revokedTokenKeyPrefix, tokenID)
	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Failed to check revoked token %s: %+v", tokenID, err)
		return false, err
	}
	return exists > 0, nil
}
