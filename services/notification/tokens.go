package notification

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"shutterhub/utils"
)

const tokenKeyPrefix = "fcm_token:"

// RedisTokenSource reads FCM registration tokens from the token registry.
// Client apps write their token there on sign-in.
type RedisTokenSource struct {
	client *redis.Client
}

func NewRedisTokenSource() *RedisTokenSource {
	return &RedisTokenSource{client: utils.GetTokenRegistryClient()}
}

func (s *RedisTokenSource) FCMToken(ctx context.Context, actorID string) (string, error) {
	token, err := s.client.Get(ctx, tokenKeyPrefix+actorID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("fetch fcm token for %s: %w", actorID, err)
	}
	return token, nil
}
