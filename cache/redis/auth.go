package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/geuresti/Hack-The-Woodz-Backend/util"
	"github.com/go-redis/redis/v8"
)

// AuthRedisCache keeps opaque bearer tokens keyed by token value. The
// stored value is "<id>:<username>". Reading a token refreshes its TTL.
type AuthRedisCache struct {
	rdb         *redis.Client
	tokenExpiry time.Duration
}

func (a *AuthRedisCache) GetAccountByToken(ctx context.Context, token string) (int, string, error) {
	value, err := a.rdb.GetEx(ctx, token, a.tokenExpiry).Result()
	if err != nil {
		return 0, "", err
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, "", ErrRedisBadValue
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", ErrRedisBadValue
	}
	return id, parts[1], nil
}

func (a *AuthRedisCache) GenerateAndSaveToken(ctx context.Context, id int, username string) (string, error) {
	token := util.RandomString(50)
	err := a.rdb.Set(ctx, token, fmt.Sprintf("%d:%s", id, username), a.tokenExpiry).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

func (a *AuthRedisCache) DeleteToken(ctx context.Context, token string) error {
	return a.rdb.Del(ctx, token).Err()
}

func (a *AuthRedisCache) GetTokenExpiry() time.Duration {
	return a.tokenExpiry
}

func NewAuthRedisCache(rdb *redis.Client, tokenExpiry time.Duration) *AuthRedisCache {
	return &AuthRedisCache{
		rdb:         rdb,
		tokenExpiry: tokenExpiry,
	}
}
