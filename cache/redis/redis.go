package redis

import (
	"errors"
	"time"
)

var (
	ErrRedisBadValue = errors.New("Bad value")
)

const (
	REDIS_MIN_RETRY_BACKOFF = 3 * time.Second
	REDIS_MAX_RETRY_BACKOFF = 5 * time.Second
	REDIS_DATABASE_AUTH     = 0
)
