package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	keySessionSecret = "session.secret"
	keySessionStore  = "session.store"
	keySessionMaxAge = "session.max_age"
	keyRedisAddr     = "session.redis_addr"
	keyRedisPassword = "session.redis_password"
	keyRedisDB       = "session.redis_db"
)

// DefaultSessionSecret is the placeholder signing secret; it is only accepted in DEV.
const DefaultSessionSecret = "change-me-in-production"

// Supported session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionStore() string
	GetMaxSessionAge() time.Duration
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type Session struct {
	v *viper.Viper
}

var _ SessionConfig = Session{}

func (s Session) GetSessionSecret() string {
	return s.v.GetString(keySessionSecret)
}

func (s Session) GetSessionStore() string {
	return s.v.GetString(keySessionStore)
}

func (s Session) GetMaxSessionAge() time.Duration {
	return s.v.GetDuration(keySessionMaxAge)
}

func (s Session) GetRedisAddr() string {
	return s.v.GetString(keyRedisAddr)
}

func (s Session) GetRedisPassword() string {
	return s.v.GetString(keyRedisPassword)
}

func (s Session) GetRedisDB() int {
	return s.v.GetInt(keyRedisDB)
}
