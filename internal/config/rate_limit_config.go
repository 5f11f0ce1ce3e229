package config

import "github.com/spf13/viper"

const (
	keyRateLimitPerSecond = "rate_limit.requests_per_second"
	keyRateLimitBurst     = "rate_limit.burst"
)

// RateLimitConfig throttles credential-bearing form posts per client IP.
type RateLimitConfig interface {
	GetRateLimitPerSecond() float64
	GetRateLimitBurst() int
}

type RateLimit struct {
	v *viper.Viper
}

var _ RateLimitConfig = RateLimit{}

func (r RateLimit) GetRateLimitPerSecond() float64 {
	return r.v.GetFloat64(keyRateLimitPerSecond)
}

func (r RateLimit) GetRateLimitBurst() int {
	return r.v.GetInt(keyRateLimitBurst)
}
