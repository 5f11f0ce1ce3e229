package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	keyUpstreamBaseURL = "upstream.base_url"
	keyUpstreamTimeout = "upstream.timeout"
)

// UpstreamConfig describes the account service every authenticated action is relayed to.
type UpstreamConfig interface {
	GetUpstreamBaseURL() string
	GetUpstreamTimeout() time.Duration
}

type Upstream struct {
	v *viper.Viper
}

var _ UpstreamConfig = Upstream{}

func (u Upstream) GetUpstreamBaseURL() string {
	return u.v.GetString(keyUpstreamBaseURL)
}

func (u Upstream) GetUpstreamTimeout() time.Duration {
	return u.v.GetDuration(keyUpstreamTimeout)
}
