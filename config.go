package paygate

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by paygate APIs.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Config struct {
	// BaseURL is the gateway origin, e.g. "https://pay.example.com".
	// Required.
	BaseURL string

	// APIPrefix is prepended to every endpoint path. Defaults to the
	// gateway's versioned prefix.
	APIPrefix string

	Transport TransportConfig
	Session   SessionConfig
	Metrics   MetricsConfig
}

/*
====================================
TRANSPORT CONFIG
====================================
*/

// TransportConfig defines a public type used by paygate APIs.
//
// TransportConfig instances are intended to be configured during
// initialization and then treated as immutable unless documented otherwise.
type TransportConfig struct {
	// Timeout applies to the default http.Client built by [Builder.Build].
	// Ignored when a client is injected via [Builder.WithHTTPClient].
	Timeout time.Duration

	// RefreshSkew triggers a proactive renewal when the held access
	// credential is a JWT whose exp claim falls within the window. Zero
	// disables proactive renewal; opaque credentials are renewed only
	// reactively on an unauthorized response.
	RefreshSkew time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by paygate APIs.
//
// SessionConfig instances are intended to be configured during
// initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// FilePath locates the durable session record for the default file
	// store. Empty selects a per-user default under the OS config
	// directory. Ignored when a store is injected via
	// [Builder.WithSessionStore] or [Builder.WithRedis].
	FilePath string

	// RedisPrefix namespaces the session key for the Redis store.
	RedisPrefix string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by paygate APIs.
type MetricsConfig struct {
	Enabled bool
}

const (
	defaultAPIPrefix   = "/paygate/api/v1"
	defaultTimeout     = 30 * time.Second
	defaultRedisPrefix = "paygate"
	defaultUserAgent   = "paygate-go"
)

func defaultConfig() Config {
	return Config{
		APIPrefix: defaultAPIPrefix,
		Transport: TransportConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		Session: SessionConfig{
			RedisPrefix: defaultRedisPrefix,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types today; the clone still guards against a
	// caller mutating the struct after Build.
	return cfg
}

func normalizeConfig(cfg *Config) {
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = defaultAPIPrefix
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Transport.Timeout == 0 {
		cfg.Transport.Timeout = defaultTimeout
	}
	if cfg.Transport.UserAgent == "" {
		cfg.Transport.UserAgent = defaultUserAgent
	}
	if cfg.Session.RedisPrefix == "" {
		cfg.Session.RedisPrefix = defaultRedisPrefix
	}
}

func validateConfig(cfg Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: BaseURL %q is not an absolute URL", ErrInvalidConfig, cfg.BaseURL)
	}
	if cfg.Transport.Timeout < 0 {
		return fmt.Errorf("%w: Transport.Timeout must not be negative", ErrInvalidConfig)
	}
	if cfg.Transport.RefreshSkew < 0 {
		return fmt.Errorf("%w: Transport.RefreshSkew must not be negative", ErrInvalidConfig)
	}
	return nil
}
