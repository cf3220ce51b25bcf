package paygate

import (
	"errors"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"

	"github.com/mahrishi821/Payagate/session"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by paygate APIs.
//
// Builder instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Builder struct {
	config     Config
	httpClient *http.Client
	store      session.Store
	redis      *redis.Client

	built bool
}

// New describes the new operation and its observable behavior.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
func (b *Builder) WithBaseURL(u string) *Builder {
	b.config.BaseURL = u
	return b
}

// WithHTTPClient injects the transport. The client's cookie jar is what
// carries the ambient long-lived renewal credential; injecting a jar-less
// client disables renewal entirely.
func (b *Builder) WithHTTPClient(c *http.Client) *Builder {
	b.httpClient = c
	return b
}

// WithSessionStore injects the durable session persistence backend.
func (b *Builder) WithSessionStore(s session.Store) *Builder {
	b.store = s
	return b
}

// WithRedis selects Redis-backed session persistence, for headless
// embedders that cannot rely on a local filesystem.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and assembles an immutable [Client].
// The builder is single-use.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	normalizeConfig(&cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	httpClient := b.httpClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{
			Timeout: cfg.Transport.Timeout,
			Jar:     jar,
		}
	}

	store := b.store
	switch {
	case store != nil:
	case b.redis != nil:
		store = session.NewRedisStore(b.redis, cfg.Session.RedisPrefix)
	default:
		path := cfg.Session.FilePath
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "paygate", "session.json")
		}
		store = session.NewFileStore(path)
	}

	b.built = true
	return &Client{
		config:  cfg,
		http:    httpClient,
		store:   store,
		metrics: newMetrics(cfg.Metrics.Enabled),
	}, nil
}
