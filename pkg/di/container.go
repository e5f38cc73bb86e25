// Package di wires the cache store, session tier, and API client together.
package di

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-easeform-client/cache"
	"github.com/goliatone/go-easeform-client/formclient"
	"github.com/goliatone/go-easeform-client/internal/sessionstore"
)

// Container owns the cache and client instances for one application session.
// Construction is explicit so tests and multi-tenant hosts can run isolated
// cache instances side by side; nothing in the module is process-global.
type Container struct {
	cacheConfig  cache.Config
	clientConfig formclient.Config
	store        *cache.Store[json.RawMessage]
	tier         *sessionstore.SQLiteTier
	client       *formclient.Client
	log          zerolog.Logger
}

// ContainerOption configures a Container during construction.
type ContainerOption func(*containerSettings)

type containerSettings struct {
	log         zerolog.Logger
	sessionPath string
	volatile    bool
}

// WithLogger sets the logger shared by the cache, tier, and client.
func WithLogger(log zerolog.Logger) ContainerOption {
	return func(s *containerSettings) { s.log = log }
}

// WithSessionPath persists the durable tier at the given sqlite path so
// cached data survives a restart within the session. The default keeps the
// tier in an in-memory database.
func WithSessionPath(path string) ContainerOption {
	return func(s *containerSettings) { s.sessionPath = path }
}

// WithoutDurableTier disables the session tier; the cache is volatile only.
func WithoutDurableTier() ContainerOption {
	return func(s *containerSettings) { s.volatile = true }
}

// NewContainer builds the full stack: session tier, cache store, and client.
func NewContainer(cacheCfg cache.Config, clientCfg formclient.Config, tokens formclient.TokenProvider, opts ...ContainerOption) (*Container, error) {
	settings := containerSettings{
		log:         zerolog.Nop(),
		sessionPath: ":memory:",
	}
	for _, opt := range opts {
		opt(&settings)
	}

	c := &Container{
		cacheConfig:  cacheCfg,
		clientConfig: clientCfg,
		log:          settings.log,
	}

	storeOpts := []cache.StoreOption[json.RawMessage]{
		cache.WithStoreLogger[json.RawMessage](settings.log),
	}
	if !settings.volatile {
		tierCfg := sessionstore.DefaultConfig()
		tierCfg.Path = settings.sessionPath
		tierCfg.Capacity = cacheCfg.DurableCapacity
		tier, err := sessionstore.NewSQLite(tierCfg, settings.log)
		if err != nil {
			return nil, err
		}
		c.tier = tier
		storeOpts = append(storeOpts, cache.WithDurableTier[json.RawMessage](tier))
	}

	store, err := cache.NewStore[json.RawMessage](cacheCfg, storeOpts...)
	if err != nil {
		c.closeTier()
		return nil, err
	}
	c.store = store

	client, err := formclient.New(clientCfg, store, tokens, formclient.WithLogger(settings.log))
	if err != nil {
		c.closeTier()
		return nil, err
	}
	c.client = client

	return c, nil
}

// NewContainerWithDefaults builds a Container with default cache and client
// configuration, reading client overrides from the environment.
func NewContainerWithDefaults(tokens formclient.TokenProvider, opts ...ContainerOption) (*Container, error) {
	clientCfg, err := formclient.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewContainer(cache.DefaultConfig(), clientCfg, tokens, opts...)
}

// Store returns the shared cache store, for callers that manage keys
// directly.
func (c *Container) Store() *cache.Store[json.RawMessage] {
	return c.store
}

// Client returns the API client.
func (c *Container) Client() *formclient.Client {
	return c.client
}

// CacheConfig returns a copy of the cache configuration used by this
// container.
func (c *Container) CacheConfig() cache.Config {
	return c.cacheConfig
}

// Close releases the durable tier's database handle. The volatile cache
// needs no teardown.
func (c *Container) Close() error {
	if c.tier == nil {
		return nil
	}
	return c.tier.Close()
}

func (c *Container) closeTier() {
	if c.tier != nil {
		_ = c.tier.Close()
	}
}
