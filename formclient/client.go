package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-easeform-client/cache"
)

// Client is the typed EaseForm API client. Every read goes through the
// stale-while-revalidate resolver over a shared cache store; every write
// passes through to the API and invalidates the affected key prefixes. The
// cache holds raw JSON payloads, so one store serves all resource types.
type Client struct {
	cfg      Config
	http     *http.Client
	tokens   TokenProvider
	store    *cache.Store[json.RawMessage]
	resolver *cache.Resolver[json.RawMessage]
	log      zerolog.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests. The caller
// keeps responsibility for its timeout; a transport that never settles pins
// the in-flight slot for its cache key.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger for swallowed cache and background-refresh
// failures.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New constructs a Client over the given cache store and token provider.
func New(cfg Config, store *cache.Store[json.RawMessage], tokens TokenProvider, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("formclient: cache store is required")
	}
	if tokens == nil {
		return nil, errors.New("formclient: token provider is required")
	}

	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		tokens: tokens,
		store:  store,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resolver = cache.NewResolver(store, cache.WithResolverLogger[json.RawMessage](c.log))
	return c, nil
}

// SignOut drops all cached data, both tiers. The auth platform owns the
// actual session teardown.
func (c *Client) SignOut() {
	c.store.Clear()
}

// do issues one API request and returns the raw response body. Non-2xx
// responses become an APIError carrying the server's detail message.
func (c *Client) do(ctx context.Context, method, path string, body any, authed bool) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("formclient: encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+c.cfg.APIPrefix+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			if errors.Is(err, ErrNoActiveSession) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrNoActiveSession, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var payload struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &payload)
		return nil, newAPIError(resp.StatusCode, payload.Detail)
	}
	return json.RawMessage(data), nil
}

// getFetch builds the fetch operation the resolver runs on misses and
// background refreshes for a GET endpoint.
func (c *Client) getFetch(path string, authed bool) cache.FetchFn[json.RawMessage] {
	return func(ctx context.Context) (json.RawMessage, error) {
		return c.do(ctx, http.MethodGet, path, nil, authed)
	}
}

// resolveAs reads a typed value through the resolver. When onUpdate is set it
// fires at most once, after a stale read, with decoded fresh data that
// differed from what was served.
func resolveAs[T any](ctx context.Context, c *Client, key string, fetch cache.FetchFn[json.RawMessage], ttl time.Duration, onUpdate func(T)) (T, error) {
	var opts []cache.ResolveOption[json.RawMessage]
	if onUpdate != nil {
		opts = append(opts, cache.OnBackgroundUpdate[json.RawMessage](func(raw json.RawMessage) {
			var fresh T
			if err := json.Unmarshal(raw, &fresh); err != nil {
				c.log.Debug().Err(err).Str("key", key).Msg("discarding undecodable background update")
				return
			}
			onUpdate(fresh)
		}))
	}

	raw, err := c.resolver.Resolve(ctx, key, fetch, ttl, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("formclient: decoding %s: %w", key, err)
	}
	return out, nil
}

func decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("formclient: decoding response: %w", err)
	}
	return out, nil
}

func firstHandler[T any](handlers []func(T)) func(T) {
	if len(handlers) == 0 {
		return nil
	}
	return handlers[0]
}
