package formclient

import (
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config holds the client configuration. Values are loaded from the
// environment by ConfigFromEnv; zero-config construction uses the defaults.
type Config struct {
	// BaseURL is the API origin, without the prefix.
	BaseURL string `env:"EASEFORM_API_URL" envDefault:"http://localhost:8000"`

	// APIPrefix is prepended to every endpoint path.
	APIPrefix string `env:"EASEFORM_API_PREFIX" envDefault:"/api"`

	// RequestTimeout bounds every HTTP request. It doubles as the settlement
	// guarantee for fetches handed to the resolver: a request that never
	// completes would pin its key's in-flight slot forever.
	RequestTimeout time.Duration `env:"EASEFORM_REQUEST_TIMEOUT" envDefault:"10s"`

	// Per-resource cache lifetimes.
	FormListTTL    time.Duration `env:"EASEFORM_TTL_FORM_LIST" envDefault:"1m"`
	FormTTL        time.Duration `env:"EASEFORM_TTL_FORM" envDefault:"1m"`
	PublicFormTTL  time.Duration `env:"EASEFORM_TTL_PUBLIC_FORM" envDefault:"30s"`
	ResponseTTL    time.Duration `env:"EASEFORM_TTL_RESPONSES" envDefault:"30s"`
	HostProfileTTL time.Duration `env:"EASEFORM_TTL_HOST_PROFILE" envDefault:"5m"`
}

// DefaultConfig returns the configuration used when no environment overrides
// are present.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:8000",
		APIPrefix:      "/api",
		RequestTimeout: 10 * time.Second,
		FormListTTL:    time.Minute,
		FormTTL:        time.Minute,
		PublicFormTTL:  30 * time.Second,
		ResponseTTL:    30 * time.Second,
		HostProfileTTL: 5 * time.Minute,
	}
}

// ConfigFromEnv loads and validates the configuration from environment
// variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.APIPrefix, validation.Required),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.FormListTTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.FormTTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.PublicFormTTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.ResponseTTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.HostProfileTTL, validation.Required, validation.Min(time.Millisecond)),
	)
}
