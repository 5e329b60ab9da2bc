package fslite

import (
	"log/slog"
	"time"
)

// Config carries the settings for a Device. Build one with
// NewConfigBuilder.
type Config struct {
	dialer         Dialer
	logger         *slog.Logger
	connectTimeout time.Duration
}

// ConfigBuilder assembles a Config, applying defaults and validation
// in Build.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns an empty builder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets the Dialer used to reach the meter. Required.
func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

// WithLogger sets the logger the Device reports through. Defaults to
// slog.Default().
func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.logger = l
	return b
}

// WithConnectTimeout bounds the whole Connect exchange when the caller
// supplies a context without a deadline. Defaults to 30 seconds.
func (b *ConfigBuilder) WithConnectTimeout(d time.Duration) *ConfigBuilder {
	b.config.connectTimeout = d
	return b
}

// Build validates the configuration and applies defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if c.dialer == nil {
		return Config{}, ErrNoDialer
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.connectTimeout == 0 {
		c.connectTimeout = 30 * time.Second
	}
	return c, nil
}
