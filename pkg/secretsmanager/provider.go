package secretsmanager

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/systmms/smconfig/internal/logging"
	"github.com/systmms/smconfig/internal/metrics"
	"github.com/systmms/smconfig/internal/providers"
	"github.com/systmms/smconfig/internal/resolve"
	"github.com/systmms/smconfig/pkg/provider"
)

// ErrNotConfigured is returned by Get before a successful Configure.
var ErrNotConfigured = errors.New("provider is not configured")

// ConfigProvider resolves configuration from AWS Secrets Manager.
type ConfigProvider struct {
	factory  provider.ClientFactory
	logger   provider.Logger
	registry prometheus.Registerer

	mu       sync.RWMutex
	cfg      provider.Config
	store    provider.SecretStore
	resolver *resolve.Resolver
	closed   bool
}

var _ provider.ConfigProvider = (*ConfigProvider)(nil)

// Option configures a ConfigProvider.
type Option func(*ConfigProvider)

// WithClientFactory replaces the factory that builds the store client.
func WithClientFactory(f provider.ClientFactory) Option {
	return func(p *ConfigProvider) {
		if f != nil {
			p.factory = f
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l provider.Logger) Option {
	return func(p *ConfigProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics registers resolution metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(p *ConfigProvider) {
		p.registry = reg
	}
}

// New creates an unconfigured provider.
func New(opts ...Option) *ConfigProvider {
	p := &ConfigProvider{
		factory: providers.NewAWSClientFactory(),
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configure parses settings and builds the store client. It may succeed only
// once per provider.
func (p *ConfigProvider) Configure(settings map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolver != nil || p.closed {
		return provider.ConfigError{Message: "provider is already configured or closed"}
	}

	p.logger.Debug("Configuring with %d setting(s)", len(settings))
	for _, k := range slices.Sorted(maps.Keys(settings)) {
		v := settings[k]
		if k == provider.OptionSecretKey {
			v = logging.Secret(fmt.Sprint(v))
		}
		p.logger.Debug("  %s = %v", k, v)
	}

	cfg, err := provider.ParseConfig(settings)
	if err != nil {
		return err
	}

	var rec *metrics.Recorder
	if p.registry != nil {
		if rec, err = metrics.New(p.registry); err != nil {
			cfg.Credentials.Destroy()
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	store, err := p.factory.Create(context.Background(), cfg)
	if err != nil {
		cfg.Credentials.Destroy()
		return fmt.Errorf("failed to create secrets manager client: %w", err)
	}

	p.cfg = cfg
	p.store = store
	p.resolver = resolve.New(store, cfg,
		resolve.WithLogger(p.logger),
		resolve.WithMetrics(rec),
	)

	if cfg.Prefix != "" {
		p.logger.Info("Secrets Manager provider configured (prefix %q)", cfg.Prefix)
	} else {
		p.logger.Info("Secrets Manager provider configured")
	}
	return nil
}

// Get resolves path into configuration data. With no keys every field of the
// secret is returned.
func (p *ConfigProvider) Get(ctx context.Context, path string, keys ...string) (provider.ConfigData, error) {
	p.mu.RLock()
	r := p.resolver
	p.mu.RUnlock()

	if r == nil {
		return provider.ConfigData{}, ErrNotConfigured
	}
	return r.Get(ctx, path, keys...)
}

// Close releases the store client and the protected credentials. Calling it
// more than once, or before Configure, returns nil.
func (p *ConfigProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.resolver = nil
	p.cfg.Credentials.Destroy()

	if p.store == nil {
		return nil
	}
	err := p.store.Close()
	p.store = nil
	if err != nil {
		return fmt.Errorf("failed to close secrets manager client: %w", err)
	}
	return nil
}

// ConfigDef returns the settings Configure recognizes.
func (p *ConfigProvider) ConfigDef() []provider.OptionDef {
	return provider.ConfigDef()
}
