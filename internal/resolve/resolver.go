package resolve

import (
	"context"
	"time"

	"github.com/systmms/smconfig/internal/logging"
	"github.com/systmms/smconfig/internal/metrics"
	"github.com/systmms/smconfig/pkg/provider"
)

// Resolver turns a path and key set into ConfigData using one secret store.
// It holds no mutable state and is safe for concurrent use when the store is.
type Resolver struct {
	store   provider.SecretStore
	prefix  string
	ttl     time.Duration
	logger  provider.Logger
	metrics *metrics.Recorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards output.
func WithLogger(l provider.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New creates a resolver reading from store with the prefix and TTL of cfg.
func New(store provider.SecretStore, cfg provider.Config, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		prefix: cfg.Prefix,
		ttl:    cfg.MinimumSecretTTL,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get resolves path and projects keys (all fields when empty). On failure
// the error is a *provider.Error and the returned ConfigData is empty.
func (r *Resolver) Get(ctx context.Context, path string, keys ...string) (provider.ConfigData, error) {
	r.logger.Info("get() - path = '%s' keys = '%v'", path, keys)

	id := SecretID(r.prefix, path)

	r.logger.Debug("Requesting %s from Secrets Manager", id)
	start := time.Now()
	payload, err := r.store.FetchSecret(ctx, id)
	r.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		return provider.ConfigData{}, r.fail(id, err)
	}

	secret, err := Decode(payload)
	if err != nil {
		return provider.ConfigData{}, r.fail(id, err)
	}

	data := Project(secret, keys, r.ttl)
	r.metrics.Resolved(metrics.OutcomeSuccess, data.Len())
	r.logger.Debug("Resolved %d field(s) from %s", data.Len(), id)
	return data, nil
}

func (r *Resolver) fail(id string, cause error) error {
	err := mapError(id, cause)
	r.metrics.Resolved(err.Kind.String(), 0)
	r.logger.Debug("%s: %v", err.Kind, err)
	return err
}
