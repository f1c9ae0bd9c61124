package providers

import (
	"context"

	"github.com/systmms/smconfig/pkg/provider"
)

// AWSClientFactory builds AWSSecretsManagerStore instances. Options are
// applied to every store it creates.
type AWSClientFactory struct {
	Options []StoreOption
}

// NewAWSClientFactory returns the default factory.
func NewAWSClientFactory(opts ...StoreOption) *AWSClientFactory {
	return &AWSClientFactory{Options: opts}
}

// Create implements provider.ClientFactory.
func (f *AWSClientFactory) Create(ctx context.Context, cfg provider.Config) (provider.SecretStore, error) {
	store, err := NewAWSSecretsManagerStore(ctx, cfg, f.Options...)
	if err != nil {
		return nil, err
	}
	return store, nil
}
