package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/systmms/smconfig/pkg/provider"
)

// StoreName is the store name used in errors raised by the AWS store.
const StoreName = "aws.secretsmanager"

// ErrStoreClosed is returned by FetchSecret after Close.
var ErrStoreClosed = errors.New("secrets manager store is closed")

// SecretsManagerClientAPI is the part of the AWS Secrets Manager client the
// store uses. It allows a fake client in tests.
type SecretsManagerClientAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManagerStore implements provider.SecretStore on AWS Secrets Manager.
type AWSSecretsManagerStore struct {
	name      string
	client    SecretsManagerClientAPI
	region    string
	endpoint  string
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// StoreOption is a functional option for configuring the store
type StoreOption func(*AWSSecretsManagerStore)

// WithSecretsManagerClient sets a custom Secrets Manager client (for testing)
func WithSecretsManagerClient(client SecretsManagerClientAPI) StoreOption {
	return func(s *AWSSecretsManagerStore) {
		s.client = client
	}
}

// WithStoreName overrides the name reported in store errors.
func WithStoreName(name string) StoreOption {
	return func(s *AWSSecretsManagerStore) {
		s.name = name
	}
}

// NewAWSSecretsManagerStore creates a store from cfg. Region and static
// credentials are applied when set; otherwise the SDK default chains decide.
func NewAWSSecretsManagerStore(ctx context.Context, cfg provider.Config, opts ...StoreOption) (*AWSSecretsManagerStore, error) {
	s := &AWSSecretsManagerStore{
		name:     StoreName,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
	}

	// Apply options (allows fake client injection)
	for _, opt := range opts {
		opt(s)
	}

	if s.client != nil {
		return s, nil
	}

	var configOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		configOpts = append(configOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Credentials != nil {
		secretKey, err := cfg.Credentials.SecretAccessKey()
		if err != nil {
			return nil, err
		}
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Credentials.AccessKeyID, secretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if s.region == "" {
		s.region = awsCfg.Region
	}

	var clientOpts []func(*secretsmanager.Options)
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
			o.BaseEndpoint = &endpoint
		})
	}
	s.client = secretsmanager.NewFromConfig(awsCfg, clientOpts...)

	return s, nil
}

// Name returns the store name
func (s *AWSSecretsManagerStore) Name() string {
	return s.name
}

// Region returns the region the client resolved to. It may be empty when
// neither settings nor the environment name one.
func (s *AWSSecretsManagerStore) Region() string {
	return s.region
}

// FetchSecret retrieves the current value of secret id.
func (s *AWSSecretsManagerStore) FetchSecret(ctx context.Context, id string) (provider.Payload, error) {
	if s.closed.Load() {
		return provider.Payload{}, ErrStoreClosed
	}

	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return provider.Payload{}, classifyAWSError(s.name, id, err)
	}

	switch {
	case result.SecretString != nil:
		return provider.TextPayload(*result.SecretString), nil
	case result.SecretBinary != nil:
		return provider.BinaryPayload(result.SecretBinary), nil
	default:
		return provider.Payload{}, nil
	}
}

// Close marks the store closed and closes the client if it supports it.
// Later calls return the first result.
func (s *AWSSecretsManagerStore) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if c, ok := s.client.(io.Closer); ok {
			s.closeErr = c.Close()
		}
	})
	return s.closeErr
}
