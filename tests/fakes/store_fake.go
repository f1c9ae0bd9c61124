package fakes

import (
	"context"
	"sync"

	"github.com/systmms/smconfig/pkg/provider"
)

// FakeSecretStore is an in-memory provider.SecretStore.
//
// Unknown identifiers fail with provider.NotFoundError, like a real store.
type FakeSecretStore struct {
	mu       sync.Mutex
	payloads map[string]provider.Payload
	failOn   map[string]error
	fetched  []string
	closed   int

	// CloseErr is returned from Close when set.
	CloseErr error
}

// NewFakeSecretStore creates an empty store.
func NewFakeSecretStore() *FakeSecretStore {
	return &FakeSecretStore{
		payloads: make(map[string]provider.Payload),
		failOn:   make(map[string]error),
	}
}

// WithText stores a text payload under id.
func (f *FakeSecretStore) WithText(id, text string) *FakeSecretStore {
	return f.WithPayload(id, provider.TextPayload(text))
}

// WithBinary stores a binary payload under id.
func (f *FakeSecretStore) WithBinary(id string, b []byte) *FakeSecretStore {
	return f.WithPayload(id, provider.BinaryPayload(b))
}

// WithPayload stores payload under id as-is, including empty payloads.
func (f *FakeSecretStore) WithPayload(id string, payload provider.Payload) *FakeSecretStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[id] = payload
	return f
}

// WithError makes fetches of id fail with err.
func (f *FakeSecretStore) WithError(id string, err error) *FakeSecretStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[id] = err
	return f
}

// FetchSecret implements provider.SecretStore.
func (f *FakeSecretStore) FetchSecret(ctx context.Context, id string) (provider.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetched = append(f.fetched, id)

	if err := ctx.Err(); err != nil {
		return provider.Payload{}, err
	}
	if err, ok := f.failOn[id]; ok {
		return provider.Payload{}, err
	}
	payload, ok := f.payloads[id]
	if !ok {
		return provider.Payload{}, provider.NotFoundError{Store: "fake", Key: id}
	}
	return payload, nil
}

// Close implements provider.SecretStore and counts calls.
func (f *FakeSecretStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return f.CloseErr
}

// Fetched returns every identifier requested so far, in order.
func (f *FakeSecretStore) Fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

// CloseCount returns how many times Close was called.
func (f *FakeSecretStore) CloseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Factory returns a ClientFactory that hands out this store and records the
// Config it was given.
func (f *FakeSecretStore) Factory() *FakeClientFactory {
	return &FakeClientFactory{Store: f}
}

// FakeClientFactory is a provider.ClientFactory returning a fixed store.
type FakeClientFactory struct {
	Store provider.SecretStore
	Err   error

	mu      sync.Mutex
	configs []provider.Config
}

// Create implements provider.ClientFactory.
func (f *FakeClientFactory) Create(ctx context.Context, cfg provider.Config) (provider.SecretStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configs = append(f.configs, cfg)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Store, nil
}

// Configs returns every Config passed to Create.
func (f *FakeClientFactory) Configs() []provider.Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]provider.Config(nil), f.configs...)
}
