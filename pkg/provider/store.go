package provider

import "context"

// Payload is the raw content of a secret as returned by the store.
//
// A valid payload carries exactly one of Text or Binary. Text is a pointer so
// that an empty secret string can be told apart from an absent one.
type Payload struct {
	// Text is the secret string, if the secret was stored as text.
	Text *string

	// Binary is the secret bytes, if the secret was stored as binary.
	Binary []byte
}

// TextPayload builds a Payload holding s.
func TextPayload(s string) Payload {
	return Payload{Text: &s}
}

// BinaryPayload builds a Payload holding b.
func BinaryPayload(b []byte) Payload {
	return Payload{Binary: b}
}

// Empty reports whether neither text nor binary content is present.
func (p Payload) Empty() bool {
	return p.Text == nil && p.Binary == nil
}

// SecretStore fetches raw secret payloads by identifier.
//
// Implementations classify failures: a missing secret is reported as
// NotFoundError, a secret the store could not decrypt as DecryptionError.
// Anything else is treated as a transport or IO failure.
//
// Implementations must be safe for concurrent use.
type SecretStore interface {
	// FetchSecret returns the current payload of the secret identified by id.
	FetchSecret(ctx context.Context, id string) (Payload, error)

	// Close releases resources held by the store.
	Close() error
}

// ClientFactory builds a SecretStore from parsed configuration.
//
// The provider calls Create exactly once during Configure. Tests substitute a
// factory that returns a fake store.
type ClientFactory interface {
	Create(ctx context.Context, cfg Config) (SecretStore, error)
}

// ClientFactoryFunc adapts a function to ClientFactory.
type ClientFactoryFunc func(ctx context.Context, cfg Config) (SecretStore, error)

// Create calls f.
func (f ClientFactoryFunc) Create(ctx context.Context, cfg Config) (SecretStore, error) {
	return f(ctx, cfg)
}
