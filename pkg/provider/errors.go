package provider

import (
	"errors"
	"fmt"
)

// Kind classifies a failed resolution.
type Kind int

const (
	// KindIO is a transport or read failure talking to the store.
	KindIO Kind = iota
	// KindDecryption means the store could not decrypt the secret.
	KindDecryption
	// KindNotFound means the store has no secret with the identifier.
	KindNotFound
	// KindPayloadFormat means the payload was empty or not a JSON object.
	KindPayloadFormat
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDecryption:
		return "DecryptionError"
	case KindNotFound:
		return "NotFoundError"
	case KindPayloadFormat:
		return "PayloadFormatError"
	case KindIO:
		return "IOError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error a failed Get returns.
//
// Message already includes the resolved secret identifier. Err is the
// original cause and is never nil for errors produced by the resolver.
//
// Example:
//
//	data, err := p.Get(ctx, "database")
//	var perr *provider.Error
//	if errors.As(err, &perr) && perr.Kind == provider.KindNotFound {
//	    fmt.Println("no such secret:", perr.Secret)
//	}
type Error struct {
	// Kind is the failure class.
	Kind Kind

	// Secret is the resolved store identifier (prefix joined with path).
	Secret string

	// Message is the human-readable description.
	Message string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a resolution failure for a missing secret.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// ErrEmptyPayload is the cause reported when a store response carries neither
// text nor binary content.
var ErrEmptyPayload = errors.New("secret has neither text nor binary content")

// NotFoundError indicates that a requested secret does not exist in the store.
//
// SecretStore implementations return it (possibly wrapped) so the resolver can
// report KindNotFound.
type NotFoundError struct {
	// Store is the name of the store where the secret was not found.
	Store string

	// Key is the secret identifier that could not be found.
	Key string

	// Err is the store's own error, if any.
	Err error
}

// Error implements the error interface.
func (e NotFoundError) Error() string {
	return "secret not found: " + e.Key + " in " + e.Store
}

// Unwrap returns the store's own error.
func (e NotFoundError) Unwrap() error {
	return e.Err
}

// DecryptionError indicates that the store holds the secret but could not
// decrypt it, typically because of the encryption key's permissions.
type DecryptionError struct {
	// Store is the name of the store that failed to decrypt.
	Store string

	// Key is the secret identifier.
	Key string

	// Err is the store's own error, if any.
	Err error
}

// Error implements the error interface.
func (e DecryptionError) Error() string {
	return "secret could not be decrypted: " + e.Key + " in " + e.Store
}

// Unwrap returns the store's own error.
func (e DecryptionError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid provider setting.
type ConfigError struct {
	// Option is the setting name, for example "secret.ttl.ms".
	Option string

	// Value is the offending value. Secret values are never stored here.
	Value interface{}

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Option != "" {
		msg += fmt.Sprintf(" in option '%s'", e.Option)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return msg + ": " + e.Message
}
