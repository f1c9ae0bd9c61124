package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned by Open after Destroy.
var ErrDestroyed = errors.New("secure buffer destroyed")

// SecureBuffer holds one secret in a memguard enclave.
type SecureBuffer struct {
	mu        sync.RWMutex
	enclave   *memguard.Enclave
	size      int
	destroyed bool
}

// NewSecureBuffer moves data into an enclave. memguard wipes data in the
// process, so callers pass a slice they no longer need.
//
// An empty secret is kept as an empty buffer without an enclave; memguard does
// not create enclaves for zero-length input.
func NewSecureBuffer(data []byte) (*SecureBuffer, error) {
	buf := &SecureBuffer{size: len(data)}
	if len(data) > 0 {
		buf.enclave = memguard.NewEnclave(data)
	}
	return buf, nil
}

// Len returns the plaintext length.
func (s *SecureBuffer) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destroyed {
		return 0
	}
	return s.size
}

// Open decrypts the secret into a locked buffer. The caller must Destroy the
// returned buffer once the plaintext has been used.
func (s *SecureBuffer) Open() (*memguard.LockedBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed {
		return nil, ErrDestroyed
	}
	if s.enclave == nil {
		return memguard.NewBuffer(0), nil
	}
	return s.enclave.Open()
}

// Destroy drops the enclave. Later calls to Open fail with ErrDestroyed.
// Destroy is idempotent.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enclave = nil
	s.destroyed = true
}
