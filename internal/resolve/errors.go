package resolve

import (
	"errors"
	"fmt"

	"github.com/systmms/smconfig/pkg/provider"
)

var messages = map[provider.Kind]string{
	provider.KindDecryption:    "Could not decrypt secret '%s'",
	provider.KindNotFound:      "Could not find secret '%s'",
	provider.KindPayloadFormat: "Exception thrown while reading secret '%s'",
	provider.KindIO:            "Exception thrown while reading secret '%s'",
}

// mapError converts a fetch or decode failure for secret id into the single
// error reported to the caller. The cause is always kept.
func mapError(id string, err error) *provider.Error {
	kind := classify(err)
	return &provider.Error{
		Kind:    kind,
		Secret:  id,
		Message: fmt.Sprintf(messages[kind], id),
		Err:     err,
	}
}

// classify accepts both value and pointer forms of the store error types.
func classify(err error) provider.Kind {
	var (
		decryptVal  provider.DecryptionError
		decryptPtr  *provider.DecryptionError
		notFoundVal provider.NotFoundError
		notFoundPtr *provider.NotFoundError
		payloadErr  *PayloadError
	)

	switch {
	case errors.As(err, &decryptVal), errors.As(err, &decryptPtr):
		return provider.KindDecryption
	case errors.As(err, &notFoundVal), errors.As(err, &notFoundPtr):
		return provider.KindNotFound
	case errors.As(err, &payloadErr):
		return provider.KindPayloadFormat
	default:
		return provider.KindIO
	}
}
