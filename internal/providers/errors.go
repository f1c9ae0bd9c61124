package providers

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
	"github.com/systmms/smconfig/pkg/provider"
)

// classifyAWSError converts AWS errors to store errors the resolver understands.
func classifyAWSError(storeName, id string, err error) error {
	if isNotFoundError(err) {
		return provider.NotFoundError{Store: storeName, Key: id, Err: err}
	}
	if isDecryptionError(err) {
		return provider.DecryptionError{Store: storeName, Key: id, Err: err}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("AWS Secrets Manager error (%s): %w", apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("AWS Secrets Manager error: %w", err)
}

func isNotFoundError(err error) bool {
	var resourceNotFound *types.ResourceNotFoundException
	return errors.As(err, &resourceNotFound)
}

func isDecryptionError(err error) bool {
	var decryptionFailure *types.DecryptionFailure
	return errors.As(err, &decryptionFailure)
}
