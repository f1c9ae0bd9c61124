// Package errors turns provider failures into messages for people running the
// smconfig command.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/systmms/smconfig/pkg/provider"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ResolutionError wraps a failed Get with a suggestion based on its kind.
// Errors that are not resolution failures are returned unchanged.
func ResolutionError(err error) error {
	var perr *provider.Error
	if !errors.As(err, &perr) {
		return err
	}

	details := ""
	if perr.Err != nil {
		details = perr.Err.Error()
	}
	return UserError{
		Message:    perr.Message,
		Details:    details,
		Suggestion: suggestion(perr.Kind, perr.Err),
		Err:        err,
	}
}

// suggestion returns a hint for kind, refined by the cause's text.
func suggestion(kind provider.Kind, cause error) string {
	errStr := ""
	if cause != nil {
		errStr = cause.Error()
	}

	switch kind {
	case provider.KindNotFound:
		return "Verify the secret name, prefix and region. List secrets with: 'aws secretsmanager list-secrets'"
	case provider.KindDecryption:
		return "Check that the caller may use the secret's KMS key (kms:Decrypt)"
	case provider.KindPayloadFormat:
		return "Store the secret as a JSON object, for example {\"user\":\"admin\",\"pass\":\"...\"}"
	}

	if strings.Contains(errStr, "AccessDenied") {
		return "Check IAM permissions for secretsmanager:GetSecretValue"
	}
	if strings.Contains(errStr, "credentials") || strings.Contains(errStr, "authorization") {
		return "Configure AWS credentials: 'aws configure', set AWS_PROFILE, or pass aws.access.key and aws.secret.key"
	}
	if strings.Contains(errStr, "ThrottlingException") {
		return "AWS rate limit exceeded. Wait a moment and try again"
	}
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return "The operation timed out. Check your network connection and try again"
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") {
		return "Unable to connect. Check your network, region and aws.endpoint setting"
	}
	return ""
}

// IsRetryable reports whether a failed resolution may succeed if repeated.
// Only IO failures with a transient cause qualify.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if kind, ok := provider.KindOf(err); ok && kind != provider.KindIO {
		return false
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"timeout",
		"temporary failure",
		"connection reset",
		"broken pipe",
		"rate limit",
		"throttling",
		"too many requests",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// SimplifyError converts errors into UserError where a suggestion helps.
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Already a user-friendly error
	var userErr UserError
	if errors.As(err, &userErr) {
		return err
	}

	if _, ok := provider.KindOf(err); ok {
		return ResolutionError(err)
	}

	var cfgErr provider.ConfigError
	if errors.As(err, &cfgErr) {
		return UserError{
			Message:    cfgErr.Error(),
			Suggestion: fmt.Sprintf("Run 'smconfig options' to see what '%s' accepts", cfgErr.Option),
			Err:        err,
		}
	}

	errStr := err.Error()
	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    "Permission denied",
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}
	if strings.Contains(errStr, "no such file or directory") {
		return UserError{
			Message:    "File or directory not found",
			Suggestion: "Verify the path exists and is spelled correctly",
			Err:        err,
		}
	}

	return err
}
