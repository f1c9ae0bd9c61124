package provider

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/systmms/smconfig/internal/secure"
)

// Config is the parsed, immutable provider configuration.
type Config struct {
	// Prefix is joined in front of every requested path. Empty means none.
	Prefix string

	// Region for the store client. Empty means the SDK default chain.
	Region string

	// Endpoint overrides the store endpoint. Empty means the default.
	Endpoint string

	// Credentials are static credentials. Nil means the default chain.
	Credentials *Credentials

	// MinimumSecretTTL is attached to every ConfigData.
	MinimumSecretTTL time.Duration
}

// Credentials is a static access key pair. The secret half is kept in an
// encrypted memory enclave and only decrypted on request.
type Credentials struct {
	AccessKeyID string
	secret      *secure.SecureBuffer
}

// NewCredentials protects secretAccessKey and returns the pair.
func NewCredentials(accessKeyID, secretAccessKey string) (*Credentials, error) {
	buf, err := secure.NewSecureBuffer([]byte(secretAccessKey))
	if err != nil {
		return nil, fmt.Errorf("failed to protect secret access key: %w", err)
	}
	return &Credentials{AccessKeyID: accessKeyID, secret: buf}, nil
}

// SecretAccessKey decrypts and returns the secret access key. It returns an
// empty string once Destroy has been called.
func (c *Credentials) SecretAccessKey() (string, error) {
	if c == nil || c.secret == nil {
		return "", nil
	}
	locked, err := c.secret.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open secret access key: %w", err)
	}
	defer locked.Destroy()
	return string(locked.Bytes()), nil
}

// Destroy releases the protected secret. Safe to call more than once.
func (c *Credentials) Destroy() {
	if c == nil || c.secret == nil {
		return
	}
	c.secret.Destroy()
}

// String never reveals the secret half.
func (c *Credentials) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.AccessKeyID + ":[REDACTED]"
}

// ParseConfig validates settings and builds a Config.
//
// String options accept string values. secret.ttl.ms accepts integers,
// integral floats, numeric strings and time.Duration. Unknown keys are
// ignored.
func ParseConfig(settings map[string]any) (Config, error) {
	var cfg Config
	var err error

	if cfg.Prefix, err = stringOption(settings, OptionPrefix); err != nil {
		return Config{}, err
	}
	if cfg.Region, err = stringOption(settings, OptionRegion); err != nil {
		return Config{}, err
	}
	if cfg.Endpoint, err = stringOption(settings, OptionEndpoint); err != nil {
		return Config{}, err
	}

	accessKey, err := stringOption(settings, OptionAccessKey)
	if err != nil {
		return Config{}, err
	}
	secretKey, err := stringOption(settings, OptionSecretKey)
	if err != nil {
		return Config{}, err
	}
	switch {
	case accessKey != "" && secretKey != "":
		cfg.Credentials, err = NewCredentials(accessKey, secretKey)
		if err != nil {
			return Config{}, err
		}
	case accessKey != "":
		return Config{}, ConfigError{
			Option:  OptionSecretKey,
			Message: fmt.Sprintf("must be set when '%s' is set", OptionAccessKey),
		}
	case secretKey != "":
		return Config{}, ConfigError{
			Option:  OptionAccessKey,
			Message: fmt.Sprintf("must be set when '%s' is set", OptionSecretKey),
		}
	}

	ttlMs, err := millisecondsOption(settings, OptionTTL, DefaultMinimumSecretTTLMs)
	if err != nil {
		cfg.Credentials.Destroy()
		return Config{}, err
	}
	cfg.MinimumSecretTTL = time.Duration(ttlMs) * time.Millisecond

	return cfg, nil
}

func stringOption(settings map[string]any, name string) (string, error) {
	raw, ok := settings[name]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		value := raw
		if name == OptionSecretKey {
			value = nil
		}
		return "", ConfigError{
			Option:  name,
			Value:   value,
			Message: fmt.Sprintf("expected a string, got %T", raw),
		}
	}
	return strings.TrimSpace(s), nil
}

func millisecondsOption(settings map[string]any, name string, def int64) (int64, error) {
	raw, ok := settings[name]
	if !ok || raw == nil {
		return def, nil
	}

	var ms int64
	switch v := raw.(type) {
	case time.Duration:
		ms = v.Milliseconds()
	case int:
		ms = int64(v)
	case int32:
		ms = int64(v)
	case int64:
		ms = v
	case uint32:
		ms = int64(v)
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, ConfigError{Option: name, Value: raw, Message: "expected a whole number of milliseconds"}
		}
		ms = int64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return def, nil
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, ConfigError{Option: name, Value: raw, Message: "expected a whole number of milliseconds"}
		}
		ms = parsed
	default:
		return 0, ConfigError{Option: name, Value: raw, Message: fmt.Sprintf("unsupported type %T", raw)}
	}

	if ms < 0 {
		return 0, ConfigError{Option: name, Value: raw, Message: "must not be negative"}
	}
	if ms > math.MaxInt64/int64(time.Millisecond) {
		return 0, ConfigError{Option: name, Value: raw, Message: "too large"}
	}
	return ms, nil
}
