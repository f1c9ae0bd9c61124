package provider

import (
	"context"
	"encoding/json"
	"time"
)

// ConfigProvider defines the contract between a host configuration loader and
// a secret-backed source of configuration values.
//
// The host calls Configure exactly once with its raw settings, then Get any
// number of times, then Close once at shutdown.
//
// Example usage:
//
//	var p provider.ConfigProvider = secretsmanager.New()
//	if err := p.Configure(settings); err != nil {
//	    return fmt.Errorf("configure provider: %w", err)
//	}
//	defer p.Close()
//
//	data, err := p.Get(ctx, "kafka/credentials")
//	if err != nil {
//	    return err
//	}
//	reuseFor := data.TTL
type ConfigProvider interface {
	// Configure parses settings and constructs the secret store client.
	//
	// Unknown settings are ignored. Invalid values are reported as ConfigError.
	// Calling Configure a second time fails.
	Configure(settings map[string]any) error

	// Get resolves path into configuration entries.
	//
	// With no keys every field of the secret is returned in stored order.
	// With keys, only those fields are returned, in the order given; missing
	// and null fields are silently left out.
	//
	// On failure the returned error is an *Error and no partial data is
	// returned.
	Get(ctx context.Context, path string, keys ...string) (ConfigData, error)

	// Close releases the secret store client. It is safe to call more than
	// once and safe to call when Configure never ran.
	Close() error
}

// Logger is the logging surface the provider writes to.
//
// internal/logging.Logger satisfies it.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
}

// ConfigData is the result of a resolution.
//
// Data holds the projected fields. Keys lists the same field names in
// projection order, since Go maps do not keep insertion order. TTL is the
// configured minimum time the host may reuse the result before resolving
// again; zero means no caching hint.
//
// Example:
//
//	data := ConfigData{
//	    Data: map[string]string{"user": "admin", "pass": "hunter2"},
//	    Keys: []string{"user", "pass"},
//	    TTL:  5 * time.Minute,
//	}
type ConfigData struct {
	// Data maps field name to value.
	Data map[string]string

	// Keys is the order in which fields were projected. Every entry is a key
	// of Data and no entry repeats.
	Keys []string

	// TTL is the caching hint attached to the result.
	TTL time.Duration
}

// NewConfigData returns an empty ConfigData with room for n fields.
func NewConfigData(n int, ttl time.Duration) ConfigData {
	return ConfigData{
		Data: make(map[string]string, n),
		Keys: make([]string, 0, n),
		TTL:  ttl,
	}
}

// Put records a field. Re-putting an existing field replaces its value but
// keeps its original position.
func (d *ConfigData) Put(key, value string) {
	if _, exists := d.Data[key]; !exists {
		d.Keys = append(d.Keys, key)
	}
	d.Data[key] = value
}

// Lookup returns the value of key and whether it was present.
func (d ConfigData) Lookup(key string) (string, bool) {
	v, ok := d.Data[key]
	return v, ok
}

// Len returns the number of fields.
func (d ConfigData) Len() int {
	return len(d.Keys)
}

// MarshalJSON encodes Data as a JSON object with fields in Keys order.
func (d ConfigData) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range d.Keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.Data[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, name...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	buf = append(buf, '}')
	return buf, nil
}
