// Package provider defines the public types of smconfig: the configuration
// provider contract a host framework talks to, the secret store contract the
// provider talks to, and the configuration and error types shared by both.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                 Host configuration loader                   │
//	│      (calls Configure once, Get per path, Close once)       │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ provider.ConfigProvider
//	┌─────────────────────────▼───────────────────────────────────┐
//	│                 pkg/secretsmanager                          │
//	│      (lifecycle: settings → Config → ClientFactory)         │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │
//	┌─────────────────────────▼───────────────────────────────────┐
//	│                 internal/resolve                            │
//	│   path → fetch → decode → project → TTL, error mapping      │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ provider.SecretStore
//	┌─────────────────────────▼───────────────────────────────────┐
//	│                 internal/providers                          │
//	│        AWS Secrets Manager client (aws-sdk-go-v2)           │
//	└─────────────────────────────────────────────────────────────┘
//
// # Resolution
//
// A host resolves a path into ConfigData:
//
//	p := secretsmanager.New()
//	if err := p.Configure(map[string]any{
//	    provider.OptionRegion: "us-west-2",
//	    provider.OptionPrefix: "production",
//	}); err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	data, err := p.Get(ctx, "database", "user", "pass")
//	if err != nil {
//	    return err
//	}
//	for _, k := range data.Keys {
//	    fmt.Println(k, "=", data.Data[k])
//	}
//
// The store identifier for the call above is "production/database". Requesting
// no keys returns every field of the secret in the order it was stored.
//
// # Error Handling
//
// Every failed resolution returns a single *Error whose Kind is one of
// KindDecryption, KindNotFound, KindPayloadFormat or KindIO. The underlying
// cause is always available through errors.Unwrap. Configuration problems are
// reported as ConfigError.
//
// # Threading and Concurrency
//
// Get may be called from any number of goroutines once Configure has returned.
// Nothing is mutated after configuration. Close must only be called after all
// in-flight Get calls have returned.
package provider
