// Package secretsmanager is the AWS Secrets Manager implementation of
// provider.ConfigProvider.
//
// A host configures it once with raw settings, resolves any number of paths,
// and closes it at shutdown:
//
//	p := secretsmanager.New(secretsmanager.WithLogger(logger))
//	if err := p.Configure(settings); err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	data, err := p.Get(ctx, "kafka", "username", "password")
//
// The store client is built by a provider.ClientFactory. The default factory
// talks to AWS; tests pass WithClientFactory to substitute a fake store.
package secretsmanager
