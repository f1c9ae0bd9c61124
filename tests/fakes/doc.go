// Package fakes provides test doubles for the smconfig store interfaces.
//
// FakeSecretStore implements provider.SecretStore in memory and is what most
// resolver and provider tests use. FakeSecretsManagerClient implements the
// GetSecretValue surface of the AWS SDK client so the AWS store adapter can be
// tested without network access.
//
// Usage:
//
//	store := fakes.NewFakeSecretStore().
//	    WithText("production/db", `{"user":"admin","pass":"hunter2"}`)
//	factory := store.Factory()
//	p := secretsmanager.New(secretsmanager.WithClientFactory(factory))
package fakes
