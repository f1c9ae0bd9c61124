package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/smconfig/pkg/provider"
	"github.com/systmms/smconfig/pkg/secretsmanager"
	"github.com/systmms/smconfig/tests/testutil"
)

func TestSecretsManagerIntegration(t *testing.T) {
	env := testutil.StartLocalStack(t)

	env.CreateSecretString("staging/database", `{"user":"admin","pass":"test-password-123","port":5432,"opt":null}`)
	env.CreateSecretBinary("staging/binary", []byte(`{"token":"bin-abc"}`))
	env.CreateSecretString("staging/plain", "not json at all")

	logger := testutil.NewTestLogger(t, true)
	p := secretsmanager.New(secretsmanager.WithLogger(logger))
	require.NoError(t, p.Configure(env.Settings("staging")))
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	t.Run("all_fields_in_stored_order", func(t *testing.T) {
		data, err := p.Get(ctx, "database")
		require.NoError(t, err)
		assert.Equal(t, []string{"user", "pass", "port"}, data.Keys)
		assert.Equal(t, "admin", data.Data["user"])
		assert.Equal(t, "", data.Data["port"])
		assert.Equal(t, 5*time.Minute, data.TTL)
	})

	t.Run("selected_fields", func(t *testing.T) {
		data, err := p.Get(ctx, "database", "pass", "missing")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"pass": "test-password-123"}, data.Data)
	})

	t.Run("binary_secret", func(t *testing.T) {
		data, err := p.Get(ctx, "binary")
		require.NoError(t, err)
		assert.Equal(t, "bin-abc", data.Data["token"])
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := p.Get(ctx, "nope")
		require.Error(t, err)
		assert.True(t, provider.IsNotFound(err))
		assert.Contains(t, err.Error(), "Could not find secret 'staging/nope'")
	})

	t.Run("not_json", func(t *testing.T) {
		_, err := p.Get(ctx, "plain")
		kind, ok := provider.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, provider.KindPayloadFormat, kind)
	})

	logger.AssertContains(t, "Requesting staging/database from Secrets Manager")
	logger.AssertNotContains(t, "test-password-123")
}
