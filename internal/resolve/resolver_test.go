package resolve_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/smconfig/internal/logging"
	"github.com/systmms/smconfig/internal/metrics"
	"github.com/systmms/smconfig/internal/resolve"
	"github.com/systmms/smconfig/pkg/provider"
	"github.com/systmms/smconfig/tests/fakes"
)

func newResolver(store provider.SecretStore, prefix string, opts ...resolve.Option) *resolve.Resolver {
	return resolve.New(store, provider.Config{Prefix: prefix, MinimumSecretTTL: 5 * time.Minute}, opts...)
}

func TestResolver_Get(t *testing.T) {
	t.Parallel()

	store := fakes.NewFakeSecretStore().
		WithText("staging/database", `{"user":"admin","pass":"hunter2","port":5432}`).
		WithBinary("staging/binary", []byte(`{"k":"v"}`))
	r := newResolver(store, "staging")

	tests := []struct {
		name     string
		path     string
		keys     []string
		wantKeys []string
		wantData map[string]string
	}{
		{
			name:     "all fields",
			path:     "database",
			wantKeys: []string{"user", "pass", "port"},
			wantData: map[string]string{"user": "admin", "pass": "hunter2", "port": ""},
		},
		{
			name:     "selected fields",
			path:     "database",
			keys:     []string{"pass", "missing"},
			wantKeys: []string{"pass"},
			wantData: map[string]string{"pass": "hunter2"},
		},
		{
			name:     "binary payload",
			path:     "binary",
			wantKeys: []string{"k"},
			wantData: map[string]string{"k": "v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := r.Get(context.Background(), tt.path, tt.keys...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, data.Keys)
			assert.Equal(t, tt.wantData, data.Data)
			assert.Equal(t, 5*time.Minute, data.TTL)
		})
	}
}

func TestResolver_TTLIndependentOfKeys(t *testing.T) {
	t.Parallel()

	store := fakes.NewFakeSecretStore().WithText("db", `{"a":"1","b":"2"}`)
	r := newResolver(store, "")

	all, err := r.Get(context.Background(), "db")
	require.NoError(t, err)
	some, err := r.Get(context.Background(), "db", "a")
	require.NoError(t, err)
	none, err := r.Get(context.Background(), "db", "zzz")
	require.NoError(t, err)

	assert.Equal(t, all.TTL, some.TTL)
	assert.Equal(t, all.TTL, none.TTL)
	assert.Equal(t, 0, none.Len())
}

func TestResolver_UsesJoinedID(t *testing.T) {
	t.Parallel()

	store := fakes.NewFakeSecretStore().WithText("prod/kafka/creds", `{}`).WithText("kafka", `{}`)

	_, err := newResolver(store, "prod/").Get(context.Background(), "/kafka/creds/")
	require.NoError(t, err)
	_, err = newResolver(store, "").Get(context.Background(), "kafka")
	require.NoError(t, err)

	assert.Equal(t, []string{"prod/kafka/creds", "kafka"}, store.Fetched())
}

func TestResolver_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		store       *fakes.FakeSecretStore
		wantKind    provider.Kind
		wantMessage string
	}{
		{
			name:        "not found",
			store:       fakes.NewFakeSecretStore(),
			wantKind:    provider.KindNotFound,
			wantMessage: "Could not find secret 'staging/db'",
		},
		{
			name: "not found pointer form",
			store: fakes.NewFakeSecretStore().
				WithError("staging/db", &provider.NotFoundError{Store: "x", Key: "staging/db"}),
			wantKind:    provider.KindNotFound,
			wantMessage: "Could not find secret 'staging/db'",
		},
		{
			name: "decryption",
			store: fakes.NewFakeSecretStore().
				WithError("staging/db", provider.DecryptionError{Store: "x", Key: "staging/db"}),
			wantKind:    provider.KindDecryption,
			wantMessage: "Could not decrypt secret 'staging/db'",
		},
		{
			name: "wrapped decryption",
			store: fakes.NewFakeSecretStore().
				WithError("staging/db", errors.Join(errors.New("ctx"), provider.DecryptionError{Key: "staging/db"})),
			wantKind:    provider.KindDecryption,
			wantMessage: "Could not decrypt secret 'staging/db'",
		},
		{
			name: "transport",
			store: fakes.NewFakeSecretStore().
				WithError("staging/db", errors.New("connection reset")),
			wantKind:    provider.KindIO,
			wantMessage: "Exception thrown while reading secret 'staging/db'",
		},
		{
			name:        "empty payload",
			store:       fakes.NewFakeSecretStore().WithPayload("staging/db", provider.Payload{}),
			wantKind:    provider.KindPayloadFormat,
			wantMessage: "Exception thrown while reading secret 'staging/db'",
		},
		{
			name:        "malformed payload",
			store:       fakes.NewFakeSecretStore().WithText("staging/db", "not json"),
			wantKind:    provider.KindPayloadFormat,
			wantMessage: "Exception thrown while reading secret 'staging/db'",
		},
		{
			name:        "array payload",
			store:       fakes.NewFakeSecretStore().WithText("staging/db", `["a"]`),
			wantKind:    provider.KindPayloadFormat,
			wantMessage: "Exception thrown while reading secret 'staging/db'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := newResolver(tt.store, "staging").Get(context.Background(), "db", "user")
			require.Error(t, err)
			assert.Equal(t, provider.ConfigData{}, data)

			var perr *provider.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantKind, perr.Kind)
			assert.Equal(t, "staging/db", perr.Secret)
			assert.Equal(t, tt.wantMessage, perr.Message)
			assert.NotNil(t, perr.Err)
		})
	}
}

func TestResolver_EmptyPayloadKeepsCause(t *testing.T) {
	t.Parallel()

	store := fakes.NewFakeSecretStore().WithPayload("db", provider.Payload{})
	_, err := newResolver(store, "").Get(context.Background(), "db")

	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrEmptyPayload)
	assert.Contains(t, err.Error(), "'db'")
}

func TestResolver_CanceledContext(t *testing.T) {
	t.Parallel()

	store := fakes.NewFakeSecretStore().WithText("db", `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newResolver(store, "").Get(ctx, "db")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	kind, ok := provider.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, provider.KindIO, kind)
}

func TestResolver_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	store := fakes.NewFakeSecretStore().WithText("db", `{"a":"1","b":"2"}`)
	r := newResolver(store, "", resolve.WithMetrics(m))

	_, err = r.Get(context.Background(), "db")
	require.NoError(t, err)
	_, err = r.Get(context.Background(), "missing")
	require.Error(t, err)

	count, err := testutil.GatherAndCount(reg, "smconfig_resolutions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "smconfig_fetch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestResolver_LogsDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, true, true)

	store := fakes.NewFakeSecretStore().WithText("staging/db", `{"pass":"hunter2"}`)
	r := newResolver(store, "staging", resolve.WithLogger(logger))

	_, err := r.Get(context.Background(), "db", "pass")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "get() - path = 'db'")
	assert.Contains(t, out, "Requesting staging/db from Secrets Manager")
	assert.NotContains(t, out, "hunter2")
}

func TestResolver_Concurrent(t *testing.T) {
	t.Parallel()

	store := fakes.NewFakeSecretStore().WithText("db", `{"user":"admin"}`)
	r := newResolver(store, "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := r.Get(context.Background(), "db", "user")
			assert.NoError(t, err)
			assert.Equal(t, "admin", data.Data["user"])
		}()
	}
	wg.Wait()

	assert.Len(t, store.Fetched(), 50)
}

func TestResolver_LogsRequestAtInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, false, true)

	store := fakes.NewFakeSecretStore().WithText("db", `{"pass":"hunter2"}`)
	r := newResolver(store, "", resolve.WithLogger(logger))

	_, err := r.Get(context.Background(), "db", "pass")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "✓ get() - path = 'db' keys = '[pass]'")
	assert.NotContains(t, out, "Requesting db")
	assert.NotContains(t, out, "hunter2")
}
