package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/smconfig/pkg/provider"
	"github.com/tidwall/gjson"
)

func TestDecode_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   provider.Payload
		wantNames []string
	}{
		{
			name:      "text object",
			payload:   provider.TextPayload(`{"user":"admin","pass":"hunter2"}`),
			wantNames: []string{"user", "pass"},
		},
		{
			name:      "binary object",
			payload:   provider.BinaryPayload([]byte(`{"b":"1","a":"2"}`)),
			wantNames: []string{"b", "a"},
		},
		{
			name:      "empty object",
			payload:   provider.TextPayload(`{}`),
			wantNames: []string{},
		},
		{
			name:      "whitespace around object",
			payload:   provider.TextPayload(" \n\t{\"k\": \"v\"}\n "),
			wantNames: []string{"k"},
		},
		{
			name:      "byte order mark",
			payload:   provider.BinaryPayload(append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"k":"v"}`)...)),
			wantNames: []string{"k"},
		},
		{
			name:      "nested values",
			payload:   provider.TextPayload(`{"z":{"a":1},"y":[1,2],"x":null,"w":true}`),
			wantNames: []string{"z", "y", "x", "w"},
		},
		{
			name:      "duplicate field keeps first position",
			payload:   provider.TextPayload(`{"a":"1","b":"2","a":"3"}`),
			wantNames: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			secret, err := Decode(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, secret.Names())
			assert.Equal(t, len(tt.wantNames), secret.Len())
		})
	}
}

func TestDecode_TextWinsOverBinary(t *testing.T) {
	t.Parallel()

	text := `{"from":"text"}`
	secret, err := Decode(provider.Payload{Text: &text, Binary: []byte(`{"from":"binary"}`)})
	require.NoError(t, err)

	raw, ok := secret.Lookup("from")
	require.True(t, ok)
	assert.Equal(t, "text", raw.Str)
}

func TestDecode_DuplicateFieldTakesLastValue(t *testing.T) {
	t.Parallel()

	secret, err := Decode(provider.TextPayload(`{"a":"1","a":"3"}`))
	require.NoError(t, err)

	raw, ok := secret.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, gjson.String, raw.Type)
	assert.Equal(t, "3", raw.Str)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload provider.Payload
		wantErr error
	}{
		{name: "no content", payload: provider.Payload{}, wantErr: provider.ErrEmptyPayload},
		{name: "empty text", payload: provider.TextPayload("")},
		{name: "empty binary", payload: provider.BinaryPayload([]byte{})},
		{name: "not json", payload: provider.TextPayload("user=admin")},
		{name: "truncated", payload: provider.TextPayload(`{"user":"admin"`)},
		{name: "array root", payload: provider.TextPayload(`["a","b"]`)},
		{name: "string root", payload: provider.TextPayload(`"hello"`)},
		{name: "number root", payload: provider.TextPayload(`42`)},
		{name: "null root", payload: provider.TextPayload(`null`)},
		{name: "trailing data", payload: provider.TextPayload(`{"a":"1"} {"b":"2"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			secret, err := Decode(tt.payload)
			require.Error(t, err)
			assert.Nil(t, secret)

			var perr *PayloadError
			require.True(t, errors.As(err, &perr), "expected *PayloadError, got %T", err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDecode_TrailingDataAfterObject(t *testing.T) {
	t.Parallel()

	for _, text := range []string{`{"a":"1"} {"b":"2"}`, `{"a":"1"}x`, `{"a":"1"}}`} {
		_, err := Decode(provider.TextPayload(text))
		require.Error(t, err, text)
		assert.Contains(t, err.Error(), "unexpected data after JSON object", text)
	}
}

func TestDecode_ValueKinds(t *testing.T) {
	t.Parallel()

	secret, err := Decode(provider.TextPayload(`{"s":"x\u00e9","n":1.5,"b":false,"o":{},"a":[],"z":null}`))
	require.NoError(t, err)

	want := map[string]gjson.Type{
		"s": gjson.String,
		"n": gjson.Number,
		"b": gjson.False,
		"o": gjson.JSON,
		"a": gjson.JSON,
		"z": gjson.Null,
	}
	for name, typ := range want {
		v, ok := secret.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, typ, v.Type, name)
	}

	s, _ := secret.Lookup("s")
	assert.Equal(t, "xé", s.Str)
}
