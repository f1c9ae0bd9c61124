package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestNotFoundError tests the NotFoundError error type
func TestNotFoundError(t *testing.T) {
	t.Parallel()

	cause := errors.New("ResourceNotFoundException")
	err := NotFoundError{Store: "aws.secretsmanager", Key: "prod/db", Err: cause}

	if got, want := err.Error(), "secret not found: prod/db in aws.secretsmanager"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("NotFoundError should unwrap to its cause")
	}
}

func TestDecryptionError(t *testing.T) {
	t.Parallel()

	err := DecryptionError{Store: "aws.secretsmanager", Key: "prod/db"}
	if got, want := err.Error(), "secret could not be decrypted: prod/db in aws.secretsmanager"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if errors.Unwrap(err) != nil {
		t.Error("expected nil cause")
	}
}

// TestConfigError tests the ConfigError error type
func TestConfigError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      ConfigError
		expected string
	}{
		{
			name:     "with option and value",
			err:      ConfigError{Option: OptionTTL, Value: "abc", Message: "expected a whole number of milliseconds"},
			expected: "Configuration error in option 'secret.ttl.ms' (value: abc): expected a whole number of milliseconds",
		},
		{
			name:     "without value",
			err:      ConfigError{Option: OptionSecretKey, Message: "must be set"},
			expected: "Configuration error in option 'aws.secret.key': must be set",
		},
		{
			name:     "message only",
			err:      ConfigError{Message: "already configured"},
			expected: "Configuration error: already configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	cause := NotFoundError{Store: "s", Key: "k"}
	err := fmt.Errorf("resolve: %w", &Error{
		Kind:    KindNotFound,
		Secret:  "k",
		Message: "Could not find secret 'k'",
		Err:     cause,
	})

	kind, ok := KindOf(err)
	if !ok || kind != KindNotFound {
		t.Errorf("KindOf() = %v, %v; want NotFoundError, true", kind, ok)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false, want true")
	}
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Key != "k" {
		t.Error("cause should be reachable through the chain")
	}
	if got, want := errors.Unwrap(err).Error(), "Could not find secret 'k': secret not found: k in s"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf() should not match a plain error")
	}
	if IsNotFound(&Error{Kind: KindIO}) {
		t.Error("IsNotFound() should be false for IOError")
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := map[Kind]string{
		KindIO:            "IOError",
		KindDecryption:    "DecryptionError",
		KindNotFound:      "NotFoundError",
		KindPayloadFormat: "PayloadFormatError",
		Kind(42):          "Kind(42)",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

func TestConfigData(t *testing.T) {
	t.Parallel()

	data := NewConfigData(3, time.Minute)
	data.Put("b", "1")
	data.Put("a", "2")
	data.Put("b", "3")

	if data.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", data.Len())
	}
	if data.Keys[0] != "b" || data.Keys[1] != "a" {
		t.Errorf("Keys = %v, want [b a]", data.Keys)
	}
	if v, ok := data.Lookup("b"); !ok || v != "3" {
		t.Errorf("Lookup(b) = %q, %v; want 3, true", v, ok)
	}
	if _, ok := data.Lookup("c"); ok {
		t.Error("Lookup(c) should miss")
	}

	out, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(out), `{"b":"3","a":"2"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestConfigDataMarshalEmpty(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(ConfigData{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("Marshal() = %s, want {}", out)
	}
}

func TestPayload(t *testing.T) {
	t.Parallel()

	if !(Payload{}).Empty() {
		t.Error("zero Payload should be empty")
	}
	if TextPayload("").Empty() {
		t.Error("empty text is still content")
	}
	if BinaryPayload([]byte{}).Empty() {
		t.Error("empty binary is still content")
	}
	if BinaryPayload(nil).Empty() != true {
		t.Error("nil binary is no content")
	}
}

func TestConfigDef(t *testing.T) {
	t.Parallel()

	defs := ConfigDef()
	want := []string{OptionRegion, OptionAccessKey, OptionSecretKey, OptionEndpoint, OptionPrefix, OptionTTL}
	if len(defs) != len(want) {
		t.Fatalf("ConfigDef() has %d options, want %d", len(defs), len(want))
	}
	for i, d := range defs {
		if d.Name != want[i] {
			t.Errorf("option %d = %s, want %s", i, d.Name, want[i])
		}
		if d.Documentation == "" {
			t.Errorf("option %s has no documentation", d.Name)
		}
	}
	if defs[2].Type != TypePassword {
		t.Errorf("%s type = %s, want password", OptionSecretKey, defs[2].Type)
	}
	if defs[5].Default != "300000" {
		t.Errorf("%s default = %s, want 300000", OptionTTL, defs[5].Default)
	}
}
