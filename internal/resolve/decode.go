package resolve

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/systmms/smconfig/pkg/provider"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// PayloadError reports a payload that could not be decoded into a JSON object.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return "invalid secret payload: " + e.Err.Error()
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// Field is one top-level member of a decoded secret.
type Field struct {
	Name  string
	Value gjson.Result
}

// DecodedSecret is a JSON object with its member order preserved.
type DecodedSecret struct {
	fields []Field
	index  map[string]int
}

// Names returns the field names in the order they appear in the payload.
func (d *DecodedSecret) Names() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the JSON value of name.
func (d *DecodedSecret) Lookup(name string) (gjson.Result, bool) {
	i, ok := d.index[name]
	if !ok {
		return gjson.Result{}, false
	}
	return d.fields[i].Value, true
}

// Len returns the number of distinct fields.
func (d *DecodedSecret) Len() int {
	return len(d.fields)
}

func (d *DecodedSecret) set(name string, value gjson.Result) {
	if i, ok := d.index[name]; ok {
		d.fields[i].Value = value
		return
	}
	d.index[name] = len(d.fields)
	d.fields = append(d.fields, Field{Name: name, Value: value})
}

var objectSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(`{"type": "object"}`))
})

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses payload into a DecodedSecret. Text content wins over binary
// content. Failures are returned as *PayloadError.
func Decode(payload provider.Payload) (*DecodedSecret, error) {
	var raw []byte
	switch {
	case payload.Text != nil:
		raw = []byte(*payload.Text)
	case payload.Binary != nil:
		raw = payload.Binary
	default:
		return nil, &PayloadError{Err: provider.ErrEmptyPayload}
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if err := checkObject(raw); err != nil {
		return nil, &PayloadError{Err: err}
	}
	return decodeObject(raw), nil
}

// checkObject rejects malformed JSON, documents whose root is not an object,
// and anything after the root value. The schema loader stops reading after
// the first value, so trailing data is caught by gjson's validator.
func checkObject(raw []byte) error {
	schema, err := objectSchema()
	if err != nil {
		return fmt.Errorf("compile object schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	if !gjson.ValidBytes(raw) {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// decodeObject walks the members of raw in source order. raw must already
// have passed checkObject. A repeated name keeps its first position and takes
// the last value.
func decodeObject(raw []byte) *DecodedSecret {
	secret := &DecodedSecret{index: make(map[string]int)}
	gjson.ParseBytes(raw).ForEach(func(key, value gjson.Result) bool {
		secret.set(key.Str, value)
		return true
	})
	return secret
}
