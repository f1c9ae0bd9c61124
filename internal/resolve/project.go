package resolve

import (
	"time"

	"github.com/systmms/smconfig/pkg/provider"
	"github.com/tidwall/gjson"
)

// Project copies the requested fields of secret into a ConfigData carrying ttl.
//
// With no keys every field is read in payload order. Otherwise keys are read
// in the order given, with repeats ignored. Missing fields and JSON nulls are
// left out. A field holding anything other than a JSON string is kept with an
// empty value; numbers, booleans, objects and arrays are not stringified.
func Project(secret *DecodedSecret, keys []string, ttl time.Duration) provider.ConfigData {
	names := keys
	if len(names) == 0 {
		names = secret.Names()
	}

	data := provider.NewConfigData(len(names), ttl)
	for _, name := range names {
		if _, seen := data.Data[name]; seen {
			continue
		}
		value, ok := secret.Lookup(name)
		if !ok || value.Type == gjson.Null {
			continue
		}
		data.Put(name, textValue(value))
	}
	return data
}

// textValue returns the string a JSON string holds, or "" for any other kind
// of value.
func textValue(v gjson.Result) string {
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
