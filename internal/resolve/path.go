package resolve

import "strings"

// SecretID builds the store identifier for path under prefix.
//
// An empty prefix leaves path untouched. Otherwise prefix and path are joined
// with a single "/": repeated separators collapse and a trailing separator is
// dropped, as with filesystem path joining. Dot segments are kept as-is.
func SecretID(prefix, path string) string {
	if prefix == "" {
		return path
	}

	joined := prefix + "/" + path

	var b strings.Builder
	b.Grow(len(joined))
	lastSlash := false
	for i := 0; i < len(joined); i++ {
		c := joined[i]
		if c == '/' {
			if lastSlash {
				continue
			}
			lastSlash = true
		} else {
			lastSlash = false
		}
		b.WriteByte(c)
	}

	id := b.String()
	if len(id) > 1 {
		id = strings.TrimSuffix(id, "/")
	}
	return id
}
