package strategy

// Profile is the raw key-value document returned by a provider's
// user-info endpoint. Fields are untyped external data and are read
// defensively: a missing or non-string key yields the zero value, never
// a fault.
type Profile map[string]any

// Str returns the named field as a string, or "" when the field is
// absent or not a string.
func (p Profile) Str(key string) string {
	if p == nil {
		return ""
	}
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Has reports whether the named field is present.
func (p Profile) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p[key]
	return ok
}
