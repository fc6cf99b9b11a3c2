package strategy

import (
	"fmt"
	"time"
)

// Token is the result of a code exchange, or a wrapper around an
// externally supplied access token. It is owned by the pipeline for the
// duration of one authentication attempt and is never persisted.
type Token struct {
	// AccessToken is the bearer token used against provider APIs.
	AccessToken string

	// RefreshToken is the optional refresh token.
	RefreshToken string

	// TokenType is the token type, typically "Bearer".
	TokenType string

	// ExpiresAt is when the access token expires. The zero value means
	// no expiry was communicated.
	ExpiresAt time.Time

	// Params holds provider-specific extra response fields, such as the
	// granted scope string or error code/description on failure.
	Params map[string]any
}

// Expires reports whether the provider communicated an expiry.
func (t *Token) Expires() bool {
	return t != nil && !t.ExpiresAt.IsZero()
}

// Param returns the named extra parameter coerced to a string, or ""
// when absent.
func (t *Token) Param(key string) string {
	if t == nil || t.Params == nil {
		return ""
	}
	v, ok := t.Params[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
