package strategy

import "time"

// Auth is the normalized, provider-agnostic identity result of a
// successful authentication attempt.
type Auth struct {
	// Provider is the strategy name that produced this result.
	Provider string

	// UID is the canonical unique identifier for the user at the
	// provider.
	UID string

	// Credentials carries the token material granted by the provider.
	Credentials Credentials

	// Info carries the normalized human-facing profile fields.
	Info Info

	// Extra carries the raw token and profile for consumers needing
	// unmapped provider data.
	Extra Extra
}

// Credentials is the normalized token record.
type Credentials struct {
	// Expires reports whether the provider communicated an expiry.
	Expires bool

	// ExpiresAt is the expiry timestamp, zero when Expires is false.
	ExpiresAt time.Time

	// Scopes is the ordered list of granted scopes.
	Scopes []string

	// TokenType is the token type, typically "Bearer".
	TokenType string

	// RefreshToken is the optional refresh token.
	RefreshToken string

	// Token is the access token string.
	Token string
}

// Info is the normalized human-facing profile record.
type Info struct {
	Email     string
	FirstName string
	LastName  string
	Name      string
	Image     string

	// URLs maps derived link names ("profile", "website") to their
	// values from the raw profile.
	URLs map[string]string
}

// Extra wraps the raw provider data backing an Auth.
type Extra struct {
	RawInfo RawInfo
}

// RawInfo is the verbatim token/profile pair from the attempt.
type RawInfo struct {
	Token *Token
	User  Profile
}
