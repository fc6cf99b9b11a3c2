package googleoauth2

import (
	"strings"

	"github.com/omniauth-go/google-oauth2/strategy"
)

// The methods below are pure projections over an attempt whose token and
// profile are both present. They perform no I/O and cannot fail;
// strategy.Authenticate never calls them on an attempt with errors.

// UID reads the configured uid field (default "sub") from the profile.
func (s *Strategy) UID(a *strategy.Attempt) string {
	return a.Profile.Str(s.uidFieldFor(a.Request))
}

// Credentials projects the attempt's token. The granted-scope string is
// split on ",": an empty string yields a single empty entry, which
// downstream consumers rely on.
func (s *Strategy) Credentials(a *strategy.Attempt) strategy.Credentials {
	t := a.Token
	return strategy.Credentials{
		Expires:      t.Expires(),
		ExpiresAt:    t.ExpiresAt,
		Scopes:       strings.Split(t.Param("scope"), ","),
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Token:        t.AccessToken,
	}
}

// Info projects the raw profile into the normalized human-facing record.
// Absent fields yield empty strings.
func (s *Strategy) Info(a *strategy.Attempt) strategy.Info {
	p := a.Profile
	return strategy.Info{
		Email:     p.Str("email"),
		FirstName: p.Str("given_name"),
		LastName:  p.Str("family_name"),
		Name:      p.Str("name"),
		Image:     p.Str("picture"),
		URLs: map[string]string{
			"profile": p.Str("profile"),
			"website": p.Str("hd"),
		},
	}
}

// Extra returns the raw token and profile verbatim.
func (s *Strategy) Extra(a *strategy.Attempt) strategy.Extra {
	return strategy.Extra{
		RawInfo: strategy.RawInfo{
			Token: a.Token,
			User:  a.Profile,
		},
	}
}

// Cleanup clears the transient provider state attached to the attempt.
func (s *Strategy) Cleanup(a *strategy.Attempt) {
	a.Token = nil
	a.Profile = nil
}
