// Package strategy defines the contract between a host authentication
// framework and an OAuth2 identity-provider strategy, plus the records a
// strategy produces: a token, a raw profile document, and the normalized
// identity result.
//
// A strategy exposes two entry points. The request phase produces an
// authorization-endpoint URL for the host to redirect the user-agent to.
// The callback phase consumes the provider's redirect back and either
// fills the per-attempt context with a token and profile or records
// structured errors. Normalization (UID, Credentials, Info, Extra) only
// runs on error-free attempts.
package strategy

import "context"

// Strategy is implemented by each identity-provider integration. The host
// framework calls the same operation set on every provider; no dynamic
// dispatch beyond this interface is needed.
type Strategy interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// RequestPhase returns the authorization-endpoint URL to redirect the
	// user-agent to. No network call is made and no error is possible
	// given a validly configured strategy.
	RequestPhase(req *Request) string

	// CallbackPhase consumes the inbound callback request. It fills the
	// attempt with a token and profile on success, or records errors on
	// the attempt and leaves it otherwise untouched.
	CallbackPhase(ctx context.Context, req *Request, a *Attempt)

	// UID returns the canonical unique identifier for the authenticated
	// user, read from the attempt's profile.
	UID(a *Attempt) string

	// Credentials projects the attempt's token into the normalized
	// credentials record.
	Credentials(a *Attempt) Credentials

	// Info projects the attempt's profile into the normalized
	// human-facing record.
	Info(a *Attempt) Info

	// Extra returns the raw token and profile for callers needing
	// unmapped provider data.
	Extra(a *Attempt) Extra

	// Cleanup clears transient provider state from the attempt. The host
	// calls it at the end of every authentication attempt.
	Cleanup(a *Attempt)
}

// Authenticate drives one callback-phase authentication attempt through a
// strategy: callback, then normalization, then cleanup. It returns either
// a populated Auth or a non-empty error list, never both and never
// neither. Normalization is skipped entirely once any step has failed.
func Authenticate(ctx context.Context, s Strategy, req *Request) (*Auth, *Errors) {
	a := NewAttempt(req)
	defer s.Cleanup(a)

	s.CallbackPhase(ctx, req, a)
	if a.Errors.Failed() {
		return nil, a.Errors
	}

	return &Auth{
		Provider:    s.Name(),
		UID:         s.UID(a),
		Credentials: s.Credentials(a),
		Info:        s.Info(a),
		Extra:       s.Extra(a),
	}, nil
}
