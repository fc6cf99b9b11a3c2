package strategy

import "net/url"

// Request is the inbound request context the host framework hands to a
// strategy: merged query/body parameters, the computed callback URL for
// this deployment, and optional per-invocation overrides of the
// strategy's configured defaults. A Request is read-only within the
// pipeline.
type Request struct {
	// Params holds the request's query and body parameters.
	Params url.Values

	// CallbackURL is the absolute URL the provider redirects back to.
	// The strategy always sends it as redirect_uri.
	CallbackURL string

	// Options overrides strategy-level defaults for this invocation.
	// Nil means no overrides.
	Options *Options
}

// Param returns the named request parameter, or "" when absent.
func (r *Request) Param(name string) string {
	if r == nil || r.Params == nil {
		return ""
	}
	return r.Params.Get(name)
}

// Options are the per-invocation overrides a host may attach to a
// Request. Zero-valued fields leave the strategy's configuration in
// effect.
type Options struct {
	// Scope replaces the strategy's default scope string.
	Scope string

	// HostedDomain replaces the configured hosted-domain restriction.
	HostedDomain string

	// ApprovalPrompt replaces the configured approval_prompt hint.
	ApprovalPrompt string

	// AccessType replaces the configured access_type hint.
	AccessType string

	// UIDField replaces the configured profile field used as the
	// canonical unique id.
	UIDField string
}

// Attempt is the per-request context threaded through one authentication
// attempt. Token and Profile are transient provider state: they are set
// by the callback phase and cleared by Cleanup when the attempt ends.
// Attempts are never shared between concurrent authentications.
type Attempt struct {
	// Request is the inbound request this attempt is scoped to.
	Request *Request

	// Token is the validated token for this attempt, set together with
	// Profile on the success path.
	Token *Token

	// Profile is the raw user-info document fetched from the provider,
	// cached for the duration of the attempt.
	Profile Profile

	// Errors collects structured failures. Any entry means the attempt
	// failed and no identity result is produced.
	Errors *Errors
}

// NewAttempt creates an empty attempt scoped to req.
func NewAttempt(req *Request) *Attempt {
	return &Attempt{Request: req, Errors: &Errors{}}
}

// Fail records a structured failure for this attempt. Each failing
// pipeline step appends exactly one entry.
func (a *Attempt) Fail(kind, message string) {
	a.Errors.Fail(kind, message)
}
