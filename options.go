package googleoauth2

import (
	"strings"

	"golang.org/x/oauth2"

	"github.com/omniauth-go/google-oauth2/strategy"
)

// authParams is the finalized parameter set for one authorization URL.
type authParams struct {
	scope  string
	state  string
	extras []oauth2.AuthCodeOption
}

// resolveAuthParams merges per-request parameters with strategy-level
// defaults. Later rules overwrite earlier ones for the same key:
//
//  1. scope: request scope, else the configured default
//  2. configured hd, approval_prompt, access_type
//  3. request-supplied access_type, prompt, state
//
// The redirect_uri always comes from the request's callback URL and is
// applied by the caller. Absent optional values are simply omitted; no
// rule can fail.
func (s *Strategy) resolveAuthParams(req *strategy.Request) authParams {
	o := req.Options

	scope := req.Param("scope")
	if scope == "" {
		scope = pick(optScope(o), s.scope)
	}

	var extras []oauth2.AuthCodeOption
	if hd := pick(optHostedDomain(o), s.hostedDomain); hd != "" {
		extras = append(extras, oauth2.SetAuthURLParam("hd", hd))
	}
	if ap := pick(optApprovalPrompt(o), s.approvalPrompt); ap != "" {
		extras = append(extras, oauth2.SetAuthURLParam("approval_prompt", ap))
	}
	if at := pick(optAccessType(o), s.accessType); at != "" {
		extras = append(extras, oauth2.SetAuthURLParam("access_type", at))
	}

	// Explicit request parameters win over anything configured. Options
	// set later overwrite earlier ones for the same key when the URL is
	// assembled.
	if v := req.Param("access_type"); v != "" {
		extras = append(extras, oauth2.SetAuthURLParam("access_type", v))
	}
	if v := req.Param("prompt"); v != "" {
		extras = append(extras, oauth2.SetAuthURLParam("prompt", v))
	}

	return authParams{
		scope:  scope,
		state:  req.Param("state"),
		extras: extras,
	}
}

// uidFieldFor returns the profile field holding the canonical unique id
// for this request, honoring a per-invocation override.
func (s *Strategy) uidFieldFor(req *strategy.Request) string {
	if req != nil && req.Options != nil && req.Options.UIDField != "" {
		return req.Options.UIDField
	}
	return s.uidField
}

// pick returns the override when set, the configured value otherwise.
func pick(override, configured string) string {
	if override != "" {
		return override
	}
	return configured
}

func optScope(o *strategy.Options) string {
	if o == nil {
		return ""
	}
	return o.Scope
}

func optHostedDomain(o *strategy.Options) string {
	if o == nil {
		return ""
	}
	return o.HostedDomain
}

func optApprovalPrompt(o *strategy.Options) string {
	if o == nil {
		return ""
	}
	return o.ApprovalPrompt
}

func optAccessType(o *strategy.Options) string {
	if o == nil {
		return ""
	}
	return o.AccessType
}

// splitScope splits a space or comma joined scope string into the scope
// list sent on the authorization URL.
func splitScope(scope string) []string {
	return strings.FieldsFunc(scope, func(r rune) bool {
		return r == ' ' || r == ','
	})
}
