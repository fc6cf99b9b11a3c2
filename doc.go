// Package googleoauth2 implements a Google OAuth2 identity strategy.
//
// The strategy drives the authorization-code exchange with Google,
// validates the resulting access token, retrieves the authenticated
// user's profile from the userinfo endpoint, and normalizes the result
// into the provider-agnostic records defined by the strategy package.
//
// The host framework owns routing, sessions, and rendering. It calls the
// request phase to obtain a redirect target, and runs the callback phase
// through strategy.Authenticate when Google redirects back:
//
//	gs, err := googleoauth2.New(&googleoauth2.Config{
//	    ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
//	    ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Request phase: redirect the user-agent.
//	url := gs.RequestPhase(&strategy.Request{
//	    Params:      r.URL.Query(),
//	    CallbackURL: "https://example.com/auth/google/callback",
//	})
//
//	// Callback phase: exchange, verify, fetch, normalize.
//	auth, errs := strategy.Authenticate(ctx, gs, req)
//
// Authentication attempts are request-scoped and fully serial; concurrent
// attempts for different users are independent and need no coordination.
// Failed exchanges are never retried here: authorization codes are
// single-use, so retrying cannot succeed.
package googleoauth2
