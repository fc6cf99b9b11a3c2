// Package testutil provides fake provider endpoints for tests: a single
// httptest server hosting stand-ins for the token, tokeninfo, and
// userinfo endpoints with per-test configurable responses.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// FakeProvider hosts stand-in OAuth2 endpoints. Configure the response
// fields before driving the strategy; zero-valued statuses mean 200.
type FakeProvider struct {
	Server *httptest.Server

	// TokenStatus and TokenResponse shape the token endpoint's reply.
	TokenStatus   int
	TokenResponse map[string]any

	// TokenInfoStatus and TokenInfoResponse shape the introspection
	// endpoint's reply.
	TokenInfoStatus   int
	TokenInfoResponse map[string]any

	// UserInfoStatus and UserInfoResponse shape the userinfo endpoint's
	// reply.
	UserInfoStatus   int
	UserInfoResponse map[string]any

	// LastTokenRequest records the form values of the most recent token
	// exchange, for assertions.
	LastTokenRequest url.Values

	// LastAuthorization records the Authorization header of the most
	// recent userinfo request.
	LastAuthorization string
}

// NewFakeProvider starts a fake provider. The server is shut down when
// the test ends.
func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()

	f := &FakeProvider{}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", f.handleToken)
	mux.HandleFunc("/tokeninfo", f.handleTokenInfo)
	mux.HandleFunc("/userinfo", f.handleUserInfo)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// TokenURL returns the fake token endpoint.
func (f *FakeProvider) TokenURL() string { return f.Server.URL + "/token" }

// TokenInfoURL returns the fake introspection endpoint.
func (f *FakeProvider) TokenInfoURL() string { return f.Server.URL + "/tokeninfo" }

// UserInfoURL returns the fake userinfo endpoint.
func (f *FakeProvider) UserInfoURL() string { return f.Server.URL + "/userinfo" }

func (f *FakeProvider) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	f.LastTokenRequest = r.Form
	writeJSON(w, f.TokenStatus, f.TokenResponse)
}

func (f *FakeProvider) handleTokenInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, f.TokenInfoStatus, f.TokenInfoResponse)
}

func (f *FakeProvider) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	f.LastAuthorization = r.Header.Get("Authorization")
	writeJSON(w, f.UserInfoStatus, f.UserInfoResponse)
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
