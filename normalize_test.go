package googleoauth2

import (
	"reflect"
	"testing"
	"time"

	"github.com/omniauth-go/google-oauth2/strategy"
)

func normalizedAttempt() *strategy.Attempt {
	a := strategy.NewAttempt(callbackRequest(nil))
	a.Token = &strategy.Token{
		AccessToken:  "T",
		RefreshToken: "R",
		TokenType:    "Bearer",
		ExpiresAt:    time.Unix(1700000000, 0),
		Params:       map[string]any{"scope": "a,b,c"},
	}
	a.Profile = strategy.Profile{
		"sub":         "42",
		"email":       "a@b.com",
		"given_name":  "A",
		"family_name": "B",
		"name":        "A B",
		"picture":     "https://example.com/photo.jpg",
		"profile":     "https://plus.example.com/42",
		"hd":          "example.com",
	}
	return a
}

func TestCredentials(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())
	a := normalizedAttempt()

	c := s.Credentials(a)
	if !c.Expires {
		t.Error("Expires = false, want true")
	}
	if c.ExpiresAt.Unix() != 1700000000 {
		t.Errorf("ExpiresAt = %d, want 1700000000", c.ExpiresAt.Unix())
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(c.Scopes, want) {
		t.Errorf("Scopes = %v, want %v", c.Scopes, want)
	}
	if c.Token != "T" || c.RefreshToken != "R" || c.TokenType != "Bearer" {
		t.Errorf("token fields = (%q, %q, %q), want (T, R, Bearer)", c.Token, c.RefreshToken, c.TokenType)
	}
}

func TestCredentials_ScopeSplitIsLiteral(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())

	tests := []struct {
		name  string
		scope any
		want  []string
	}{
		{
			name:  "comma separated",
			scope: "a,b,c",
			want:  []string{"a", "b", "c"},
		},
		{
			// Splitting the empty string yields one empty entry, not an
			// empty list. Downstream consumers rely on this.
			name:  "empty string",
			scope: "",
			want:  []string{""},
		},
		{
			name:  "absent scope parameter",
			scope: nil,
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := normalizedAttempt()
			if tt.scope == nil {
				delete(a.Token.Params, "scope")
			} else {
				a.Token.Params["scope"] = tt.scope
			}
			if got := s.Credentials(a).Scopes; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scopes = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCredentials_NoExpiry(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())
	a := normalizedAttempt()
	a.Token.ExpiresAt = time.Time{}

	c := s.Credentials(a)
	if c.Expires {
		t.Error("Expires = true, want false when no expiry was communicated")
	}
}

func TestInfo(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())
	a := normalizedAttempt()

	info := s.Info(a)
	if info.Email != "a@b.com" {
		t.Errorf("Email = %q", info.Email)
	}
	if info.FirstName != "A" || info.LastName != "B" || info.Name != "A B" {
		t.Errorf("names = (%q, %q, %q)", info.FirstName, info.LastName, info.Name)
	}
	if info.Image != "https://example.com/photo.jpg" {
		t.Errorf("Image = %q", info.Image)
	}
	want := map[string]string{
		"profile": "https://plus.example.com/42",
		"website": "example.com",
	}
	if !reflect.DeepEqual(info.URLs, want) {
		t.Errorf("URLs = %v, want %v", info.URLs, want)
	}
}

func TestInfo_AbsentFieldsYieldEmpty(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())
	a := strategy.NewAttempt(callbackRequest(nil))
	a.Token = &strategy.Token{AccessToken: "T"}
	a.Profile = strategy.Profile{"sub": "42"}

	info := s.Info(a)
	if info.Email != "" || info.Name != "" || info.Image != "" {
		t.Errorf("absent profile fields should be empty, got %+v", info)
	}
	if info.URLs["profile"] != "" || info.URLs["website"] != "" {
		t.Errorf("absent URL fields should be empty, got %v", info.URLs)
	}
}

func TestUID(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())
	a := normalizedAttempt()

	if got := s.UID(a); got != "42" {
		t.Errorf("UID() = %q, want %q", got, "42")
	}

	a.Request.Options = &strategy.Options{UIDField: "email"}
	if got := s.UID(a); got != "a@b.com" {
		t.Errorf("UID() with uid_field override = %q, want %q", got, "a@b.com")
	}
}

func TestExtra(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())
	a := normalizedAttempt()

	extra := s.Extra(a)
	if extra.RawInfo.Token != a.Token {
		t.Error("RawInfo.Token should be the attempt's token verbatim")
	}
	if !reflect.DeepEqual(extra.RawInfo.User, a.Profile) {
		t.Error("RawInfo.User should be the attempt's profile verbatim")
	}
}

func TestCleanup(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())
	a := normalizedAttempt()

	s.Cleanup(a)
	if a.Token != nil {
		t.Error("Cleanup() should clear the token")
	}
	if a.Profile != nil {
		t.Error("Cleanup() should clear the profile")
	}
}
