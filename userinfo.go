package googleoauth2

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/omniauth-go/google-oauth2/strategy"
)

// fetchProfile retrieves the user-info resource with the attempt's token
// and caches it on the attempt. Response handling:
//
//   - 401 fails the attempt with kind "token"
//   - [200,400) stores the body as the profile
//   - transport errors fail with kind "OAuth2"
//   - anything else fails with kind "provider_error" carrying the status
func (s *Strategy) fetchProfile(ctx context.Context, a *strategy.Attempt) {
	if a.Profile != nil {
		return
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: a.Token.AccessToken,
		TokenType:   a.Token.TokenType,
	})
	client := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, s.httpClient), src)
	// oauth2.NewClient carries over only the base client's transport, not
	// its timeout.
	client.Timeout = s.httpClient.Timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.UserInfoURL, nil)
	if err != nil {
		a.Fail(strategy.KindOAuth2, err.Error())
		return
	}

	start := time.Now()
	resp, err := client.Do(req)
	s.inst.Metrics().RecordProviderCall(ctx, "userinfo", time.Since(start))
	if err != nil {
		s.logger.Warn("google: user-info request failed", "error", err)
		s.inst.Metrics().RecordProfileFetch(ctx, false)
		a.Fail(strategy.KindOAuth2, err.Error())
		return
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		s.inst.Metrics().RecordProfileFetch(ctx, false)
		a.Fail(strategy.KindToken, "unauthorized")

	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		var profile strategy.Profile
		if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
			s.inst.Metrics().RecordProfileFetch(ctx, false)
			a.Fail(strategy.KindOAuth2, fmt.Sprintf("failed to decode user info: %v", err))
			return
		}
		s.inst.Metrics().RecordProfileFetch(ctx, true)
		a.Profile = profile

	default:
		s.logger.Warn("google: unexpected user-info status", "status", resp.StatusCode)
		s.inst.Metrics().RecordProfileFetch(ctx, false)
		a.Fail(strategy.KindProviderError, fmt.Sprintf("userinfo request failed with status %d", resp.StatusCode))
	}
}
