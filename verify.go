package googleoauth2

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// verifyAudience confirms that an externally supplied access token was
// issued to this application's client identity, guarding against token
// substitution. It asks the tokeninfo endpoint for the token's audience
// and accepts only an audience that starts with the client ID's leading
// segment (the part before the first "-"). Any transport error, bad
// status, or missing audience rejects the token: verification fails
// closed.
func (s *Strategy) verifyAudience(ctx context.Context, accessToken string) error {
	u := s.TokenInfoURL + "?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	s.inst.Metrics().RecordProviderCall(ctx, "tokeninfo", time.Since(start))
	if err != nil {
		return fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tokeninfo request failed with status %d", resp.StatusCode)
	}

	var info struct {
		Aud string `json:"aud"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if info.Aud == "" {
		return fmt.Errorf("tokeninfo response missing audience")
	}

	prefix, _, _ := strings.Cut(s.clientID, "-")
	if !strings.HasPrefix(info.Aud, prefix) {
		return fmt.Errorf("token audience does not match client identity")
	}
	return nil
}
