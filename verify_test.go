package googleoauth2

import (
	"context"
	"testing"

	"github.com/omniauth-go/google-oauth2/internal/testutil"
)

func TestVerifyAudience(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		status   int
		response map[string]any
		wantErr  bool
	}{
		{
			name:     "audience starts with client prefix",
			clientID: "123-abc.apps.googleusercontent.com",
			response: map[string]any{"aud": "123-other.apps.googleusercontent.com"},
			wantErr:  false,
		},
		{
			name:     "audience prefix mismatch",
			clientID: "123-abc.apps.googleusercontent.com",
			response: map[string]any{"aud": "999-other.apps.googleusercontent.com"},
			wantErr:  true,
		},
		{
			name:     "client id without separator compares whole id",
			clientID: "plainclient",
			response: map[string]any{"aud": "plainclient.apps.googleusercontent.com"},
			wantErr:  false,
		},
		{
			name:     "missing audience",
			clientID: "123-abc.apps.googleusercontent.com",
			response: map[string]any{"scope": "email"},
			wantErr:  true,
		},
		{
			name:     "non-success status",
			clientID: "123-abc.apps.googleusercontent.com",
			status:   400,
			response: map[string]any{"error_description": "Invalid Value"},
			wantErr:  true,
		},
		{
			name:     "malformed body",
			clientID: "123-abc.apps.googleusercontent.com",
			response: nil, // empty body is not a JSON object
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testutil.NewFakeProvider(t)
			f.TokenInfoStatus = tt.status
			f.TokenInfoResponse = tt.response

			cfg := testConfig()
			cfg.ClientID = tt.clientID
			s := newTestStrategy(t, f, cfg)

			err := s.verifyAudience(context.Background(), "test-access-token")
			if (err != nil) != tt.wantErr {
				t.Errorf("verifyAudience() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyAudience_TransportFailureRejects(t *testing.T) {
	s := newTestStrategy(t, nil, testConfig())
	s.TokenInfoURL = "http://127.0.0.1:1/tokeninfo"

	if err := s.verifyAudience(context.Background(), "test-access-token"); err == nil {
		t.Error("verifyAudience() should fail closed on transport errors")
	}
}
