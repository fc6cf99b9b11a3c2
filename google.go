package googleoauth2

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/omniauth-go/google-oauth2/instrumentation"
	"github.com/omniauth-go/google-oauth2/security"
	"github.com/omniauth-go/google-oauth2/strategy"
)

const (
	// ProviderName identifies this strategy to the host framework.
	ProviderName = "google"

	// DefaultScope is requested when neither the configuration nor the
	// request supplies a scope string.
	DefaultScope = "email"

	// DefaultUIDField is the profile field read as the canonical unique
	// id when none is configured.
	DefaultUIDField = "sub"

	defaultUserInfoURL  = "https://www.googleapis.com/oauth2/v3/userinfo"
	defaultTokenInfoURL = "https://www.googleapis.com/oauth2/v3/tokeninfo"

	defaultRequestTimeout = 30 * time.Second
)

// Config holds the strategy configuration. ClientID and ClientSecret are
// required; everything else has working defaults.
type Config struct {
	// ClientID is the Google OAuth client ID (required).
	ClientID string

	// ClientSecret is the Google OAuth client secret (required).
	ClientSecret string

	// Scope is the default scope string, space or comma joined.
	// Default: "email". Requests may override it per invocation.
	Scope string

	// HostedDomain restricts sign-in to a Google Workspace domain (the
	// hd authorization parameter). Empty means no restriction.
	HostedDomain string

	// ApprovalPrompt is sent as the approval_prompt authorization hint
	// when set.
	ApprovalPrompt string

	// AccessType is sent as the access_type authorization hint when set.
	// Requests may override it per invocation.
	AccessType string

	// UIDField is the profile field used as the canonical unique id.
	// Default: "sub".
	UIDField string

	// RequestTimeout bounds each outbound provider call. Only applied to
	// the default HTTP client; callers supplying HTTPClient own its
	// timeout. Default: 30s.
	RequestTimeout time.Duration

	// CallRate limits outbound provider calls per second. Zero disables
	// limiting. CallBurst is the bucket size and defaults to CallRate.
	CallRate  int
	CallBurst int

	// HTTPClient performs all outbound provider calls when set.
	HTTPClient *http.Client

	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Instrumentation receives pipeline metrics and traces. Defaults to
	// a no-op instance.
	Instrumentation *instrumentation.Instrumentation
}

// Strategy is the Google OAuth2 identity strategy. It implements
// strategy.Strategy and is safe for concurrent use: all per-attempt
// state lives on the strategy.Attempt threaded through each call.
type Strategy struct {
	clientID       string
	clientSecret   string
	scope          string
	hostedDomain   string
	approvalPrompt string
	accessType     string
	uidField       string

	// Endpoint, UserInfoURL and TokenInfoURL default to Google's
	// production endpoints. Exported so tests and non-standard
	// deployments can point the strategy elsewhere.
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
	TokenInfoURL string

	httpClient *http.Client
	logger     *slog.Logger
	inst       *instrumentation.Instrumentation
}

// New creates a Google strategy from cfg.
func New(cfg *Config) (*Strategy, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("client secret is required")
	}

	scope := cfg.Scope
	if scope == "" {
		scope = DefaultScope
	}
	uidField := cfg.UIDField
	if uidField == "" {
		uidField = DefaultUIDField
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	inst := cfg.Instrumentation
	if inst == nil {
		inst = instrumentation.Noop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.RequestTimeout
		if timeout == 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if cfg.CallRate > 0 {
		// Copy so the caller's client is not mutated.
		guarded := *httpClient
		guarded.Transport = security.NewTransport(httpClient.Transport, cfg.CallRate, cfg.CallBurst, logger)
		httpClient = &guarded
	}

	return &Strategy{
		clientID:       cfg.ClientID,
		clientSecret:   cfg.ClientSecret,
		scope:          scope,
		hostedDomain:   cfg.HostedDomain,
		approvalPrompt: cfg.ApprovalPrompt,
		accessType:     cfg.AccessType,
		uidField:       uidField,
		Endpoint:       google.Endpoint,
		UserInfoURL:    defaultUserInfoURL,
		TokenInfoURL:   defaultTokenInfoURL,
		httpClient:     httpClient,
		logger:         logger,
		inst:           inst,
	}, nil
}

// Name returns the provider identifier.
func (s *Strategy) Name() string {
	return ProviderName
}

// oauthConfig builds the x/oauth2 configuration for one request. The
// redirect URL always comes from the request's callback URL.
func (s *Strategy) oauthConfig(callbackURL string, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     s.Endpoint,
		RedirectURL:  callbackURL,
		Scopes:       scopes,
	}
}

// RequestPhase returns the authorization-endpoint URL to redirect the
// user-agent to. No network call is made.
func (s *Strategy) RequestPhase(req *strategy.Request) string {
	p := s.resolveAuthParams(req)
	conf := s.oauthConfig(req.CallbackURL, splitScope(p.scope))
	u := conf.AuthCodeURL(p.state, p.extras...)

	s.inst.Metrics().RecordRedirect(context.Background())
	s.logger.Debug("google: built authorization URL", "redirect_uri", req.CallbackURL, "scope", p.scope)
	return u
}

// CallbackPhase consumes the provider's redirect back. Exactly one of
// three cases applies, checked in order: an authorization code, a raw
// access token, or neither.
func (s *Strategy) CallbackPhase(ctx context.Context, req *strategy.Request, a *strategy.Attempt) {
	ctx, span := s.inst.Tracer("strategy").Start(ctx, "google.callback")
	defer span.End()
	s.inst.Metrics().RecordCallback(ctx)

	switch {
	case req.Param("code") != "":
		s.exchangeCode(ctx, req, a)
	case req.Param("access_token") != "":
		s.adoptAccessToken(ctx, req, a)
	default:
		a.Fail(strategy.KindMissingCode, "No code received")
	}

	if a.Errors.Failed() {
		for _, e := range a.Errors.Entries() {
			s.inst.Metrics().RecordFailure(ctx, e.Kind)
		}
	}
}

// exchangeCode performs the server-to-server code exchange and then
// fetches the user profile.
func (s *Strategy) exchangeCode(ctx context.Context, req *strategy.Request, a *strategy.Attempt) {
	conf := s.oauthConfig(req.CallbackURL, nil)

	// Route the exchange through our HTTP client.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	s.logger.Debug("google: starting token exchange", "redirect_uri", req.CallbackURL)
	start := time.Now()
	tok, err := conf.Exchange(ctx, req.Param("code"))
	s.inst.Metrics().RecordProviderCall(ctx, "token", time.Since(start))
	s.inst.Metrics().RecordExchange(ctx, err == nil)

	if err != nil {
		// Provider error responses carry an error code and description;
		// everything else is a transport-level failure.
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.ErrorCode != "" {
			s.logger.Warn("google: token exchange rejected", "error", re.ErrorCode)
			a.Fail(re.ErrorCode, re.ErrorDescription)
			return
		}
		s.logger.Warn("google: token exchange failed", "error", err)
		a.Fail(strategy.KindOAuth2, err.Error())
		return
	}

	a.Token = tokenFromOAuth2(tok)
	s.fetchProfile(ctx, a)
}

// adoptAccessToken wraps an externally supplied access token. The token
// did not come from our own exchange, so it must pass audience
// verification before being trusted.
func (s *Strategy) adoptAccessToken(ctx context.Context, req *strategy.Request, a *strategy.Attempt) {
	tok := &strategy.Token{
		AccessToken: req.Param("access_token"),
		TokenType:   "Bearer",
		Params:      map[string]any{},
	}

	if err := s.verifyAudience(ctx, tok.AccessToken); err != nil {
		s.logger.Warn("google: token verification failed", "error", err)
		s.inst.Metrics().RecordVerification(ctx, false)
		a.Fail(strategy.KindToken, "Token verification failed")
		return
	}
	s.inst.Metrics().RecordVerification(ctx, true)

	a.Token = tok
	s.fetchProfile(ctx, a)
}

// tokenFromOAuth2 converts an exchanged x/oauth2 token into the pipeline
// token record, preserving provider extras we care about.
func tokenFromOAuth2(tok *oauth2.Token) *strategy.Token {
	t := &strategy.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    tok.Expiry,
		Params:       map[string]any{},
	}
	for _, key := range []string{"scope", "id_token"} {
		if v := tok.Extra(key); v != nil {
			t.Params[key] = v
		}
	}
	// Some deployments answer with an absolute expires_at instead of
	// expires_in, which x/oauth2 does not fold into Expiry.
	if t.ExpiresAt.IsZero() {
		if v, ok := tok.Extra("expires_at").(float64); ok {
			t.ExpiresAt = time.Unix(int64(v), 0)
		}
	}
	return t
}
