package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewTransport_Defaults(t *testing.T) {
	tr := NewTransport(nil, 10, 0, nil)
	if tr.base != http.DefaultTransport {
		t.Error("nil base should default to http.DefaultTransport")
	}
	if tr.limiter.Burst() != 10 {
		t.Errorf("burst = %d, want requestsPerSecond default 10", tr.limiter.Burst())
	}
	if tr.logger == nil {
		t.Error("logger should default to slog.Default()")
	}
}

func TestTransport_AllowsBurst(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil, 1, 3, nil)}
	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		resp.Body.Close()
	}
	if hits != 3 {
		t.Errorf("hits = %d, want the full burst of 3", hits)
	}
}

func TestTransport_AbortsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	// Burst of 1 at a very slow refill: the second request must wait and
	// should instead abort with the context error.
	client := &http.Client{Transport: NewTransport(nil, 1, 1, nil)}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Do(req); err == nil {
		t.Error("second request should abort waiting for a rate limit slot")
	}
}
