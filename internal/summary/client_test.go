package summary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
)

func newTestClient(t *testing.T, url string, opts ...ClientOption) *Client {
	t.Helper()
	base := []ClientOption{WithBaseURL(url), WithAPIKey("test-key"), WithRateLimit(1000), WithRetries(1)}
	c := NewClient(append(base, opts...)...)
	c.http.Backoff = func(int) time.Duration { return 0 }
	return c
}

func TestClient_Complete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  A growing field.\n"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/", WithModel("test-model"))
	out, err := c.Complete(context.Background(), "Summarize this.")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "A growing field." {
		t.Errorf("Complete() = %q", out)
	}
	if got.Model != "test-model" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "Summarize this." {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestClient_CompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"unauthorized", 401, `{}`, IsAuthError},
		{"forbidden", 403, `{}`, IsAuthError},
		{"rate limited", 429, `{}`, IsRateLimited},
		{"bad request", 400, `{"error":{"message":"context too long"}}`, func(err error) bool {
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode == 400 && apiErr.Message == "context too long"
		}},
		{"no choices", 200, `{"choices":[]}`, func(err error) bool { return errors.Is(err, ErrInvalidResponse) }},
		{"not json", 200, `<html>`, func(err error) bool { return errors.Is(err, ErrInvalidResponse) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).Complete(context.Background(), "x")
			if err == nil || !tt.check(err) {
				t.Errorf("Complete() error = %v", err)
			}
		})
	}
}

func TestClient_MissingAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Complete(context.Background(), "x")
	if !errors.Is(err, ErrAuthError) {
		t.Errorf("Complete() error = %v, want ErrAuthError", err)
	}
	if called {
		t.Error("request sent without an API key")
	}
}

func TestNewClient_EnvKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")
	if c := NewClient(); c.apiKey != "from-env" {
		t.Errorf("apiKey = %q", c.apiKey)
	}
	if c := NewClient(WithAPIKey("explicit")); c.apiKey != "explicit" {
		t.Errorf("apiKey = %q", c.apiKey)
	}
	if c := NewClient(WithModel("")); c.Model() != DefaultModel {
		t.Errorf("Model() = %q", c.Model())
	}
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestClient(t, srv.URL).Complete(ctx, "x"); err == nil {
		t.Error("Complete() with canceled context succeeded")
	}
}
