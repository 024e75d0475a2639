package summary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the OpenAI-compatible API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultRateLimit is the default number of requests per second.
	DefaultRateLimit = 1.0

	// DefaultTimeout is the per-attempt HTTP timeout.
	DefaultTimeout = 2 * time.Minute

	// DefaultRetries is the number of attempts per request.
	DefaultRetries = 3

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv = "BIBSCOPE_LLM_API_KEY"

	systemPrompt = "You are an expert in bibliometrics and scientometrics. Answer concisely and only from the data given."
)

// Completer turns a prompt into a completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a rate-limited, retrying client for an OpenAI-compatible chat
// completion endpoint.
type Client struct {
	http    *pester.Client
	limiter *rate.Limiter
	logger  log.FieldLogger
	apiKey  string
	baseURL string
	model   string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the bearer token. It overrides the environment.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		if key != "" {
			c.apiKey = key
		}
	}
}

// WithBaseURL sets the API root (for testing or self-hosted endpoints).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithModel sets the completion model.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRateLimit sets the sustained request rate in requests per second.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithRetries sets the number of attempts per request.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.http.MaxRetries = n
		}
	}
}

// WithLogger sets the logger receiving retry events.
func WithLogger(logger log.FieldLogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a completion client. The API key defaults to the
// BIBSCOPE_LLM_API_KEY environment variable.
func NewClient(opts ...ClientOption) *Client {
	hc := pester.New()
	hc.Backoff = pester.ExponentialBackoff
	hc.MaxRetries = DefaultRetries
	hc.RetryOnHTTP429 = true
	hc.Timeout = DefaultTimeout

	c := &Client{
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		logger:  log.StandardLogger(),
		apiKey:  os.Getenv(APIKeyEnv),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	hc.LogHook = func(e pester.ErrEntry) {
		c.logger.WithFields(log.Fields{
			"attempt": e.Attempt,
			"url":     e.URL,
		}).WithError(e.Err).Debug("retrying completion request")
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends prompt as a user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: no API key (set %s)", ErrAuthError, APIKeyEnv)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	// A response whose retries ran out arrives with its body closed, so the
	// status is checked first.
	if err := checkHTTPErrors(resp); err != nil {
		return "", err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var cr chatResponse
		if json.Unmarshal(data, &cr) == nil && cr.Error != nil {
			apiErr.Message = cr.Error.Message
		}
		return "", apiErr
	}

	var cr chatResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if cr.Error != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Message: cr.Error.Message}
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrInvalidResponse)
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// checkHTTPErrors maps auth and rate-limit statuses onto sentinel errors.
func checkHTTPErrors(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	return nil
}
