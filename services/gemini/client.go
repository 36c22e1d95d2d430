package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const (
	DefaultModel      = "gemini-1.5-flash"
	DefaultAPIVersion = "v1"

	defaultTemperature     = 0.7
	defaultTopK            = 40
	defaultTopP            = 0.95
	defaultMaxOutputTokens = 1024

	rateLimitBurst = 5
)

var (
	// ErrNotConfigured is returned by Generate when no API key was supplied
	ErrNotConfigured = errors.New("gemini: api key not configured")
	// ErrNoCandidates means the endpoint answered without any candidate
	ErrNoCandidates = errors.New("gemini: response has no candidates")
	// ErrEmptyResponse means the first candidate carried no text
	ErrEmptyResponse = errors.New("gemini: empty response text")
)

// Config holds the connection settings for the generateContent endpoint
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string // empty uses the public endpoint
	APIVersion string
	HTTPClient *http.Client
	// RequestsPerMinute paces outbound calls; zero disables pacing
	RequestsPerMinute int
}

// Client is a single-shot text completion client
type Client struct {
	genai   *genai.Client
	model   string
	limiter *RateLimiter
	logger  zerolog.Logger
}

// NewClient creates a client. A missing API key is not an error: the client
// is created unconfigured and every Generate call returns ErrNotConfigured.
func NewClient(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	c := &Client{
		model:   cfg.Model,
		limiter: NewRateLimiter(cfg.RequestsPerMinute, rateLimitBurst),
		logger:  logger.With().Str("component", "gemini").Str("model", cfg.Model).Logger(),
	}
	if cfg.APIKey == "" {
		c.logger.Warn().Msg("GEMINI_API_KEY not set, completions are disabled")
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.genai = gc
	return c, nil
}

// Configured reports whether the client has credentials
func (c *Client) Configured() bool {
	return c.genai != nil
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate. There is no retry.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.genai == nil {
		return "", ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini rate limit wait: %w", err)
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](defaultTemperature),
		TopK:            genai.Ptr[float32](defaultTopK),
		TopP:            genai.Ptr[float32](defaultTopP),
		MaxOutputTokens: defaultMaxOutputTokens,
	})
	if err != nil {
		c.logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("generateContent failed")
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug().
		Dur("elapsed", time.Since(start)).
		Int("prompt_length", len(prompt)).
		Int("response_length", len(text)).
		Msg("generateContent completed")
	return text, nil
}

// IsAPIError reports whether err carries a non-2xx answer from the endpoint
func IsAPIError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var apiErrPtr *genai.APIError
	return errors.As(err, &apiErrPtr)
}
