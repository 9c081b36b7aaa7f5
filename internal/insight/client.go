// Package insight talks to an OpenAI-compatible chat-completions endpoint to draft goal plans
// and explain forecasts. A client without an API key never calls out and answers from
// deterministic fallbacks instead.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	applog "goal-forecast/internal/log"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second
)

// ErrDisabled is returned by calls that need the remote model when no API key is configured.
var ErrDisabled = errors.New("insight client disabled: no API key")

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// CacheTTL > 0 keeps identical responses in memory for that long.
	CacheTTL time.Duration
}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *applog.Logger
	cache      *ResponseCache
	now        func() time.Time
}

func NewClient(cfg Config, logger *applog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithComponent(applog.ComponentInsight),
		cache:      NewResponseCache(cfg.CacheTTL),
		now:        time.Now,
	}
}

// Enabled reports whether the client will call the remote model.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a careful personal finance coach. You give concise, realistic advice about saving toward a goal. Amounts are in US dollars."

// complete sends one user prompt and returns the first choice's content.
func (c *Client) complete(ctx context.Context, prompt string, jsonMode bool, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	key := cacheKey(c.model, prompt, jsonMode, maxTokens)
	if content, ok := c.cache.Get(key); ok {
		c.logger.DebugContext(ctx, "chat completion served from cache")
		return content, nil
	}
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat completion: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("chat completion: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("chat completion: no choices in response")
	}
	content := out.Choices[0].Message.Content
	c.cache.Set(key, content)
	c.logger.DebugContext(ctx, "chat completion finished",
		applog.FieldDuration, time.Since(start).Milliseconds(),
		"cache_entries", c.cache.Len(),
	)
	return content, nil
}
