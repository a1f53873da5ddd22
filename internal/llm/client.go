package llm

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/leadgenie/leadgenie/internal/config"
)

// User-facing degraded responses. Complete never returns an error; every
// failure path yields one of these strings instead.
const (
	MsgNoAPIKey      = "API key not set. Please configure OPENROUTER_API_KEY."
	MsgAuthFailed    = "API authentication failed. Please check your OPENROUTER_API_KEY is valid and has credits."
	MsgNoCredits     = "Insufficient credits. Please add credits to your OpenRouter account."
	MsgRateLimited   = "Rate limit exceeded. Please try again in a moment."
	MsgConnectivity  = "I'm having connection issues. Please try again."
	MsgEmptyResponse = "I couldn't come up with an answer. Please try again."
)

// Observer receives per-request telemetry. Optional; nil disables it.
type Observer interface {
	ObserveLLMRequest(outcome string)
	ObserveLLMCache(hit bool)
}

// Metrics tracks API usage with atomic counters.
type Metrics struct {
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	CacheHits       int64
	CacheMisses     int64
}

// Client calls the OpenRouter chat-completions API with a process-lifetime
// prompt cache. Identical prompts short-circuit to the cached answer; only
// successful completions are cached, so a transient API error for a prompt
// does not poison later retries of the same prompt.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	referer    string
	title      string
	httpClient *http.Client

	limiter *rate.Limiter

	cache   map[string]string
	cacheMu sync.RWMutex

	metrics  Metrics
	observer Observer
	logger   *zap.Logger
}

// New creates an OpenRouter client from config.
func New(cfg config.OpenRouterConfig, logger *zap.Logger) *Client {
	rpm := cfg.RateLimitRPM
	if rpm <= 0 {
		rpm = 60
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		referer:   cfg.Referer,
		title:     cfg.Title,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		cache:   make(map[string]string),
		logger:  logger,
	}
}

// SetObserver attaches a telemetry sink. Call before the client is shared
// between goroutines.
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// request is an OpenRouter chat-completions request body
type request struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// response is the subset of the completion response we read
type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a prompt and returns the completion text. The reply is
// always a usable string: API and transport failures are mapped to fixed
// user-facing messages rather than errors.
func (c *Client) Complete(ctx context.Context, prompt string) string {
	if !c.Configured() {
		return MsgNoAPIKey
	}

	atomic.AddInt64(&c.metrics.TotalRequests, 1)

	key := cacheKey(prompt)
	c.cacheMu.RLock()
	cached, ok := c.cache[key]
	c.cacheMu.RUnlock()
	if ok {
		atomic.AddInt64(&c.metrics.CacheHits, 1)
		if c.observer != nil {
			c.observer.ObserveLLMCache(true)
		}
		c.logger.Debug("llm cache hit", zap.String("key", key))
		return cached
	}
	atomic.AddInt64(&c.metrics.CacheMisses, 1)
	if c.observer != nil {
		c.observer.ObserveLLMCache(false)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		atomic.AddInt64(&c.metrics.FailedRequests, 1)
		if c.observer != nil {
			c.observer.ObserveLLMRequest("failure")
		}
		return MsgConnectivity
	}

	answer, cacheable := c.doRequest(ctx, prompt)
	if cacheable {
		atomic.AddInt64(&c.metrics.SuccessRequests, 1)
		c.cacheMu.Lock()
		c.cache[key] = answer
		c.cacheMu.Unlock()
	} else {
		atomic.AddInt64(&c.metrics.FailedRequests, 1)
	}
	if c.observer != nil {
		outcome := "failure"
		if cacheable {
			outcome = "success"
		}
		c.observer.ObserveLLMRequest(outcome)
	}
	return answer
}

// doRequest performs one HTTP round trip. The second return value reports
// whether the answer is a real completion safe to cache.
func (c *Client) doRequest(ctx context.Context, prompt string) (string, bool) {
	body, err := json.Marshal(request{
		Model:     c.model,
		Messages:  []message{{Role: "user", Content: prompt}},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return MsgConnectivity, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return MsgConnectivity, false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("llm transport error", zap.Error(err))
		return MsgConnectivity, false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return MsgConnectivity, false
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("llm api error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(respBody, 200)),
		)
		return statusMessage(resp.StatusCode, respBody), false
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return MsgConnectivity, false
	}
	if len(apiResp.Choices) == 0 {
		return MsgEmptyResponse, false
	}

	answer := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	if answer == "" {
		return MsgEmptyResponse, false
	}
	return answer, true
}

// statusMessage maps a non-200 status to its user-facing string.
func statusMessage(status int, body []byte) string {
	switch status {
	case http.StatusUnauthorized:
		return MsgAuthFailed
	case http.StatusPaymentRequired:
		return MsgNoCredits
	case http.StatusTooManyRequests:
		return MsgRateLimited
	default:
		return fmt.Sprintf("API error %d: %s", status, truncate(body, 100))
	}
}

// GetMetrics returns a snapshot of usage counters.
func (c *Client) GetMetrics() Metrics {
	return Metrics{
		TotalRequests:   atomic.LoadInt64(&c.metrics.TotalRequests),
		SuccessRequests: atomic.LoadInt64(&c.metrics.SuccessRequests),
		FailedRequests:  atomic.LoadInt64(&c.metrics.FailedRequests),
		CacheHits:       atomic.LoadInt64(&c.metrics.CacheHits),
		CacheMisses:     atomic.LoadInt64(&c.metrics.CacheMisses),
	}
}

// cacheKey hashes the exact prompt text, no normalization.
func cacheKey(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return hex.EncodeToString(sum[:])[:12]
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
