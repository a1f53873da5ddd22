package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadgenie/leadgenie/internal/config"
)

func testConfig(baseURL string) config.OpenRouterConfig {
	return config.OpenRouterConfig{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		Model:        "test-model",
		MaxTokens:    400,
		RateLimitRPM: 6000,
		Referer:      "http://localhost:8080",
		Title:        "Test Suite",
	}
}

func completionResponse(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":"` + content + `"}}]}`
}

func TestClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost:8080", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Test Suite", r.Header.Get("X-Title"))

		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 400, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Write([]byte(completionResponse("We ship worldwide.")))
	}))
	defer server.Close()

	c := New(testConfig(server.URL), zap.NewNop())
	got := c.Complete(context.Background(), "Do you ship worldwide?")

	assert.Equal(t, "We ship worldwide.", got)

	m := c.GetMetrics()
	assert.Equal(t, int64(1), m.TotalRequests)
	assert.Equal(t, int64(1), m.SuccessRequests)
	assert.Equal(t, int64(1), m.CacheMisses)
}

func TestClient_Complete_CacheHitSkipsNetwork(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(completionResponse("Cached answer.")))
	}))
	defer server.Close()

	c := New(testConfig(server.URL), zap.NewNop())

	first := c.Complete(context.Background(), "same prompt")
	second := c.Complete(context.Background(), "same prompt")

	assert.Equal(t, "Cached answer.", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits), "second call must not hit the network")

	m := c.GetMetrics()
	assert.Equal(t, int64(2), m.TotalRequests)
	assert.Equal(t, int64(1), m.CacheHits)
	assert.Equal(t, int64(1), m.CacheMisses)
}

func TestClient_Complete_ErrorNotCached(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&hits, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(completionResponse("Recovered answer.")))
	}))
	defer server.Close()

	c := New(testConfig(server.URL), zap.NewNop())

	first := c.Complete(context.Background(), "retry me")
	assert.Equal(t, MsgRateLimited, first)

	// The failure must not be served from cache on retry.
	second := c.Complete(context.Background(), "retry me")
	assert.Equal(t, "Recovered answer.", second)

	third := c.Complete(context.Background(), "retry me")
	assert.Equal(t, "Recovered answer.", third)
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestClient_Complete_StatusMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"unauthorized", http.StatusUnauthorized, MsgAuthFailed},
		{"payment required", http.StatusPaymentRequired, MsgNoCredits},
		{"rate limited", http.StatusTooManyRequests, MsgRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			c := New(testConfig(server.URL), zap.NewNop())
			got := c.Complete(context.Background(), "anything")
			assert.Equal(t, tt.want, got)

			m := c.GetMetrics()
			assert.Equal(t, int64(1), m.FailedRequests)
		})
	}

	t.Run("other status includes body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream exploded"))
		}))
		defer server.Close()

		c := New(testConfig(server.URL), zap.NewNop())
		got := c.Complete(context.Background(), "anything")
		assert.Equal(t, "API error 502: upstream exploded", got)
	})
}

func TestClient_Complete_NoAPIKey(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = ""
	c := New(cfg, zap.NewNop())

	assert.False(t, c.Configured())
	assert.Equal(t, MsgNoAPIKey, c.Complete(context.Background(), "hello"))
	assert.Equal(t, int64(0), atomic.LoadInt64(&hits), "no key means no network call")
	assert.Equal(t, int64(0), c.GetMetrics().TotalRequests)
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := New(testConfig(server.URL), zap.NewNop())
	assert.Equal(t, MsgEmptyResponse, c.Complete(context.Background(), "anything"))
}

func TestClient_Complete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c := New(testConfig(server.URL), zap.NewNop())
	assert.Equal(t, MsgConnectivity, c.Complete(context.Background(), "anything"))
}

type recordingObserver struct {
	requests map[string]int
	hits     int
	misses   int
}

func (o *recordingObserver) ObserveLLMRequest(outcome string) {
	if o.requests == nil {
		o.requests = make(map[string]int)
	}
	o.requests[outcome]++
}

func (o *recordingObserver) ObserveLLMCache(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func TestClient_Complete_Observer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("Observed.")))
	}))
	defer server.Close()

	obs := &recordingObserver{}
	c := New(testConfig(server.URL), zap.NewNop())
	c.SetObserver(obs)

	c.Complete(context.Background(), "observed prompt")
	c.Complete(context.Background(), "observed prompt")

	assert.Equal(t, 1, obs.requests["success"])
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
}

func TestCacheKey(t *testing.T) {
	assert.Len(t, cacheKey("prompt"), 12)
	assert.Equal(t, cacheKey("prompt"), cacheKey("prompt"))
	assert.NotEqual(t, cacheKey("prompt"), cacheKey("Prompt"))
}
