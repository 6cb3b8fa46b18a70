package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingLimiter struct {
	keys []string
}

func (l *recordingLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	return true, nil
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

func newTestEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	t.Run("rejects once burst is exhausted", func(t *testing.T) {
		r := newTestEngine(RateLimit(RateLimitConfig{Enabled: true, RequestsPerSecond: 1}, NewLocalRateLimiter(2)))

		assert.Equal(t, http.StatusOK, doGet(r, "/ping").Code)
		assert.Equal(t, http.StatusOK, doGet(r, "/ping").Code)

		w := doGet(r, "/ping")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"detail":"Too many requests. Please slow down and try again shortly."}`, w.Body.String())
	})

	t.Run("keys by prefix client and route", func(t *testing.T) {
		limiter := &recordingLimiter{}
		r := newTestEngine(RateLimit(RateLimitConfig{Enabled: true}, limiter))

		assert.Equal(t, http.StatusOK, doGet(r, "/ping").Code)
		assert.Equal(t, []string{"ratelimit:10.0.0.1:/ping"}, limiter.keys)
	})

	t.Run("disabled passes through", func(t *testing.T) {
		r := newTestEngine(RateLimit(RateLimitConfig{Enabled: false}, NewLocalRateLimiter(1)))
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, doGet(r, "/ping").Code)
		}
	})

	t.Run("limiter failure fails open", func(t *testing.T) {
		r := newTestEngine(RateLimit(RateLimitConfig{Enabled: true, RequestsPerSecond: 1}, failingLimiter{}))
		assert.Equal(t, http.StatusOK, doGet(r, "/ping").Code)
	})
}

func TestLocalRateLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLocalRateLimiter(1)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = l.Allow(ctx, "a", 1, time.Minute)
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b", 1, time.Minute)
	assert.True(t, ok)
}

func TestRecovery(t *testing.T) {
	r := newTestEngine(Recovery())

	w := doGet(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := newTestEngine(RequestID())

	w := doGet(r, "/ping")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS(CORSConfig{}))
	r.POST("/generate-ideas", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/generate-ideas", nil)
	// 与 httptest 默认 Host 不同源，否则 cors 中间件按同源请求跳过
	req.Header.Set("Origin", "https://frontend.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCORS_CrossOriginRequest(t *testing.T) {
	r := newTestEngine(CORS(CORSConfig{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://frontend.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), RequestIDHeader)
}
