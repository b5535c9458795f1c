package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/rafhaeldeandrade/south-american-universities/internal/interface/middleware"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/helpers"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/metrics"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeStore struct {
	counts map[string]int64
	ttl    time.Duration
	err    error
}

func newFakeStore() *fakeStore { return &fakeStore{counts: map[string]int64{}, ttl: 30 * time.Second} }

func (f *fakeStore) incr(ctx context.Context, keys []string) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.counts[keys[0]]++
	cmd.SetVal(f.counts[keys[0]])
	return cmd
}

func (f *fakeStore) Eval(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.incr(ctx, keys)
}
func (f *fakeStore) EvalSha(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.incr(ctx, keys)
}
func (f *fakeStore) EvalRO(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.incr(ctx, keys)
}
func (f *fakeStore) EvalShaRO(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.incr(ctx, keys)
}
func (f *fakeStore) ScriptExists(ctx context.Context, _ ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceCmd(ctx)
}
func (f *fakeStore) ScriptLoad(ctx context.Context, _ string) *redis.StringCmd {
	return redis.NewStringCmd(ctx)
}
func (f *fakeStore) PTTL(ctx context.Context, _ string) *redis.DurationCmd {
	cmd := redis.NewDurationCmd(ctx, time.Millisecond)
	cmd.SetVal(f.ttl)
	return cmd
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.RequestIDKey)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	require.Equal(t, w.Body.String(), w.Header().Get(middleware.RequestIDHeader))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, incoming)
	require.Equal(t, incoming, serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "not-a-uuid")
	require.NotEqual(t, "not-a-uuid", serve(r, req).Body.String())
}

func TestRealIP(t *testing.T) {
	handler := func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.RealIPKey)) }

	trusted := gin.New()
	trusted.Use(middleware.RealIP(true))
	trusted.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, "203.0.113.7", serve(trusted, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	require.Equal(t, "198.51.100.2", serve(trusted, req).Body.String())

	untrusted := gin.New()
	untrusted.Use(middleware.RealIP(false))
	untrusted.GET("/", handler)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	require.Equal(t, "192.0.2.10", serve(untrusted, req).Body.String())
}

func TestRateLimit(t *testing.T) {
	store := newFakeStore()
	r := gin.New()
	r.Use(middleware.RealIP(false))
	r.POST("/login", middleware.RateLimit(store, 2, time.Minute, middleware.KeyByIPAndPath(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		return req
	}

	w := serve(r, newReq())
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, "30", w.Header().Get("X-RateLimit-Reset"))

	require.Equal(t, http.StatusOK, serve(r, newReq()).Code)

	w = serve(r, newReq())
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, "30", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"error":true,"message":"Too many requests"}`, w.Body.String())

	require.Equal(t, int64(3), store.counts["rl:path:/login:ip:192.0.2.10"])
}

func TestRateLimit_FailOpenAndBypass(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")

	r := gin.New()
	r.GET("/down", middleware.RateLimit(store, 1, time.Minute, middleware.KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/down", nil)).Code)
	}

	healthy := newFakeStore()
	r.GET("/private", middleware.RateLimit(healthy, 1, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		require.Equal(t, http.StatusOK, serve(r, req).Code)
	}
	require.Empty(t, healthy.counts)
}

func TestBearerAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", 0)
	r := gin.New()
	r.POST("/universities", middleware.BearerAuth(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.CtxAccountIDKey))
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/universities", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/universities", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	tok, err := jwt.Encrypt(map[string]any{"id": "acc-9"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/universities", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "acc-9", w.Body.String())
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(middleware.Metrics(m))
	r.GET("/universities/:universityId", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/universities/a", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/universities/b", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/universities/:universityId", "404")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
