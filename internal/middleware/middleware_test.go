package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/drill-inventory/internal/config"
)

func newContext(method, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCacheKeyFromSeparatesDetailPages(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "inventory:page", KeyStrategy: "path_query"}

	a := newContext(http.MethodGet, "/catalog/design/1")
	a.SetPath("/catalog/design/:id")
	b := newContext(http.MethodGet, "/catalog/design/2")
	b.SetPath("/catalog/design/:id")

	ka, kb := cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, b)
	assert.NotEqual(t, ka, kb)
	assert.True(t, strings.HasPrefix(ka, "inventory:page:"))
	assert.Equal(t, ka, cacheKeyFrom(cfg, newContext(http.MethodGet, "/catalog/design/1")))
}

func TestCacheKeyFromStrategies(t *testing.T) {
	withQuery := newContext(http.MethodGet, "/catalog/drills?page=2")
	plain := newContext(http.MethodGet, "/catalog/drills")

	pathOnly := config.CacheConfig{Prefix: "p", KeyStrategy: "path"}
	assert.Equal(t, cacheKeyFrom(pathOnly, withQuery), cacheKeyFrom(pathOnly, plain))

	pathQuery := config.CacheConfig{Prefix: "p"}
	assert.NotEqual(t, cacheKeyFrom(pathQuery, withQuery), cacheKeyFrom(pathQuery, plain))

	methodPath := config.CacheConfig{Prefix: "p", KeyStrategy: "method_path"}
	head := newContext(http.MethodHead, "/catalog/drills")
	assert.NotEqual(t, cacheKeyFrom(methodPath, head), cacheKeyFrom(methodPath, plain))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"text/html; charset=UTF-8"}}
	body := []byte("<h1>Design List</h1>")

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr.Get("Content-Type"), gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)

	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0, 'x'})
	assert.False(t, ok)
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, err := cw.Write([]byte("abcdef"))
	require.NoError(t, err)

	assert.Equal(t, "abcd", cw.buf.String())
	assert.Equal(t, int64(6), cw.size)
	assert.Equal(t, "abcdef", rec.Body.String())
}

func TestDisabledMiddlewarePassThrough(t *testing.T) {
	called := 0
	h := func(c echo.Context) error { called++; return c.NoContent(http.StatusNoContent) }

	cache := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	limiter := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil)

	require.NoError(t, cache(h)(newContext(http.MethodGet, "/catalog/")))
	require.NoError(t, limiter(h)(newContext(http.MethodPost, "/catalog/design/create")))
	assert.Equal(t, 2, called)
}

func TestBuildRateKey(t *testing.T) {
	c := newContext(http.MethodPost, "/catalog/design/create")
	c.Request().Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c.SetPath("/catalog/design/create")

	cfg := config.RateLimitConfig{Prefix: "inventory:rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "inventory:rl:ip:10.0.0.7:route:POST /catalog/design/create", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "inventory:rl:ip:10.0.0.7", buildRateKey(cfg, c))

	cfg.KeyStrategy = "route"
	assert.Equal(t, "inventory:rl:route:POST /catalog/design/create", buildRateKey(cfg, c))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(3), asInt64(int64(3)))
	assert.Equal(t, int64(4), asInt64(4))
	assert.Equal(t, int64(5), asInt64(float64(5)))
	assert.Equal(t, int64(6), asInt64("6"))
	assert.Equal(t, int64(0), asInt64("x"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	e := echo.New()
	e.Use(echomw.RequestID(), RequestLogger())

	var sawLogger bool
	e.GET("/catalog/design/:id", func(c echo.Context) error {
		sawLogger = zerolog.Ctx(c.Request().Context()).GetLevel() != zerolog.Disabled
		return echo.ErrNotFound
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/design/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, sawLogger)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/catalog/design/:id", line["route"])
	assert.EqualValues(t, http.StatusNotFound, line["status"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), line["request_id"])
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/catalog/drill/:id", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusInternalServerError) })
	e.GET("/metrics", m.Handler())

	for _, p := range []string{"/catalog/drill/a", "/catalog/drill/b", "/boom"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/catalog/drill/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/boom", "500")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inventory_http_requests_total")
	assert.Contains(t, rec.Body.String(), "inventory_http_request_duration_seconds")
}
