package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/circus-schedule/internal/config"
)

func newContext(method, target, path string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	if len(params) > 0 {
		c.SetParamNames("id")
		c.SetParamValues(params...)
	}
	return c, rec
}

// unreachableRedis fails every command immediately.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func TestCacheKeyChangesWithGeneration(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "circus:cache", KeyStrategy: "route_query"}
	c, _ := newContext(http.MethodGet, "/v1/shows/1", "/v1/shows/:id", "1")

	k1 := cacheKeyFrom(cfg, c, 1)
	if k1 != cacheKeyFrom(cfg, c, 1) {
		t.Fatal("expected a stable key")
	}
	if k1 == cacheKeyFrom(cfg, c, 2) {
		t.Fatal("expected a new key after reload")
	}
	if !strings.HasPrefix(k1, "circus:cache:") {
		t.Fatalf("expected prefixed key, got %s", k1)
	}

	other, _ := newContext(http.MethodGet, "/v1/shows/2", "/v1/shows/:id", "2")
	if k1 == cacheKeyFrom(cfg, other, 1) {
		t.Fatal("different shows must not share a key")
	}
}

func TestCacheKeyQueryStrategies(t *testing.T) {
	a, _ := newContext(http.MethodGet, "/v1/shows/upcoming?after=2025-01-01", "/v1/shows/upcoming")
	b, _ := newContext(http.MethodGet, "/v1/shows/upcoming?after=2025-06-01", "/v1/shows/upcoming")

	withQuery := config.CacheConfig{Prefix: "p", KeyStrategy: "route_query"}
	if cacheKeyFrom(withQuery, a, 1) == cacheKeyFrom(withQuery, b, 1) {
		t.Fatal("route_query must separate query strings")
	}
	routeOnly := config.CacheConfig{Prefix: "p", KeyStrategy: "route"}
	if cacheKeyFrom(routeOnly, a, 1) != cacheKeyFrom(routeOnly, b, 1) {
		t.Fatal("route strategy must ignore query strings")
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	status, gotHdr, body, ok := decodePayload(bs)
	if !ok || status != 200 || gotHdr.Get("Content-Type") != "application/json" || string(body) != `{"a":1}` {
		t.Fatalf("unexpected decode: %d %v %q %v", status, gotHdr, body, ok)
	}
	if _, _, _, ok := decodePayload([]byte{0, 0}); ok {
		t.Fatal("expected short payload to be rejected")
	}
	if _, _, _, ok := decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0}); ok {
		t.Fatal("expected oversized header length to be rejected")
	}
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("defg"))
	if cw.buf.String() != "abcd" || cw.size != 7 || rec.Body.String() != "abcdefg" {
		t.Fatalf("unexpected capture buf=%q size=%d client=%q", cw.buf.String(), cw.size, rec.Body.String())
	}
}

func TestCachePassThroughWithoutRedis(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, func() uint64 { return 1 })
	c, rec := newContext(http.MethodGet, "/v1/shows/1", "/v1/shows/:id", "1")
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
		t.Fatalf("expected untouched response, got %d %v", rec.Code, rec.Header())
	}
}

func TestCacheTreatsRedisErrorsAsMiss(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, Prefix: "p"}
	mw := NewRedisCache(cfg, unreachableRedis(t), func() uint64 { return 1 })
	c, rec := newContext(http.MethodGet, "/v1/shows/1", "/v1/shows/:id", "1")
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("expected served miss, got %d %v", rec.Code, rec.Header())
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestBuildRateKey(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/v1/bookings", "/v1/bookings")
	cases := map[string]string{
		"ip":       "circus:rl:ip:10.0.0.7",
		"route":    "circus:rl:route:POST /v1/bookings",
		"ip_route": "circus:rl:ip:10.0.0.7:route:POST /v1/bookings",
		"":         "circus:rl:ip:10.0.0.7:route:POST /v1/bookings",
	}
	for strategy, want := range cases {
		got := buildRateKey(config.RateLimitConfig{Prefix: "circus:rl", KeyStrategy: strategy}, c)
		if got != want {
			t.Fatalf("strategy %q: expected %s, got %s", strategy, want, got)
		}
	}
}

func TestRateLimitDegradesWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute, Prefix: "rl"}
	for _, rdb := range []*redis.Client{nil, unreachableRedis(t)} {
		mw := NewTokenBucket(cfg, rdb)
		for i := 0; i < 3; i++ {
			c, rec := newContext(http.MethodGet, "/v1/bookings", "/v1/bookings")
			if err := mw(okHandler)(c); err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected request to pass, got %d", rec.Code)
			}
		}
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	for ms, want := range map[int64]int{0: 0, 1: 1, 1000: 1, 1001: 2, -5: 0} {
		if got := retryAfterSeconds(ms); got != want {
			t.Fatalf("retryAfterSeconds(%d): expected %d, got %d", ms, want, got)
		}
	}
}
