package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-reservation/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	body := []byte(`{"remaining_seats":90}`)

	payload, err := encodePayload(http.StatusOK, header, body)
	require.NoError(t, err)

	status, gotHeader, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)

	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0xFF, 0xFF, 0xFF, 0xFF})
	assert.False(t, ok)
}

func TestCacheKeyFrom(t *testing.T) {
	t.Parallel()

	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	e := echo.New()

	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, strings.NewReader(""))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/events/:id/availability")
		return c
	}

	first := cacheKeyFrom(cfg, newCtx("/v1/events/1/availability"))
	second := cacheKeyFrom(cfg, newCtx("/v1/events/1/availability"))
	assert.Equal(t, first, second, "identical requests must produce the same key")
	assert.True(t, strings.HasPrefix(first, "cache:"))

	other := cacheKeyFrom(cfg, newCtx("/v1/events/1/availability?fresh=1"))
	assert.NotEqual(t, first, other, "query strings must change the key")
}
