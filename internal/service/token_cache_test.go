package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	"triz_edu_backend/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOAuth struct {
	calls     atomic.Int32
	expiresAt atomic.Int64 // epoch ms
	status    int
}

func (f *fakeOAuth) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := f.calls.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Basic secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, err := uuid.Parse(r.Header.Get("RqUID"))
		assert.NoError(t, err, "RqUID must be a uuid")
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "GIGACHAT_API_PERS", r.PostForm.Get("scope"))

		if f.status != 0 {
			w.WriteHeader(f.status)
			w.Write([]byte(`{"message":"bad key"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-" + string(rune('0'+n)),
			"expires_at":   f.expiresAt.Load(),
		})
	}
}

func newTestTokenCache(t *testing.T, f *fakeOAuth, now *time.Time) *TokenCache {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	c := NewTokenCache(srv.Client(), srv.URL)
	c.now = func() time.Time { return *now }
	return c
}

func TestTokenCache_ReusesValidToken(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f := &fakeOAuth{}
	f.expiresAt.Store(now.Add(30 * time.Minute).UnixMilli())
	c := newTestTokenCache(t, f, &now)

	first, err := c.GetToken(context.Background(), "secret-key", "GIGACHAT_API_PERS")
	require.NoError(t, err)
	now = now.Add(10 * time.Minute)
	second, err := c.GetToken(context.Background(), "secret-key", "GIGACHAT_API_PERS")
	require.NoError(t, err)

	assert.Equal(t, "token-1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestTokenCache_RefreshesInsideMargin(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f := &fakeOAuth{}
	f.expiresAt.Store(now.Add(30 * time.Minute).UnixMilli())
	c := newTestTokenCache(t, f, &now)

	_, err := c.GetToken(context.Background(), "secret-key", "GIGACHAT_API_PERS")
	require.NoError(t, err)

	// 30 seconds before expiry is inside the one minute margin
	now = time.UnixMilli(f.expiresAt.Load()).Add(-30 * time.Second)
	f.expiresAt.Store(now.Add(30 * time.Minute).UnixMilli())
	tok, err := c.GetToken(context.Background(), "secret-key", "GIGACHAT_API_PERS")
	require.NoError(t, err)

	assert.Equal(t, "token-2", tok)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestTokenCache_RejectedExchange(t *testing.T) {
	now := time.Now()
	f := &fakeOAuth{status: http.StatusUnauthorized}
	c := newTestTokenCache(t, f, &now)

	_, err := c.GetToken(context.Background(), "secret-key", "GIGACHAT_API_PERS")
	require.Error(t, err)

	var authErr *util.UpstreamAuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "bad key")
	assert.Nil(t, c.current(), "a failed exchange leaves nothing cached")
}

func TestTokenCache_TruncatedRejectionIsLogged(t *testing.T) {
	logs := observeLogs(t)
	srv := httptest.NewServer(truncatedBody(http.StatusUnauthorized, `{"message":"bad`))
	t.Cleanup(srv.Close)

	c := NewTokenCache(srv.Client(), srv.URL)
	_, err := c.GetToken(context.Background(), "secret-key", "GIGACHAT_API_PERS")

	var authErr *util.UpstreamAuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, `{"message":"bad`, authErr.Body)
	assert.Equal(t, 1, logs.FilterMessage("Failed to read GigaChat token response").Len())
}
