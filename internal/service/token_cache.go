package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/util"
	"triz_edu_backend/pkg/logger"
	"triz_edu_backend/pkg/monitoring"
	"triz_edu_backend/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// tokenRefreshMargin is how long before expiry a cached token stops being
// handed out.
const tokenRefreshMargin = 60 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// TokenCache holds one provider token for the whole process. Concurrent
// callers that find it stale may each refresh it; the last write wins.
type TokenCache struct {
	client   *http.Client
	oauthURL string
	now      func() time.Time

	mu     sync.Mutex
	cached *model.CachedToken
}

func NewTokenCache(client *http.Client, oauthURL string) *TokenCache {
	return &TokenCache{
		client:   client,
		oauthURL: oauthURL,
		now:      time.Now,
	}
}

func (c *TokenCache) current() *model.CachedToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}

func (c *TokenCache) store(tok *model.CachedToken) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = tok
}

// GetToken returns the cached token while it is more than a minute from
// expiry, otherwise exchanges credentialKey for a new one.
func (c *TokenCache) GetToken(ctx context.Context, credentialKey, scope string) (string, error) {
	if tok := c.current(); tok != nil {
		deadline := time.UnixMilli(tok.ExpiresAt).Add(-tokenRefreshMargin)
		if c.now().Before(deadline) {
			return tok.AccessToken, nil
		}
	}

	tok, err := c.exchange(ctx, credentialKey, scope)
	if err != nil {
		return "", err
	}
	c.store(tok)
	return tok.AccessToken, nil
}

func (c *TokenCache) exchange(ctx context.Context, credentialKey, scope string) (*model.CachedToken, error) {
	ctx, span := tracing.Tracer.Start(ctx, "gigachat.oauth")
	defer span.End()

	rqUID := uuid.New().String()
	span.SetAttributes(attribute.String("gigachat.rquid", rqUID))

	form := url.Values{"scope": {scope}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	req.Header.Set("Authorization", "Basic "+credentialKey)

	resp, err := c.client.Do(req)
	if err != nil {
		tracing.Fail(span, err, "oauth request failed")
		monitoring.TokenRefreshes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("gigachat oauth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Log.Warn("Failed to read GigaChat token response",
			zap.Int("status", resp.StatusCode),
			zap.String("rquid", rqUID),
			zap.Error(err),
		)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tracing.Fail(span, nil, "oauth rejected")
		monitoring.TokenRefreshes.WithLabelValues("rejected").Inc()
		logger.Log.Warn("GigaChat token exchange rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("rquid", rqUID),
		)
		return nil, &util.UpstreamAuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		monitoring.TokenRefreshes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode gigachat token: %w", err)
	}
	if tr.AccessToken == "" {
		monitoring.TokenRefreshes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("gigachat token response has no access_token")
	}

	monitoring.TokenRefreshes.WithLabelValues("ok").Inc()
	logger.Log.Debug("GigaChat token refreshed",
		zap.String("rquid", rqUID),
		zap.Time("expires_at", time.UnixMilli(tr.ExpiresAt)),
	)
	return &model.CachedToken{AccessToken: tr.AccessToken, ExpiresAt: tr.ExpiresAt}, nil
}
