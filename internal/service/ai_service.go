package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"triz_edu_backend/internal/config"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/internal/util"
	"triz_edu_backend/pkg/logger"
	"triz_edu_backend/pkg/monitoring"
	"triz_edu_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []model.ChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

// AIService forwards chat turns to GigaChat and hands back the raw event
// stream.
type AIService struct {
	cfg    config.GigaChatConfig
	client *http.Client
	tokens *TokenCache

	mu    sync.RWMutex
	model string
}

// NewGigaChatClient returns the HTTP client used for streaming completions.
// It has no overall timeout; the request context bounds each call.
func NewGigaChatClient(cfg config.GigaChatConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{Transport: transport}
}

func NewAIService(cfg config.GigaChatConfig, client *http.Client) *AIService {
	authClient := &http.Client{
		Transport: client.Transport,
		Timeout:   cfg.AuthTimeout,
	}
	return &AIService{
		cfg:    cfg,
		client: client,
		tokens: NewTokenCache(authClient, cfg.OAuthURL),
		model:  cfg.Model,
	}
}

func (s *AIService) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// SetModel switches the completion model for subsequent requests.
func (s *AIService) SetModel(name string) {
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != name {
		logger.Log.Info("GigaChat model changed", zap.String("from", s.model), zap.String("to", name))
	}
	s.model = name
}

// Configured reports whether a credential key is present.
func (s *AIService) Configured() bool {
	return s.cfg.AuthKey != ""
}

// StreamCompletion starts a streaming completion for messages and returns the
// provider's response body unread. The caller must close it. Cancelling ctx
// aborts the upstream request.
func (s *AIService) StreamCompletion(ctx context.Context, messages []model.ChatMessage) (io.ReadCloser, error) {
	if len(messages) == 0 {
		return nil, util.ErrNoMessages
	}
	if !s.Configured() {
		return nil, util.ErrCredentialsNotConfigured
	}

	token, err := s.tokens.GetToken(ctx, s.cfg.AuthKey, s.cfg.Scope)
	if err != nil {
		monitoring.ChatRelays.WithLabelValues("auth_error").Inc()
		return nil, err
	}

	modelName := s.Model()
	ctx, span := tracing.Tracer.Start(ctx, "gigachat.completions")
	defer span.End()
	span.SetAttributes(
		attribute.String("gigachat.model", modelName),
		attribute.Int("gigachat.messages", len(messages)),
	)

	payload, err := json.Marshal(completionRequest{
		Model:    modelName,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.CompletionsURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		tracing.Fail(span, err, "completion request failed")
		monitoring.ChatRelays.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("gigachat completion request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			logger.Log.Warn("Failed to read GigaChat error body",
				zap.Int("status", resp.StatusCode),
				zap.Error(err),
			)
		}
		tracing.Fail(span, nil, "completion rejected")
		monitoring.ChatRelays.WithLabelValues("upstream_error").Inc()
		logger.Log.Warn("GigaChat completion rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, &util.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	monitoring.ChatRelays.WithLabelValues("ok").Inc()
	return resp.Body, nil
}
