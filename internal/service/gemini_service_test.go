package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/fadilmartias/pitch-evaluator/internal/logger"
	"github.com/stretchr/testify/require"
)

func readAll(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func newTestGemini(t *testing.T, url string) *GeminiService {
	t.Helper()
	svc, err := NewGeminiService(context.Background(), &config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: url,
	}, testScoringConfig(), logger.Discard())
	require.NoError(t, err)
	return svc
}

func TestGeminiGenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		body, err := readAll(r)
		require.NoError(t, err)
		require.Contains(t, string(body), "score this pitch")

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": `{"overall": 81}`}},
					},
				},
			},
		}))
	}))
	defer server.Close()

	svc := newTestGemini(t, server.URL)
	text, err := svc.GenerateText(context.Background(), "score this pitch")
	require.NoError(t, err)
	require.Equal(t, `{"overall": 81}`, text)

	status := svc.Status()
	require.Equal(t, config.ProviderGemini, status.Provider)
	require.False(t, status.CircuitOpen)
}

func TestGeminiEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	_, err := newTestGemini(t, server.URL).GenerateText(context.Background(), "prompt")
	require.ErrorContains(t, err, "no candidates")
}

func TestGeminiCircuitBreaker(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"code": 503, "message": "overloaded", "status": "UNAVAILABLE"}}`))
	}))
	defer server.Close()

	svc := newTestGemini(t, server.URL)
	for i := 0; i < defaultBreakerMax; i++ {
		_, err := svc.GenerateText(context.Background(), "prompt")
		require.Error(t, err)
	}
	errs, open := svc.GetCircuitBreakerStatus()
	require.Equal(t, defaultBreakerMax, errs)
	require.True(t, open)

	before := hits.Load()
	_, err := svc.GenerateText(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrCircuitOpen)
	require.Equal(t, before, hits.Load())

	svc.ResetCircuitBreaker()
	_, open = svc.GetCircuitBreakerStatus()
	require.False(t, open)
}

func TestGeminiClientErrorsDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "bad request", "status": "INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	svc := newTestGemini(t, server.URL)
	for i := 0; i < defaultBreakerMax+1; i++ {
		_, err := svc.GenerateText(context.Background(), "prompt")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCircuitOpen)
	}
}

func TestGeminiMissingCredential(t *testing.T) {
	_, err := NewGeminiService(context.Background(), &config.GeminiConfig{Model: "m"}, testScoringConfig(), logger.Discard())
	require.ErrorIs(t, err, config.ErrMissingCredential)
}

func TestIsTransientError(t *testing.T) {
	require.False(t, isTransientError(nil))
	require.False(t, isTransientError(context.Canceled))
	require.True(t, isTransientError(context.DeadlineExceeded))
	require.True(t, isTransientError(io.ErrUnexpectedEOF))
	require.False(t, isTransientError(io.ErrShortWrite))
}
