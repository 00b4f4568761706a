package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/fadilmartias/pitch-evaluator/internal/logger"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testScoringConfig() *config.ScoringConfig {
	return &config.ScoringConfig{Temperature: 0.2, MaxOutputTokens: 4096}
}

func TestOpenRouterGenerateText(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		var err error
		body, err = readAll(r)
		require.NoError(t, err)
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{
						"content": "```json\n{\"overall\":80}\n```",
					},
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	svc, err := NewOpenRouterService(&config.OpenRouterConfig{
		APIKey:  "test-key",
		Model:   "demo-model",
		BaseURL: server.URL,
	}, testScoringConfig(), logger.Discard())
	require.NoError(t, err)

	text, err := svc.GenerateText(context.Background(), "score this pitch")
	require.NoError(t, err)
	require.Equal(t, "```json\n{\"overall\":80}\n```", text)

	require.Equal(t, "demo-model", gjson.GetBytes(body, "model").String())
	require.Equal(t, "score this pitch", gjson.GetBytes(body, "messages.1.content").String())
	require.InDelta(t, 0.2, gjson.GetBytes(body, "temperature").Float(), 1e-9)
	require.Equal(t, int64(4096), gjson.GetBytes(body, "max_tokens").Int())
}

func TestOpenRouterGenerateTextFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
		wantErr string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"invalid key"}}`, "invalid key"},
		{"server error", http.StatusBadGateway, `oops`, "status 502"},
		{"empty choices", http.StatusOK, `{"choices":[]}`, "no response from LLM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer server.Close()

			svc, err := NewOpenRouterService(&config.OpenRouterConfig{
				APIKey: "k", Model: "m", BaseURL: server.URL,
			}, testScoringConfig(), logger.Discard())
			require.NoError(t, err)

			_, err = svc.GenerateText(context.Background(), "prompt")
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestOpenRouterMissingCredential(t *testing.T) {
	_, err := NewOpenRouterService(&config.OpenRouterConfig{Model: "m"}, testScoringConfig(), logger.Discard())
	require.ErrorIs(t, err, config.ErrMissingCredential)
}

func TestOpenRouterRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	svc, err := NewOpenRouterService(&config.OpenRouterConfig{
		APIKey: "k", Model: "m", BaseURL: server.URL,
	}, testScoringConfig(), logger.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.GenerateText(ctx, "prompt")
	require.Error(t, err)
}
