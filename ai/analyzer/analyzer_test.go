package analyzer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"github.com/aeg58/crm-v2/entity"
)

func newTestAnalyzer(serverURL string) *Analyzer {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = serverURL + "/v1"
	return &Analyzer{
		client:  openai.NewClientWithConfig(cfg),
		model:   "gpt-4o-mini",
		timeout: 2 * time.Second,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    openai.ChatMessageRoleAssistant,
						Content: content,
					},
					FinishReason: openai.FinishReasonStop,
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encoding completion response: %v", err)
		}
	}))
}

func TestAnalyzeSuccess(t *testing.T) {
	server := completionServer(t, `{"sentiment":"VERY_POSITIVE","lead_score":88,"intent":"pricing request","tags":["pricing","enterprise"]}`)
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	analysis, err := a.Analyze(context.Background(), "I want the enterprise plan, send me a quote")

	assert.NoError(t, err)
	assert.Equal(t, entity.SentimentVeryPositive, analysis.Sentiment)
	assert.Equal(t, 88, analysis.Score)
	assert.Equal(t, "pricing request", analysis.Intent)
	assert.Equal(t, []string{"pricing", "enterprise"}, analysis.Tags)
}

func TestAnalyzeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	_, err := a.Analyze(context.Background(), "hello")

	assert.Error(t, err)
}

func TestAnalyzeMalformedContent(t *testing.T) {
	server := completionServer(t, "Sorry, I cannot help with that.")
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	_, err := a.Analyze(context.Background(), "hello")

	assert.Error(t, err)
}

func TestAnalyzeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	a := newTestAnalyzer(server.URL)
	a.timeout = 50 * time.Millisecond
	_, err := a.Analyze(context.Background(), "hello")

	assert.Error(t, err)
}

func TestParseAnalysisPayload(t *testing.T) {
	t.Run("numeric string score", func(t *testing.T) {
		analysis, err := parseAnalysisPayload(`{"sentiment":"POSITIVE","lead_score":"85","intent":"demo request","tags":[]}`)
		assert.NoError(t, err)
		assert.Equal(t, 85, analysis.Score)
	})

	t.Run("float score truncated", func(t *testing.T) {
		analysis, err := parseAnalysisPayload(`{"sentiment":"POSITIVE","lead_score":92.7,"intent":"x","tags":[]}`)
		assert.NoError(t, err)
		assert.Equal(t, 92, analysis.Score)
	})

	t.Run("score out of range clamped", func(t *testing.T) {
		analysis, err := parseAnalysisPayload(`{"sentiment":"POSITIVE","lead_score":150,"intent":"x","tags":[]}`)
		assert.NoError(t, err)
		assert.Equal(t, 100, analysis.Score)
	})

	t.Run("missing score defaults", func(t *testing.T) {
		analysis, err := parseAnalysisPayload(`{"sentiment":"NEGATIVE","intent":"complaint"}`)
		assert.NoError(t, err)
		assert.Equal(t, entity.NeutralScore, analysis.Score)
	})

	t.Run("unknown sentiment collapses to neutral", func(t *testing.T) {
		analysis, err := parseAnalysisPayload(`{"sentiment":"ecstatic","lead_score":40,"intent":"x","tags":[]}`)
		assert.NoError(t, err)
		assert.Equal(t, entity.SentimentNeutral, analysis.Sentiment)
	})

	t.Run("empty intent defaults", func(t *testing.T) {
		analysis, err := parseAnalysisPayload(`{"sentiment":"NEUTRAL","lead_score":50,"intent":"  ","tags":[]}`)
		assert.NoError(t, err)
		assert.Equal(t, entity.DefaultIntent, analysis.Intent)
	})

	t.Run("tags filtered and capped", func(t *testing.T) {
		analysis, err := parseAnalysisPayload(`{"sentiment":"NEUTRAL","lead_score":50,"intent":"x","tags":["a",1,"b","","c","d","e","f"]}`)
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, analysis.Tags)
	})

	t.Run("non-json payload errors", func(t *testing.T) {
		_, err := parseAnalysisPayload("not json at all")
		assert.Error(t, err)
	})
}
