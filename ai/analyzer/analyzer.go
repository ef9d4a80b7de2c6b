package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/config"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

const systemPrompt = `You analyze one CRM message from a customer. Respond with a single JSON object:
{"sentiment": one of "VERY_POSITIVE", "POSITIVE", "NEUTRAL", "NEGATIVE", "VERY_NEGATIVE",
"lead_score": integer 0-100 estimating purchase intent,
"intent": short phrase naming what the customer wants,
"tags": up to 5 short lowercase topic tags}
No prose outside the JSON.`

const maxTags = 5

// Analyzer scores message content through the OpenAI chat API. It is
// stateless; every message is analyzed on its own.
type Analyzer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

func New(conf *config.Config, logger *slog.Logger) *Analyzer {
	client := openai.NewClient(conf.OpenAI.ApiKey)
	return &Analyzer{
		client:  client,
		model:   conf.OpenAI.Model,
		timeout: time.Duration(conf.OpenAI.TimeoutSec) * time.Second,
		log:     logger.With(sl.Module("analyzer")),
	}
}

// Analyze returns the sanitized analysis for content. The call is
// bounded by the configured timeout; callers substitute the neutral
// default when an error comes back.
func (a *Analyzer) Analyze(ctx context.Context, content string) (entity.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	started := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return entity.Analysis{}, fmt.Errorf("chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return entity.Analysis{}, fmt.Errorf("chat completion returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	analysis, err := parseAnalysisPayload(raw)
	if err != nil {
		a.log.With(
			slog.String("response", raw),
			sl.Err(err),
		).Error("unmarshalling analysis response")
		return entity.Analysis{}, err
	}

	a.log.With(
		slog.String("sentiment", analysis.Sentiment),
		slog.Int("score", analysis.Score),
		slog.Duration("took", time.Since(started)),
	).Debug("message analyzed")

	return analysis, nil
}

type analysisPayload struct {
	Sentiment string          `json:"sentiment"`
	Score     json.RawMessage `json:"lead_score"`
	Intent    string          `json:"intent"`
	Tags      []any           `json:"tags"`
}

// parseAnalysisPayload sanitizes a model response field by field. A
// bad field degrades to its default instead of rejecting the whole
// payload; only non-JSON input is an error.
func parseAnalysisPayload(raw string) (entity.Analysis, error) {
	var payload analysisPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return entity.Analysis{}, fmt.Errorf("invalid analysis payload: %w", err)
	}

	analysis := entity.Analysis{
		Sentiment: entity.ParseSentiment(payload.Sentiment),
		Score:     parseScore(payload.Score),
		Intent:    strings.TrimSpace(payload.Intent),
		Tags:      parseTags(payload.Tags),
	}
	if analysis.Intent == "" {
		analysis.Intent = entity.DefaultIntent
	}
	return analysis, nil
}

// parseScore accepts numbers and numeric strings, clamped to [0,100].
// Anything else scores 50.
func parseScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return entity.NeutralScore
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return entity.ClampScore(int(number))
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if number, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return entity.ClampScore(int(number))
		}
	}

	return entity.NeutralScore
}

func parseTags(raw []any) []string {
	tags := make([]string, 0, maxTags)
	for _, item := range raw {
		tag, ok := item.(string)
		if !ok {
			continue
		}
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}
