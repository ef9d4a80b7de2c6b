package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/lib/sl"
	"github.com/aeg58/crm-v2/internal/metrics"
)

// leadScoreThreshold is the minimum lead score at which a message
// produces or raises a lead.
const leadScoreThreshold = 70

// enrichMessage is the asynchronous continuation of ingestion: analyze
// the message, store the result, derive a lead when the score clears
// the threshold. Analyzer failures degrade to the neutral default;
// nothing here ever reaches the webhook caller.
func (c *Core) enrichMessage(ctx context.Context, customer *entity.Customer, message *entity.Message) {
	defer func() {
		if r := recover(); r != nil {
			c.log.With(slog.Any("panic", r)).Error("panic caught in enrichment")
		}
	}()

	logger := c.log.With(
		slog.String("message_id", message.ID),
		slog.String("customer_id", customer.ID),
	)

	outcome := "completed"
	analysis, err := c.analyzer.Analyze(ctx, message.Content)
	if err != nil {
		logger.Warn("analysis failed, using neutral default", sl.Err(err))
		analysis = entity.NeutralAnalysis()
		outcome = "fallback"
	}

	updated, err := c.repo.UpdateMessageEnrichment(ctx, message.ID, analysis, entity.AnalysisCompleted)
	if err != nil {
		logger.Error("failed to store enrichment", sl.Err(err))
		if markErr := c.repo.MarkMessageAnalysisFailed(ctx, message.ID); markErr != nil && !errors.Is(markErr, entity.ErrNotFound) {
			logger.Error("failed to mark analysis failed", sl.Err(markErr))
		}
		metrics.RecordEnrichment("error")
		return
	}

	metrics.RecordEnrichment(outcome)
	logger.With(
		slog.String("sentiment", analysis.Sentiment),
		slog.Int("score", analysis.Score),
		slog.String("intent", analysis.Intent),
	).Info("message enriched")

	if c.notifier != nil {
		c.notifier.BroadcastMessageUpdated(updated)
	}

	c.deriveLead(ctx, customer, updated, analysis)
}

// deriveLead creates or raises the customer's open lead when the
// analysis score reaches the threshold. An existing open lead keeps
// the maximum of its score and the new one; its notes accumulate one
// line per qualifying message.
func (c *Core) deriveLead(ctx context.Context, customer *entity.Customer, message *entity.Message, analysis entity.Analysis) {
	if analysis.Score < leadScoreThreshold {
		return
	}

	logger := c.log.With(
		slog.String("customer_id", customer.ID),
		slog.Int("score", analysis.Score),
	)

	note := fmt.Sprintf("Intent: %s. Sentiment: %s.", analysis.Intent, analysis.Sentiment)

	existing, err := c.repo.FindActiveLeadByCustomer(ctx, customer.ID)
	switch {
	case err == nil:
		raised, err := c.repo.RaiseLeadScore(ctx, existing.ID, analysis.Score, note)
		if err != nil {
			logger.Error("failed to raise lead score", sl.Err(err))
			return
		}
		metrics.RecordLeadDerived("raised")
		logger.With(slog.String("lead_id", raised.ID), slog.Int("lead_score", raised.Score)).Info("lead score raised")
		if c.notifier != nil {
			c.notifier.BroadcastLeadUpdate(raised)
		}

	case errors.Is(err, entity.ErrNotFound):
		source := fmt.Sprintf("AI Analysis - %s", message.Platform)
		lead := entity.NewLead(customer.ID, analysis.Score, source, note)
		if err := c.repo.CreateLead(ctx, lead); err != nil {
			logger.Error("failed to create lead", sl.Err(err))
			return
		}
		metrics.RecordLeadDerived("created")
		logger.With(slog.String("lead_id", lead.ID)).Info("lead created")
		if c.notifier != nil {
			c.notifier.BroadcastLeadNew(lead)
		}

	default:
		logger.Error("failed to look up lead", sl.Err(err))
	}
}
