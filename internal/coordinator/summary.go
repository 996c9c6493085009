package coordinator

import (
	"context"
	"log/slog"

	"quickreviewer/internal/logging"
	"quickreviewer/internal/media"
	"quickreviewer/internal/review"
)

// GetSummary returns the bullet summary for the request, generating it with
// the same attempt-loop machinery as reviews but a bullet prompt and bullet
// verifier. Returns nil when no summary could be produced; callers degrade
// gracefully.
func (c *Coordinator) GetSummary(ctx context.Context, rawID string, mediaType media.Type, forceRefresh bool) []string {
	logger := c.logger.With(
		logging.String(logging.FieldMediaID, rawID),
		logging.String(logging.FieldMediaType, string(mediaType)))

	id, err := media.ParseID(rawID)
	if err != nil {
		logger.Warn("rejecting malformed media id", logging.Error(err))
		return nil
	}
	key := id.String()

	if !forceRefresh {
		if cached, readErr := c.store.Read(ctx, key); readErr == nil && cached != nil && len(cached.SummaryBullets) > 0 {
			logger.Debug("summary cache hit")
			return cached.SummaryBullets
		}
	}

	producerCtx := context.WithoutCancel(ctx)
	ch := c.summaries.DoChan(key, func() (any, error) {
		return c.runSummaryLoop(producerCtx, id, mediaType, logger), nil
	})

	select {
	case res := <-ch:
		bullets, _ := res.Val.([]string)
		return bullets
	case <-ctx.Done():
		logger.Info("summary waiter cancelled, generation continues in background")
		return nil
	}
}

func (c *Coordinator) runSummaryLoop(ctx context.Context, id media.ID, mediaType media.Type, logger *slog.Logger) []string {
	key := id.String()

	meta, err := c.resolver.Resolve(ctx, id, mediaType)
	if err != nil {
		logger.Error("metadata resolution failed", logging.Error(err))
		return nil
	}

	prompt := review.ComposeSummaryPrompt(meta, mediaType)
	rawText, ok := c.generateVerifiedSummary(ctx, prompt, logger)
	if !ok {
		logger.Error("summary attempts exhausted")
		return nil
	}
	bullets := review.ParseSummaryBullets(rawText)

	// Attach the bullets to an existing cached review when one is present.
	if cached, readErr := c.store.Read(ctx, key); readErr == nil && cached != nil {
		cached.SummaryBullets = bullets
		if writeErr := c.store.Write(ctx, cached); writeErr != nil {
			logger.Error("persisting summary failed", logging.Error(writeErr))
		}
	}
	logger.Info("summary generated")
	return bullets
}

func (c *Coordinator) generateVerifiedSummary(ctx context.Context, prompt review.Prompt, logger *slog.Logger) (string, bool) {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		rawText, err := c.generator.Complete(ctx, prompt.System, prompt.User)
		if err != nil {
			logger.Warn("summary generation call failed", logging.Int(logging.FieldAttempt, attempt), logging.Error(err))
			continue
		}
		if !review.VerifySummary(rawText) {
			logger.Warn("summary failed bullet verification", logging.Int(logging.FieldAttempt, attempt))
			continue
		}
		return rawText, true
	}
	return "", false
}
