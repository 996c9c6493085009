package coordinator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"quickreviewer/internal/logging"
	"quickreviewer/internal/media"
	"quickreviewer/internal/metadata"
	"quickreviewer/internal/review"
	"quickreviewer/internal/store"
)

// MaxAttempts bounds the generate-and-verify self-correction loop.
const MaxAttempts = 2

// Terminal payload messages. These are user-facing review bodies, not errors.
const (
	msgMetadataUnavailable = "We couldn't find details for this title right now. Please try again later."
	msgGenerationExhausted = "We're sorry, we couldn't put together a polished review for this title right now. Please try again in a little while."
)

// Resolver resolves a media identifier into normalized metadata.
type Resolver interface {
	Resolve(ctx context.Context, id media.ID, mediaType media.Type) (*metadata.Normalized, error)
}

// Generator produces raw text from a prompt pair.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ReviewStore is the persistence contract the coordinator consumes.
type ReviewStore interface {
	Read(ctx context.Context, id string) (*store.CachedReview, error)
	Write(ctx context.Context, cached *store.CachedReview) error
}

// Coordinator owns the pending-generation registry for its process lifetime.
type Coordinator struct {
	store      ReviewStore
	resolver   Resolver
	generator  Generator
	verifier   *review.Verifier
	normalizer *review.Normalizer
	logger     *slog.Logger
	now        func() time.Time

	reviews   singleflight.Group
	summaries singleflight.Group
}

// New constructs a coordinator. A nil logger disables diagnostics.
func New(reviewStore ReviewStore, resolver Resolver, generator Generator, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "coordinator")
	return &Coordinator{
		store:      reviewStore,
		resolver:   resolver,
		generator:  generator,
		verifier:   review.NewVerifier(logger),
		normalizer: review.NewNormalizer(),
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (c *Coordinator) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

// GetReview returns the cached or freshly generated review for the request.
// It blocks until a result is available or ctx is done; on ctx cancellation
// the in-flight generation keeps running and the terminal payload is
// returned to this caller.
func (c *Coordinator) GetReview(ctx context.Context, rawID string, mediaType media.Type, forceRefresh bool) *store.CachedReview {
	result, _ := c.getReview(ctx, rawID, mediaType, forceRefresh, 0)
	return result
}

// GetReviewWithin behaves like GetReview but gives up waiting after the
// supplied duration. When the wait expires the generation continues in the
// background and pending reports true with a nil result.
func (c *Coordinator) GetReviewWithin(ctx context.Context, rawID string, mediaType media.Type, forceRefresh bool, wait time.Duration) (result *store.CachedReview, pending bool) {
	return c.getReview(ctx, rawID, mediaType, forceRefresh, wait)
}

func (c *Coordinator) getReview(ctx context.Context, rawID string, mediaType media.Type, forceRefresh bool, wait time.Duration) (*store.CachedReview, bool) {
	correlationID := uuid.NewString()
	logger := c.logger.With(
		logging.String(logging.FieldCorrelationID, correlationID),
		logging.String(logging.FieldMediaID, rawID),
		logging.String(logging.FieldMediaType, string(mediaType)))

	id, err := media.ParseID(rawID)
	if err != nil {
		logger.Warn("rejecting malformed media id", logging.Error(err))
		return c.terminalPayload(rawID, mediaType, msgMetadataUnavailable), false
	}
	key := id.String()

	if !forceRefresh {
		if cached, readErr := c.store.Read(ctx, key); readErr != nil {
			logger.Warn("cache read failed, regenerating", logging.Error(readErr))
		} else if cached != nil {
			logger.Debug("cache hit")
			return cached, false
		}
	}

	// The producer must outlive any individual waiter, so it runs on a
	// detached context. singleflight drops the key when the producer
	// returns, which is the no-stuck-entries guarantee.
	producerCtx := context.WithoutCancel(ctx)
	ch := c.reviews.DoChan(key, func() (any, error) {
		return c.runAttemptLoop(producerCtx, id, mediaType, logger), nil
	})

	var timeout <-chan time.Time
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res := <-ch:
		return res.Val.(*store.CachedReview), false
	case <-timeout:
		logger.Info("waiter timed out, generation continues in background")
		return nil, true
	case <-ctx.Done():
		logger.Info("waiter cancelled, generation continues in background", logging.Error(ctx.Err()))
		return c.terminalPayload(key, mediaType, msgGenerationExhausted), false
	}
}

// runAttemptLoop resolves metadata once, then generates and verifies up to
// MaxAttempts times. On success the result is normalized, verdict-extracted,
// and written through the store. Failures never escape as errors.
func (c *Coordinator) runAttemptLoop(ctx context.Context, id media.ID, mediaType media.Type, logger *slog.Logger) *store.CachedReview {
	key := id.String()

	meta, err := c.resolver.Resolve(ctx, id, mediaType)
	if err != nil {
		logger.Error("metadata resolution failed", logging.Error(err))
		return c.terminalPayload(key, mediaType, msgMetadataUnavailable)
	}

	prompt := review.ComposeReviewPrompt(meta, mediaType)
	rawText, ok := c.generateVerified(ctx, prompt, logger, func(text string) bool {
		return c.verifier.IsValid(text, mediaType)
	})
	if !ok {
		logger.Error("generation attempts exhausted")
		return c.terminalPayload(key, mediaType, msgGenerationExhausted)
	}

	normalized := c.normalizer.Normalize(rawText)
	verdict := review.ExtractVerdict(normalized)
	if verdict == "" {
		if html, renderErr := review.RenderHTML(normalized); renderErr == nil {
			verdict = review.ExtractVerdictFromHTML(html)
		}
	}
	if verdict == "" {
		logger.Warn("no verdict extracted")
	}

	cached := &store.CachedReview{
		ID:          key,
		MediaType:   mediaType,
		TimestampMs: c.now().UnixMilli(),
		Review:      normalized,
		Verdict:     verdict,
	}
	if writeErr := c.store.Write(ctx, cached); writeErr != nil {
		logger.Error("persisting review failed", logging.Error(writeErr))
	}
	logger.Info("review generated")
	return cached
}

// generateVerified runs the bounded generation loop with the supplied
// structural check. The prompt is fixed across attempts; only the generated
// output varies.
func (c *Coordinator) generateVerified(ctx context.Context, prompt review.Prompt, logger *slog.Logger, valid func(string) bool) (string, bool) {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		attemptLogger := logger.With(logging.Int(logging.FieldAttempt, attempt))
		rawText, err := c.generator.Complete(ctx, prompt.System, prompt.User)
		if err != nil {
			attemptLogger.Warn("generation call failed", logging.Error(err))
			continue
		}
		if !valid(rawText) {
			attemptLogger.Warn("generated text failed verification")
			continue
		}
		return rawText, true
	}
	return "", false
}

func (c *Coordinator) terminalPayload(id string, mediaType media.Type, message string) *store.CachedReview {
	return &store.CachedReview{
		ID:          id,
		MediaType:   mediaType,
		TimestampMs: c.now().UnixMilli(),
		Review:      message,
	}
}
