// Package gemcanvas dispatches prompt (and optional image) requests to a
// hosted multimodal generation service and classifies the response into a
// uniform tagged result: a generated image persisted as a tracked temp file,
// a text answer, or a structured error.
package gemcanvas

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jfickel/gemcanvas/artifact"
	"github.com/jfickel/gemcanvas/ratelimiter"
)

// tokenBuffer is added to every prompt token estimate to cover request
// overhead when consuming from the rate limiter.
const tokenBuffer = 100

// Dispatcher runs the single synchronous cycle from user prompt to
// classified result. Dispatch never returns a Go error: every failure path
// is converted to the error variant of GenerationResult.
type Dispatcher struct {
	gen       Generator
	store     *artifact.Store
	limiter   ratelimiter.Limiter
	estimator TokenEstimator
	logger    *slog.Logger
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a structured logger for the dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLimiter sets a client-side rate limiter consumed before each remote
// call. Nil disables rate limiting.
func WithLimiter(limiter ratelimiter.Limiter) Option {
	return func(d *Dispatcher) {
		d.limiter = limiter
	}
}

// WithTokenEstimator overrides the token estimation strategy used for rate
// limiting.
func WithTokenEstimator(estimator TokenEstimator) Option {
	return func(d *Dispatcher) {
		d.estimator = estimator
	}
}

// NewDispatcher creates a Dispatcher. A nil generator is allowed and makes
// every dispatch fail with a configuration error; this is how a missing
// credential at startup is surfaced per call.
func NewDispatcher(gen Generator, store *artifact.Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		gen:       gen,
		store:     store,
		estimator: NewSimpleTokenEstimator(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch validates the request, calls the generation service, classifies
// the response, and persists any generated image as a tracked artifact.
//
// All failure categories are terminal for the call: no retry, no partial
// result. At most one file is written per call, and only for an image result.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) GenerationResult {
	if d.gen == nil {
		return errorResult(CategoryConfiguration, ErrCredentialMissing.Error())
	}

	if err := req.Validate(); err != nil {
		d.logger.Debug("request rejected", "error", err.Error())
		return errorResult(CategoryValidation, err.Error())
	}

	if res, limited := d.checkRateLimit(req.Prompt); limited {
		return res
	}

	prompt := strings.TrimSpace(req.Prompt)
	start := time.Now()

	d.logger.Debug("starting generation",
		"prompt_length", len(prompt),
		"has_source_image", req.SourceImage != nil,
	)

	resp, err := d.gen.GenerateContent(ctx, prompt, req.SourceImage)
	duration := time.Since(start)

	if err != nil {
		if svcErr, ok := AsServiceError(err); ok {
			d.logger.Error("service reported failure",
				"duration_ms", duration.Milliseconds(),
				"code", svcErr.Code,
				"status", svcErr.Status,
				"error", svcErr.Message,
			)
			return serviceErrorResult(svcErr)
		}

		d.logger.Error("generation failed",
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return errorResult(CategoryTransport, fmt.Sprintf("generation failed: %v", err))
	}

	result := Classify(resp)

	if result.Kind == KindImage {
		if result.Image.MIMEType == "" {
			result.Image.MIMEType = "image/png"
		}
		if d.store == nil {
			return errorResult(CategoryInternal, "artifact store not configured")
		}
		path, err := d.store.Save(result.Image.Data, result.Image.MIMEType)
		if err != nil {
			d.logger.Error("saving artifact failed", "error", err.Error())
			return errorResult(CategoryInternal, fmt.Sprintf("saving image failed: %v", err))
		}
		result.Image.SavedPath = path
	}

	logAttrs := []any{
		"duration_ms", duration.Milliseconds(),
		"kind", string(result.Kind),
	}
	if resp.Usage != nil {
		logAttrs = append(logAttrs,
			"prompt_tokens", resp.Usage.PromptTokens,
			"response_tokens", resp.Usage.CandidatesTokens,
			"total_tokens", resp.Usage.TotalTokens,
		)
	}
	d.logger.Info("generation completed", logAttrs...)

	return result
}

// checkRateLimit consumes from the limiter and, on refusal, builds the
// rate-limited error result. No remote call is made when it refuses.
func (d *Dispatcher) checkRateLimit(prompt string) (GenerationResult, bool) {
	if d.limiter == nil {
		return GenerationResult{}, false
	}

	estimatedTokens := d.estimator.EstimateTokens(prompt) + tokenBuffer

	if d.limiter.TryConsume(estimatedTokens) {
		return GenerationResult{}, false
	}

	retryAfter := d.limiter.TimeUntilAvailable(estimatedTokens)
	d.logger.Warn("rate limit hit",
		"estimated_tokens", estimatedTokens,
		"retry_after", retryAfter.String(),
	)
	return errorResult(CategoryRateLimited,
		fmt.Sprintf("too many requests, retry in %s", retryAfter.Round(time.Second))), true
}

// Close releases the underlying generator's resources.
func (d *Dispatcher) Close() error {
	if d.gen == nil {
		return nil
	}
	return d.gen.Close()
}
