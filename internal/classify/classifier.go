// Package classify assigns a spending category to a receipt using a hybrid
// policy: a fast rule stage over fixed keyword tables, escalated to a remote
// model only when the rule confidence is middling, with consensus arithmetic
// reconciling the two predictions. The classifier never fails outright; it
// always returns a category, possibly with very low confidence.
package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsight/receipt-pipeline/internal/common"
	"github.com/finsight/receipt-pipeline/internal/model"
)

// Consensus arithmetic constants.
const (
	// agreementBoost lifts the confidence toward 1.0 when rule and remote
	// predictions agree.
	agreementBoost = 0.15
	// maxHybridConfidence keeps even unanimous results short of certainty.
	maxHybridConfidence = 0.99
	// disagreementFactor caps a winning remote prediction below the remote
	// model's own reported confidence.
	disagreementFactor = 0.85
)

// DefaultRemoteTimeout bounds the remote classification call.
const DefaultRemoteTimeout = 3 * time.Second

// Config holds classifier construction options.
type Config struct {
	// RemoteTimeout bounds the escalation call; DefaultRemoteTimeout when zero.
	RemoteTimeout time.Duration
	// MaxRetries is the attempt count for the remote call within the timeout.
	MaxRetries int
}

// Classifier implements the hybrid classification state machine. The cache
// store is injected rather than package-global so tests can supply an
// isolated, empty cache per run.
type Classifier struct {
	client    Client
	store     Store
	logger    *slog.Logger
	now       func() time.Time
	retryOpts common.RetryOptions
	timeout   time.Duration
}

// New creates a classifier. client may be nil, disabling escalation; store
// may be nil, disabling caching.
func New(client Client, store Store, cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RemoteTimeout
	if timeout == 0 {
		timeout = DefaultRemoteTimeout
	}
	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 2
	}
	return &Classifier{
		client:  client,
		store:   store,
		logger:  logger,
		now:     time.Now,
		timeout: timeout,
		retryOpts: common.RetryOptions{
			MaxAttempts:  retries,
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
		},
	}
}

// Classify runs the hybrid pipeline for one request. Thresholds are passed
// per call; the classifier holds no tunable global state.
func (c *Classifier) Classify(ctx context.Context, req Request, thresholds model.ConfidenceThresholds) model.ClassificationResult {
	start := c.now()
	key := normalizeMerchantKey(req.MerchantName)

	if result, ok := c.cached(ctx, key); ok {
		result.ProcessingTimeMs = c.now().Sub(start).Milliseconds()
		return result
	}

	category, ruleConf, scores := ruleClassify(req.MerchantName, req.Description)

	var result model.ClassificationResult
	switch {
	case ruleConf >= thresholds.AutoAccept:
		c.logger.Debug("rule stage auto-accepted",
			"merchant", req.MerchantName,
			"category", category,
			"confidence", ruleConf)
		result = model.NewRuleBasedResult(category, ruleConf, scores)
	case ruleConf >= thresholds.Minimum && c.client != nil:
		result = c.escalate(ctx, req, category, ruleConf, scores, thresholds)
	default:
		// Below minimum there is nothing worth confirming remotely; return
		// the best rule candidate and let the caller route it to review.
		result = model.NewRuleBasedResult(category, ruleConf, scores)
	}

	result.ProcessingTimeMs = c.now().Sub(start).Milliseconds()

	if key != "" && c.store != nil {
		if err := c.store.Put(ctx, key, result); err != nil {
			c.logger.Warn("failed to cache classification", "merchant_key", key, "error", err)
		}
	}
	return result
}

// cached returns a prior result for the merchant key, if any.
func (c *Classifier) cached(ctx context.Context, key string) (model.ClassificationResult, bool) {
	if key == "" || c.store == nil {
		return model.ClassificationResult{}, false
	}
	result, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("classification cache read failed", "merchant_key", key, "error", err)
		return model.ClassificationResult{}, false
	}
	if ok {
		c.logger.Debug("classification cache hit", "merchant_key", key, "category", result.Category)
	}
	return result, ok
}

// escalate issues the remote call and reconciles it with the rule result.
// Any remote failure, timeout, or malformed response falls back silently to
// the rule prediction; nothing surfaces to the caller as an error.
func (c *Classifier) escalate(ctx context.Context, req Request, ruleCategory string, ruleConf float64, scores map[string]float64, thresholds model.ConfidenceThresholds) model.ClassificationResult {
	remoteCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp RemoteResponse
	err := common.WithRetry(remoteCtx, func() error {
		r, callErr := c.client.Classify(remoteCtx, req, model.Categories())
		if callErr != nil {
			return &common.RetryableError{Err: callErr, Retryable: true}
		}
		if !model.ValidCategory(r.Category) {
			return &common.RetryableError{
				Err:       fmt.Errorf("remote returned unknown category %q", r.Category),
				Retryable: true,
			}
		}
		resp = r
		return nil
	}, c.retryOpts)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", common.ErrRemoteTimeout, err)
		}
		c.logger.Warn("remote classification unavailable, using rule result",
			"merchant", req.MerchantName,
			"rule_category", ruleCategory,
			"error", err)
		return model.NewRuleBasedResult(ruleCategory, ruleConf, scores)
	}

	if resp.Category == ruleCategory {
		confidence := ruleConf
		if resp.Confidence > confidence {
			confidence = resp.Confidence
		}
		confidence += agreementBoost
		if confidence > maxHybridConfidence {
			confidence = maxHybridConfidence
		}
		return c.hybrid(resp.Category, confidence, ruleCategory, ruleConf, resp, scores)
	}

	if resp.Confidence < thresholds.RemoteFallback {
		c.logger.Debug("remote disagreed below fallback threshold, keeping rule result",
			"rule_category", ruleCategory,
			"remote_category", resp.Category,
			"remote_confidence", resp.Confidence)
		return model.NewRuleBasedResult(ruleCategory, ruleConf, scores)
	}

	// Disagreement: the remote prediction wins but its confidence is capped
	// below the remote model's own report.
	return c.hybrid(resp.Category, resp.Confidence*disagreementFactor, ruleCategory, ruleConf, resp, scores)
}

// hybrid assembles a consensus result, falling back to the rule prediction
// if construction is rejected.
func (c *Classifier) hybrid(category string, confidence float64, ruleCategory string, ruleConf float64, resp RemoteResponse, scores map[string]float64) model.ClassificationResult {
	result, err := model.NewHybridResult(category, confidence, ruleCategory, ruleConf, resp.Category, resp.Confidence, resp.Reasoning, scores)
	if err != nil {
		c.logger.Warn("invalid hybrid result, using rule prediction", "error", err)
		return model.NewRuleBasedResult(ruleCategory, ruleConf, scores)
	}
	return result
}
