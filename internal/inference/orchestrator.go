// Package inference drives a classification attempt end to end: a bounded
// request to the remote service, failure classification, and fallback
// substitution so the caller always gets a complete report.
package inference

import (
	"context"

	"github.com/krishimitra/leafscan/internal/advisory"
	"github.com/krishimitra/leafscan/internal/domain"
	"github.com/krishimitra/leafscan/internal/logger"
	"github.com/krishimitra/leafscan/internal/synth"
)

// Classifier is the slice of the client the orchestrator needs.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (domain.ClassificationResult, error)
	Probe(ctx context.Context) bool
}

// Orchestrator turns an image into a complete diagnosis report. Apart from
// the read-only catalog it holds no state shared between calls, so
// concurrent Analyze calls are independent.
type Orchestrator struct {
	client  Classifier
	catalog *advisory.Catalog
	logger  logger.Logger
	retries int
}

// NewOrchestrator wires the orchestrator. retries is the number of extra
// attempts for requests that never reached the service; 0 means a single
// bounded request per Analyze call.
func NewOrchestrator(client Classifier, catalog *advisory.Catalog, log logger.Logger, retries int) *Orchestrator {
	if retries < 0 {
		retries = 0
	}
	return &Orchestrator{
		client:  client,
		catalog: catalog,
		logger:  log,
		retries: retries,
	}
}

// Analyze runs one classification attempt. An empty image fails fast with
// ErrMissingInput and never touches the network. Every service-side failure
// is absorbed: the report then carries a clearly flagged synthetic result
// with ServiceReachable=false. The returned confidence is always in [0,1].
func (o *Orchestrator) Analyze(ctx context.Context, image []byte) (*domain.Report, error) {
	if len(image) == 0 {
		return nil, ErrMissingInput
	}

	result, err := o.classifyWithRetry(ctx, image)

	reachable := err == nil
	if err != nil {
		o.logger.Warn("classification failed, synthesizing result",
			logger.String("failure_kind", failureKind(err).String()),
			logger.Error(err))
		result = synth.Synthesize()
	}

	rec := o.catalog.Resolve(result.DiseaseID)

	o.logger.Info("diagnosis produced",
		logger.String("disease", string(result.DiseaseID)),
		logger.Float64("confidence", result.Confidence),
		logger.Bool("synthetic", result.Synthetic),
		logger.Bool("service_reachable", reachable))

	return &domain.Report{
		Result:           result,
		Advisory:         rec,
		ServiceReachable: reachable,
	}, nil
}

// Probe reports current backend reachability. Advisory only; it never
// gates Analyze.
func (o *Orchestrator) Probe(ctx context.Context) bool {
	return o.client.Probe(ctx)
}

// classifyWithRetry issues the bounded request, re-trying only failures
// where the service was never reached and only up to the configured count.
func (o *Orchestrator) classifyWithRetry(ctx context.Context, image []byte) (domain.ClassificationResult, error) {
	var lastErr error

	for attempt := 0; attempt <= o.retries; attempt++ {
		if attempt > 0 {
			delay := retryDelay(attempt - 1)
			o.logger.Debug("retrying classification request",
				logger.Int("attempt", attempt+1),
				logger.Duration("delay", delay))
			if !sleepCtx(ctx, delay) {
				return domain.ClassificationResult{}, &FailureError{Kind: FailureUnreachable, Err: ctx.Err()}
			}
		}

		result, err := o.client.Classify(ctx, image)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// The service answered; its answer is final for this call.
		if failureKind(err) != FailureUnreachable {
			return domain.ClassificationResult{}, err
		}
	}

	return domain.ClassificationResult{}, lastErr
}
