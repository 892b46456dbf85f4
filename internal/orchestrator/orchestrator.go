package orchestrator

import (
	"context"
	"time"

	"auracx/internal/intent"
	"auracx/internal/logging"
	"auracx/internal/observability"
	"auracx/internal/pii"
	"auracx/internal/rag"
)

const genericErrorMessage = "I encountered an error processing your request. Please try again or contact support."

// Config tunes the orchestrator.
type Config struct {
	ConfidenceThreshold float64
}

// Orchestrator runs the full request flow: PII gate, intent
// classification, confidence routing, then either the tooling dispatch or
// the retrieval pipeline, unified by the synthesizer. No failure crosses
// the request boundary; every path terminates in a valid ChatResponse.
type Orchestrator struct {
	masker      *pii.Masker
	classifier  *intent.Classifier
	dispatcher  *Dispatcher
	synthesizer *Synthesizer
	pipeline    *rag.Pipeline
	threshold   float64
	logger      logging.Logger
	metrics     *observability.Metrics
}

// New wires the orchestrator from its explicitly constructed dependencies.
func New(
	masker *pii.Masker,
	classifier *intent.Classifier,
	dispatcher *Dispatcher,
	synthesizer *Synthesizer,
	pipeline *rag.Pipeline,
	config Config,
	logger logging.Logger,
	metrics *observability.Metrics,
) *Orchestrator {
	threshold := config.ConfidenceThreshold
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Orchestrator{
		masker:      masker,
		classifier:  classifier,
		dispatcher:  dispatcher,
		synthesizer: synthesizer,
		pipeline:    pipeline,
		threshold:   threshold,
		logger:      logging.OrNop(logger),
		metrics:     metrics,
	}
}

// Process answers one customer message.
func (o *Orchestrator) Process(ctx context.Context, req ChatRequest) (response ChatResponse) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Unhandled orchestration failure: %v", r)
			response = ChatResponse{
				Message:            genericErrorMessage,
				Confidence:         0.0,
				Mode:               ModeTooling,
				RequiresEscalation: true,
				Timestamp:          time.Now(),
			}
		}
		o.metrics.ObserveRequest(ctx, string(response.Mode), response.RequiresEscalation, time.Since(started).Seconds())
	}()

	masked, found := o.masker.Mask(req.Message)
	if len(found) > 0 {
		categories := make([]string, 0, len(found))
		for category := range found {
			categories = append(categories, category)
		}
		o.logger.Info("PII masked, categories: %v", categories)
	}

	judgment := o.classifier.Classify(ctx, masked)
	o.logger.Info("Intent detected: %s (confidence: %.2f)", judgment.Intent, judgment.Confidence)

	// The routing decision happens exactly once, before any repository
	// lookup, so tooling agents never run on a judgment the system
	// distrusts.
	if Route(judgment, o.threshold) == ModeRAG {
		o.logger.Info("Low confidence (%.2f), routing to retrieval mode", judgment.Confidence)
		result := o.pipeline.Process(ctx, masked)
		return o.synthesizer.WrapRAG(result)
	}

	data := o.dispatcher.Dispatch(judgment, req)
	return o.synthesizer.SynthesizeTooling(ctx, req, judgment, data)
}
