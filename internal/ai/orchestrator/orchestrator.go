// Package orchestrator routes AI tasks across the hosted and inference
// providers according to a fixed policy.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/spigell/resume-tailor/internal/ai"
	"github.com/spigell/resume-tailor/internal/logger"
	"go.uber.org/zap"
)

// Orchestrator owns one provider per backend and applies the routing policy.
// It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	providers map[Backend]ai.Provider
	policy    Policy
	logger    *zap.Logger
}

// New builds an orchestrator around the hosted-LLM and inference-endpoint providers.
func New(hosted, inference ai.Provider, log *zap.Logger) (*Orchestrator, error) {
	if hosted == nil {
		return nil, errors.New("hosted provider is required")
	}
	if inference == nil {
		return nil, errors.New("inference provider is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Orchestrator{
		providers: map[Backend]ai.Provider{
			BackendHosted:    hosted,
			BackendInference: inference,
		},
		policy: DefaultPolicy(),
		logger: log,
	}, nil
}

// Policy returns a copy of the routing table in use.
func (o *Orchestrator) Policy() Policy {
	out := make(Policy, len(o.policy))
	for task, route := range o.policy {
		out[task] = route
	}
	return out
}

// TailorResume rewrites resume for jobDescription and returns Markdown.
func (o *Orchestrator) TailorResume(ctx context.Context, resume, jobDescription string) (string, error) {
	req := ai.GenerationRequest{Prompt: tailorPrompt(resume, jobDescription)}

	return route(ctx, o, TaskTailorResume, func(ctx context.Context, p ai.Provider) (string, error) {
		return p.GenerateText(ctx, req)
	})
}

// ExtractJobDetails returns the generic JSON value describing the posting.
func (o *Orchestrator) ExtractJobDetails(ctx context.Context, description string) (any, error) {
	req := ai.JSONGenerationRequest{
		GenerationRequest: ai.GenerationRequest{Prompt: jobDetailsPrompt(description)},
		SchemaDescription: jobDetailsSchema,
	}

	return route(ctx, o, TaskExtractJobDetails, func(ctx context.Context, p ai.Provider) (any, error) {
		return p.GenerateJSON(ctx, req)
	})
}

// GenerateInterviewQuestions returns the generic JSON value holding question/answer pairs.
func (o *Orchestrator) GenerateInterviewQuestions(ctx context.Context, resume, jobDescription string) (any, error) {
	req := ai.JSONGenerationRequest{
		GenerationRequest: ai.GenerationRequest{Prompt: interviewPrompt(resume, jobDescription)},
		SchemaDescription: interviewQuestionsSchema,
	}

	return route(ctx, o, TaskInterviewQuestions, func(ctx context.Context, p ai.Provider) (any, error) {
		return p.GenerateJSON(ctx, req)
	})
}

// Embed returns the embedding of text from the first backend that yields one.
// An empty vector means no backend could embed the text.
func (o *Orchestrator) Embed(ctx context.Context, text string) ai.Vector {
	log := logger.WithTask(o.logger, string(TaskEmbedding))

	r, err := o.policy.Route(TaskEmbedding)
	if err != nil {
		log.Error("embedding route is missing", zap.Error(err))
		return ai.Vector{}
	}

	primary := o.providers[r.Primary]
	if vec := primary.Embed(ctx, text); !vec.Empty() {
		return vec
	}

	if !r.HasFallback() {
		return ai.Vector{}
	}

	fallback := o.providers[r.Fallback]
	log.Warn("primary embedding empty, falling back",
		zap.String("primary", primary.Name()),
		zap.String("fallback", fallback.Name()),
	)

	vec := fallback.Embed(ctx, text)
	if vec.Empty() {
		log.Warn("all embedding providers returned empty vectors")
		return ai.Vector{}
	}

	return vec
}

// route invokes the primary backend for task and, when the policy defines a
// fallback, retries once on the fallback after any primary error.
func route[T any](ctx context.Context, o *Orchestrator, task Task, call func(context.Context, ai.Provider) (T, error)) (T, error) {
	var zero T

	r, err := o.policy.Route(task)
	if err != nil {
		return zero, err
	}

	primary := o.providers[r.Primary]
	result, err := call(ctx, primary)
	if err == nil {
		return result, nil
	}

	if !r.HasFallback() {
		return zero, fmt.Errorf("%s via %s: %w", task, primary.Name(), err)
	}

	fallback := o.providers[r.Fallback]
	logger.WithTask(o.logger, string(task)).Warn("primary provider failed, falling back",
		zap.String("primary", primary.Name()),
		zap.String("fallback", fallback.Name()),
		zap.Bool("transient_loading", ai.IsTransientLoading(err)),
		zap.Error(err),
	)

	result, fallbackErr := call(ctx, fallback)
	if fallbackErr != nil {
		return zero, fmt.Errorf("%s via %s after %s failed (%v): %w", task, fallback.Name(), primary.Name(), err, fallbackErr)
	}

	return result, nil
}
