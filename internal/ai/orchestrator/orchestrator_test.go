package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/spigell/resume-tailor/internal/ai"
	"github.com/spigell/resume-tailor/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeProvider struct {
	name string

	mu         sync.Mutex
	textCalls  int
	jsonCalls  int
	embedCalls int
	prompts    []string

	text    string
	textErr error
	json    any
	jsonErr error
	vector  ai.Vector
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) GenerateText(_ context.Context, req ai.GenerationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textCalls++
	f.prompts = append(f.prompts, req.Prompt)
	return f.text, f.textErr
}

func (f *fakeProvider) GenerateJSON(_ context.Context, req ai.JSONGenerationRequest) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jsonCalls++
	f.prompts = append(f.prompts, req.Prompt)
	return f.json, f.jsonErr
}

func (f *fakeProvider) Embed(_ context.Context, _ string) ai.Vector {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls++
	return f.vector
}

func newTestOrchestrator(t *testing.T, hosted, inference *fakeProvider) *Orchestrator {
	t.Helper()
	o, err := New(hosted, inference, zap.NewNop())
	require.NoError(t, err)
	return o
}

func TestNewRequiresProviders(t *testing.T) {
	_, err := New(nil, &fakeProvider{}, nil)
	assert.Error(t, err)

	_, err = New(&fakeProvider{}, nil, nil)
	assert.Error(t, err)
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	expected := map[Task]Route{
		TaskTailorResume:       {Primary: BackendHosted},
		TaskExtractJobDetails:  {Primary: BackendHosted},
		TaskInterviewQuestions: {Primary: BackendInference, Fallback: BackendHosted},
		TaskEmbedding:          {Primary: BackendInference, Fallback: BackendHosted},
	}

	for task, want := range expected {
		got, err := policy.Route(task)
		require.NoError(t, err, task)
		assert.Equal(t, want, got, task)
	}

	_, err := policy.Route(Task("unknown"))
	assert.Error(t, err)
}

func TestPolicyReturnsCopy(t *testing.T) {
	o := newTestOrchestrator(t, &fakeProvider{name: "hosted"}, &fakeProvider{name: "inference"})

	p := o.Policy()
	p[TaskTailorResume] = Route{Primary: BackendInference}

	r, err := o.policy.Route(TaskTailorResume)
	require.NoError(t, err)
	assert.Equal(t, BackendHosted, r.Primary)
}

func TestTailorResumeUsesHostedWithoutFallback(t *testing.T) {
	hosted := &fakeProvider{name: "hosted", text: "# Tailored"}
	inference := &fakeProvider{name: "inference", text: "wrong"}
	o := newTestOrchestrator(t, hosted, inference)

	out, err := o.TailorResume(context.Background(), "my resume", "the job")
	require.NoError(t, err)
	assert.Equal(t, "# Tailored", out)
	assert.Equal(t, 1, hosted.textCalls)
	assert.Equal(t, 0, inference.textCalls)
	assert.Contains(t, hosted.prompts[0], "my resume")
	assert.Contains(t, hosted.prompts[0], "the job")

	hosted.textErr = errors.New("quota")
	_, err = o.TailorResume(context.Background(), "my resume", "the job")
	require.Error(t, err)
	assert.Equal(t, 0, inference.textCalls)
}

func TestExtractJobDetailsPropagatesErrors(t *testing.T) {
	parseErr := &ai.JSONParseError{Provider: "hosted"}
	hosted := &fakeProvider{name: "hosted", jsonErr: parseErr}
	inference := &fakeProvider{name: "inference", json: map[string]any{"company": "wrong"}}
	o := newTestOrchestrator(t, hosted, inference)

	_, err := o.ExtractJobDetails(context.Background(), "Acme is hiring")

	var target *ai.JSONParseError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 1, hosted.jsonCalls)
	assert.Equal(t, 0, inference.jsonCalls)
}

func TestInterviewQuestionsPrimarySuccess(t *testing.T) {
	questions := []any{map[string]any{"question": "q", "answer": "a"}}
	hosted := &fakeProvider{name: "hosted"}
	inference := &fakeProvider{name: "inference", json: questions}
	o := newTestOrchestrator(t, hosted, inference)

	out, err := o.GenerateInterviewQuestions(context.Background(), "resume", "job")
	require.NoError(t, err)
	assert.Equal(t, questions, out)
	assert.Equal(t, 1, inference.jsonCalls)
	assert.Equal(t, 0, hosted.jsonCalls)
}

func TestInterviewQuestionsFallsBackOnAnyError(t *testing.T) {
	errs := []error{
		&ai.UpstreamError{Provider: "inference", StatusCode: 500},
		&ai.UpstreamError{Provider: "inference", StatusCode: 503, Err: ai.ErrTransientLoading},
		&ai.JSONParseError{Provider: "inference"},
		errors.New("anything else"),
	}

	for _, primaryErr := range errs {
		t.Run(primaryErr.Error(), func(t *testing.T) {
			fallbackResult := []any{map[string]any{"question": "from hosted", "answer": "yes"}}
			hosted := &fakeProvider{name: "hosted", json: fallbackResult}
			inference := &fakeProvider{name: "inference", jsonErr: primaryErr}

			core, observed := observer.New(zapcore.WarnLevel)
			o, err := New(hosted, inference, zap.New(core))
			require.NoError(t, err)

			out, err := o.GenerateInterviewQuestions(context.Background(), "resume", "job")
			require.NoError(t, err)
			assert.Equal(t, fallbackResult, out)
			assert.Equal(t, 1, inference.jsonCalls)
			assert.Equal(t, 1, hosted.jsonCalls)
			assert.Equal(t, inference.prompts[0], hosted.prompts[0])

			entries := observed.FilterMessage("primary provider failed, falling back").All()
			require.Len(t, entries, 1)
			assert.Equal(t, string(TaskInterviewQuestions), entries[0].ContextMap()[logger.FieldTask])
		})
	}
}

func TestInterviewQuestionsBothFail(t *testing.T) {
	hostedErr := errors.New("hosted down")
	hosted := &fakeProvider{name: "hosted", jsonErr: hostedErr}
	inference := &fakeProvider{name: "inference", jsonErr: errors.New("inference down")}
	o := newTestOrchestrator(t, hosted, inference)

	_, err := o.GenerateInterviewQuestions(context.Background(), "resume", "job")
	require.Error(t, err)
	assert.ErrorIs(t, err, hostedErr)
	assert.True(t, strings.Contains(err.Error(), "inference down"))
	assert.Equal(t, 1, hosted.jsonCalls)
	assert.Equal(t, 1, inference.jsonCalls)
}

func TestEmbedRouting(t *testing.T) {
	tests := []struct {
		name           string
		inference      ai.Vector
		hosted         ai.Vector
		expect         ai.Vector
		hostedCalls    int
		inferenceCalls int
	}{
		{
			name:           "primary vector",
			inference:      ai.Vector{1, 2},
			hosted:         ai.Vector{3, 4},
			expect:         ai.Vector{1, 2},
			inferenceCalls: 1,
		},
		{
			name:           "fallback on empty",
			inference:      ai.Vector{},
			hosted:         ai.Vector{3, 4},
			expect:         ai.Vector{3, 4},
			inferenceCalls: 1,
			hostedCalls:    1,
		},
		{
			name:           "both empty",
			expect:         ai.Vector{},
			inferenceCalls: 1,
			hostedCalls:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hosted := &fakeProvider{name: "hosted", vector: tt.hosted}
			inference := &fakeProvider{name: "inference", vector: tt.inference}
			o := newTestOrchestrator(t, hosted, inference)

			vec := o.Embed(context.Background(), "text")
			assert.Equal(t, tt.expect, vec)
			assert.Equal(t, tt.inferenceCalls, inference.embedCalls)
			assert.Equal(t, tt.hostedCalls, hosted.embedCalls)
		})
	}
}
