package orchestrator

import "fmt"

// Task is a logical AI operation routed by the orchestrator.
type Task string

const (
	TaskTailorResume       Task = "tailor_resume"
	TaskExtractJobDetails  Task = "extract_job_details"
	TaskInterviewQuestions Task = "interview_questions"
	TaskEmbedding          Task = "embedding"
)

// Backend identifies one of the provider slots held by the orchestrator.
type Backend string

const (
	BackendNone      Backend = ""
	BackendHosted    Backend = "hosted"
	BackendInference Backend = "inference"
)

// Route is the primary backend for a task and an optional fallback.
type Route struct {
	Primary  Backend
	Fallback Backend
}

// HasFallback reports whether the route defines a fallback backend.
func (r Route) HasFallback() bool {
	return r.Fallback != BackendNone
}

// Policy maps every task to its route.
type Policy map[Task]Route

// DefaultPolicy returns the fixed routing table.
//
// Tailoring and extraction stay on the hosted model for quality and strict
// JSON. Interview questions and embeddings go to the inference endpoint first
// to keep costs down.
func DefaultPolicy() Policy {
	return Policy{
		TaskTailorResume:       {Primary: BackendHosted},
		TaskExtractJobDetails:  {Primary: BackendHosted},
		TaskInterviewQuestions: {Primary: BackendInference, Fallback: BackendHosted},
		TaskEmbedding:          {Primary: BackendInference, Fallback: BackendHosted},
	}
}

// Route returns the route for task.
func (p Policy) Route(task Task) (Route, error) {
	route, ok := p[task]
	if !ok || route.Primary == BackendNone {
		return Route{}, fmt.Errorf("no route for task %q", task)
	}
	return route, nil
}
