// Package ai defines the contract shared by every AI backend and the error
// taxonomy used when talking to them.
package ai

import (
	"context"
)

// GenerationRequest is a single prompt sent to a text generation backend.
type GenerationRequest struct {
	Prompt            string
	SystemInstruction string
}

// JSONGenerationRequest asks a backend for structured output. SchemaDescription
// is a free-form description of the expected shape.
type JSONGenerationRequest struct {
	GenerationRequest
	SchemaDescription string
}

// Vector is an embedding returned by a backend. An empty vector means no
// embedding is available.
type Vector []float64

// Empty reports whether the vector carries no values.
func (v Vector) Empty() bool {
	return len(v) == 0
}

// Provider is implemented by every AI backend.
//
// GenerateText and GenerateJSON return placeholder output when the provider
// has no credential configured. Embed never fails: an empty vector tells the
// caller to try another provider.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, req GenerationRequest) (string, error)
	GenerateJSON(ctx context.Context, req JSONGenerationRequest) (any, error)
	Embed(ctx context.Context, text string) Vector
}
