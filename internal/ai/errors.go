package ai

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrProviderUnavailable is returned when a provider has no credential configured.
	ErrProviderUnavailable = errors.New("ai provider is not configured")
	// ErrTransientLoading signals that the upstream model is still warming up.
	ErrTransientLoading = errors.New("ai model is loading")
)

// UpstreamError describes a transport failure or a non-2xx response.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s upstream error", e.Provider)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (%d %s)", msg, e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsTransientLoading reports whether err was caused by a cold-starting model.
func IsTransientLoading(err error) bool {
	return errors.Is(err, ErrTransientLoading)
}

// JSONParseError is returned when generated text holds no parseable JSON value.
type JSONParseError struct {
	Provider string
	Text     string
	Err      error
}

func (e *JSONParseError) Error() string {
	provider := e.Provider
	if provider == "" {
		provider = "ai"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: no valid json in response: %v", provider, e.Err)
	}
	return fmt.Sprintf("%s: no valid json in response", provider)
}

func (e *JSONParseError) Unwrap() error {
	return e.Err
}
