package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// JSONInstruction returns the prompt suffix asking a model for strict JSON.
func JSONInstruction(schema string) string {
	schema = strings.TrimSpace(schema)
	if schema == "" {
		return "Output ONLY valid JSON. Do not use markdown code blocks."
	}
	return fmt.Sprintf("Output ONLY valid JSON matching this description: %s. Do not use markdown code blocks.", schema)
}

// ParseJSON extracts the first well-formed JSON object or array from model
// output and decodes it into generic Go values.
func ParseJSON(raw string) (any, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, &JSONParseError{Text: raw, Err: errors.New("empty response")}
	}

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err == nil {
		if isContainer(value) {
			return value, nil
		}
	}

	for i, r := range cleaned {
		if r != '{' && r != '[' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(cleaned[i:]))
		var candidate any
		if err := dec.Decode(&candidate); err != nil {
			continue
		}
		if isContainer(candidate) {
			return candidate, nil
		}
	}

	return nil, &JSONParseError{Text: raw}
}

func stripCodeFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```JSON", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
