package tailor

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

func decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringifyHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// stringifyHook renders nested JSON values as text when the target field is a
// string, e.g. a salary returned as {"min": 100, "max": 120}.
func stringifyHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || data == nil {
		return data, nil
	}

	switch from.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		encoded, err := json.Marshal(data)
		if err != nil {
			return data, nil
		}
		return string(encoded), nil
	default:
		return data, nil
	}
}

func decodeQuestions(raw any) ([]InterviewQuestion, error) {
	items, err := questionItems(raw)
	if err != nil {
		return nil, err
	}

	var decoded []InterviewQuestion
	if err := decode(items, &decoded); err != nil {
		return nil, fmt.Errorf("decode interview questions: %w", err)
	}

	questions := make([]InterviewQuestion, 0, len(decoded))
	for _, q := range decoded {
		q.Question = strings.TrimSpace(q.Question)
		q.Answer = strings.TrimSpace(q.Answer)
		if q.Question == "" {
			continue
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// questionItems accepts a bare array, a single question object or an object
// wrapping the array under any key.
func questionItems(raw any) ([]any, error) {
	switch val := raw.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return val, nil
	case map[string]any:
		if len(val) == 0 {
			return []any{}, nil
		}
		if _, ok := val["question"]; ok {
			return []any{val}, nil
		}
		for _, v := range val {
			if items, ok := v.([]any); ok {
				return items, nil
			}
		}
		return nil, fmt.Errorf("no question list in object with %d keys", len(val))
	default:
		return nil, fmt.Errorf("unexpected interview questions type %T", raw)
	}
}

func decodeJobDetails(raw any) (*JobDetails, error) {
	details := &JobDetails{}

	switch val := raw.(type) {
	case nil:
	case map[string]any:
		if err := decode(val, details); err != nil {
			return nil, fmt.Errorf("decode job details: %w", err)
		}
	default:
		return nil, fmt.Errorf("unexpected job details type %T", raw)
	}

	details.normalize()
	return details, nil
}

func defaultJobDetails() *JobDetails {
	details := &JobDetails{}
	details.normalize()
	return details
}

func (d *JobDetails) normalize() {
	d.Company = orUnknown(d.Company)
	d.Position = orUnknown(d.Position)
	d.Location = orUnknown(d.Location)
	d.Salary = strings.TrimSpace(d.Salary)
	if strings.EqualFold(d.Salary, UnknownField) {
		d.Salary = ""
	}
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownField
	}
	return s
}
