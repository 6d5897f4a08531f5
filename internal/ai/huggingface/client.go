// Package huggingface implements the inference-endpoint provider backed by the
// Hugging Face serverless inference API.
package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/spigell/resume-tailor/internal/ai"
	"github.com/spigell/resume-tailor/internal/logger"
	"github.com/spigell/resume-tailor/internal/utils"
	"go.uber.org/zap"
)

const (
	providerName = "huggingface"

	DefaultBaseURL        = "https://api-inference.huggingface.co/models/"
	DefaultTextModel      = "mistralai/Mistral-7B-Instruct-v0.3"
	DefaultEmbeddingModel = "sentence-transformers/all-MiniLM-L6-v2"

	defaultMaxNewTokens = 512
	defaultMaxLogLength = 200

	// MissingKeyPlaceholder is returned by GenerateText when no API key is configured.
	MissingKeyPlaceholder = "HuggingFace API key missing."

	jsonSystemInstruction = "You are a strict JSON generator. Output valid JSON only."
)

// Config holds the Hugging Face provider settings.
type Config struct {
	APIKey         string
	BaseURL        string
	TextModel      string
	EmbeddingModel string
	MaxNewTokens   int
	Timeout        time.Duration
	MaxLogLength   int
}

// Provider talks to an instruction-tuned model for generation and a sentence
// transformer for embeddings.
type Provider struct {
	http           *resty.Client
	apiKey         string
	textModel      string
	embeddingModel string
	maxNewTokens   int
	maxLogLen      int
	logger         *zap.Logger
}

var _ ai.Provider = (*Provider)(nil)

type generationParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	ReturnFullText bool `json:"return_full_text"`
}

type generationPayload struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type embeddingOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type embeddingPayload struct {
	Inputs  string           `json:"inputs"`
	Options embeddingOptions `json:"options"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

type errorBody struct {
	Error         any     `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// New creates the provider. It never fails on a missing API key; calls then
// return placeholder output.
func New(cfg Config, log *zap.Logger) *Provider {
	p := &Provider{
		apiKey:         strings.TrimSpace(cfg.APIKey),
		textModel:      strings.TrimSpace(cfg.TextModel),
		embeddingModel: strings.TrimSpace(cfg.EmbeddingModel),
		maxNewTokens:   cfg.MaxNewTokens,
		maxLogLen:      cfg.MaxLogLength,
	}

	if p.textModel == "" {
		p.textModel = DefaultTextModel
	}
	if p.embeddingModel == "" {
		p.embeddingModel = DefaultEmbeddingModel
	}
	if p.maxNewTokens <= 0 {
		p.maxNewTokens = defaultMaxNewTokens
	}
	if p.maxLogLen <= 0 {
		p.maxLogLen = defaultMaxLogLength
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	p.http = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		p.http.SetTimeout(cfg.Timeout)
	}

	p.logger = logger.WithCommonFields(log, providerName, p.textModel)
	if p.apiKey == "" {
		p.logger.Warn("huggingface api key is not configured; provider will return placeholders")
	}

	return p
}

func (p *Provider) Name() string { return providerName }

// Model returns the text generation model identifier.
func (p *Provider) Model() string {
	if p == nil {
		return ""
	}
	return p.textModel
}

// Available reports whether the provider has a credential configured.
func (p *Provider) Available() bool {
	return p != nil && p.apiKey != ""
}

// GenerateText wraps the prompt in the Mistral instruction format and returns
// the generated continuation.
func (p *Provider) GenerateText(ctx context.Context, req ai.GenerationRequest) (string, error) {
	if !p.Available() {
		return MissingKeyPlaceholder, nil
	}

	prompt := FormatInstruction(req.SystemInstruction, req.Prompt)

	p.logger.Debug("huggingface generate request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, p.maxLogLen)),
	)

	body, err := p.query(ctx, p.textModel, generationPayload{
		Inputs: prompt,
		Parameters: generationParameters{
			MaxNewTokens:   p.maxNewTokens,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", err
	}

	var generations []generation
	if err := json.Unmarshal(body, &generations); err != nil || len(generations) == 0 {
		p.logger.Debug("huggingface response has no generations", zap.String("response_preview", utils.TruncateForLog(string(body), p.maxLogLen)))
		return "", nil
	}

	output := strings.TrimSpace(generations[0].GeneratedText)

	p.logger.Debug("huggingface generate response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, p.maxLogLen)),
	)

	return output, nil
}

// GenerateJSON prompts the model as a strict JSON generator and extracts the
// first JSON value from its answer.
func (p *Provider) GenerateJSON(ctx context.Context, req ai.JSONGenerationRequest) (any, error) {
	if !p.Available() {
		return map[string]any{}, nil
	}

	instruction := jsonSystemInstruction
	if schema := strings.TrimSpace(req.SchemaDescription); schema != "" {
		instruction = fmt.Sprintf("%s %s", instruction, schema)
	}
	if extra := strings.TrimSpace(req.SystemInstruction); extra != "" {
		instruction = fmt.Sprintf("%s\n\n%s", extra, instruction)
	}

	raw, err := p.GenerateText(ctx, ai.GenerationRequest{Prompt: req.Prompt, SystemInstruction: instruction})
	if err != nil {
		return nil, err
	}

	value, err := ai.ParseJSON(raw)
	if err != nil {
		var parseErr *ai.JSONParseError
		if errors.As(err, &parseErr) {
			parseErr.Provider = providerName
		}
		return nil, err
	}

	return value, nil
}

// Embed returns the sentence embedding of text. Any failure yields an empty vector.
func (p *Provider) Embed(ctx context.Context, text string) ai.Vector {
	if !p.Available() {
		return ai.Vector{}
	}

	body, err := p.query(ctx, p.embeddingModel, embeddingPayload{
		Inputs:  text,
		Options: embeddingOptions{WaitForModel: true},
	})
	if err != nil {
		p.logger.Warn("huggingface embed failed",
			zap.String("embedding_model", p.embeddingModel),
			zap.Bool("loading", ai.IsTransientLoading(err)),
			zap.Error(err),
		)
		return ai.Vector{}
	}

	vector := normalizeEmbedding(body)
	if vector.Empty() {
		p.logger.Warn("huggingface embed returned unexpected shape",
			zap.String("embedding_model", p.embeddingModel),
			zap.String("response_preview", utils.TruncateForLog(string(body), p.maxLogLen)),
		)
	}

	return vector
}

// FormatInstruction renders a prompt in the Mistral instruct format.
func FormatInstruction(system, prompt string) string {
	system = strings.TrimSpace(system)
	prompt = strings.TrimSpace(prompt)
	if system != "" {
		return fmt.Sprintf("<s>[INST] %s\n\n%s [/INST]", system, prompt)
	}
	return fmt.Sprintf("<s>[INST] %s [/INST]", prompt)
}

func (p *Provider) query(ctx context.Context, model string, payload any) ([]byte, error) {
	if !p.Available() {
		return nil, ai.ErrProviderUnavailable
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(payload).
		Post(model)
	if err != nil {
		return nil, &ai.UpstreamError{Provider: providerName, Err: err}
	}

	body := resp.Body()
	if resp.IsSuccess() {
		return body, nil
	}

	return nil, statusError(resp.StatusCode(), body)
}

func statusError(code int, body []byte) error {
	upstream := &ai.UpstreamError{
		Provider:   providerName,
		StatusCode: code,
		Body:       strings.TrimSpace(string(body)),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return upstream
	}

	message := errorMessage(parsed.Error)
	if strings.Contains(strings.ToLower(message), "loading") {
		upstream.Err = ai.ErrTransientLoading
		if parsed.EstimatedTime > 0 {
			upstream.Err = fmt.Errorf("%w (estimated %.0fs)", ai.ErrTransientLoading, parsed.EstimatedTime)
		}
		upstream.Body = ""
	}

	return upstream
}

func errorMessage(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, "; ")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// normalizeEmbedding accepts a flat vector or a batch of vectors and returns
// the first vector. Any other shape yields an empty vector.
func normalizeEmbedding(body []byte) ai.Vector {
	var flat []float64
	if err := json.Unmarshal(body, &flat); err == nil {
		if len(flat) == 0 {
			return ai.Vector{}
		}
		return ai.Vector(flat)
	}

	var nested [][]float64
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return ai.Vector{}
		}
		return ai.Vector(nested[0])
	}

	return ai.Vector{}
}
