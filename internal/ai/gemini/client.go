package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-tailor/internal/ai"
	"github.com/spigell/resume-tailor/internal/logger"
	"github.com/spigell/resume-tailor/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	providerName          = "gemini"
	defaultModel          = "gemini-2.0-flash"
	defaultEmbeddingModel = "text-embedding-004"
	defaultMaxLogLength   = 200

	// MissingKeyPlaceholder is returned by GenerateText when no API key is configured.
	MissingKeyPlaceholder = "Gemini API key missing."
)

// modelsService is the subset of *genai.Models used by the provider.
type modelsService interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Config holds the Gemini provider settings.
type Config struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	MaxLogLength   int
}

// Provider is the hosted-LLM backend built on the Google GenAI client.
type Provider struct {
	models         modelsService
	model          string
	embeddingModel string
	maxLogLen      int
	logger         *zap.Logger
}

var _ ai.Provider = (*Provider)(nil)

// New creates the Gemini provider. An empty API key yields a provider that
// answers with placeholders instead of failing.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Provider, error) {
	p := &Provider{
		model:          strings.TrimSpace(cfg.Model),
		embeddingModel: strings.TrimSpace(cfg.EmbeddingModel),
		maxLogLen:      cfg.MaxLogLength,
	}

	if p.model == "" {
		p.model = defaultModel
	}
	if p.embeddingModel == "" {
		p.embeddingModel = defaultEmbeddingModel
	}
	if p.maxLogLen <= 0 {
		p.maxLogLen = defaultMaxLogLength
	}
	p.logger = logger.WithCommonFields(log, providerName, p.model)

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		p.logger.Warn("gemini api key is not configured; provider will return placeholders")
		return p, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	p.models = client.Models

	return p, nil
}

func (p *Provider) Name() string { return providerName }

// Model returns the generation model identifier.
func (p *Provider) Model() string {
	if p == nil {
		return ""
	}
	return p.model
}

// Available reports whether the provider has a credential configured.
func (p *Provider) Available() bool {
	return p != nil && p.models != nil
}

// GenerateText sends the prompt to Gemini and returns the joined text parts.
func (p *Provider) GenerateText(ctx context.Context, req ai.GenerationRequest) (string, error) {
	if !p.Available() {
		return MissingKeyPlaceholder, nil
	}

	return p.generate(ctx, req, nil)
}

// GenerateJSON asks Gemini for JSON only and decodes the first JSON value found in the answer.
func (p *Provider) GenerateJSON(ctx context.Context, req ai.JSONGenerationRequest) (any, error) {
	if !p.Available() {
		return map[string]any{}, nil
	}

	textReq := req.GenerationRequest
	textReq.Prompt = fmt.Sprintf("%s\n\n%s", strings.TrimSpace(textReq.Prompt), ai.JSONInstruction(req.SchemaDescription))

	raw, err := p.generate(ctx, textReq, &genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return nil, err
	}

	value, err := ai.ParseJSON(raw)
	if err != nil {
		var parseErr *ai.JSONParseError
		if errors.As(err, &parseErr) {
			parseErr.Provider = providerName
		}
		p.logger.Debug("gemini json parse failed", zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)))
		return nil, err
	}

	return value, nil
}

// Embed returns the embedding of text, or an empty vector when the call fails.
func (p *Provider) Embed(ctx context.Context, text string) ai.Vector {
	if !p.Available() {
		return ai.Vector{}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ai.Vector{}
	}

	resp, err := p.models.EmbedContent(ctx, p.embeddingModel, genai.Text(text), nil)
	if err != nil {
		p.logger.Warn("gemini embed failed", zap.String("embedding_model", p.embeddingModel), zap.Error(err))
		return ai.Vector{}
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		p.logger.Warn("gemini embed returned no embeddings", zap.String("embedding_model", p.embeddingModel))
		return ai.Vector{}
	}

	values := resp.Embeddings[0].Values
	vector := make(ai.Vector, len(values))
	for i, v := range values {
		vector[i] = float64(v)
	}

	return vector
}

func (p *Provider) generate(ctx context.Context, req ai.GenerationRequest, config *genai.GenerateContentConfig) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	if instruction := strings.TrimSpace(req.SystemInstruction); instruction != "" {
		if config == nil {
			config = &genai.GenerateContentConfig{}
		}
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		}
	}

	p.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, p.maxLogLen)),
	)

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", upstreamError(err)
	}

	output := joinParts(resp)
	if output == "" {
		return "", &ai.UpstreamError{Provider: providerName, Err: errors.New("empty response")}
	}

	p.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, p.maxLogLen)),
	)

	return output, nil
}

func joinParts(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func upstreamError(err error) error {
	upstream := &ai.UpstreamError{Provider: providerName, Err: err}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		upstream.StatusCode = apiErr.Code
	}

	return upstream
}
