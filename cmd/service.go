package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spigell/resume-tailor/internal/ai/gemini"
	"github.com/spigell/resume-tailor/internal/ai/huggingface"
	"github.com/spigell/resume-tailor/internal/ai/orchestrator"
	"github.com/spigell/resume-tailor/internal/logger"
	"github.com/spigell/resume-tailor/internal/secrets"
	"github.com/spigell/resume-tailor/internal/tailor"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var errBothStdin = errors.New("resume and job description cannot both be read from stdin")

// environment is shared by every command.
type environment struct {
	base    context.Context
	timeout time.Duration
	logger  *zap.Logger
	service *tailor.Service
}

// operation returns the context for a single facade call, bounded by --timeout when set.
func (e *environment) operation() (context.Context, context.CancelFunc) {
	if e.timeout > 0 {
		return context.WithTimeout(e.base, e.timeout)
	}
	return context.WithCancel(e.base)
}

func setup(cmd *cobra.Command) (*environment, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	service, err := newService(ctx, config, log)
	if err != nil {
		return nil, err
	}

	return &environment{
		base:    ctx,
		timeout: viper.GetDuration("timeout"),
		logger:  log,
		service: service,
	}, nil
}

func newService(ctx context.Context, config *Config, log *zap.Logger) (*tailor.Service, error) {
	geminiKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GOOGLE_GEMINI_API_KEY)", err)
	}

	hfKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "huggingface api key",
		Value: config.AI.HuggingFace.APIKey,
		File:  config.AI.HuggingFace.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.huggingface.api-key-file or HUGGINGFACE_API_KEY)", err)
	}

	hosted, err := gemini.New(ctx, gemini.Config{
		APIKey:         geminiKey,
		Model:          config.AI.Gemini.Model,
		EmbeddingModel: config.AI.Gemini.EmbeddingModel,
		MaxLogLength:   config.MaxLogLength,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("building gemini provider: %w", err)
	}

	inference := huggingface.New(huggingface.Config{
		APIKey:         hfKey,
		BaseURL:        config.AI.HuggingFace.BaseURL,
		TextModel:      config.AI.HuggingFace.TextModel,
		EmbeddingModel: config.AI.HuggingFace.EmbeddingModel,
		MaxNewTokens:   config.AI.HuggingFace.MaxNewTokens,
		Timeout:        config.AI.HuggingFace.Timeout,
		MaxLogLength:   config.MaxLogLength,
	}, log)

	orch, err := orchestrator.New(hosted, inference, log)
	if err != nil {
		return nil, fmt.Errorf("building orchestrator: %w", err)
	}

	log.Debug("ai providers ready",
		zap.Bool("gemini_available", hosted.Available()),
		zap.Bool("huggingface_available", inference.Available()),
	)

	return tailor.NewService(orch, log,
		tailor.WithLimits(tailor.Limits{
			MatchChars:     config.Limits.MatchChars,
			InterviewChars: config.Limits.InterviewChars,
			ExtractChars:   config.Limits.ExtractChars,
		}),
		tailor.WithMissingKeywords(config.MissingKeywords),
	), nil
}

// readInput reads a text input from a file path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("input path is required")
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return string(data), nil
}

func printJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}
