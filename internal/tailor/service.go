// Package tailor is the entry point used by the rest of the application for
// scoring, tailoring and interview preparation.
package tailor

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/resume-tailor/internal/ai"
	"github.com/spigell/resume-tailor/internal/similarity"
	"github.com/spigell/resume-tailor/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Router routes AI tasks to providers. It is implemented by *orchestrator.Orchestrator.
type Router interface {
	TailorResume(ctx context.Context, resume, jobDescription string) (string, error)
	ExtractJobDetails(ctx context.Context, description string) (any, error)
	GenerateInterviewQuestions(ctx context.Context, resume, jobDescription string) (any, error)
	Embed(ctx context.Context, text string) ai.Vector
}

// Service composes the router and the similarity scorer into business operations.
// It is built once at startup and shared by all requests.
type Service struct {
	router          Router
	logger          *zap.Logger
	limits          Limits
	maxKeywords     int
	keywordsEnabled bool
}

// Option customises a Service.
type Option func(*Service)

// WithLimits overrides the input character budgets.
func WithLimits(limits Limits) Option {
	return func(s *Service) {
		s.limits = limits.withDefaults()
	}
}

// WithMissingKeywords sets how many missing keywords are reported. Zero disables the report.
func WithMissingKeywords(limit int) Option {
	return func(s *Service) {
		s.maxKeywords = limit
		s.keywordsEnabled = limit > 0
	}
}

func NewService(router Router, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		router:          router,
		logger:          logger,
		limits:          DefaultLimits(),
		maxKeywords:     defaultMaxKeywords,
		keywordsEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Limits returns the character budgets in use.
func (s *Service) Limits() Limits {
	return s.limits
}

// CalculateMatchScore embeds both texts concurrently and returns their match
// percentage. Any failure yields 0.
func (s *Service) CalculateMatchScore(ctx context.Context, resumeText, jobDescription string) int {
	resumeText = utils.Truncate(resumeText, s.limits.MatchChars)
	jobDescription = utils.Truncate(jobDescription, s.limits.MatchChars)

	var resumeVec, jobVec ai.Vector

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resumeVec, err = s.embed(gctx, resumeText)
		return err
	})
	g.Go(func() (err error) {
		jobVec, err = s.embed(gctx, jobDescription)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("match score calculation failed", zap.Error(err))
		return 0
	}

	if resumeVec.Empty() || jobVec.Empty() {
		s.logger.Warn("embedding unavailable, match score is 0",
			zap.Bool("resume_embedded", !resumeVec.Empty()),
			zap.Bool("job_embedded", !jobVec.Empty()),
		)
		return 0
	}

	if len(resumeVec) != len(jobVec) {
		s.logger.Warn("embedding dimensions differ, match score is 0",
			zap.Int("resume_dimension", len(resumeVec)),
			zap.Int("job_dimension", len(jobVec)),
		)
		return 0
	}

	score := similarity.MatchPercent(resumeVec, jobVec)
	s.logger.Debug("match score calculated", zap.Int("score", score), zap.Int("dimension", len(resumeVec)))

	return score
}

// GenerateTailoredResume tailors the resume and scores the original pair concurrently.
func (s *Service) GenerateTailoredResume(ctx context.Context, resumeText, jobDescription string) (*AnalysisResult, error) {
	var (
		original int
		content  string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		original = s.CalculateMatchScore(gctx, resumeText, jobDescription)
		return nil
	})
	g.Go(func() error {
		tailored, err := s.router.TailorResume(gctx, resumeText, jobDescription)
		if err != nil {
			return err
		}
		content = tailored
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTailoringFailed, err)
	}

	keywords := []string{}
	if s.keywordsEnabled {
		keywords = MissingKeywords(resumeText, jobDescription, s.maxKeywords)
	}

	result := &AnalysisResult{
		Score:           BoostScore(original),
		OriginalScore:   original,
		TailoredContent: content,
		MissingKeywords: keywords,
	}

	s.logger.Info("resume tailored",
		zap.Int("original_score", result.OriginalScore),
		zap.Int("score", result.Score),
		zap.Int("missing_keywords", len(result.MissingKeywords)),
	)

	return result, nil
}

// GenerateInterviewQuestions returns likely interview questions with suggested answers.
func (s *Service) GenerateInterviewQuestions(ctx context.Context, resumeText, jobDescription string) ([]InterviewQuestion, error) {
	resumeText = utils.Truncate(resumeText, s.limits.InterviewChars)
	jobDescription = utils.Truncate(jobDescription, s.limits.InterviewChars)

	raw, err := s.router.GenerateInterviewQuestions(ctx, resumeText, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInterviewFailed, err)
	}

	questions, err := decodeQuestions(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInterviewFailed, err)
	}

	s.logger.Debug("interview questions generated", zap.Int("count", len(questions)))

	return questions, nil
}

// ExtractJobDetails pulls company, position, location and salary out of a
// job posting. Fields that cannot be found are "Unknown", salary is "".
func (s *Service) ExtractJobDetails(ctx context.Context, description string) (*JobDetails, error) {
	description = utils.Truncate(strings.TrimSpace(description), s.limits.ExtractChars)
	if description == "" {
		return defaultJobDetails(), nil
	}

	raw, err := s.router.ExtractJobDetails(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	details, err := decodeJobDetails(raw)
	if err != nil {
		s.logger.Warn("unexpected job details shape, using defaults", zap.Error(err))
		return defaultJobDetails(), nil
	}

	return details, nil
}

func (s *Service) embed(ctx context.Context, text string) (vec ai.Vector, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("embedding panicked: %v", r)
		}
	}()

	return s.router.Embed(ctx, text), nil
}
