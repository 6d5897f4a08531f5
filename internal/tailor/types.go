package tailor

import "errors"

const (
	// TailoredScoreBoost is added to the match score of a tailored resume.
	TailoredScoreBoost = 15
	// MaxTailoredScore caps the boosted score.
	MaxTailoredScore = 99

	UnknownField = "Unknown"
)

var (
	ErrTailoringFailed  = errors.New("resume tailoring failed")
	ErrExtractionFailed = errors.New("job details extraction failed")
	ErrInterviewFailed  = errors.New("interview questions generation failed")
)

// AnalysisResult is the outcome of tailoring a resume for a job description.
type AnalysisResult struct {
	// Score is the presentation score of the tailored resume. It is the
	// original match score plus TailoredScoreBoost, capped at MaxTailoredScore.
	Score           int      `json:"score"`
	OriginalScore   int      `json:"original_score"`
	TailoredContent string   `json:"tailored_content"`
	MissingKeywords []string `json:"missing_keywords"`
}

type InterviewQuestion struct {
	Question string `json:"question" mapstructure:"question"`
	Answer   string `json:"answer" mapstructure:"answer"`
}

type JobDetails struct {
	Company  string `json:"company" mapstructure:"company"`
	Position string `json:"position" mapstructure:"position"`
	Location string `json:"location" mapstructure:"location"`
	Salary   string `json:"salary" mapstructure:"salary"`
}

// Limits bounds how many characters of each input are sent upstream.
type Limits struct {
	MatchChars     int
	InterviewChars int
	ExtractChars   int
}

// DefaultLimits returns the character budgets used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MatchChars:     1000,
		InterviewChars: 1000,
		ExtractChars:   3000,
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MatchChars <= 0 {
		l.MatchChars = def.MatchChars
	}
	if l.InterviewChars <= 0 {
		l.InterviewChars = def.InterviewChars
	}
	if l.ExtractChars <= 0 {
		l.ExtractChars = def.ExtractChars
	}
	return l
}

// BoostScore applies the tailoring boost to an original match score.
func BoostScore(original int) int {
	boosted := original + TailoredScoreBoost
	if boosted > MaxTailoredScore {
		boosted = MaxTailoredScore
	}
	if boosted < 0 {
		boosted = 0
	}
	return boosted
}
