package ats

import (
	"fmt"
	"math"
)

// DefaultThreshold is the auto-submit score when none is configured.
const DefaultThreshold = 90

// maxReportedKeywords bounds the matched/missing lists in a ScoreResult.
const maxReportedKeywords = 10

// Weights of each sub-score in the final score. They sum to 1.
const (
	WeightKeyword    = 0.35
	WeightSkills     = 0.30
	WeightExperience = 0.20
	WeightFormatting = 0.15
)

// Engine scores resumes against job descriptions. It holds only immutable
// configuration and is safe for concurrent use.
type Engine struct {
	threshold  int
	normalizer *Normalizer
	extractor  *Extractor
	similarity Similarity
}

// Option customises an Engine at construction.
type Option func(*engineOptions)

type engineOptions struct {
	vocab      *Vocabulary
	lemmatizer Lemmatizer
	similarity Similarity
}

// WithVocabulary replaces the built-in skill vocabulary.
func WithVocabulary(v *Vocabulary) Option {
	return func(o *engineOptions) { o.vocab = v }
}

// WithLemmatizer replaces the golem dictionary lemmatizer.
func WithLemmatizer(l Lemmatizer) Option {
	return func(o *engineOptions) { o.lemmatizer = l }
}

// WithSimilarity replaces the TF-IDF strategy.
func WithSimilarity(s Similarity) Option {
	return func(o *engineOptions) { o.similarity = s }
}

// NewEngine builds an Engine that auto-submits at or above threshold percent.
func NewEngine(threshold int, opts ...Option) (*Engine, error) {
	if threshold < 0 || threshold > 100 {
		return nil, fmt.Errorf("threshold %d out of range [0,100]", threshold)
	}
	o := engineOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lemmatizer == nil {
		lem, err := sharedGolem()
		if err != nil {
			return nil, err
		}
		o.lemmatizer = lem
	}
	if o.similarity == nil {
		o.similarity = NewTFIDF()
	}
	return &Engine{
		threshold:  threshold,
		normalizer: NewNormalizer(o.lemmatizer),
		extractor:  NewExtractor(o.vocab),
		similarity: o.similarity,
	}, nil
}

// Threshold returns the auto-submit threshold.
func (e *Engine) Threshold() int { return e.threshold }

// Score compares in.ResumeText with in.JobDescription. It never fails:
// degenerate input such as empty text falls back to the documented defaults.
func (e *Engine) Score(in ScoreInput) ScoreResult {
	resume := e.extractor.Profile(in.ResumeText)
	job := e.extractor.Profile(in.JobDescription)
	jobSkills := JobSkills(job.Skills, in.JobRequirements)

	sim := e.similarity.Compare(
		e.normalizer.Normalize(in.ResumeText),
		e.normalizer.Normalize(in.JobDescription),
	)

	raw := ScoreBreakdown{
		KeywordMatch:    clamp(sim.Percent),
		SkillsMatch:     clamp(SkillsMatch(resume.Skills, jobSkills)),
		ExperienceMatch: clamp(ExperienceMatch(resume, job)),
		FormattingScore: clamp(FormattingScore(in.ResumeText)),
	}
	score := round1(Composite(raw))

	return ScoreResult{
		Score: score,
		ScoreBreakdown: ScoreBreakdown{
			KeywordMatch:    round1(raw.KeywordMatch),
			SkillsMatch:     round1(raw.SkillsMatch),
			ExperienceMatch: round1(raw.ExperienceMatch),
			FormattingScore: round1(raw.FormattingScore),
		},
		Recommendations: Recommend(score, sim.Missing, raw),
		MatchedKeywords: firstN(sim.Matched, maxReportedKeywords),
		MissingKeywords: firstN(sim.Missing, maxReportedKeywords),
		AutoSubmit:      score >= float64(e.threshold),
	}
}

// Composite is the weighted sum of the four sub-scores.
func Composite(b ScoreBreakdown) float64 {
	return clamp(b.KeywordMatch*WeightKeyword +
		b.SkillsMatch*WeightSkills +
		b.ExperienceMatch*WeightExperience +
		b.FormattingScore*WeightFormatting)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
