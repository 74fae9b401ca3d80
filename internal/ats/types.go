// Package ats scores how well a resume matches a job description and decides
// whether the match is strong enough to skip human review.
//
// Everything in this package is a pure function of its inputs and the
// immutable configuration held by an Engine, so a single Engine can be shared
// across goroutines without coordination.
package ats

// ScoreInput is one resume and one job description to compare. Both texts are
// plain text; extracting text from PDF/DOCX happens before scoring.
type ScoreInput struct {
	ResumeText      string   `json:"resume_text" validate:"required"`
	JobDescription  string   `json:"job_description"`
	JobRequirements []string `json:"job_requirements,omitempty"`
}

// ExtractedProfile holds the signals pulled out of a single text.
type ExtractedProfile struct {
	Skills []string
	// ExperienceYears is only meaningful when HasExperience is set.
	ExperienceYears int
	HasExperience   bool
}

// TermWeight is a vocabulary term and its weight in the job document vector.
type TermWeight struct {
	Term   string
	Weight float64
}

// SimilarityResult is the outcome of comparing normalized resume and job texts.
type SimilarityResult struct {
	Percent float64
	// ImportantTerms is ordered by descending weight.
	ImportantTerms []TermWeight
	// Matched and Missing partition ImportantTerms and keep its order.
	Matched []string
	Missing []string
}

// ScoreBreakdown holds the four sub-scores, each in [0, 100].
type ScoreBreakdown struct {
	KeywordMatch    float64 `json:"keyword_match"`
	SkillsMatch     float64 `json:"skills_match"`
	ExperienceMatch float64 `json:"experience_match"`
	FormattingScore float64 `json:"formatting_score"`
}

// ScoreResult is the flat record returned for every scoring call.
type ScoreResult struct {
	Score float64 `json:"score"`
	ScoreBreakdown
	Recommendations []string `json:"recommendations"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	AutoSubmit      bool     `json:"auto_submit"`
}
