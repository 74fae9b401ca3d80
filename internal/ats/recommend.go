package ats

import "strings"

// Recommendation texts, in rule order.
const (
	RecSkills       = "Highlight more technical skills that match the job requirements"
	RecStructure    = "Improve resume structure with clear sections (Experience, Education, Skills)"
	RecTailor       = "Consider tailoring your resume more specifically to this job description"
	RecGoodMatch    = "Good match! Minor keyword optimizations could improve your score"
	RecStrongMatch  = "Strong match! Fine-tune keyword placement for optimal ATS parsing"
	RecExcellent    = "Excellent resume! Meets ATS requirements for auto-submission"
	recKeywordsHead = "Add these important keywords: "

	maxSuggestedKeywords = 5
	minSkillsMatch       = 70
	minFormattingScore   = 70
)

// Recommend builds improvement suggestions. missing must be the missing-term
// list produced by the similarity step, in importance order; it is never
// recomputed here. Rules fire top to bottom and the closing message is only
// used when nothing else applies.
func Recommend(score float64, missing []string, breakdown ScoreBreakdown) []string {
	var recs []string

	if len(missing) > 0 {
		top := missing
		if len(top) > maxSuggestedKeywords {
			top = top[:maxSuggestedKeywords]
		}
		recs = append(recs, recKeywordsHead+strings.Join(top, ", "))
	}
	if breakdown.SkillsMatch < minSkillsMatch {
		recs = append(recs, RecSkills)
	}
	if breakdown.FormattingScore < minFormattingScore {
		recs = append(recs, RecStructure)
	}

	switch {
	case score < 60:
		recs = append(recs, RecTailor)
	case score < 80:
		recs = append(recs, RecGoodMatch)
	case score < 90:
		recs = append(recs, RecStrongMatch)
	}

	if len(recs) == 0 {
		recs = append(recs, RecExcellent)
	}
	return recs
}
