package ats

import (
	"math"
	"regexp"
	"strings"
)

// DefaultExperienceMatch is used when either side states no years of
// experience, so unstated requirements neither help nor hurt much.
const DefaultExperienceMatch = 70.0

// maxExperienceRatio caps how much over-qualification counts.
const maxExperienceRatio = 1.5

var resumeSections = []string{"experience", "education", "skills", "summary", "objective", "projects"}

var (
	emailRe = regexp.MustCompile(`\b[\w.-]+@[\w.-]+\.\w+\b`)
	phoneRe = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
)

// JobSkills merges the skills found in the job text with the explicitly
// required ones, lowercased. Blank requirements are ignored.
func JobSkills(extracted, requirements []string) []string {
	seen := make(map[string]bool, len(extracted)+len(requirements))
	var out []string
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range extracted {
		add(s)
	}
	for _, r := range requirements {
		add(strings.ToLower(strings.TrimSpace(r)))
	}
	return out
}

// SkillsMatch is the percentage of job skills present in the resume. With no
// job skills there is nothing to fail against, so the result is 100.
func SkillsMatch(resumeSkills, jobSkills []string) float64 {
	job := make(map[string]bool, len(jobSkills))
	for _, s := range jobSkills {
		job[s] = true
	}
	if len(job) == 0 {
		return 100
	}
	matched := 0
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		if job[s] && !have[s] {
			matched++
		}
		have[s] = true
	}
	return float64(matched) / float64(len(job)) * 100
}

// FormattingScore rates resume structure out of 100: up to 30 for section
// headings, 15 each for an email and a phone number, and 20/40/30 for a
// short, reasonable or long word count.
func FormattingScore(text string) float64 {
	lower := strings.ToLower(text)
	found := 0
	for _, s := range resumeSections {
		if strings.Contains(lower, s) {
			found++
		}
	}
	score := float64(found) / float64(len(resumeSections)) * 30

	if emailRe.MatchString(text) {
		score += 15
	}
	if phoneRe.MatchString(text) {
		score += 15
	}

	switch words := len(strings.Fields(text)); {
	case words < 200:
		score += 20
	case words > 2000:
		score += 30
	default:
		score += 40
	}
	return score
}

// ExperienceMatch compares resume years with required years. A zero or
// missing figure on either side yields DefaultExperienceMatch.
func ExperienceMatch(resume, job ExtractedProfile) float64 {
	if !resume.HasExperience || !job.HasExperience || resume.ExperienceYears <= 0 || job.ExperienceYears <= 0 {
		return DefaultExperienceMatch
	}
	ratio := math.Min(float64(resume.ExperienceYears)/float64(job.ExperienceYears), maxExperienceRatio)
	return math.Min(ratio*100, 100)
}
