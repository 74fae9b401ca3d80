package ats

import (
	"regexp"
	"strconv"
	"strings"
)

// yearsRule is one phrasing of "N years of experience". Rules are tried in
// order and the first one that matches anywhere in the text wins.
type yearsRule struct {
	name string
	re   *regexp.Regexp
}

var experienceRules = []yearsRule{
	{"forward", regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`)},
	{"inverted", regexp.MustCompile(`experience\s*(?:of\s*)?(\d+)\+?\s*years?`)},
	{"field", regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:in\s*)?(?:the\s*)?(?:industry|field)`)},
}

// Extractor pulls skills and years of experience out of raw text.
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor returns an Extractor over vocab, or the default vocabulary
// when vocab is nil.
func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{vocab: vocab}
}

// Skills returns the sorted vocabulary terms present in text.
func (e *Extractor) Skills(text string) []string {
	return e.vocab.Match(text)
}

// ExperienceYears returns the first years-of-experience figure found in text.
// ok is false when no phrasing matches.
func (e *Extractor) ExperienceYears(text string) (years int, ok bool) {
	lower := strings.ToLower(text)
	for _, rule := range experienceRules {
		m := rule.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// too many digits to be a real figure
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Profile runs both extractions.
func (e *Extractor) Profile(text string) ExtractedProfile {
	years, ok := e.ExperienceYears(text)
	return ExtractedProfile{
		Skills:          e.Skills(text),
		ExperienceYears: years,
		HasExperience:   ok,
	}
}
