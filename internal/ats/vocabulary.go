package ats

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Term is one skill in the vocabulary. Aliases are alternative spellings that
// report as Name.
type Term struct {
	Name    string
	Aliases []string
}

// Category groups related terms, e.g. "languages" or "cloud".
type Category struct {
	Name  string
	Terms []Term
}

// Vocabulary is an immutable, compiled set of skill terms. Build one with
// NewVocabulary or DefaultVocabulary and share it freely.
type Vocabulary struct {
	categories []Category
	matchers   []termMatcher
}

type termMatcher struct {
	name string
	re   *regexp.Regexp
}

// NewVocabulary compiles case-insensitive whole-word patterns for every term.
// A term matches only when it is not glued to a letter, digit or underscore on
// either side, so "java" does not match inside "javascript".
func NewVocabulary(categories ...Category) (*Vocabulary, error) {
	v := &Vocabulary{}
	seen := make(map[string]bool)
	for _, c := range categories {
		terms := make([]Term, len(c.Terms))
		copy(terms, c.Terms)
		v.categories = append(v.categories, Category{Name: c.Name, Terms: terms})

		for _, t := range c.Terms {
			name := strings.ToLower(strings.TrimSpace(t.Name))
			if name == "" {
				return nil, fmt.Errorf("category %q: empty term", c.Name)
			}
			if seen[name] {
				return nil, fmt.Errorf("category %q: duplicate term %q", c.Name, name)
			}
			seen[name] = true

			re, err := compileTerm(append([]string{name}, t.Aliases...))
			if err != nil {
				return nil, fmt.Errorf("term %q: %w", name, err)
			}
			v.matchers = append(v.matchers, termMatcher{name: name, re: re})
		}
	}
	return v, nil
}

// MustVocabulary is NewVocabulary for static term lists.
func MustVocabulary(categories ...Category) *Vocabulary {
	v, err := NewVocabulary(categories...)
	if err != nil {
		panic(err)
	}
	return v
}

func compileTerm(spellings []string) (*regexp.Regexp, error) {
	alts := make([]string, 0, len(spellings))
	for _, s := range spellings {
		words := strings.Fields(strings.ToLower(s))
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		alts = append(alts, strings.Join(words, `\s+`))
	}
	return regexp.Compile(`(?:^|[^a-z0-9_])(?:` + strings.Join(alts, "|") + `)(?:[^a-z0-9_]|$)`)
}

// Categories returns a copy of the category list.
func (v *Vocabulary) Categories() []Category {
	out := make([]Category, len(v.categories))
	for i, c := range v.categories {
		terms := make([]Term, len(c.Terms))
		copy(terms, c.Terms)
		out[i] = Category{Name: c.Name, Terms: terms}
	}
	return out
}

// Len reports the number of terms.
func (v *Vocabulary) Len() int { return len(v.matchers) }

// Match returns the sorted names of every term present in text.
func (v *Vocabulary) Match(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, m := range v.matchers {
		if m.re.MatchString(lower) {
			found = append(found, m.name)
		}
	}
	sort.Strings(found)
	return found
}

// DefaultVocabulary returns the built-in technical vocabulary.
func DefaultVocabulary() *Vocabulary {
	return MustVocabulary(defaultCategories()...)
}

func defaultCategories() []Category {
	frameworks := terms(
		"react", "angular", "vue", "django", "flask", "spring", "express",
		"fastapi", "tensorflow", "pytorch", "keras",
	)
	frameworks = append(frameworks, Term{Name: "node.js", Aliases: []string{"nodejs"}})

	return []Category{
		{Name: "languages", Terms: terms(
			"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go",
			"rust", "scala", "kotlin", "swift", "php", "r",
		)},
		{Name: "frameworks", Terms: frameworks},
		{Name: "cloud", Terms: terms(
			"aws", "azure", "gcp", "docker", "kubernetes", "k8s", "terraform",
			"jenkins", "gitlab", "github", "ci/cd",
		)},
		{Name: "data", Terms: terms(
			"machine learning", "deep learning", "nlp", "computer vision",
			"data science", "sql", "nosql", "mongodb", "postgresql", "redis",
		)},
		{Name: "practices", Terms: terms(
			"agile", "scrum", "rest api", "microservices", "graphql", "git", "linux",
			"unix",
		)},
	}
}

func terms(names ...string) []Term {
	out := make([]Term, len(names))
	for i, n := range names {
		out[i] = Term{Name: n}
	}
	return out
}
