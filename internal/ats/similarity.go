package ats

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Similarity compares a normalized resume with a normalized job description.
// Implementations must be deterministic and safe for concurrent use.
type Similarity interface {
	Compare(resume, job string) SimilarityResult
}

const (
	defaultMaxFeatures = 100
	defaultTopTerms    = 20
)

// vectorTokenRe picks the terms that make up the vector space: runs of two or
// more word characters. "node.js" contributes "node" and "js".
var vectorTokenRe = regexp.MustCompile(`\b\w\w+\b`)

// TFIDF weights terms by smoothed term-frequency/inverse-document-frequency
// over the two-document corpus {resume, job} and compares the L2-normalised
// vectors by cosine.
type TFIDF struct {
	// MaxFeatures caps the vocabulary to the most frequent corpus terms.
	MaxFeatures int
	// TopTerms is how many of the job's heaviest terms are reported.
	TopTerms int
}

// NewTFIDF returns the default strategy: 100 features, top 20 job terms.
func NewTFIDF() TFIDF {
	return TFIDF{MaxFeatures: defaultMaxFeatures, TopTerms: defaultTopTerms}
}

func (t TFIDF) Compare(resume, job string) SimilarityResult {
	docs := [2]map[string]int{countTerms(resume), countTerms(job)}

	features := t.features(docs)
	if len(features) == 0 {
		return SimilarityResult{}
	}

	vecs := [2][]float64{
		make([]float64, len(features)),
		make([]float64, len(features)),
	}
	n := float64(len(docs))
	for i, term := range features {
		df := 0
		for _, d := range docs {
			if d[term] > 0 {
				df++
			}
		}
		idf := math.Log((1+n)/(1+float64(df))) + 1
		for j, d := range docs {
			vecs[j][i] = float64(d[term]) * idf
		}
	}
	for _, v := range vecs {
		if norm := floats.Norm(v, 2); norm > 0 {
			floats.Scale(1/norm, v)
		}
	}

	cos := floats.Dot(vecs[0], vecs[1])
	cos = math.Max(0, math.Min(1, cos))

	res := SimilarityResult{
		Percent:        cos * 100,
		ImportantTerms: t.rank(features, vecs[1]),
	}

	resumeTokens := make(map[string]bool)
	for _, tok := range strings.Fields(resume) {
		resumeTokens[tok] = true
	}
	for _, tw := range res.ImportantTerms {
		if resumeTokens[tw.Term] {
			res.Matched = append(res.Matched, tw.Term)
		} else {
			res.Missing = append(res.Missing, tw.Term)
		}
	}
	return res
}

// features returns the vocabulary in alphabetical order, limited to the
// MaxFeatures terms with the highest total count. Count ties keep
// alphabetical order.
func (t TFIDF) features(docs [2]map[string]int) []string {
	total := make(map[string]int)
	for _, d := range docs {
		for term, c := range d {
			total[term] += c
		}
	}
	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	if t.MaxFeatures > 0 && len(terms) > t.MaxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return total[terms[i]] > total[terms[j]]
		})
		terms = terms[:t.MaxFeatures]
		sort.Strings(terms)
	}
	return terms
}

// rank orders the job's terms by descending weight, keeping alphabetical
// order between equal weights, and returns the first TopTerms with a
// positive weight.
func (t TFIDF) rank(features []string, job []float64) []TermWeight {
	ranked := make([]TermWeight, len(features))
	for i, term := range features {
		ranked[i] = TermWeight{Term: term, Weight: job[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})
	if t.TopTerms > 0 && len(ranked) > t.TopTerms {
		ranked = ranked[:t.TopTerms]
	}

	var out []TermWeight
	for _, tw := range ranked {
		if tw.Weight > 0 {
			out = append(out, tw)
		}
	}
	return out
}

func countTerms(text string) map[string]int {
	counts := make(map[string]int)
	for _, term := range vectorTokenRe.FindAllString(strings.ToLower(text), -1) {
		counts[term]++
	}
	return counts
}
