package ats

import (
	"strings"
)

// minTokenLen is the shortest token kept by the normalizer.
const minTokenLen = 3

// Normalizer turns raw text into a space-joined sequence of lemmatized tokens.
type Normalizer struct {
	stopwords  map[string]struct{}
	lemmatizer Lemmatizer
}

// NewNormalizer returns a Normalizer using the English stopword list. A nil
// lemmatizer leaves tokens as they are.
func NewNormalizer(lemmatizer Lemmatizer) *Normalizer {
	if lemmatizer == nil {
		lemmatizer = identityLemmatizer{}
	}
	stop := make(map[string]struct{}, len(englishStopwords))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	return &Normalizer{stopwords: stop, lemmatizer: lemmatizer}
}

// Normalize lowercases text, replaces everything outside [a-z0-9 -+#.] with
// spaces, drops stopwords and tokens shorter than three characters, and
// lemmatizes what is left. Token order is preserved.
func (n *Normalizer) Normalize(text string) string {
	tokens := n.Tokens(text)
	return strings.Join(tokens, " ")
}

// Tokens is Normalize without the final join.
func (n *Normalizer) Tokens(text string) []string {
	cleaned := strings.Map(keepRune, strings.ToLower(text))

	var out []string
	for _, tok := range strings.Fields(cleaned) {
		// sentence-final periods are punctuation, not part of the word
		tok = strings.TrimRight(tok, ".")
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		out = append(out, n.lemmatizer.Lemma(tok))
	}
	return out
}

func keepRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return r
	case r == '-', r == '+', r == '#', r == '.':
		return r
	case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
		return r
	}
	return ' '
}
