package ats

import (
	"fmt"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lemmatizer reduces a lowercase word to its dictionary base form. Words it
// does not know are returned unchanged.
type Lemmatizer interface {
	Lemma(word string) string
}

// GolemLemmatizer looks words up in the English golem dictionary.
type GolemLemmatizer struct {
	lem *golem.Lemmatizer
}

// NewGolemLemmatizer loads the embedded English dictionary.
func NewGolemLemmatizer() (*GolemLemmatizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading english lemma dictionary: %w", err)
	}
	return &GolemLemmatizer{lem: lem}, nil
}

func (g *GolemLemmatizer) Lemma(word string) string {
	return g.lem.Lemma(word)
}

// the dictionary is large and read-only; load it once per process.
var sharedGolem = sync.OnceValues(NewGolemLemmatizer)

type identityLemmatizer struct{}

func (identityLemmatizer) Lemma(word string) string { return word }
