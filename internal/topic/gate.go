// Package topic decides whether a question is about the Indian Constitution.
package topic

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEmptyKeyword is returned when a keyword list is empty or contains a blank phrase.
var ErrEmptyKeyword = errors.New("keyword must not be empty")

// DefaultKeywords are the phrases a question must contain, as a whole word, to be answered.
var DefaultKeywords = []string{
	"constitution", "fundamental rights", "directive principles",
	"preamble", "president", "parliament", "supreme court",
	"fundamental duties", "article", "schedule", "amendment",
	"law", "governance", "citizenship", "justice",
	"democracy", "secularism", "government", "elections",
}

const (
	// wordChar and nonWordChar count every Unicode letter and digit as part of
	// a word. RE2's \b only knows ASCII, which would let "lawé" match "law".
	wordChar    = `[\p{L}\p{N}_]`
	nonWordChar = `[^\p{L}\p{N}_]`
)

// Gate is an immutable set of precompiled word-boundary matchers.
type Gate struct {
	keywords []string
	patterns []*regexp.Regexp
}

// NewGate compiles one whole-word matcher per keyword. Phrases are
// lower-cased and quoted, so they match literally and contiguously.
func NewGate(keywords []string) (*Gate, error) {
	if len(keywords) == 0 {
		return nil, ErrEmptyKeyword
	}

	g := &Gate{
		keywords: make([]string, 0, len(keywords)),
		patterns: make([]*regexp.Regexp, 0, len(keywords)),
	}
	for _, kw := range keywords {
		phrase := lower(strings.TrimSpace(kw))
		if phrase == "" {
			return nil, ErrEmptyKeyword
		}
		re, err := regexp.Compile(wordPattern(phrase))
		if err != nil {
			return nil, fmt.Errorf("failed to compile keyword %q: %w", kw, err)
		}
		g.keywords = append(g.keywords, phrase)
		g.patterns = append(g.patterns, re)
	}

	return g, nil
}

// wordPattern wraps the quoted phrase in boundaries. A phrase edge that is a
// word character needs a non-word neighbour or the end of input; an edge that
// is not a word character needs a word character next to it.
func wordPattern(phrase string) string {
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)

	before := wordChar
	if isWordRune(first) {
		before = `(?:^|` + nonWordChar + `)`
	}
	after := wordChar
	if isWordRune(last) {
		after = `(?:$|` + nonWordChar + `)`
	}
	return before + regexp.QuoteMeta(phrase) + after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// lower folds a question the way keywords are folded. Dotted capital I keeps
// its dot as a combining mark instead of collapsing to a plain i.
func lower(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "\u0130", "i\u0307"))
}

// MustNewGate is like NewGate but panics on error.
func MustNewGate(keywords []string) *Gate {
	g, err := NewGate(keywords)
	if err != nil {
		panic(err)
	}
	return g
}

var defaultGate = MustNewGate(DefaultKeywords)

// Default returns the gate built from DefaultKeywords.
func Default() *Gate {
	return defaultGate
}

// IsRelevant reports whether any keyword occurs in the question as a whole word.
func (g *Gate) IsRelevant(question string) bool {
	folded := lower(question)
	for _, re := range g.patterns {
		if re.MatchString(folded) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the configured phrases.
func (g *Gate) Keywords() []string {
	out := make([]string, len(g.keywords))
	copy(out, g.keywords)
	return out
}
