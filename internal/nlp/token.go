// internal/nlp/token.go
package nlp

import (
	"strings"
	"unicode"
)

// Token is a single word of the tokenized utterance.
type Token struct {
	Text    string // lower-cased surface form
	Lemma   string // coarse lemma (defaults to the surface form)
	IsDigit bool
}

// EntitySpan is a labeled contiguous token range.
type EntitySpan struct {
	Label EntityLabel
	ID    string // resolved value: period id or category id; empty for price
	Start int    // token index, inclusive
	End   int    // token index, exclusive
	Text  string
}

// Doc is the tokenized, tagged and entity-annotated utterance. Built fresh
// per request and discarded after resolution.
type Doc struct {
	Text   string
	Tokens []Token
	Ents   []EntitySpan

	entAt []EntityLabel // per-token entity label, filled by the ruler
}

// Span returns the surface text of tokens [start, end).
func (d *Doc) Span(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(d.Tokens) {
		end = len(d.Tokens)
	}
	if start >= end {
		return ""
	}
	parts := make([]string, 0, end-start)
	for _, t := range d.Tokens[start:end] {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

func (d *Doc) entLabelAt(i int) EntityLabel {
	if i < 0 || i >= len(d.entAt) {
		return ""
	}
	return d.entAt[i]
}

// Pipeline is the narrow tokenizer/tagger seam the interpreter depends on.
// Alternative tokenizers for other languages only need to satisfy this.
type Pipeline interface {
	Process(text string) (*Doc, error)
}

// SpanishTokenizer is a rule-based Pipeline for Spanish storefront commands:
// lower-casing, word splitting and a small lemma table. It never fails on
// user input.
type SpanishTokenizer struct {
	lemmas map[string]string
}

func NewSpanishTokenizer() *SpanishTokenizer {
	return &SpanishTokenizer{
		lemmas: map[string]string{
			"categoria":  "categoría",
			"categorias": "categoría",
			"categoría":  "categoría",
			"categorías": "categoría",
		},
	}
}

func (s *SpanishTokenizer) Process(text string) (*Doc, error) {
	lowered := strings.ToLower(text)
	words := splitWords(lowered)

	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		lemma := w
		if l, ok := s.lemmas[w]; ok {
			lemma = l
		}
		tokens = append(tokens, Token{
			Text:    w,
			Lemma:   lemma,
			IsDigit: isAllDigits(w),
		})
	}

	return &Doc{
		Text:   lowered,
		Tokens: tokens,
		entAt:  make([]EntityLabel, len(tokens)),
	}, nil
}

// splitWords breaks text into runs of letters/digits; everything else is a
// separator. Accented letters are kept intact.
func splitWords(text string) []string {
	var words []string
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		words = append(words, b.String())
	}
	return words
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
