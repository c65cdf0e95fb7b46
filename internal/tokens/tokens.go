// Package tokens budgets text against a model's token limit. Text is split on
// whitespace and every punctuation rune is its own word, which is how BERT-style
// basic tokenizers pre-split before word pieces. A PieceCounter then prices each
// word in model tokens.
package tokens

import (
	"unicode"
	"unicode/utf8"
)

type span struct {
	start, end int
}

func split(text string) []span {
	var spans []span
	start := -1
	for i, r := range text {
		switch {
		case unicode.IsSpace(r):
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
			spans = append(spans, span{i, i + utf8.RuneLen(r)})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(text)})
	}
	return spans
}

// PieceCounter reports how many model tokens a single pre-split word costs.
type PieceCounter interface {
	Pieces(word string) int
}

type wordCount struct{}

func (wordCount) Pieces(string) int { return 1 }

// Estimate prices a word at one token per RunesPerPiece runes, rounded up.
// It stands in for a vocabulary: with 3 it over-counts ordinary prose but dense
// tickers and codes can still come out short.
type Estimate struct {
	RunesPerPiece int
}

func (e Estimate) Pieces(word string) int {
	per := e.RunesPerPiece
	if per <= 0 {
		per = 1
	}
	return (utf8.RuneCountInString(word) + per - 1) / per
}

// Count returns the number of pre-split words in text.
func Count(text string) int {
	return len(split(text))
}

// CountWith returns the number of model tokens text costs under c.
func CountWith(text string, c PieceCounter) int {
	n := 0
	for _, s := range split(text) {
		n += c.Pieces(text[s.start:s.end])
	}
	return n
}

// Truncate keeps at most max words of text and reports whether anything was cut.
// The returned prefix is a slice of text itself, so spacing and casing survive.
// A non-positive max disables truncation.
func Truncate(text string, max int) (string, bool) {
	return TruncateWith(text, max, wordCount{})
}

// TruncateWith keeps the longest run of whole words whose cost under c stays
// within max tokens. Cuts only fall on word boundaries.
func TruncateWith(text string, max int, c PieceCounter) (string, bool) {
	if max <= 0 {
		return text, false
	}
	used, end := 0, 0
	for _, s := range split(text) {
		used += c.Pieces(text[s.start:s.end])
		if used > max {
			return text[:end], true
		}
		end = s.end
	}
	return text, false
}
