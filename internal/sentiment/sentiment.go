// Package sentiment scores text with one of several interchangeable strategies.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Method names a scoring strategy.
type Method string

const (
	MethodVADER      Method = "vader"
	MethodPolarity   Method = "polarity"
	MethodClassifier Method = "classifier"
)

var ErrUnknownMethod = errors.New("unknown sentiment method")

// ParseMethod resolves a method name. The library names NLTK, TextBlob and BERT
// are accepted as aliases, case-insensitively.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vader", "nltk":
		return MethodVADER, nil
	case "polarity", "textblob":
		return MethodPolarity, nil
	case "classifier", "bert", "finbert":
		return MethodClassifier, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// CompoundScores is the VADER score mapping.
type CompoundScores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Classification is the top label of a classifier and its confidence.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// PolarityScores holds polarity in [-1, 1] and subjectivity in [0, 1].
type PolarityScores struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Result carries exactly one of the strategy-specific shapes.
type Result struct {
	Method         Method          `json:"method"`
	Compound       *CompoundScores `json:"compound,omitempty"`
	Classification *Classification `json:"classification,omitempty"`
	Polarity       *PolarityScores `json:"polarity,omitempty"`
	// Truncated is set when the scorer only saw a prefix of the input.
	Truncated bool `json:"truncated,omitempty"`
}

// Scorer maps text to a sentiment result.
type Scorer interface {
	Score(ctx context.Context, text string) (Result, error)
}

// Registry selects a scorer by method.
type Registry map[Method]Scorer

func (r Registry) Score(ctx context.Context, method Method, text string) (Result, error) {
	s, ok := r[method]
	if !ok || s == nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return s.Score(ctx, text)
}

// Methods lists the registered methods in name order.
func (r Registry) Methods() []Method {
	out := make([]Method, 0, len(r))
	for m := range r {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
