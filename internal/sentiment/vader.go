package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// VADER scores text with the rule-based VADER lexicon.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADER) Score(_ context.Context, text string) (Result, error) {
	s := v.analyzer.PolarityScores(text)
	return Result{
		Method: MethodVADER,
		Compound: &CompoundScores{
			Negative: s.Negative,
			Neutral:  s.Neutral,
			Positive: s.Positive,
			Compound: s.Compound,
		},
	}, nil
}
