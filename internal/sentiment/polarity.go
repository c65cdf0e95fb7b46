package sentiment

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// negationFactor flips and damps a negated word ("not good" is mildly negative).
const negationFactor = -0.5

type lexiconEntry struct {
	Polarity     float64 `yaml:"p"`
	Subjectivity float64 `yaml:"s"`
}

type lexicon struct {
	Words        map[string]lexiconEntry `yaml:"words"`
	Intensifiers map[string]float64      `yaml:"intensifiers"`
	Negations    []string                `yaml:"negations"`
}

// Polarity averages per-word polarity and subjectivity from an adjective lexicon,
// scaling a word by a preceding intensifier and damping it after a negation.
type Polarity struct {
	words        map[string]lexiconEntry
	intensifiers map[string]float64
	negations    map[string]struct{}
}

// NewPolarity loads the embedded lexicon.
func NewPolarity() (*Polarity, error) {
	return newPolarity(lexiconYAML)
}

func newPolarity(data []byte) (*Polarity, error) {
	var lex lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if len(lex.Words) == 0 {
		return nil, fmt.Errorf("lexicon has no words")
	}
	p := &Polarity{
		words:        lex.Words,
		intensifiers: lex.Intensifiers,
		negations:    make(map[string]struct{}, len(lex.Negations)),
	}
	for _, n := range lex.Negations {
		p.negations[n] = struct{}{}
	}
	return p, nil
}

func (p *Polarity) Score(_ context.Context, text string) (Result, error) {
	pol, subj := p.assess(text)
	return Result{
		Method:   MethodPolarity,
		Polarity: &PolarityScores{Polarity: pol, Subjectivity: subj},
	}, nil
}

func (p *Polarity) assess(text string) (float64, float64) {
	words := splitWords(text)
	var polSum, subjSum float64
	var n int
	for i, w := range words {
		e, ok := p.words[w]
		if !ok {
			continue
		}
		pol, subj := e.Polarity, e.Subjectivity
		if i > 0 {
			if f, ok := p.intensifiers[words[i-1]]; ok {
				pol *= f
				subj *= f
			}
		}
		if p.negated(words, i) {
			pol *= negationFactor
		}
		polSum += clamp(pol, -1, 1)
		subjSum += clamp(subj, 0, 1)
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return clamp(polSum/float64(n), -1, 1), clamp(subjSum/float64(n), 0, 1)
}

// negated looks back one word, or two when the nearer one is an intensifier ("not very good").
func (p *Polarity) negated(words []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		if p.isNegation(words[j]) {
			return true
		}
		if _, ok := p.intensifiers[words[j]]; !ok {
			return false
		}
	}
	return false
}

func (p *Polarity) isNegation(w string) bool {
	if _, ok := p.negations[w]; ok {
		return true
	}
	return strings.HasSuffix(w, "n't")
}

func splitWords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '’'
	})
	words := fields[:0]
	for _, f := range fields {
		f = strings.ReplaceAll(f, "’", "'")
		if f = strings.Trim(f, "'"); f != "" {
			words = append(words, f)
		}
	}
	return words
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
