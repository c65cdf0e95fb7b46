// Package analysis scores a piece of content and asks the assistant about it in one go.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"newsdigest/internal/sentiment"
	"newsdigest/internal/source"
)

var (
	ErrSentiment = errors.New("sentiment scoring failed")
	ErrAssistant = errors.New("assistant failed")
)

// Answerer produces the assistant's reply for a piece of text. A nil error
// comes with a non-empty reply.
type Answerer interface {
	Run(ctx context.Context, text string) (string, error)
}

// Scorer scores text with a named method.
type Scorer interface {
	Score(ctx context.Context, method sentiment.Method, text string) (sentiment.Result, error)
}

// Analyzer is implemented by Service.
type Analyzer interface {
	Analyze(ctx context.Context, in Input) (Report, error)
}

type Input struct {
	Source  source.Kind
	Content string
	Method  sentiment.Method
}

// Report is the outcome of one analysis.
type Report struct {
	ID        uuid.UUID        `json:"id"`
	Source    source.Kind      `json:"source"`
	Method    sentiment.Method `json:"method"`
	Content   string           `json:"content"`
	Sentiment sentiment.Result `json:"sentiment"`
	Answer    string           `json:"answer"`
	CreatedAt time.Time        `json:"created_at"`
}

type Service struct {
	scorer   Scorer
	answerer Answerer
	log      *slog.Logger
	now      func() time.Time
}

func NewService(scorer Scorer, answerer Answerer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{scorer: scorer, answerer: answerer, log: log, now: time.Now}
}

// Analyze runs the scorer and the assistant side by side. Whichever fails first
// cancels the other.
func (s *Service) Analyze(ctx context.Context, in Input) (Report, error) {
	log := s.log.With("source", in.Source, "method", in.Method)
	start := s.now()

	var (
		result sentiment.Result
		answer string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.scorer.Score(gctx, in.Method, in.Content)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSentiment, err)
		}
		result = r
		return nil
	})
	g.Go(func() error {
		a, err := s.answerer.Run(gctx, in.Content)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAssistant, err)
		}
		answer = CleanAnswer(a)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Warn("analysis failed", "err", err)
		return Report{}, err
	}

	log.Info("analysis complete", "chars", len(in.Content), "duration_ms", s.now().Sub(start).Milliseconds())
	return Report{
		ID:        uuid.New(),
		Source:    in.Source,
		Method:    in.Method,
		Content:   in.Content,
		Sentiment: result,
		Answer:    answer,
		CreatedAt: s.now().UTC(),
	}, nil
}

// CleanAnswer turns "<br>-" list separators into plain markdown bullets.
func CleanAnswer(answer string) string {
	return strings.ReplaceAll(answer, "<br>-", "-")
}
