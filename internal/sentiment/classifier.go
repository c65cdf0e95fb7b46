package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsdigest/internal/tokens"
)

// reservedTokens are taken by the model's [CLS] and [SEP] markers.
const reservedTokens = 2

// fallbackEstimate prices words when no vocabulary is configured.
var fallbackEstimate = tokens.Estimate{RunesPerPiece: 3}

// ClassifierOptions configures a hosted text-classification model.
type ClassifierOptions struct {
	// BaseURL is the inference endpoint prefix; the model name is appended.
	BaseURL   string
	Model     string
	APIKey    string
	MaxTokens int
	// Vocab prices input in model tokens before truncation. Nil falls back to
	// an estimate of one token per three runes.
	Vocab tokens.PieceCounter
}

// Classifier labels text with a hosted sequence-classification model (FinBERT by default).
type Classifier struct {
	client *http.Client
	opts   ClassifierOptions
}

func NewClassifier(client *http.Client, opts ClassifierOptions) (*Classifier, error) {
	if opts.BaseURL == "" || opts.Model == "" {
		return nil, errors.New("classifier endpoint and model required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if opts.Vocab == nil {
		opts.Vocab = fallbackEstimate
	}
	return &Classifier{client: client, opts: opts}, nil
}

type classifyRequest struct {
	Inputs  string          `json:"inputs"`
	Options classifyOptions `json:"options"`
}

type classifyOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

func (c *Classifier) Score(ctx context.Context, text string) (Result, error) {
	input, truncated := tokens.TruncateWith(text, c.opts.MaxTokens-reservedTokens, c.opts.Vocab)

	body, err := json.Marshal(classifyRequest{Inputs: input, Options: classifyOptions{WaitForModel: true}})
	if err != nil {
		return Result{}, err
	}
	url := strings.TrimRight(c.opts.BaseURL, "/") + "/" + c.opts.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read classifier response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	labels, err := decodeLabels(raw)
	if err != nil {
		return Result{}, err
	}
	top, err := best(labels)
	if err != nil {
		return Result{}, err
	}
	return Result{Method: MethodClassifier, Classification: &top, Truncated: truncated}, nil
}

// decodeLabels accepts both the batched [[...]] and the flat [...] response shapes.
func decodeLabels(raw []byte) ([]Classification, error) {
	var nested [][]Classification
	if err := json.Unmarshal(raw, &nested); err == nil {
		var out []Classification
		for _, row := range nested {
			out = append(out, row...)
		}
		return out, nil
	}
	var flat []Classification
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	return flat, nil
}

func best(labels []Classification) (Classification, error) {
	if len(labels) == 0 {
		return Classification{}, errors.New("classifier returned no labels")
	}
	top := labels[0]
	for _, l := range labels[1:] {
		if l.Score > top.Score {
			top = l
		}
	}
	return top, nil
}
