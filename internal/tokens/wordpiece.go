package tokens

import (
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
)

const unknownPiece = "[UNK]"

// WordPiece prices words with a BERT vocabulary (vocab.txt, one piece per line).
// Text is lowercased and accent-stripped first, matching uncased models such as FinBERT.
type WordPiece struct {
	tk *tokenizer.Tokenizer
}

func LoadWordPiece(vocabFile string) (*WordPiece, error) {
	model, err := wordpiece.NewWordPieceFromFile(vocabFile, unknownPiece)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", vocabFile, err)
	}
	tk := tokenizer.NewTokenizer(model)
	tk.WithNormalizer(normalizer.NewBertNormalizer(true, true, true, true))
	tk.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())
	return &WordPiece{tk: tk}, nil
}

// Pieces returns the word's piece count without [CLS] and [SEP].
// A word the tokenizer rejects is priced as one [UNK].
func (w *WordPiece) Pieces(word string) int {
	en, err := w.tk.EncodeSingle(word, false)
	if err != nil || en == nil {
		return 1
	}
	return len(en.Tokens)
}

// Encode returns the pieces of text, for inspection and tests.
func (w *WordPiece) Encode(text string) ([]string, error) {
	en, err := w.tk.EncodeSingle(text, false)
	if err != nil {
		return nil, err
	}
	return en.Tokens, nil
}
