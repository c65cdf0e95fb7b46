package tokens

import (
	"strings"
	"testing"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\t ", 0},
		{"words", "Stocks rally on Fed signal", 5},
		{"punctuation split", "Yen rebounds, strongly!", 5},
		{"apostrophe", "Musk's trip", 4},
		{"symbols", "S&P 500 up 2%", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.text); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestTruncateKeepsPrefix(t *testing.T) {
	text := "one two, three four five"
	got, cut := Truncate(text, 3)
	if !cut {
		t.Fatal("expected truncation")
	}
	if got != "one two," {
		t.Errorf("expected %q, got %q", "one two,", got)
	}
	if Count(got) != 3 {
		t.Errorf("expected 3 tokens after truncation, got %d", Count(got))
	}
}

func TestTruncateShortInput(t *testing.T) {
	text := "Fed in holding pattern"
	got, cut := Truncate(text, 10)
	if cut {
		t.Error("expected no truncation for short input")
	}
	if got != text {
		t.Errorf("expected input unchanged, got %q", got)
	}
}

func TestTruncateDisabled(t *testing.T) {
	text := strings.Repeat("word ", 1000)
	got, cut := Truncate(text, 0)
	if cut || got != text {
		t.Error("expected non-positive max to disable truncation")
	}
}

func TestTruncateLongInput(t *testing.T) {
	text := strings.Repeat("headline ", 2000)
	got, cut := Truncate(text, 510)
	if !cut {
		t.Fatal("expected truncation")
	}
	if n := Count(got); n != 510 {
		t.Errorf("expected 510 tokens, got %d", n)
	}
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{",", 1},
		{"fed", 1},
		{"rally", 2},
		{"hyperinflationary", 6},
	}
	e := Estimate{RunesPerPiece: 3}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := e.Pieces(tt.word); got != tt.want {
				t.Errorf("Pieces(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestTruncateWithCutsOnWordBoundary(t *testing.T) {
	text := "fed hyperinflationary rally"
	e := Estimate{RunesPerPiece: 3}

	got, cut := TruncateWith(text, 6, e)
	if !cut {
		t.Fatal("expected truncation")
	}
	if got != "fed" {
		t.Errorf("expected %q, got %q", "fed", got)
	}

	got, cut = TruncateWith(text, 9, e)
	if cut || got != text {
		t.Errorf("expected %q untouched at exact budget, got %q (cut=%v)", text, got, cut)
	}
}

func loadTestVocab(t *testing.T) *WordPiece {
	t.Helper()
	wp, err := LoadWordPiece("testdata/vocab.txt")
	if err != nil {
		t.Fatalf("load vocab: %v", err)
	}
	return wp
}

func TestWordPiecePieces(t *testing.T) {
	wp := loadTestVocab(t)

	tests := []struct {
		word string
		want []string
	}{
		{"Markets", []string{"markets"}},
		{"hyperinflationary", []string{"hyper", "##in", "##fl", "##ation", "##ary"}},
		{"cryptocurrencies", []string{"crypto", "##cu", "##rre", "##ncies"}},
		{"NVDA", []string{"n", "##vd", "##a"}},
		{"zzz", []string{"[UNK]"}},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := wp.Encode(tt.word)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("Encode(%q) = %q, want %q", tt.word, got, tt.want)
			}
			if n := wp.Pieces(tt.word); n != len(tt.want) {
				t.Errorf("Pieces(%q) = %d, want %d", tt.word, n, len(tt.want))
			}
		})
	}
}

func TestTruncateWithWordPiece(t *testing.T) {
	wp := loadTestVocab(t)
	text := strings.Repeat("The hyperinflationary rally. ", 300)

	got, cut := TruncateWith(text, 510, wp)
	if !cut {
		t.Fatal("expected truncation")
	}
	pieces, err := wp.Encode(got)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Each sentence costs 8 pieces, so the budget ends inside the 64th sentence.
	if len(pieces) > 510 || len(pieces) < 505 {
		t.Errorf("expected just under 510 pieces, got %d", len(pieces))
	}
	if n := CountWith(got, wp); n != len(pieces) {
		t.Errorf("per-word count %d disagrees with whole-text encoding %d", n, len(pieces))
	}

	// Word-level truncation lets the same text through at several times the limit.
	byWords, _ := Truncate(text, 510)
	if n := CountWith(byWords, wp); n <= 510 {
		t.Errorf("expected word-level truncation to overrun the model limit, got %d pieces", n)
	}
}
