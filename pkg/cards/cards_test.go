package cards_test

import (
	"testing"

	"github.com/dorive/FiggieMachine/pkg/cards"
)

func TestParseSuitBothForms(t *testing.T) {
	for _, s := range cards.Suits {
		got, err := cards.ParseSuit(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSuit(%q) = %v, %v", s.String(), got, err)
		}
		got, err = cards.ParseSuit(s.Wire())
		if err != nil || got != s {
			t.Errorf("ParseSuit(%q) = %v, %v", s.Wire(), got, err)
		}
	}

	if _, err := cards.ParseSuit("joker"); err == nil {
		t.Error("ParseSuit(joker) should fail")
	}
}

func TestSuitOrderIsFixed(t *testing.T) {
	// The probability tables are keyed by this exact order.
	want := [4]string{"spades", "clubs", "hearts", "diamonds"}
	for i, s := range cards.Suits {
		if s.String() != want[i] {
			t.Fatalf("suit %d = %s, want %s", i, s, want[i])
		}
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := cards.ParseDirection("sell"); err != nil || d != cards.Sell {
		t.Errorf("ParseDirection(sell) = %v, %v", d, err)
	}
	if d, err := cards.ParseDirection("buy"); err != nil || d != cards.Buy {
		t.Errorf("ParseDirection(buy) = %v, %v", d, err)
	}
	if _, err := cards.ParseDirection("hold"); err == nil {
		t.Error("ParseDirection(hold) should fail")
	}
}
