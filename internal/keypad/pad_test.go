package keypad

import (
	"errors"
	"testing"

	"multicalc/internal/calc"
)

func press(p *Pad, labels ...string) Outcome {
	var out Outcome
	for _, l := range labels {
		out = p.Press(l)
	}
	return out
}

func TestPadBasicArithmetic(t *testing.T) {
	p := NewPad(calc.Basic)
	if out := press(p, "1", "2", "÷", "4", "×", "3", "="); out != OutcomeResult {
		t.Fatalf("outcome = %v, want result", out)
	}
	if p.Display() != "9" {
		t.Fatalf("display = %q, want 9", p.Display())
	}
}

func TestPadDisplayOperatorsAppendCanonicalTokens(t *testing.T) {
	p := NewPad(calc.Basic)
	press(p, "8", "÷", "2", "×", "3")
	if p.Input() != "8/2*3" {
		t.Fatalf("input = %q, want 8/2*3", p.Input())
	}
}

func TestPadScientificInsertsOpenParen(t *testing.T) {
	p := NewPad(calc.Scientific)
	press(p, "√", "1", "6", ")", "+", "log", "1", "0", "0", ")", "+", "3", "x^y", "2")
	if p.Input() != "√(16)+log(100)+3^2" {
		t.Fatalf("input = %q", p.Input())
	}
	press(p, "=")
	if p.Display() != "15" {
		t.Fatalf("display = %q, want 15", p.Display())
	}
}

func TestPadBackspaceAndClear(t *testing.T) {
	p := NewPad(calc.Scientific)
	press(p, "1", "+", "√")
	press(p, "⌫")
	if p.Input() != "1+√" {
		t.Fatalf("input = %q, want 1+√", p.Input())
	}
	press(p, "⌫", "⌫", "⌫")
	if p.Input() != "" {
		t.Fatalf("input = %q, want empty", p.Input())
	}
	if out := p.Press("⌫"); out != OutcomeNone {
		t.Fatalf("backspace on empty = %v, want none", out)
	}
	press(p, "4", "2", "C")
	if p.Input() != "" {
		t.Fatalf("input after C = %q", p.Input())
	}
}

func TestPadEqualsOnEmptyDoesNothing(t *testing.T) {
	p := NewPad(calc.Basic)
	if out := p.Press("="); out != OutcomeNone {
		t.Fatalf("outcome = %v, want none", out)
	}
	if p.Display() != "" {
		t.Fatalf("display = %q", p.Display())
	}
}

func TestPadErrorThenExpire(t *testing.T) {
	p := NewPad(calc.Basic)
	if out := press(p, "1", "÷", "0", "="); out != OutcomeError {
		t.Fatalf("outcome = %v, want error", out)
	}
	if p.Display() != calc.ErrorToken {
		t.Fatalf("display = %q, want %q", p.Display(), calc.ErrorToken)
	}
	if !errors.Is(p.Err(), calc.ErrNonFiniteResult) {
		t.Fatalf("err = %v", p.Err())
	}
	seq := p.ErrorSeq()
	if !p.Expire(seq) {
		t.Fatal("expected expire to clear the error")
	}
	if p.Display() != "" || p.Err() != nil {
		t.Fatalf("after expire display=%q err=%v", p.Display(), p.Err())
	}
	if p.Expire(seq) {
		t.Fatal("second expire should be a no-op")
	}
}

func TestPadStaleExpireKeepsNewerInput(t *testing.T) {
	p := NewPad(calc.Basic)
	press(p, "(", "=")
	stale := p.ErrorSeq()
	press(p, "7")
	if p.Display() != "7" {
		t.Fatalf("display = %q, want 7", p.Display())
	}
	if p.Expire(stale) {
		t.Fatal("expire of a dismissed error must not clear new input")
	}
	press(p, ")", "=")
	if p.Expire(stale) {
		t.Fatal("expire of an older error must not clear a newer one")
	}
	if !p.Expire(p.ErrorSeq()) {
		t.Fatal("expire of the current error should clear it")
	}
}

func TestPadResultFeedsNextExpression(t *testing.T) {
	p := NewPad(calc.Basic)
	press(p, "1", "÷", "4", "=")
	press(p, "×", "8", "=")
	if p.Display() != "2" {
		t.Fatalf("display = %q, want 2", p.Display())
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		r     rune
		mode  calc.Mode
		want  string
		found bool
	}{
		{'7', calc.Basic, "7", true},
		{'/', calc.Basic, "÷", true},
		{'*', calc.Scientific, "×", true},
		{'^', calc.Basic, "^", true},
		{'^', calc.Scientific, "x^y", true},
		{'s', calc.Scientific, "sin", true},
		{'n', calc.Scientific, "ln", true},
		{'r', calc.Scientific, "√", true},
		{'!', calc.Scientific, "!", true},
		{'s', calc.Basic, "", false},
		{'!', calc.Basic, "", false},
		{'\r', calc.Basic, "=", true},
		{'#', calc.Scientific, "", false},
	}
	for _, tt := range tests {
		got, ok := KeyFor(tt.r, tt.mode)
		if ok != tt.found || got != tt.want {
			t.Fatalf("KeyFor(%q, %v) = %q, %v; want %q, %v", tt.r, tt.mode, got, ok, tt.want, tt.found)
		}
	}
}

func TestLayoutNavigation(t *testing.T) {
	l := For(calc.Basic)
	r, c, ok := l.Find("=")
	if !ok || r != 5 || c != 1 {
		t.Fatalf("Find(=) = %d,%d,%v", r, c, ok)
	}
	// moving up from the short last row keeps the column
	r, c = l.Move(r, c, -1, 0)
	if k, _ := l.At(r, c); k.Label != "." {
		t.Fatalf("up from = lands on %q, want .", k.Label)
	}
	// moving down into the short row clamps the column
	r, c = l.Move(4, 3, 1, 0)
	if k, _ := l.At(r, c); k.Label != "=" {
		t.Fatalf("down from ) lands on %q, want =", k.Label)
	}
	if r, c = l.Move(0, 0, -1, -1); r != 0 || c != 0 {
		t.Fatalf("move past the corner = %d,%d", r, c)
	}
	if _, ok := l.At(9, 9); ok {
		t.Fatal("At outside the layout should fail")
	}
	if l.Cols() != 4 {
		t.Fatalf("Cols = %d", l.Cols())
	}
}

func TestEveryKeyIsTypeable(t *testing.T) {
	for _, mode := range []calc.Mode{calc.Basic, calc.Scientific} {
		for _, keys := range For(mode) {
			for _, k := range keys {
				p := NewPad(mode)
				p.Press(k.Label)
				if k.Label == "=" || k.Label == "C" || k.Label == "⌫" {
					continue
				}
				if p.Input() == "" {
					t.Fatalf("%v key %q appended nothing", mode, k.Label)
				}
			}
		}
	}
}
