package keypad

import (
	"multicalc/internal/calc"
)

// Key is a single button on a calculator pane.
type Key struct {
	Label string
}

// Layout is a keypad as rows of keys. Rows may have different lengths.
type Layout [][]Key

func row(labels ...string) []Key {
	keys := make([]Key, len(labels))
	for i, l := range labels {
		keys[i] = Key{Label: l}
	}
	return keys
}

var basicLayout = Layout{
	row("C", "⌫", "%", "÷"),
	row("7", "8", "9", "×"),
	row("4", "5", "6", "-"),
	row("1", "2", "3", "+"),
	row("0", ".", "(", ")"),
	row("^", "="),
}

var scientificLayout = Layout{
	row("sin", "cos", "tan", "log"),
	row("ln", "√", "x^y", "!"),
	row("C", "⌫", "(", ")"),
	row("7", "8", "9", "÷"),
	row("4", "5", "6", "×"),
	row("1", "2", "3", "-"),
	row("0", ".", "%", "+"),
	row("="),
}

// For returns the keypad of the pane evaluating in mode.
func For(mode calc.Mode) Layout {
	if mode == calc.Scientific {
		return scientificLayout
	}
	return basicLayout
}

// At returns the key at 0-based (row, col).
func (l Layout) At(r, c int) (Key, bool) {
	if r < 0 || r >= len(l) || c < 0 || c >= len(l[r]) {
		return Key{}, false
	}
	return l[r][c], true
}

// Find returns the position of the key with the given label.
func (l Layout) Find(label string) (int, int, bool) {
	for r, keys := range l {
		for c, k := range keys {
			if k.Label == label {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Cols is the length of the longest row.
func (l Layout) Cols() int {
	n := 0
	for _, keys := range l {
		if len(keys) > n {
			n = len(keys)
		}
	}
	return n
}

// Move steps (r, c) by (dr, dc), keeping the result on a key. Moving into a
// shorter row lands on its last key.
func (l Layout) Move(r, c, dr, dc int) (int, int) {
	if len(l) == 0 {
		return 0, 0
	}
	r = clamp(r+dr, 0, len(l)-1)
	c = clamp(c+dc, 0, len(l[r])-1)
	return r, c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
