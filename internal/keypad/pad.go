package keypad

import (
	"unicode/utf8"

	"multicalc/internal/calc"
)

// Outcome tells the caller what a key press did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeEdited
	OutcomeResult
	OutcomeError // display shows calc.ErrorToken until Expire
)

// Pad is the input state of one calculator pane: the raw expression typed so
// far, or the error token after a failed evaluation.
type Pad struct {
	mode   calc.Mode
	input  string
	failed bool
	seq    uint64
	err    error
}

func NewPad(mode calc.Mode) *Pad {
	return &Pad{mode: mode}
}

func (p *Pad) Mode() calc.Mode { return p.mode }

func (p *Pad) Input() string { return p.input }

// Display is the text the pane shows.
func (p *Pad) Display() string {
	if p.failed {
		return calc.ErrorToken
	}
	return p.input
}

// Err is the error of the last failed evaluation, nil once it expired or was
// replaced by new input.
func (p *Pad) Err() error { return p.err }

// ErrorSeq identifies the error currently shown; pass it to Expire.
func (p *Pad) ErrorSeq() uint64 { return p.seq }

// Expire clears the error token if the error identified by seq is still the
// one on display. It reports whether anything changed.
func (p *Pad) Expire(seq uint64) bool {
	if !p.failed || seq != p.seq {
		return false
	}
	p.failed = false
	p.err = nil
	p.input = ""
	return true
}

// Press applies one key of the pane's keypad.
func (p *Pad) Press(label string) Outcome {
	if p.failed {
		// any key dismisses the error and starts from empty input
		p.failed = false
		p.err = nil
		p.input = ""
		if label == "C" || label == "⌫" {
			return OutcomeEdited
		}
	}
	switch label {
	case "C":
		p.input = ""
		return OutcomeEdited
	case "⌫":
		if p.input == "" {
			return OutcomeNone
		}
		_, size := utf8.DecodeLastRuneInString(p.input)
		p.input = p.input[:len(p.input)-size]
		return OutcomeEdited
	case "=":
		return p.compute()
	}
	p.input += token(label, p.mode)
	return OutcomeEdited
}

func (p *Pad) compute() Outcome {
	if p.input == "" {
		return OutcomeNone
	}
	out, err := calc.Compute(p.input, p.mode)
	if err != nil {
		p.input = ""
		p.failed = true
		p.err = err
		p.seq++
		return OutcomeError
	}
	p.input = out
	return OutcomeResult
}

// token is the text a key appends to the raw input.
func token(label string, mode calc.Mode) string {
	switch label {
	case "÷":
		return "/"
	case "×":
		return "*"
	case "x^y":
		return "^"
	}
	if mode == calc.Scientific {
		switch label {
		case "√":
			return "√("
		case "sin", "cos", "tan", "log", "ln":
			return label + "("
		}
	}
	return label
}

// typedKeys maps typed characters to key labels they do not spell.
var typedKeys = map[rune]string{
	'/': "÷",
	'*': "×",
	's': "sin",
	'c': "cos",
	't': "tan",
	'l': "log",
	'n': "ln",
	'r': "√",
}

// KeyFor maps a typed character to the label of a key on the pane for mode,
// if that pane has such a key.
func KeyFor(r rune, mode calc.Mode) (string, bool) {
	label := string(r)
	if mapped, ok := typedKeys[r]; ok {
		label = mapped
	}
	if r == '^' && mode == calc.Scientific {
		label = "x^y"
	}
	if r == '\n' || r == '\r' {
		label = "="
	}
	if _, _, ok := For(mode).Find(label); ok {
		return label, true
	}
	return "", false
}
