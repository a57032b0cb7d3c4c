package calc

import (
	"errors"
	"math"
	"strconv"
	"unicode"
)

// Mode selects the grammar a pane evaluates with.
type Mode int

const (
	Basic Mode = iota
	Scientific
)

func (m Mode) String() string {
	if m == Scientific {
		return "scientific"
	}
	return "basic"
}

// Evaluate checks input against the mode's allow-list, parses it into an
// expression tree and evaluates the tree. Failures are *EvalError.
func Evaluate(input string, mode Mode) (float64, error) {
	if err := checkAllowed(input, mode); err != nil {
		return 0, err
	}
	p := parser{
		input: []rune(input),
		mode:  mode,
	}
	root, err := p.parseExpr()
	if err != nil {
		return 0, withInput(err, input)
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, newError(ErrMalformedExpression, input, p.pos)
	}
	val, err := root.eval()
	if err != nil {
		return 0, withInput(err, input)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, newError(ErrNonFiniteResult, input, -1)
	}
	return Clamp(val), nil
}

// Compute evaluates input and renders the result for a display.
func Compute(input string, mode Mode) (string, error) {
	v, err := Evaluate(input, mode)
	if err != nil {
		return "", err
	}
	return Format(v), nil
}

func withInput(err error, input string) error {
	var ee *EvalError
	if errors.As(err, &ee) {
		ee.Input = input
		return ee
	}
	return err
}

type parser struct {
	input []rune
	pos   int
	mode  Mode
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

// peek returns the next non-space rune, or 0 at the end of input.
func (p *parser) peek() rune {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) malformed() error {
	return newError(ErrMalformedExpression, "", p.pos)
}

func (p *parser) parseExpr() (node, error) {
	return p.parseAddSub()
}

func (p *parser) parseAddSub() (node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		pos := p.pos
		p.pos++
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right, pos: pos}
	}
}

func (p *parser) parseMulDiv() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		switch op {
		case '*', '×':
			op = '*'
		case '/', '÷':
			op = '/'
		default:
			return left, nil
		}
		pos := p.pos
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right, pos: pos}
	}
}

func (p *parser) parseUnary() (node, error) {
	switch p.peek() {
	case '+':
		p.pos++
		return p.parseUnary()
	case '-':
		p.pos++
		// a sign written directly against a factorial literal belongs to it
		adjacent := p.pos < len(p.input) && isNumberStart(p.input[p.pos])
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if adjacent {
			if f, ok := x.(postfixNode); ok && f.op == '!' {
				if n, ok := f.x.(numberNode); ok {
					f.x = numberNode{val: -n.val}
					return f, nil
				}
			}
		}
		return unaryNode{op: '-', x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	pos := p.pos
	p.pos++
	// right associative: the exponent may itself be signed or a power
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binaryNode{op: '^', left: base, right: exp, pos: pos}, nil
}

func (p *parser) parsePostfix() (node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op == '%' || (op == '!' && p.mode == Scientific) {
			x = postfixNode{op: op, x: x, pos: p.pos}
			p.pos++
			continue
		}
		return x, nil
	}
}

func (p *parser) parsePrimary() (node, error) {
	ch := p.peek()
	switch {
	case ch == 0:
		return nil, p.malformed()
	case ch == '(':
		p.pos++
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.malformed()
		}
		p.pos++
		return x, nil
	case isNumberStart(ch):
		return p.parseNumber()
	case ch == '√' && p.mode == Scientific:
		pos := p.pos
		p.pos++
		arg, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return callNode{fn: "sqrt", arg: arg, pos: pos}, nil
	case isLetter(ch) && p.mode == Scientific:
		return p.parseCall()
	}
	return nil, p.malformed()
}

func (p *parser) parseNumber() (node, error) {
	start := p.pos
	j := p.pos
	seenDot := false
	digits := 0
	for j < len(p.input) {
		c := p.input[j]
		if isDigit(c) {
			digits++
			j++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			j++
			continue
		}
		break
	}
	if digits == 0 {
		return nil, p.malformed()
	}
	v, err := strconv.ParseFloat(string(p.input[start:j]), 64)
	if err != nil {
		return nil, newError(ErrMalformedExpression, "", start)
	}
	p.pos = j
	return numberNode{val: v}, nil
}

// parseCall reads NAME '(' expr ')' for the fixed function table.
func (p *parser) parseCall() (node, error) {
	start := p.pos
	j := p.pos
	for j < len(p.input) && isLetter(p.input[j]) {
		j++
	}
	name := string(p.input[start:j])
	fn := ""
	switch name {
	case "sin", "cos", "tan", "log", "ln":
		fn = name
	default:
		return nil, newError(ErrInvalidCharacter, "", start)
	}
	p.pos = j
	if p.pos >= len(p.input) || p.input[p.pos] != '(' {
		return nil, p.malformed()
	}
	p.pos++
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek() != ')' {
		return nil, p.malformed()
	}
	p.pos++
	return callNode{fn: fn, arg: arg, pos: start}, nil
}

func isNumberStart(r rune) bool {
	return isDigit(r) || r == '.'
}
