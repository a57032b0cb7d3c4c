package calc

import (
	"math"
)

// node is one element of a parsed expression tree. The set of node types is
// closed: numbers, sign, the four binary operators plus power, the percent
// and factorial postfixes, and the fixed function table.
type node interface {
	eval() (float64, error)
}

type numberNode struct {
	val float64
}

func (n numberNode) eval() (float64, error) { return n.val, nil }

type unaryNode struct {
	op rune
	x  node
}

func (n unaryNode) eval() (float64, error) {
	v, err := n.x.eval()
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -v, nil
	}
	return v, nil
}

type binaryNode struct {
	op          rune
	left, right node
	pos         int
}

func (n binaryNode) eval() (float64, error) {
	l, err := n.left.eval()
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval()
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		v := l / r
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, newError(ErrNonFiniteResult, "", n.pos)
		}
		return v, nil
	case '^':
		return math.Pow(l, r), nil
	}
	return 0, newError(ErrMalformedExpression, "", n.pos)
}

type postfixNode struct {
	op  rune // '%' or '!'
	x   node
	pos int
}

func (n postfixNode) eval() (float64, error) {
	v, err := n.x.eval()
	if err != nil {
		return 0, err
	}
	if n.op == '%' {
		return v / 100, nil
	}
	f := factorial(v)
	if math.IsNaN(f) {
		return 0, newError(ErrDomain, "", n.pos)
	}
	return f, nil
}

// maxFactorial is the largest n whose factorial fits in a float64.
const maxFactorial = 170

// factorial is defined for non-negative integers only and returns NaN
// elsewhere. Results past maxFactorial are +Inf.
func factorial(n float64) float64 {
	if math.IsNaN(n) || n < 0 || n != math.Trunc(n) {
		return math.NaN()
	}
	if n > maxFactorial {
		return math.Inf(1)
	}
	acc := 1.0
	for i := 2.0; i <= n; i++ {
		acc *= i
	}
	return acc
}

var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"log":  log10,
	"ln":   math.Log,
	"sqrt": math.Sqrt,
}

type callNode struct {
	fn  string
	arg node
	pos int
}

func (n callNode) eval() (float64, error) {
	v, err := n.arg.eval()
	if err != nil {
		return 0, err
	}
	f, ok := functions[n.fn]
	if !ok {
		return 0, newError(ErrMalformedExpression, "", n.pos)
	}
	out := f(v)
	if math.IsNaN(out) && !math.IsNaN(v) {
		return 0, newError(ErrDomain, "", n.pos)
	}
	return out, nil
}

// log10 returns exact integers for exact powers of ten, which math.Log10 does
// not guarantee.
func log10(x float64) float64 {
	l := math.Log10(x)
	if r := math.Round(l); !math.IsInf(l, 0) && !math.IsNaN(l) && math.Pow10(int(r)) == x {
		return r
	}
	return l
}
