package calc

import (
	"errors"
	"math"
	"testing"
)

func TestComputeBasic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2+2", "4"},
		{"50%", "0.5"},
		{"200*10%", "20"},
		{"50%%", "0.005"},
		{"2^10", "1024"},
		{"2^3^2", "512"},
		{"2^-1", "0.5"},
		{"-2^2", "-4"},
		{"3×4÷2", "6"},
		{"7/2", "3.5"},
		{"(1+2)*3", "9"},
		{" 1 + 2 * 3 ", "7"},
		{"--3", "3"},
		{"+5", "5"},
		{".5+5.", "5.5"},
		{"0.1+0.2", "0.30000000000000004"},
		{"-0*1", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Compute(tt.in, Basic)
			if err != nil {
				t.Fatalf("Compute(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Compute(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestComputeScientific(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"√(16)", "4"},
		{"√16", "4"},
		{"√(9)+√(16)", "7"},
		{"log(100)", "2"},
		{"log(1000)", "3"},
		{"ln(1)", "0"},
		{"sin(0)", "0"},
		{"cos(0)", "1"},
		{"tan(0)", "0"},
		{"5!", "120"},
		{"0!", "1"},
		{"(2+3)!", "120"},
		{"2*3!", "12"},
		{"2^3!", "64"},
		{"3!^2", "36"},
		{"10-1!", "9"},
		{"50%", "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Compute(tt.in, Scientific)
			if err != nil {
				t.Fatalf("Compute(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Compute(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		in   string
		mode Mode
		want error
	}{
		{"2+2;", Basic, ErrInvalidCharacter},
		{"2e5", Basic, ErrInvalidCharacter},
		{"sin(0)", Basic, ErrInvalidCharacter},
		{"√(4)", Basic, ErrInvalidCharacter},
		{"5!", Basic, ErrInvalidCharacter},
		{"alert(1)", Scientific, ErrInvalidCharacter},
		{"sinh(1)", Scientific, ErrInvalidCharacter},
		{"sin 0", Scientific, ErrInvalidCharacter},
		{"Math.sqrt(4)", Scientific, ErrInvalidCharacter},
		{"x", Scientific, ErrInvalidCharacter},
		{"(2+3", Basic, ErrMalformedExpression},
		{"2+3)", Basic, ErrMalformedExpression},
		{"", Basic, ErrMalformedExpression},
		{"2+", Basic, ErrMalformedExpression},
		{"*2", Basic, ErrMalformedExpression},
		{"10%5", Basic, ErrMalformedExpression},
		{"1,2", Basic, ErrMalformedExpression},
		{"1.2.3", Basic, ErrMalformedExpression},
		{".", Basic, ErrMalformedExpression},
		{"2(3)", Basic, ErrMalformedExpression},
		{"sin()", Scientific, ErrMalformedExpression},
		{"√", Scientific, ErrMalformedExpression},
		{"1/0", Basic, ErrNonFiniteResult},
		{"0/0", Basic, ErrNonFiniteResult},
		{"1/(1-1)", Basic, ErrNonFiniteResult},
		{"10^400", Basic, ErrNonFiniteResult},
		{"ln(0)", Scientific, ErrNonFiniteResult},
		{"171!", Scientific, ErrNonFiniteResult},
		{"-1!", Scientific, ErrDomain},
		{"2.5!", Scientific, ErrDomain},
		{"3*-2!", Scientific, ErrDomain},
		{"√(-4)", Scientific, ErrDomain},
		{"log(-1)", Scientific, ErrDomain},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.in, func(t *testing.T) {
			_, err := Evaluate(tt.in, tt.mode)
			if err == nil {
				t.Fatalf("Evaluate(%q) expected error", tt.in)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Evaluate(%q) error = %v, want %v", tt.in, err, tt.want)
			}
			var ee *EvalError
			if !errors.As(err, &ee) {
				t.Fatalf("Evaluate(%q) error type %T, want *EvalError", tt.in, err)
			}
			if ee.Input != tt.in {
				t.Fatalf("EvalError.Input = %q, want %q", ee.Input, tt.in)
			}
		})
	}
}

func TestSignedFactorialOnlyFoldsAdjacentLiteral(t *testing.T) {
	// the sign is separated from the literal, so it negates the result
	got, err := Compute("- 3!", Scientific)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if got != "-6" {
		t.Fatalf("Compute(%q) = %q, want -6", "- 3!", got)
	}
}

func TestInvalidCharacterPosition(t *testing.T) {
	_, err := Evaluate("12+a", Basic)
	var ee *EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *EvalError, got %v", err)
	}
	if ee.Pos != 3 {
		t.Fatalf("Pos = %d, want 3", ee.Pos)
	}
}

func TestInvalidCharacterWinsOverMalformed(t *testing.T) {
	// both malformed and disallowed: the allow-list runs first
	_, err := Evaluate("((((#", Basic)
	if !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("error = %v, want ErrInvalidCharacter", err)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	inputs := []string{"1/3", "-7/2", "2^60", "0.1+0.2", "1234567890123456789", "2^-20", "√(2)"}
	for _, in := range inputs {
		first, err := Compute(in, Scientific)
		if err != nil {
			t.Fatalf("Compute(%q) error: %v", in, err)
		}
		for _, mode := range []Mode{Basic, Scientific} {
			second, err := Compute(first, mode)
			if err != nil {
				t.Fatalf("re-evaluating %q in %v: %v", first, mode, err)
			}
			if second != first {
				t.Fatalf("re-evaluating %q in %v = %q", first, mode, second)
			}
		}
	}
}

func TestComputeClampsLargeResults(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2123456789012345.6", "2123456789012350"},
		{"1234567890123456789", "1234567890123460000"},
		{"-1234567890123456789", "-1234567890123460000"},
		{"999999999999999", "999999999999999"},
	}
	for _, tt := range tests {
		got, err := Compute(tt.in, Basic)
		if err != nil {
			t.Fatalf("Compute(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Compute(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(12.5); got != 12.5 {
		t.Fatalf("Clamp(12.5) = %v", got)
	}
	if got := Clamp(math.Inf(1)); !math.IsNaN(got) {
		t.Fatalf("Clamp(+Inf) = %v, want NaN", got)
	}
	if got := Clamp(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("Clamp(NaN) = %v, want NaN", got)
	}
}

func TestFormatNegativeZero(t *testing.T) {
	if got := Format(math.Copysign(0, -1)); got != "0" {
		t.Fatalf("Format(-0) = %q, want 0", got)
	}
}

func TestFactorial(t *testing.T) {
	if got := factorial(10); got != 3628800 {
		t.Fatalf("factorial(10) = %v", got)
	}
	for _, n := range []float64{-1, 2.5, math.NaN()} {
		if got := factorial(n); !math.IsNaN(got) {
			t.Fatalf("factorial(%v) = %v, want NaN", n, got)
		}
	}
	if got := factorial(200); !math.IsInf(got, 1) {
		t.Fatalf("factorial(200) = %v, want +Inf", got)
	}
}
