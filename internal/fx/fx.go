// Package fx converts amounts between a fixed set of currencies using either
// a caller supplied rate or an offline preset table.
package fx

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"multicalc/internal/calc"
)

var (
	ErrAmount   = errors.New("invalid amount")
	ErrRate     = errors.New("no usable rate")
	ErrCurrency = errors.New("unsupported currency")
)

// Message is the text a pane shows for an error from Convert.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrAmount):
		return "Enter a valid amount."
	case errors.Is(err, ErrRate):
		return "Provide a valid rate or choose a preset."
	}
	return err.Error()
}

// Codes lists the supported currencies in display order.
var Codes = []string{"USD", "EUR", "GBP", "JPY", "INR", "AUD", "CAD"}

var units = func() map[string]currency.Unit {
	m := make(map[string]currency.Unit, len(Codes))
	for _, c := range Codes {
		m[c] = currency.MustParseISO(c)
	}
	return m
}()

// Unit resolves a supported ISO 4217 code.
func Unit(code string) (currency.Unit, error) {
	u, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("%w: %q", ErrCurrency, code)
	}
	if _, ok := units[u.String()]; !ok {
		return currency.Unit{}, fmt.Errorf("%w: %s", ErrCurrency, u)
	}
	return u, nil
}

// Pair is a conversion direction.
type Pair struct {
	From, To currency.Unit
}

func (p Pair) String() string {
	return p.From.String() + "->" + p.To.String()
}

// ParsePair reads the "USD->EUR" form produced by Pair.String.
func ParsePair(s string) (Pair, error) {
	from, to, ok := strings.Cut(s, "->")
	if !ok {
		return Pair{}, fmt.Errorf("%w: pair %q", ErrCurrency, s)
	}
	f, err := Unit(from)
	if err != nil {
		return Pair{}, err
	}
	t, err := Unit(to)
	if err != nil {
		return Pair{}, err
	}
	return Pair{From: f, To: t}, nil
}

// Preset is an offline rate for one pair.
type Preset struct {
	Pair Pair
	Rate float64
}

func (p Preset) String() string {
	return fmt.Sprintf("%s (%s)", p.Pair, calc.Format(p.Rate))
}

func preset(from, to string, rate float64) Preset {
	return Preset{Pair: Pair{From: units[from], To: units[to]}, Rate: rate}
}

// Presets are the offline rates in display order.
var Presets = []Preset{
	preset("USD", "EUR", 0.92),
	preset("EUR", "USD", 1.09),
	preset("USD", "INR", 83.0),
	preset("INR", "USD", 0.012),
	preset("USD", "JPY", 150),
	preset("JPY", "USD", 0.0067),
	preset("GBP", "EUR", 1.15),
	preset("EUR", "GBP", 0.87),
}

// PresetRate returns the offline rate for p, if there is one.
func PresetRate(p Pair) (float64, bool) {
	for _, pr := range Presets {
		if pr.Pair == p {
			return pr.Rate, true
		}
	}
	return 0, false
}

// Request is a conversion as entered on the currency pane.
type Request struct {
	Amount string
	From   string
	To     string
	Rate   string // custom rate; blank or non-positive falls back to presets
}

// Swap exchanges the currencies of r.
func (r Request) Swap() Request {
	r.From, r.To = r.To, r.From
	return r
}

// Result is a completed conversion.
type Result struct {
	Amount    float64
	Converted float64
	Rate      float64
	Pair      Pair
}

var printer = message.NewPrinter(language.English)

// String renders the result with two decimals and digit grouping. A
// same-currency result shows only the amount.
func (r Result) String() string {
	from, to := r.Pair.From.String(), r.Pair.To.String()
	if from == to {
		return printer.Sprintf("%.2f %s", r.Amount, to)
	}
	return printer.Sprintf("%.2f %s → %.2f %s @ %s",
		r.Amount, from, r.Converted, to, calc.Format(r.Rate))
}

// Convert validates req and converts its amount. A positive custom rate wins
// over the preset for the pair.
func Convert(req Request) (Result, error) {
	amount, ok := parsePositive(req.Amount, true)
	if !ok {
		return Result{}, ErrAmount
	}
	from, err := Unit(req.From)
	if err != nil {
		return Result{}, err
	}
	to, err := Unit(req.To)
	if err != nil {
		return Result{}, err
	}
	pair := Pair{From: from, To: to}
	if from == to {
		return Result{Amount: amount, Converted: amount, Rate: 1, Pair: pair}, nil
	}

	rate, ok := parsePositive(req.Rate, false)
	if !ok {
		if rate, ok = PresetRate(pair); !ok {
			return Result{}, fmt.Errorf("%w for %s", ErrRate, pair)
		}
	}
	return Result{Amount: amount, Converted: amount * rate, Rate: rate, Pair: pair}, nil
}

// parsePositive parses a finite number greater than zero, or greater than or
// equal to zero when zeroOK is set.
func parsePositive(s string, zeroOK bool) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v > 0 {
		return v, true
	}
	if zeroOK && v == 0 {
		return 0, true
	}
	return 0, false
}
