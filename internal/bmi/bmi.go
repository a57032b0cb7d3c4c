// Package bmi computes body mass index from metric or imperial measurements.
package bmi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"multicalc/internal/calc"
)

// System is the unit system weight and height are given in.
type System string

const (
	Metric   System = "metric"   // kg, cm
	Imperial System = "imperial" // lb, in
)

const (
	kgPerPound = 0.45359237
	cmPerInch  = 2.54
)

var ErrInvalidInput = errors.New("invalid weight or height")

// Message is the text a pane shows for an error returned by Compute.
func Message(err error) string {
	if errors.Is(err, ErrInvalidInput) {
		return "Enter valid weight and height."
	}
	return err.Error()
}

// Result is a computed BMI and its category.
type Result struct {
	BMI      float64
	Category string
}

func (r Result) String() string {
	return fmt.Sprintf("BMI: %.1f (%s)", r.BMI, r.Category)
}

// Compute parses weight and height in the given system and returns the BMI.
func Compute(system System, weight, height string) (Result, error) {
	w, werr := strconv.ParseFloat(strings.TrimSpace(weight), 64)
	h, herr := strconv.ParseFloat(strings.TrimSpace(height), 64)
	if werr != nil || herr != nil || !(w > 0) || !(h > 0) {
		return Result{}, ErrInvalidInput
	}
	kg := w
	m := h / 100
	if system == Imperial {
		kg = w * kgPerPound
		m = h * cmPerInch / 100
	}
	v := calc.Clamp(kg / (m * m))
	if math.IsNaN(v) {
		return Result{}, ErrInvalidInput
	}
	return Result{BMI: v, Category: Classify(v)}, nil
}

// Classify maps a BMI value to its WHO weight category.
func Classify(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	}
	return "Obesity"
}
