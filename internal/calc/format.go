package calc

import (
	"math"
	"strconv"
)

// clampMagnitude is the absolute value past which results are rounded to
// clampDigits significant digits.
const (
	clampMagnitude = 1e15
	clampDigits    = 15
)

// Clamp rounds finite values larger than 1e15 in magnitude to 15 significant
// digits. Non-finite values come back as NaN.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	if math.Abs(v) <= clampMagnitude {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', clampDigits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Format renders v as a plain decimal with the shortest digits that parse
// back to v. The output never uses exponent notation, so it is always valid
// input for Evaluate in either mode.
func Format(v float64) string {
	if v == 0 {
		// drop the sign of negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
