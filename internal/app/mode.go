package app

import (
	"multicalc/internal/calc"
)

// Mode is one of the calculator panes.
type Mode int

const (
	ModeNormal Mode = iota
	ModeScientific
	ModeBMI
	ModeAge
	ModeCurrency
	modeCount
)

var modeNames = [modeCount]string{"normal", "scientific", "bmi", "age", "currency"}
var modeTitles = [modeCount]string{"Normal", "Scientific", "BMI", "Age", "Currency"}

// String is the persisted name of the mode.
func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

func (m Mode) Title() string {
	if m < 0 || m >= modeCount {
		return "?"
	}
	return modeTitles[m]
}

// ParseMode reads a persisted mode name.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return ModeNormal, false
}

// calcMode is the evaluator grammar of a calculator pane. ok is false for
// the form panes.
func (m Mode) calcMode() (calc.Mode, bool) {
	switch m {
	case ModeNormal:
		return calc.Basic, true
	case ModeScientific:
		return calc.Scientific, true
	}
	return 0, false
}
