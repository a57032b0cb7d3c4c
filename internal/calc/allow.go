package calc

import (
	"strings"
	"unicode"
)

// functionNames are the only letter runs scientific input may contain, and
// each must be followed directly by '('.
var functionNames = []string{"sin", "cos", "tan", "log", "ln"}

// checkAllowed scans the raw input against the mode's allow-list. It runs
// before any parsing so nothing outside the closed grammar ever reaches it.
func checkAllowed(input string, mode Mode) error {
	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			continue
		case strings.ContainsRune("+-*/%^().,÷×", r):
			continue
		case unicode.IsSpace(r):
			continue
		}
		if mode != Scientific {
			return newError(ErrInvalidCharacter, input, i)
		}
		switch {
		case r == '√' || r == '!':
			continue
		case isLetter(r):
			n := matchFunction(runes[i:])
			if n == 0 {
				return newError(ErrInvalidCharacter, input, i)
			}
			// skip the name; the '(' is checked on the next iteration
			i += n - 1
			continue
		}
		return newError(ErrInvalidCharacter, input, i)
	}
	return nil
}

// matchFunction returns the length of the function name at the start of rs
// when it is one of functionNames followed by '(' and not part of a longer
// letter run. It returns 0 otherwise.
func matchFunction(rs []rune) int {
	end := 0
	for end < len(rs) && isLetter(rs[end]) {
		end++
	}
	if end >= len(rs) || rs[end] != '(' {
		return 0
	}
	name := string(rs[:end])
	for _, fn := range functionNames {
		if name == fn {
			return end
		}
	}
	return 0
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
