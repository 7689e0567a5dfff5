package calculator

import (
	"errors"
	"strconv"
	"strings"
)

// ParseNumber reads a decimal literal supplied for field, as typed into a form
// or a CSV cell. Empty, non-numeric, NaN and Inf text are NotANumber.
//
// Literals too large for a float64 come back as ±Inf so the field's own rule
// rejects them; literals too small come back as zero.
func ParseNumber(field, text string) (float64, *ValidationError) {
	text = strings.TrimSpace(text)
	if text == "" || !isDecimalLiteral(text) {
		return 0, NotANumber(field)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, NotANumber(field)
	}
	return v, nil
}

// isDecimalLiteral rejects the spellings strconv accepts beyond plain decimal
// notation: NaN, Inf, hex floats and digit separators.
func isDecimalLiteral(text string) bool {
	for _, c := range text {
		switch {
		case c >= '0' && c <= '9':
		case c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}
