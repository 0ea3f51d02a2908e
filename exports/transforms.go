package exports

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UpperText upper-cases s with full Unicode case mapping, so a single rune
// may expand ("ß" becomes "SS").
func UpperText(s string) string {
	// cases.Caser carries state and is not safe for concurrent use.
	return cases.Upper(language.Und).String(s)
}

// DoubleInteger returns v*2 with two's-complement wraparound:
// DoubleInteger(math.MaxInt32) == -2.
func DoubleInteger(v int32) int32 {
	return v * 2
}

// DoubleReal returns v*2 under IEEE-754 arithmetic. NaN and infinities
// propagate.
func DoubleReal(v float64) float64 {
	return v * 2
}
