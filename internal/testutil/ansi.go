// Package testutil provides helpers shared by the test suites: ANSI
// stripping for presenter output and big-integer constructors for root
// and coefficient fixtures.
package testutil

import (
	"math/big"
	"regexp"
)

// ansiRegex matches CSI escape sequences (ESC [ ... letter).
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from a string, so colored CLI
// output can be compared against plain text.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// Big parses a decimal literal and panics on malformed input. It is meant
// for fixtures such as 26709394976508342463 that overflow int64.
func Big(decimal string) *big.Int {
	v, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		panic("testutil: invalid decimal literal " + decimal)
	}
	return v
}

// Bigs converts int64 values to big integers.
func Bigs(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return out
}

// Decimals renders big integers as decimal strings.
func Decimals(values []*big.Int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
