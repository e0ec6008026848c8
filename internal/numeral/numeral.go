// Package numeral decodes digit strings written in an arbitrary radix
// (2 through 36) into exact arbitrary-precision integers.
//
// Digits are 0-9 followed by a-z (case-insensitive) for the values 10..35.
// Characters that are neither letters nor digits are treated as formatting
// and stripped before decoding, so "1_000", "ff ff" and "1,234" are all
// accepted. Every arithmetic step uses math/big: numerals of any length
// decode without overflow.
package numeral

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	// MinBase is the smallest supported radix.
	MinBase = 2
	// MaxBase is the largest supported radix (10 digits + 26 letters).
	MaxBase = 36
)

var (
	// ErrInvalidBase is reported when a radix falls outside [MinBase, MaxBase]
	// or its textual form is not an integer.
	ErrInvalidBase = errors.New("invalid base")
	// ErrInvalidDigit is reported when a character's digit value is not
	// smaller than the radix.
	ErrInvalidDigit = errors.New("invalid digit")
)

// DecodeError describes a failed decode. It carries enough context to point
// at the offending input and unwraps to ErrInvalidBase or ErrInvalidDigit.
type DecodeError struct {
	// Kind is ErrInvalidBase or ErrInvalidDigit.
	Kind error
	// Numeral is the input as supplied by the caller.
	Numeral string
	// Base is the requested radix. For unparseable base strings it is 0
	// and BaseText holds the raw text.
	Base int
	// BaseText is the raw base text when it could not be parsed.
	BaseText string
	// Char is the rejected character (only set for ErrInvalidDigit).
	Char rune
	// Position is the index of Char in the stripped numeral.
	Position int
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrInvalidDigit):
		return fmt.Sprintf("%v: '%c' (value %d) at position %d is out of range for base %d",
			e.Kind, e.Char, digitValueOrZero(e.Char), e.Position, e.Base)
	case e.BaseText != "":
		return fmt.Sprintf("%v %q: must be an integer in [%d, %d]", e.Kind, e.BaseText, MinBase, MaxBase)
	default:
		return fmt.Sprintf("%v %d: must be in [%d, %d]", e.Kind, e.Base, MinBase, MaxBase)
	}
}

// Unwrap returns the error kind so errors.Is matches the package sentinels.
func (e *DecodeError) Unwrap() error { return e.Kind }

// ValidateBase reports whether base is an accepted radix.
//
// Parameters:
//   - base: The radix to check.
//
// Returns:
//   - error: A *DecodeError wrapping ErrInvalidBase, or nil.
func ValidateBase(base int) error {
	if base < MinBase || base > MaxBase {
		return &DecodeError{Kind: ErrInvalidBase, Base: base}
	}
	return nil
}

// ParseBase converts the external string form of a radix ("16", " 4 ")
// into an int and validates its range.
func ParseBase(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	base, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &DecodeError{Kind: ErrInvalidBase, BaseText: s}
	}
	if err := ValidateBase(base); err != nil {
		return 0, err
	}
	return base, nil
}

// DigitValue maps a single character to its digit value. Letters are
// case-insensitive. The boolean is false for anything that is not an ASCII
// letter or digit.
func DigitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10, true
	}
	return 0, false
}

func digitValueOrZero(r rune) int {
	v, _ := DigitValue(r)
	return v
}

// Strip removes every character that is not an ASCII letter or digit and
// folds the result to lower case.
func Strip(numeral string) string {
	var b strings.Builder
	b.Grow(len(numeral))
	for _, r := range numeral {
		if _, ok := DigitValue(r); ok {
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decode converts numeral, written in the given base, into an exact integer.
//
// The numeral is case-insensitive and non-alphanumeric characters are
// stripped first. An empty (post-strip) numeral decodes to 0. Digits are
// accumulated most-significant first: acc = acc*base + digit.
//
// Parameters:
//   - numeral: The digit string.
//   - base: The radix, in [MinBase, MaxBase].
//
// Returns:
//   - *big.Int: The decoded non-negative value.
//   - error: A *DecodeError wrapping ErrInvalidBase or ErrInvalidDigit.
func Decode(numeral string, base int) (*big.Int, error) {
	if err := ValidateBase(base); err != nil {
		de := err.(*DecodeError)
		de.Numeral = numeral
		return nil, de
	}

	digits := Strip(numeral)
	acc := new(big.Int)
	if digits == "" {
		return acc, nil
	}

	radix := big.NewInt(int64(base))
	digit := new(big.Int)
	for i, r := range digits {
		v, _ := DigitValue(r)
		if v >= base {
			return nil, &DecodeError{
				Kind:     ErrInvalidDigit,
				Numeral:  numeral,
				Base:     base,
				Char:     r,
				Position: i,
			}
		}
		acc.Mul(acc, radix)
		acc.Add(acc, digit.SetInt64(int64(v)))
	}
	return acc, nil
}

// DecodeString is Decode with the radix given in its external string form.
func DecodeString(numeral, base string) (*big.Int, error) {
	b, err := ParseBase(base)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Numeral = numeral
		}
		return nil, err
	}
	return Decode(numeral, b)
}
