package numeral

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		numeral string
		base    int
		want    string
	}{
		{"decimal", "4", 10, "4"},
		{"binary", "111", 2, "7"},
		{"base 4", "213", 4, "39"},
		{"hex lower", "ff", 16, "255"},
		{"hex upper", "FF", 16, "255"},
		{"hex mixed", "fF", 16, "255"},
		{"base 36", "zz", 36, "1295"},
		{"leading zeros", "000101", 2, "5"},
		{"empty", "", 10, "0"},
		{"only separators", " _-, ", 7, "0"},
		{"separators stripped", "1_000_000", 10, "1000000"},
		{"thin space stripped", "12 345", 10, "12345"},
		{"minus stripped", "-12", 10, "12"},
		{"beyond uint64", "18446744073709551616", 10, "18446744073709551616"},
		{
			"long base 3",
			"2122212201122002221120200210011020220200",
			3,
			"10788619898233492461",
		},
		{
			"base 15",
			"aed7015a346d635",
			15,
			"320923294898495900",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decode(tt.numeral, tt.base)
			if err != nil {
				t.Fatalf("Decode(%q, %d) unexpected error: %v", tt.numeral, tt.base, err)
			}
			if got.String() != tt.want {
				t.Errorf("Decode(%q, %d) = %s, want %s", tt.numeral, tt.base, got, tt.want)
			}
		})
	}
}

func TestDecodeInvalidBase(t *testing.T) {
	t.Parallel()
	for _, base := range []int{-1, 0, 1, 37, 64} {
		_, err := Decode("1", base)
		if !errors.Is(err, ErrInvalidBase) {
			t.Errorf("Decode(\"1\", %d) error = %v, want ErrInvalidBase", base, err)
		}
		var de *DecodeError
		if !errors.As(err, &de) || de.Base != base {
			t.Errorf("expected *DecodeError carrying base %d, got %#v", base, err)
		}
	}
}

func TestDecodeInvalidDigit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		numeral string
		base    int
		char    rune
		pos     int
	}{
		{"g", 16, 'g', 0},
		{"G", 16, 'G', 0},
		{"102", 2, '2', 2},
		{"1a", 10, 'a', 1},
		{"12 9", 9, '9', 2},
	}

	for _, tt := range tests {
		_, err := Decode(tt.numeral, tt.base)
		if !errors.Is(err, ErrInvalidDigit) {
			t.Fatalf("Decode(%q, %d) error = %v, want ErrInvalidDigit", tt.numeral, tt.base, err)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected *DecodeError, got %T", err)
		}
		if !strings.EqualFold(string(de.Char), string(tt.char)) {
			t.Errorf("Char = %q, want %q", de.Char, tt.char)
		}
		if de.Position != tt.pos {
			t.Errorf("Position = %d, want %d", de.Position, tt.pos)
		}
		if de.Base != tt.base {
			t.Errorf("Base = %d, want %d", de.Base, tt.base)
		}
		if !strings.Contains(err.Error(), "base") {
			t.Errorf("error message should name the base: %q", err.Error())
		}
	}
}

// TestDecodeRejectsDigitEqualToBase checks the hexadecimal rejection case: 'g' has
// digit value 16, which is not below base 16.
func TestDecodeRejectsDigitEqualToBase(t *testing.T) {
	t.Parallel()
	_, err := DecodeString("g", "16")
	if !errors.Is(err, ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}
	if !strings.Contains(err.Error(), "'g'") || !strings.Contains(err.Error(), "16") {
		t.Errorf("error should name 'g' and base 16: %q", err)
	}
}

func TestDecodeString(t *testing.T) {
	t.Parallel()
	got, err := DecodeString("213", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Int64() != 39 {
		t.Errorf("DecodeString(\"213\", \"4\") = %s, want 39", got)
	}

	for _, base := range []string{"", "ten", "1.5", "0x10", "99"} {
		_, err := DecodeString("1", base)
		if !errors.Is(err, ErrInvalidBase) {
			t.Errorf("DecodeString(\"1\", %q) error = %v, want ErrInvalidBase", base, err)
		}
	}
}

func TestParseBase(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"2", 2, false},
		{" 36 ", 36, false},
		{"16", 16, false},
		{"1", 0, true},
		{"37", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseBase(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBase(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBase(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDigitValue(t *testing.T) {
	t.Parallel()
	for i, r := range "0123456789abcdefghijklmnopqrstuvwxyz" {
		v, ok := DigitValue(r)
		if !ok || v != i {
			t.Errorf("DigitValue(%q) = %d, %v; want %d, true", r, v, ok, i)
		}
		upper := []rune(strings.ToUpper(string(r)))[0]
		if v2, _ := DigitValue(upper); v2 != i {
			t.Errorf("DigitValue(%q) = %d, want %d", upper, v2, i)
		}
	}
	for _, r := range " _-.,é " {
		if _, ok := DigitValue(r); ok {
			t.Errorf("DigitValue(%q) should not be a digit", r)
		}
	}
}

// TestDecodeProperties checks the decoder laws with generated inputs:
// case-insensitivity, the empty numeral, and agreement across bases for
// numerals denoting the same quantity.
func TestDecodeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decode is case-insensitive", prop.ForAll(
		func(v uint64, base int) bool {
			s := new(big.Int).SetUint64(v).Text(base)
			lower, err1 := Decode(strings.ToLower(s), base)
			upper, err2 := Decode(strings.ToUpper(s), base)
			plain, err3 := Decode(s, base)
			if err1 != nil || err2 != nil || err3 != nil {
				return false
			}
			return lower.Cmp(upper) == 0 && lower.Cmp(plain) == 0
		},
		gen.UInt64(),
		gen.IntRange(MinBase, MaxBase),
	))

	properties.Property("empty numeral decodes to zero", prop.ForAll(
		func(base int) bool {
			v, err := Decode("", base)
			return err == nil && v.Sign() == 0
		},
		gen.IntRange(MinBase, MaxBase),
	))

	properties.Property("same quantity in two bases decodes equal", prop.ForAll(
		func(hi, lo uint64, b1, b2 int) bool {
			x := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
			x.Or(x, new(big.Int).SetUint64(lo))
			v1, err1 := Decode(x.Text(b1), b1)
			v2, err2 := Decode(x.Text(b2), b2)
			if err1 != nil || err2 != nil {
				return false
			}
			return v1.Cmp(x) == 0 && v2.Cmp(x) == 0
		},
		gen.UInt64(),
		gen.UInt64(),
		gen.IntRange(MinBase, MaxBase),
		gen.IntRange(MinBase, MaxBase),
	))

	properties.TestingRun(t)
}

// FuzzDecode cross-checks Decode against big.Int.SetString for inputs the
// standard parser also understands.
func FuzzDecode(f *testing.F) {
	f.Add("213", 4)
	f.Add("ff", 16)
	f.Add("g", 16)
	f.Add("", 2)
	f.Add("zz_zz", 36)
	f.Add("13444211440455345511", 6)

	f.Fuzz(func(t *testing.T, s string, base int) {
		got, err := Decode(s, base)
		if base < MinBase || base > MaxBase {
			if !errors.Is(err, ErrInvalidBase) {
				t.Fatalf("base %d accepted", base)
			}
			return
		}

		stripped := Strip(s)
		if stripped == "" {
			if err != nil || got.Sign() != 0 {
				t.Fatalf("empty numeral %q: got %v, %v", s, got, err)
			}
			return
		}

		want, ok := new(big.Int).SetString(stripped, base)
		if !ok {
			if !errors.Is(err, ErrInvalidDigit) {
				t.Fatalf("Decode(%q, %d) = %v, %v; SetString rejected it", s, base, got, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("Decode(%q, %d) unexpected error: %v", s, base, err)
		}
		if got.Cmp(want) != 0 {
			t.Fatalf("Decode(%q, %d) = %s, want %s", s, base, got, want)
		}
	})
}
