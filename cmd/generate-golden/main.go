// Command generate-golden writes internal/polynomial/testdata/polynomial_golden.json.
//
// The coefficients come from an oracle that shares no code with the
// assemblers: the coefficient of x^(k-j) is (-1)^j times the j-th
// elementary symmetric polynomial of the roots, summed by enumerating every
// subset. Numerals are decoded with big.Int.SetString.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"math/bits"
	"os"
	"path/filepath"
	"strings"
)

// GoldenData is a single case of the golden file.
type GoldenData struct {
	Name         string   `json:"name"`
	Roots        []string `json:"roots"`
	Coefficients []string `json:"coefficients"`
	Rendered     string   `json:"rendered"`
}

type numeral struct {
	digits string
	base   int
}

// The sample document of internal/input/testdata/large.json, labels 1-10.
var largeSample = []numeral{
	{"13444211440455345511", 6},
	{"aed7015a346d635", 15},
	{"6aeeb69631c227c", 15},
	{"e1b5e05623d881f", 16},
	{"316034514573652620673", 8},
	{"2122212201122002221120200210011020220200", 3},
	{"20120221122211000100210021102001201112121", 3},
	{"20220554335330240002224253", 6},
	{"45153788322a1255483", 12},
	{"1101613130313526312514143", 7},
}

func main() {
	outputDir := flag.String("out", "internal/polynomial/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	large, err := decodeAll(largeSample)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding sample: %v\n", err)
		os.Exit(1)
	}

	cases := []struct {
		name  string
		roots []*big.Int
	}{
		{"no roots", nil},
		{"single zero", ints(0)},
		{"single root", ints(5)},
		{"scenario", ints(4, 7, 12)},
		{"scenario all", ints(4, 7, 12, 39)},
		{"repeated", ints(2, 2)},
		{"triple zero", ints(0, 0, 0)},
		{"consecutive", ints(1, 2, 3, 4, 5)},
		{"mixed magnitude", []*big.Int{new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil), big.NewInt(3), big.NewInt(0)}},
		{"large first seven", large[:7]},
		{"large all ten", large},
	}

	fmt.Println("Generating golden data...")
	data := make([]GoldenData, 0, len(cases))
	for _, c := range cases {
		coeffs := symmetricCoefficients(c.roots)
		data = append(data, GoldenData{
			Name:         c.name,
			Roots:        decimals(c.roots),
			Coefficients: decimals(coeffs),
			Rendered:     render(coeffs),
		})
		fmt.Printf("Generated %q (degree %d)\n", c.name, len(c.roots))
	}

	filename := filepath.Join(*outputDir, "polynomial_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

func decodeAll(numerals []numeral) ([]*big.Int, error) {
	out := make([]*big.Int, len(numerals))
	for i, n := range numerals {
		v, ok := new(big.Int).SetString(n.digits, n.base)
		if !ok {
			return nil, fmt.Errorf("cannot decode %q in base %d", n.digits, n.base)
		}
		out[i] = v
	}
	return out, nil
}

// symmetricCoefficients returns the ascending coefficients of the monic
// polynomial with the given roots. Exponential in len(roots).
func symmetricCoefficients(roots []*big.Int) []*big.Int {
	k := len(roots)
	elementary := make([]*big.Int, k+1)
	for j := range elementary {
		elementary[j] = new(big.Int)
	}
	for mask := uint64(0); mask < 1<<k; mask++ {
		product := big.NewInt(1)
		for i := 0; i < k; i++ {
			if mask&(1<<i) != 0 {
				product.Mul(product, roots[i])
			}
		}
		elementary[bits.OnesCount64(mask)].Add(elementary[bits.OnesCount64(mask)], product)
	}

	coeffs := make([]*big.Int, k+1)
	for j := 0; j <= k; j++ {
		c := new(big.Int).Set(elementary[j])
		if j%2 == 1 {
			c.Neg(c)
		}
		coeffs[k-j] = c
	}
	return coeffs
}

// render writes the descending sum form, "1*x^3 - 23*x^2 + 160*x - 336".
func render(coeffs []*big.Int) string {
	var b strings.Builder
	for i := len(coeffs) - 1; i >= 0; i-- {
		c := coeffs[i]
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Int).Abs(c).String()
		switch {
		case b.Len() == 0 && c.Sign() < 0:
			b.WriteString("-" + abs)
		case b.Len() == 0:
			b.WriteString(abs)
		case c.Sign() < 0:
			b.WriteString(" - " + abs)
		default:
			b.WriteString(" + " + abs)
		}
		switch i {
		case 0:
		case 1:
			b.WriteString("*x")
		default:
			fmt.Fprintf(&b, "*x^%d", i)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

func ints(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return out
}

func decimals(values []*big.Int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
