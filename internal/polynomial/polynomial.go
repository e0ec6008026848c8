// Package polynomial builds monic integer polynomials from their roots and
// evaluates them exactly.
//
// A Polynomial stores its coefficients in ascending order of power: index i
// holds the coefficient of x^i. All arithmetic uses math/big; coefficients
// grow with the product of root magnitudes and are never truncated.
//
// The package exposes several interchangeable assembly strategies behind
// the Assembler interface (sequential convolution, product tree, synthetic
// recurrence). Each produces the same coefficients for any ordering of the
// same roots; the orchestration layer relies on this to cross-check them.
package polynomial

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrVerificationFailed marks a polynomial that does not vanish at one
	// of the roots it was built from. It signals an internal defect.
	ErrVerificationFailed = errors.New("polynomial verification failed")
	// ErrNotMonic marks a polynomial whose leading coefficient is not 1.
	ErrNotMonic = errors.New("polynomial is not monic")
)

// Polynomial is an immutable sequence of exact integer coefficients in
// ascending order of power. The zero value is the empty polynomial (no
// coefficients), which evaluates to 0 everywhere.
type Polynomial struct {
	coeffs []*big.Int
}

// New builds a polynomial from ascending coefficients. The values are
// copied, so later changes to the arguments do not affect the result.
func New(coeffs ...*big.Int) Polynomial {
	out := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		if c == nil {
			out[i] = new(big.Int)
			continue
		}
		out[i] = new(big.Int).Set(c)
	}
	return Polynomial{coeffs: out}
}

// FromInt64 is a convenience constructor for small coefficients.
func FromInt64(coeffs ...int64) Polynomial {
	out := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		out[i] = big.NewInt(c)
	}
	return Polynomial{coeffs: out}
}

// Parse builds a polynomial from ascending decimal coefficient strings.
func Parse(coeffs []string) (Polynomial, error) {
	out := make([]*big.Int, len(coeffs))
	for i, s := range coeffs {
		c, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
		if !ok {
			return Polynomial{}, fmt.Errorf("coefficient %d: %q is not a decimal integer", i, s)
		}
		out[i] = c
	}
	return Polynomial{coeffs: out}, nil
}

// One returns the constant polynomial 1, the product of zero factors.
func One() Polynomial {
	return Polynomial{coeffs: []*big.Int{big.NewInt(1)}}
}

// linearFactor returns x - r as the coefficient pair [-r, 1].
func linearFactor(r *big.Int) Polynomial {
	return Polynomial{coeffs: []*big.Int{new(big.Int).Neg(r), big.NewInt(1)}}
}

// Len returns the number of coefficients.
func (p Polynomial) Len() int { return len(p.coeffs) }

// Degree returns Len()-1, or -1 for the empty polynomial.
func (p Polynomial) Degree() int { return len(p.coeffs) - 1 }

// Coefficient returns a copy of the coefficient of x^i, or 0 when i is out
// of range.
func (p Polynomial) Coefficient(i int) *big.Int {
	if i < 0 || i >= len(p.coeffs) {
		return new(big.Int)
	}
	return new(big.Int).Set(p.coeffs[i])
}

// Leading returns a copy of the highest-index coefficient.
func (p Polynomial) Leading() *big.Int {
	return p.Coefficient(len(p.coeffs) - 1)
}

// IsMonic reports whether the highest-index coefficient is exactly 1.
func (p Polynomial) IsMonic() bool {
	return len(p.coeffs) > 0 && p.coeffs[len(p.coeffs)-1].Cmp(big.NewInt(1)) == 0
}

// Ascending returns copies of the coefficients, constant term first.
func (p Polynomial) Ascending() []*big.Int {
	out := make([]*big.Int, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

// Descending returns copies of the coefficients, leading term first.
func (p Polynomial) Descending() []*big.Int {
	n := len(p.coeffs)
	out := make([]*big.Int, n)
	for i, c := range p.coeffs {
		out[n-1-i] = new(big.Int).Set(c)
	}
	return out
}

// AscendingStrings returns the decimal form of each coefficient, constant
// term first.
func (p Polynomial) AscendingStrings() []string {
	out := make([]string, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.String()
	}
	return out
}

// DescendingStrings returns the decimal form of each coefficient, leading
// term first.
func (p Polynomial) DescendingStrings() []string {
	n := len(p.coeffs)
	out := make([]string, n)
	for i, c := range p.coeffs {
		out[n-1-i] = c.String()
	}
	return out
}

// Equal reports coefficient-wise equality. Polynomials of different length
// are never equal, even if the extra coefficients are zero.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if p.coeffs[i].Cmp(q.coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// MaxBitLen returns the bit length of the largest coefficient magnitude.
func (p Polynomial) MaxBitLen() int {
	max := 0
	for _, c := range p.coeffs {
		if l := c.BitLen(); l > max {
			max = l
		}
	}
	return max
}

// Multiply returns the product of p and q by exact convolution: for
// lengths m and n the result has length m+n-1 and
// product[i+j] += p[i]*q[j]. Multiplying by an empty polynomial yields the
// empty polynomial.
func Multiply(p, q Polynomial) Polynomial {
	if len(p.coeffs) == 0 || len(q.coeffs) == 0 {
		return Polynomial{}
	}
	product := make([]*big.Int, len(p.coeffs)+len(q.coeffs)-1)
	for i := range product {
		product[i] = new(big.Int)
	}
	term := new(big.Int)
	for i, a := range p.coeffs {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range q.coeffs {
			term.Mul(a, b)
			product[i+j].Add(product[i+j], term)
		}
	}
	return Polynomial{coeffs: product}
}

// FromRoots expands the monic polynomial whose roots are exactly roots,
// multiplying [1] by (x - r) for each r in order. Zero roots yield [1].
// The result is independent of the order of roots.
func FromRoots(roots []*big.Int) Polynomial {
	p := One()
	for _, r := range roots {
		p = Multiply(p, linearFactor(r))
	}
	return p
}

// EvaluateAt computes p(x) with Horner's method, from the highest-degree
// coefficient down to the constant term, starting from an accumulator of 0.
func EvaluateAt(p Polynomial, x *big.Int) *big.Int {
	acc := new(big.Int)
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p.coeffs[i])
	}
	return acc
}

// VerificationError reports a root at which the polynomial does not vanish.
type VerificationError struct {
	// Index is the position of Root in the verified root list.
	Index int
	// Root is the offending root.
	Root *big.Int
	// Residual is p(Root), non-zero.
	Residual *big.Int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%v: p(%s) = %s at root #%d, expected 0",
		ErrVerificationFailed, e.Root, e.Residual, e.Index)
}

func (e *VerificationError) Unwrap() error { return ErrVerificationFailed }

// Verify checks that p is monic of degree len(roots) and that p(r) == 0
// for every root. It returns the first violation.
func Verify(p Polynomial, roots []*big.Int) error {
	if p.Len() != len(roots)+1 {
		return fmt.Errorf("%w: degree %d, expected %d", ErrVerificationFailed, p.Degree(), len(roots))
	}
	if !p.IsMonic() {
		return fmt.Errorf("%w: %w (leading coefficient %s)", ErrVerificationFailed, ErrNotMonic, p.Leading())
	}
	for i, r := range roots {
		if v := EvaluateAt(p, r); v.Sign() != 0 {
			return &VerificationError{Index: i, Root: new(big.Int).Set(r), Residual: v}
		}
	}
	return nil
}

// String renders the polynomial in descending powers: zero coefficients
// are skipped, index 0 is the bare coefficient, index 1 is "c*x" and higher
// indices are "c*x^i". Terms are joined by " + " and "+ -" is folded into
// "- ". A polynomial with no non-zero coefficient renders as "0".
func (p Polynomial) String() string {
	terms := make([]string, 0, len(p.coeffs))
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.Sign() == 0 {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, c.String()+"*x")
		default:
			terms = append(terms, fmt.Sprintf("%s*x^%d", c, i))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.ReplaceAll(strings.Join(terms, " + "), "+ -", "- ")
}
