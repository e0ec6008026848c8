//go:build gmp

// This file provides a GMP-backed assembler, compiled only with the "gmp"
// build tag (go build -tags=gmp). It requires libgmp on the host:
//   - Linux: sudo apt-get install libgmp-dev
//   - macOS: brew install gmp

package polynomial

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	_ = RegisterAssembler("gmp", func() coreAssembler { return &GMPAssembler{} })
}

// GMPAssembler multiplies by each linear factor [-r, 1] in place on gmp.Int
// values, the in-place form of the convolution used by "synthetic".
// Inputs and outputs are converted through their decimal form, so the
// strategy only pays off when the root set is large enough for GMP's
// multiplication to dominate the conversion.
type GMPAssembler struct{}

// Name returns the registry name of the strategy.
func (g *GMPAssembler) Name() string {
	return "gmp"
}

func toGMP(x *big.Int) (*gmp.Int, error) {
	z, ok := new(gmp.Int).SetString(x.String(), 10)
	if !ok {
		return nil, fmt.Errorf("gmp: cannot convert %s", x)
	}
	return z, nil
}

func fromGMP(z *gmp.Int) (*big.Int, error) {
	x, ok := new(big.Int).SetString(z.String(), 10)
	if !ok {
		return nil, fmt.Errorf("gmp: cannot convert %s", z)
	}
	return x, nil
}

// AssembleCore implements coreAssembler.
func (g *GMPAssembler) AssembleCore(ctx context.Context, reporter ProgressReporter, roots []*big.Int) (Polynomial, error) {
	coeffs := make([]*gmp.Int, 1, len(roots)+1)
	coeffs[0] = gmp.NewInt(1)

	term := gmp.NewInt(0)
	lastReported := 0.0
	for i, root := range roots {
		select {
		case <-ctx.Done():
			return Polynomial{}, ctx.Err()
		default:
		}

		r, err := toGMP(root)
		if err != nil {
			return Polynomial{}, err
		}
		coeffs = append(coeffs, gmp.NewInt(0))
		for j := len(coeffs) - 1; j > 0; j-- {
			term.Mul(r, coeffs[j])
			coeffs[j].Sub(coeffs[j-1], term)
		}
		coeffs[0].Mul(coeffs[0], r)
		coeffs[0].Neg(coeffs[0])
		ReportStepProgress(reporter, &lastReported, i, len(roots))
	}

	out := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		v, err := fromGMP(c)
		if err != nil {
			return Polynomial{}, err
		}
		out[i] = v
	}
	return Polynomial{coeffs: out}, nil
}
