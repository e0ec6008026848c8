package polynomial

import (
	"context"
	"math/big"
)

// SyntheticAssembler applies the multiplication by (x - r) directly on a
// working coefficient buffer:
//
//	c'[j] = c[j-1] - r*c[j]
//
// walking j downward so c[j-1] is still the old value when it is read.
// It avoids allocating a new product per root; the buffer is copied into a
// fresh Polynomial at the end.
type SyntheticAssembler struct{}

// Name returns the registry name of the strategy.
func (s *SyntheticAssembler) Name() string {
	return "synthetic"
}

// AssembleCore implements coreAssembler.
func (s *SyntheticAssembler) AssembleCore(ctx context.Context, reporter ProgressReporter, roots []*big.Int) (Polynomial, error) {
	coeffs := make([]*big.Int, 1, len(roots)+1)
	coeffs[0] = big.NewInt(1)

	term := new(big.Int)
	lastReported := 0.0
	for i, r := range roots {
		if err := ctx.Err(); err != nil {
			return Polynomial{}, err
		}
		coeffs = append(coeffs, new(big.Int))
		for j := len(coeffs) - 1; j > 0; j-- {
			term.Mul(r, coeffs[j])
			coeffs[j].Sub(coeffs[j-1], term)
		}
		coeffs[0].Mul(coeffs[0], r)
		coeffs[0].Neg(coeffs[0])
		ReportStepProgress(reporter, &lastReported, i, len(roots))
	}
	return Polynomial{coeffs: coeffs}, nil
}
