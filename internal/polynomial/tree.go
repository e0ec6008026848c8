package polynomial

import (
	"context"
	"math/big"
	"math/bits"
)

// TreeAssembler builds a balanced product tree: the linear factors are the
// leaves and every level multiplies adjacent pairs until one polynomial is
// left. Operands at each level have similar sizes, which keeps the big
// integer products balanced for large root sets.
type TreeAssembler struct{}

// Name returns the registry name of the strategy.
func (t *TreeAssembler) Name() string {
	return "tree"
}

// AssembleCore implements coreAssembler.
func (t *TreeAssembler) AssembleCore(ctx context.Context, reporter ProgressReporter, roots []*big.Int) (Polynomial, error) {
	if len(roots) == 0 {
		return One(), nil
	}
	level := make([]Polynomial, len(roots))
	for i, r := range roots {
		level[i] = linearFactor(r)
	}

	// ceil(log2(n)) pairing rounds.
	rounds := bits.Len(uint(len(roots) - 1))
	for round := 1; len(level) > 1; round++ {
		if err := ctx.Err(); err != nil {
			return Polynomial{}, err
		}
		next := make([]Polynomial, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, Multiply(level[i], level[i+1]))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
		reporter(float64(round) / float64(rounds))
	}
	return level[0], nil
}
