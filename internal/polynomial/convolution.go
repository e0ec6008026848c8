package polynomial

import (
	"context"
	"math/big"
)

// ConvolutionAssembler multiplies the running product by each linear
// factor (x - r) in root order, using the generic Multiply convolution.
// It is the reference strategy and the default.
type ConvolutionAssembler struct{}

// Name returns the registry name of the strategy.
func (c *ConvolutionAssembler) Name() string {
	return "convolution"
}

// AssembleCore implements coreAssembler.
func (c *ConvolutionAssembler) AssembleCore(ctx context.Context, reporter ProgressReporter, roots []*big.Int) (Polynomial, error) {
	p := One()
	lastReported := 0.0
	for i, r := range roots {
		if err := ctx.Err(); err != nil {
			return Polynomial{}, err
		}
		p = Multiply(p, linearFactor(r))
		ReportStepProgress(reporter, &lastReported, i, len(roots))
	}
	return p, nil
}
