// Package orchestration runs several assembly strategies side by side on
// the same roots and cross-checks their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/polyroots/internal/cli"
	"github.com/agbru/polyroots/internal/config"
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/service"
	"github.com/agbru/polyroots/internal/ui"
)

// AssemblyResult is the outcome of one assembler run.
type AssemblyResult struct {
	// Name is the strategy name.
	Name string
	// Polynomial is the assembled polynomial, the zero value on error.
	Polynomial polynomial.Polynomial
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is set when the run failed or its result did not verify.
	Err error
}

// ProgressBufferMultiplier sizes the progress channel per assembler so a
// slow terminal does not stall the assemblers.
const ProgressBufferMultiplier = 5

// ExecuteAssemblies runs every assembler concurrently on the same immutable
// roots and collects their results in input order. Progress is rendered to
// out while they run.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - assemblers: The strategies to run.
//   - values: The roots, shared read-only by every goroutine.
//   - out: The writer for the progress display (io.Discard to hide it).
//   - observers: Extra progress observers shared by every assembler.
//
// Returns:
//   - []AssemblyResult: One result per assembler.
func ExecuteAssemblies(ctx context.Context, assemblers []polynomial.Assembler, values []*big.Int, out io.Writer, observers ...polynomial.ProgressObserver) []AssemblyResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]AssemblyResult, len(assemblers))
	progressChan := make(chan polynomial.ProgressUpdate, len(assemblers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(assemblers), out)

	for i, a := range assemblers {
		i, a := i, a
		g.Go(func() error {
			start := time.Now()
			p, err := polynomial.AssembleObserved(ctx, a, progressChan, i, values, observers...)
			if err != nil {
				err = apperrors.AssemblyError{Algorithm: a.Name(), Cause: err}
			}
			results[i] = AssemblyResult{Name: a.Name(), Polynomial: p, Duration: time.Since(start), Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults compares the coefficients across strategies,
// verifies every successful polynomial at every root, prints a summary
// table when more than one strategy ran and, when everything agrees and
// verifies, the report.
//
// Disagreement between strategies takes precedence over verification
// failures: it reports ExitErrorMismatch even though the odd one out also
// fails verification.
//
// Parameters:
//   - results: The results of ExecuteAssemblies; sorted in place.
//   - base: The solution context (roots, entries, warnings) shared by all
//     strategies. Algorithm, Polynomial and Duration are filled in from the
//     fastest valid result.
//   - cfg: The application configuration (output modes).
//   - out: The writer for the summary and report.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch, ExitErrorInvariant, or the code
//     of the first failure when no strategy succeeded.
func AnalyzeComparisonResults(results []AssemblyResult, base service.Solution, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var reference *AssemblyResult
	var firstError error
	mismatch := ""
	for i := range results {
		res := &results[i]
		switch {
		case res.Err != nil:
			if firstError == nil {
				firstError = res.Err
			}
		case reference == nil:
			reference = res
		case mismatch == "" && !res.Polynomial.Equal(reference.Polynomial):
			mismatch = res.Name
		}
	}

	values := base.Roots.Values()
	var invariantErr error
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if err := polynomial.Verify(results[i].Polynomial, values); err != nil {
			results[i].Err = apperrors.NewInvariantError(apperrors.WrapError(err, "%s", results[i].Name))
			if invariantErr == nil {
				invariantErr = results[i].Err
			}
		}
	}

	summary := out
	if len(results) < 2 || cfg.Quiet || cfg.JSONOutput || cfg.CBOROutput {
		summary = io.Discard
	}
	printSummary(results, summary)

	switch {
	case reference == nil:
		fmt.Fprintf(summary, "\nGlobal Status: Failure. No strategy could assemble the polynomial.\n")
		return apperrors.HandleRunError(firstError, 0, out, cli.CLIColorProvider{})
	case mismatch != "":
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s produced different coefficients.\n", reference.Name, mismatch)
		return apperrors.ExitErrorMismatch
	case invariantErr != nil:
		fmt.Fprintf(summary, "\nGlobal Status: CRITICAL ERROR! The polynomial does not vanish at its roots.\n")
		return apperrors.HandleRunError(invariantErr, 0, out, cli.CLIColorProvider{})
	}

	fmt.Fprintf(summary, "\nGlobal Status: Success. All valid results are consistent.\n")
	sol := base
	sol.Algorithm = reference.Name
	sol.Polynomial = reference.Polynomial
	sol.Duration = reference.Duration
	err := cli.DisplayReportWithConfig(out, service.BuildReport(&sol), cli.OutputConfig{
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
		Verbose:    cfg.Verbose,
		Details:    cfg.Details,
		JSON:       cfg.JSONOutput,
		CBOR:       cfg.CBOROutput,
	})
	if err != nil {
		return apperrors.HandleRunError(err, 0, out, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

func printSummary(results []AssemblyResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sStrategy%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}
