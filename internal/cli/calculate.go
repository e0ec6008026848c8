package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/polyroots/internal/config"
	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/internal/ui"
)

// GetAssemblersToRun resolves cfg.Algo to assemblers: every registered
// strategy in alphabetical order for "all", otherwise the named one.
//
// Parameters:
//   - cfg: The application configuration containing the algorithm selection.
//   - factory: The registry to retrieve assemblers from.
//
// Returns:
//   - []polynomial.Assembler: The assemblers to execute (nil if unknown).
func GetAssemblersToRun(cfg config.AppConfig, factory polynomial.AssemblerFactory) []polynomial.Assembler {
	if cfg.Algo == config.CompareAllAlgo {
		names := factory.List()
		assemblers := make([]polynomial.Assembler, 0, len(names))
		for _, name := range names {
			if a, err := factory.Get(name); err == nil {
				assemblers = append(assemblers, a)
			}
		}
		return assemblers
	}
	if a, err := factory.Get(cfg.Algo); err == nil {
		return []polynomial.Assembler{a}
	}
	return nil
}

// PrintExecutionConfig displays the input, the selection and the timeout.
func PrintExecutionConfig(cfg config.AppConfig, selected roots.Sequence, out io.Writer) {
	source := cfg.InputPath
	if source == "-" {
		source = "standard input"
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Reconstructing a degree %s%d%s polynomial from %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), len(selected), ui.ColorReset(),
		ui.ColorCyan(), source, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays whether one strategy runs or all of them are
// cross-checked.
func PrintExecutionMode(assemblers []polynomial.Assembler, out io.Writer) {
	var modeDesc string
	if len(assemblers) > 1 {
		modeDesc = "Parallel cross-check of all assembly strategies"
	} else {
		modeDesc = fmt.Sprintf("Single assembly with the %s%s%s strategy",
			ui.ColorGreen(), assemblers[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
