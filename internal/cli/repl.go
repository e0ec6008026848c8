package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/polyroots/internal/config"
	"github.com/agbru/polyroots/internal/input"
	"github.com/agbru/polyroots/internal/numeral"
	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/service"
	"github.com/agbru/polyroots/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the initial assembly strategy.
	DefaultAlgo string
	// Timeout bounds each solve.
	Timeout time.Duration
	// MaxRoots limits the selection (0 = unlimited).
	MaxRoots int
	// Verbose prints coefficients in full.
	Verbose bool
}

// REPL is an interactive session that builds a root document entry by
// entry (or loads one) and solves it on demand.
type REPL struct {
	config      REPLConfig
	factory     polynomial.AssemblerFactory
	svc         service.Service
	currentAlgo string
	doc         *input.Document
	k           int
	last        *service.Solution
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session over the strategies of factory.
func NewREPL(factory polynomial.AssemblerFactory, cfg REPLConfig) *REPL {
	currentAlgo := cfg.DefaultAlgo
	if currentAlgo == "" || currentAlgo == config.CompareAllAlgo {
		currentAlgo = polynomial.DefaultAlgorithm
	}
	return &REPL{
		config:      cfg,
		factory:     factory,
		svc:         service.NewPolynomialService(factory, cfg.MaxRoots),
		currentAlgo: currentAlgo,
		doc:         &input.Document{},
		k:           config.DefaultSelection,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until "exit" or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"poly> "+ui.ColorReset())

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		if line = strings.TrimSpace(line); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if err != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sPolynomial Root Reconstructor - Interactive Mode%s     %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	commands := [][2]string{
		{"decode <numeral> <base>", "Decode a single numeral"},
		{"add <label> <base> <numeral>", "Add a root entry"},
		{"load <file>", "Replace the entries with a JSON/JSONC/YAML document"},
		{"k <n>", "Use the first n roots (-1 uses keys.k)"},
		{"roots", "Show the decoded, selected roots"},
		{"solve", "Build and verify the polynomial"},
		{"eval <x>", "Evaluate the last polynomial at x"},
		{"algo <name>", "Change strategy (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"list", "List available strategies"},
		{"reset", "Clear every entry"},
		{"status", "Display the session state"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	}
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %s%-29s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand executes one line. It returns false when the session
// should end.
func (r *REPL) processCommand(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "decode", "d":
		r.cmdDecode(args)
	case "add":
		r.cmdAdd(args)
	case "load":
		r.cmdLoad(args)
	case "k":
		r.cmdK(args)
	case "roots", "r":
		r.cmdRoots()
	case "solve", "s":
		r.cmdSolve()
	case "eval", "e":
		r.cmdEval(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "list", "ls":
		r.cmdList()
	case "reset":
		r.doc, r.k, r.last = &input.Document{}, config.DefaultSelection, nil
		fmt.Fprintln(r.out, "Session cleared.")
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

func (r *REPL) cmdDecode(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: decode <numeral> <base>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	v, err := numeral.DecodeString(args[0], args[1])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "  %s (base %s) = %s\n", args[0], args[1], ui.Signed(v.String()))
}

func (r *REPL) cmdAdd(args []string) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintf(r.out, "%sUsage: add <label> <base> <numeral>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	value := ""
	if len(args) == 3 {
		value = args[2]
	}
	if err := r.doc.Add(args[0], args[1], value); err != nil {
		r.printError(err)
		return
	}
	r.last = nil
	fmt.Fprintf(r.out, "Entry %s%s%s added (%d entries).\n", ui.ColorCyan(), args[0], ui.ColorReset(), r.doc.RootCount())
}

func (r *REPL) cmdLoad(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: load <file>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	doc, err := input.ReadFile(args[0], input.FormatAuto)
	if err != nil {
		r.printError(err)
		return
	}
	r.doc, r.last = doc, nil
	fmt.Fprintf(r.out, "Loaded %s%d%s entries from %s.\n", ui.ColorCyan(), doc.RootCount(), ui.ColorReset(), args[0])
	for _, w := range doc.Warnings() {
		fmt.Fprintf(r.out, "%sWarning:%s %s\n", ui.ColorYellow(), ui.ColorReset(), w)
	}
}

func (r *REPL) cmdK(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: k <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	k, err := strconv.Atoi(args[0])
	if err != nil || k < config.DefaultSelection {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.k, r.last = k, nil
	fmt.Fprintf(r.out, "Selection set to: %s%s%s\n", ui.ColorGreen(), r.selectionText(), ui.ColorReset())
}

func (r *REPL) selectionText() string {
	if r.k < 0 {
		return fmt.Sprintf("document (%d)", r.doc.SelectionCount(r.k))
	}
	return strconv.Itoa(r.k)
}

func (r *REPL) cmdRoots() {
	selected, err := r.svc.Prepare(r.doc, r.k)
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "\n%sSelected roots (%d of %d):%s\n", ui.ColorBold(), len(selected), r.doc.RootCount(), ui.ColorReset())
	for _, root := range selected {
		fmt.Fprintf(r.out, "  %s[%s]%s %s\n", ui.ColorCyan(), root.Label, ui.ColorReset(), ui.Signed(root.Value.String()))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdSolve() {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	sol, err := r.svc.Solve(ctx, r.doc, r.currentAlgo, r.k)
	if err != nil {
		r.printError(err)
		return
	}
	r.last = sol
	DisplayReport(service.BuildReport(sol), ReportOptions{Verbose: r.config.Verbose, Details: true}, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdEval(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: eval <x>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if r.last == nil {
		fmt.Fprintf(r.out, "%sNo polynomial yet: run solve first.%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	v, err := r.svc.Evaluate(r.last.Polynomial.AscendingStrings(), args[0])
	if err != nil {
		r.printError(err)
		return
	}
	marker := ""
	if v.Sign() == 0 {
		marker = ui.Paint(ui.ColorGreen(), " (root)")
	}
	fmt.Fprintf(r.out, "  P(%s) = %s%s\n", args[0], ui.Signed(v.String()), marker)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if _, err := r.factory.Get(name); err != nil {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable strategies:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent session:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy:   %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Entries:    %s%d%s\n", ui.ColorCyan(), r.doc.RootCount(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Selection:  %s%s%s\n", ui.ColorCyan(), r.selectionText(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	solved := "no"
	if r.last != nil {
		solved = r.last.Polynomial.String()
	}
	fmt.Fprintf(r.out, "  Polynomial: %s%s%s\n", ui.ColorCyan(), solved, ui.ColorReset())
	fmt.Fprintln(r.out)
}
