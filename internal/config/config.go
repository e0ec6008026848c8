// Package config provides the configuration management for the polyroots
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments and environment overrides, and
// validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/input"
	"github.com/agbru/polyroots/internal/polynomial"
)

const (
	// EnvPrefix is the prefix for all environment variables used by polyroots.
	EnvPrefix = "POLYROOTS_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultTimeout is the default run timeout.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo is the default assembly strategy.
	DefaultAlgo = polynomial.DefaultAlgorithm
	// CompareAllAlgo runs every registered strategy and cross-checks them.
	CompareAllAlgo = "all"
	// DefaultSelection means "take k from the document".
	DefaultSelection = -1
	// DefaultMaxRoots bounds the number of selected roots (0 disables the limit).
	DefaultMaxRoots = 10_000
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags and POLYROOTS_* environment variables.
type AppConfig struct {
	// InputPath is the input document ("-" reads standard input).
	InputPath string
	// InputFormat is "auto", "json", "jsonc" or "yaml".
	InputFormat string
	// K overrides the document's selection count when >= 0.
	K int
	// Algo is an assembly strategy name, or "all" for a comparison run.
	Algo string
	// Timeout sets the maximum duration of a run.
	Timeout time.Duration
	// Verbose prints full coefficients instead of truncating them and
	// enables debug logging.
	Verbose bool
	// Details adds degree, coefficient sizes and timings to the report.
	Details bool
	// JSONOutput prints the report as JSON.
	JSONOutput bool
	// CBOROutput writes the report as deterministic CBOR.
	CBOROutput bool
	// OutputFile, if specified, saves the report to this file path.
	OutputFile string
	// Quiet prints only the rendered polynomial.
	Quiet bool
	// ServerMode starts the HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// MaxRoots limits the number of selected roots (0 = unlimited).
	MaxRoots int
	// Interactive starts the REPL.
	Interactive bool
	// NoColor disables colored output. NO_COLOR is honored as well.
	NoColor bool
	// Completion, if set, prints a completion script for the named shell
	// ("bash", "zsh", "fish" or "powershell") and exits.
	Completion string
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableAlgos: The registered assembly strategy names.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.K < DefaultSelection {
		return apperrors.NewConfigError("selection count cannot be negative: %d", c.K)
	}
	if c.MaxRoots < 0 {
		return apperrors.NewConfigError("max roots cannot be negative: %d", c.MaxRoots)
	}
	if c.JSONOutput && c.CBOROutput {
		return apperrors.NewConfigError("-json and -cbor are mutually exclusive")
	}
	if c.InputPath == "" && !c.ServerMode && !c.Interactive && c.Completion == "" {
		return apperrors.NewConfigError("an input document is required (-input), unless -server or -interactive is set")
	}
	if _, err := input.ParseFormat(c.InputFormat); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != CompareAllAlgo && !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// environment overrides for the flags left unset, and validates the result.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//   - availableAlgos: The valid algorithm names.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp for -h, a parse error, or "invalid configuration".
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Assembly strategy: one of [%s], or 'all' to cross-check them.", strings.Join(availableAlgos, ", "))
	formatHelp := fmt.Sprintf("Input format: one of [%s].", strings.Join(input.Formats(), ", "))

	config := AppConfig{}
	fs.StringVar(&config.InputPath, "input", "", "Input document with the encoded roots ('-' for stdin).")
	fs.StringVar(&config.InputPath, "i", "", "Input document (shorthand).")
	fs.StringVar(&config.InputFormat, "format", string(input.FormatAuto), formatHelp)
	fs.IntVar(&config.K, "k", DefaultSelection, "Number of roots to use (-1 reads keys.k from the document).")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Verbose, "v", false, "Display full coefficients and debug logs.")
	fs.BoolVar(&config.Details, "d", false, "Display degree, coefficient sizes and timings.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output the report in JSON format.")
	fs.BoolVar(&config.CBOROutput, "cbor", false, "Output the report in deterministic CBOR format.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the report.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: print only the polynomial.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.IntVar(&config.MaxRoots, "max-roots", DefaultMaxRoots, "Maximum number of selected roots (0 for no limit).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.InputFormat = strings.ToLower(config.InputFormat)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
