package apperrors

import (
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies terminal color codes. It keeps this package free
// of a dependency on the cli package.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Red() string    { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleRunError prints a status line describing why a run failed and
// returns the matching exit code.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: How long the run took before it failed (0 to omit).
//   - out: The io.Writer to which the status line is written.
//   - colors: Provider for terminal color codes (can be nil for no colors).
//
// Returns:
//   - int: The exit code for the error class (see ExitCode).
func HandleRunError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	code := ExitCode(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
	case ExitErrorInput:
		fmt.Fprintf(out, "Status: Invalid input. %v\n", err)
	case ExitErrorInvariant:
		fmt.Fprintf(out, "%sStatus: Internal error.%s %v\n", colors.Red(), colors.Reset(), err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Status: Configuration error. %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
