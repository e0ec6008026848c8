// Package cli renders polyroots results for the terminal: the progress
// spinner shown while assemblers run, the text report, the quiet, JSON and
// CBOR outputs, and the interactive REPL.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/ui"
	"github.com/agbru/polyroots/pkg/models"
)

// FormatExecutionDuration formats a duration for display: microseconds
// below a millisecond, milliseconds below a second, time.Duration.String
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the digit count above which a coefficient is
	// truncated in the text report unless -v is set.
	TruncationLimit = 60
	// DisplayEdges is the number of leading and trailing digits kept when
	// a coefficient is truncated.
	DisplayEdges = 20
	// ProgressRefreshRate is the refresh period of the spinner line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a TTY.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState aggregates the progress of concurrently running
// assemblers into a single average.
type ProgressState struct {
	progresses    []float64
	numAssemblers int
}

// NewProgressState tracks numAssemblers progress values.
func NewProgressState(numAssemblers int) *ProgressState {
	return &ProgressState{
		progresses:    make([]float64, numAssemblers),
		numAssemblers: numAssemblers,
	}
}

// Update records the progress of one assembler. Out-of-range indices are
// ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress in [0, 1].
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numAssemblers == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numAssemblers)
}

// progressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0.0), 1.0)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress runs the spinner until progressChan is closed, then
// prints a final 100% line. It is meant to run in its own goroutine.
//
// Parameters:
//   - wg: Signaled when the display routine returns.
//   - progressChan: The channel receiving assembler progress updates.
//   - numAssemblers: The number of assemblers contributing to the progress.
//   - out: The writer the spinner and bar are rendered to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan polynomial.ProgressUpdate, numAssemblers int, out io.Writer) {
	defer wg.Done()
	if numAssemblers <= 0 {
		for range progressChan {
		}
		return
	}

	label := "Progress"
	if numAssemblers > 1 {
		label = "Avg progress"
	}

	state := NewProgressWithETA(numAssemblers)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.AssemblerIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label,
				FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}

// ReportOptions selects the optional parts of the text report.
type ReportOptions struct {
	// Verbose prints coefficients in full.
	Verbose bool
	// Details adds degree, size and timing information.
	Details bool
}

// DisplayReport prints the text report: the selected roots, the ascending
// and descending coefficient lists and the rendered polynomial.
func DisplayReport(report models.Report, opts ReportOptions, out io.Writer) {
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "%sWarning:%s %s\n", ui.ColorYellow(), ui.ColorReset(), w)
	}

	fmt.Fprintf(out, "\n%s--- Selected roots (k = %d) ---%s\n", ui.ColorBold(), report.K, ui.ColorReset())
	for _, r := range report.Roots {
		fmt.Fprintf(out, "  %s[%s]%s %s (base %d) = %s\n",
			ui.ColorCyan(), r.Label, ui.ColorReset(),
			truncateDigits(r.Numeral, opts.Verbose), r.Base, ui.Signed(truncateDigits(r.Value, opts.Verbose)))
	}

	fmt.Fprintf(out, "\n%s--- Coefficients ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Ascending : %s\n", formatCoefficientList(report.Coefficients, opts.Verbose))
	fmt.Fprintf(out, "Descending: %s\n", formatCoefficientList(report.Descending, opts.Verbose))

	fmt.Fprintf(out, "\n%s--- Polynomial ---%s\n", ui.ColorBold(), ui.ColorReset())
	polynomialText := report.Polynomial
	if !opts.Verbose && len(polynomialText) > TruncationLimit*4 {
		polynomialText = fmt.Sprintf("%s ... %s", polynomialText[:TruncationLimit*2], polynomialText[len(polynomialText)-TruncationLimit:])
	}
	fmt.Fprintf(out, "P(x) = %s%s%s\n", ui.ColorGreen(), polynomialText, ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Details ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Algorithm              : %s%s%s\n", ui.ColorBlue(), report.Algorithm, ui.ColorReset())
		fmt.Fprintf(out, "Degree                 : %s%d%s\n", ui.ColorCyan(), report.Degree, ui.ColorReset())
		fmt.Fprintf(out, "Largest coefficient    : %s%s%s bits, %s%s%s digits\n",
			ui.ColorCyan(), formatNumberString(fmt.Sprint(report.MaxBitLen)), ui.ColorReset(),
			ui.ColorCyan(), formatNumberString(fmt.Sprint(maxDigits(report.Coefficients))), ui.ColorReset())
		duration := time.Duration(report.DurationMS * float64(time.Millisecond))
		durationStr := FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Assembly time          : %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
		verified := ui.Paint(ui.ColorRed(), "no")
		if report.Verified {
			verified = ui.Paint(ui.ColorGreen(), fmt.Sprintf("yes (P(r) = 0 for all %d roots)", report.K))
		}
		fmt.Fprintf(out, "Verified               : %s\n", verified)
	}
	if !opts.Verbose && maxDigits(report.Coefficients) > TruncationLimit {
		fmt.Fprintf(out, "(Tip: use the %s-v%s option to display full coefficients)\n", ui.ColorYellow(), ui.ColorReset())
	}
}

func formatCoefficientList(coeffs []string, verbose bool) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = ui.Signed(truncateDigits(c, verbose))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// truncateDigits shortens a long decimal to its first and last
// DisplayEdges digits.
func truncateDigits(s string, verbose bool) string {
	digits := strings.TrimPrefix(s, "-")
	if verbose || len(digits) <= TruncationLimit {
		return s
	}
	sign := s[:len(s)-len(digits)]
	return fmt.Sprintf("%s%s...%s(%d digits)", sign, digits[:DisplayEdges], digits[len(digits)-DisplayEdges:], len(digits))
}

func maxDigits(coeffs []string) int {
	longest := 0
	for _, c := range coeffs {
		longest = max(longest, len(strings.TrimPrefix(c, "-")))
	}
	return longest
}

// formatNumberString inserts thousand separators into a decimal string.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
