// This file contains progress reporting types and utilities used by assemblers.
package polynomial

// ProgressReportThreshold is the minimum progress change between two
// reports emitted by a core assembler.
const ProgressReportThreshold = 0.01

// ProgressUpdate is a data transfer object (DTO) that encapsulates the
// progress state of an assembly. It is sent over a channel from the
// assembler to the user interface.
type ProgressUpdate struct {
	// AssemblerIndex distinguishes concurrent assemblers in comparison mode.
	AssemblerIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback core assemblers use to report progress
// without depending on channels or observers.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
type ProgressReporter func(progress float64)

// ConvolutionWork returns the work units of multiplying a running product
// by n linear factors one at a time. Step i touches i+1 coefficients, so
// the total is the triangular number n(n+1)/2.
func ConvolutionWork(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) * float64(n+1) / 2
}

// ReportStepProgress reports cumulative progress after step i (0-based) of
// a linear-factor loop over n roots. It only calls the reporter when the
// progress moved by at least ProgressReportThreshold, or on the first and
// last steps.
//
// Parameters:
//   - reporter: The callback function to report progress.
//   - lastReported: The last reported value, updated in place.
//   - i: The index of the step that just completed.
//   - n: The total number of steps.
func ReportStepProgress(reporter ProgressReporter, lastReported *float64, i, n int) {
	total := ConvolutionWork(n)
	if total == 0 {
		return
	}
	current := ConvolutionWork(i+1) / total
	if current-*lastReported >= ProgressReportThreshold || i == 0 || i == n-1 {
		reporter(current)
		*lastReported = current
	}
}
