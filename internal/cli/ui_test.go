package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/stretchr/testify/assert"

	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/testutil"
	"github.com/agbru/polyroots/pkg/models"
)

type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() { m.mu.Lock(); m.started = true; m.mu.Unlock() }
func (m *MockSpinner) Stop()  { m.mu.Lock(); m.stopped = true; m.mu.Unlock() }
func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	m.suffix = suffix
	m.mu.Unlock()
}

func scenarioReport() models.Report {
	return models.Report{
		Algorithm: "convolution",
		K:         3,
		Roots: []models.RootView{
			{Label: "1", Base: 10, Numeral: "4", Value: "4"},
			{Label: "2", Base: 2, Numeral: "111", Value: "7"},
			{Label: "3", Base: 10, Numeral: "12", Value: "12"},
		},
		Coefficients: []string{"-336", "160", "-23", "1"},
		Descending:   []string{"1", "-23", "160", "-336"},
		Polynomial:   "1*x^3 - 23*x^2 + 160*x - 336",
		Degree:       3,
		MaxBitLen:    9,
		Verified:     true,
		DurationMS:   1.5,
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatExecutionDuration(tt.d))
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0.0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{1.0, "██████████"},
		{1.2, "██████████"},
		{-0.1, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, progressBar(tt.progress, 10))
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	ps.Update(0, 0.5)
	ps.Update(1, 1.0)
	ps.Update(5, 1.0)
	assert.InDelta(t, 0.75, ps.CalculateAverage(), 1e-9)
	assert.Equal(t, 0.0, NewProgressState(0).CalculateAverage())
}

func TestDisplayProgress(t *testing.T) {
	mock := &MockSpinner{}
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = original }()

	var out bytes.Buffer
	var wg sync.WaitGroup
	ch := make(chan polynomial.ProgressUpdate, 4)
	wg.Add(1)
	go DisplayProgress(&wg, ch, 2, &out)
	ch <- polynomial.ProgressUpdate{AssemblerIndex: 0, Value: 0.5}
	ch <- polynomial.ProgressUpdate{AssemblerIndex: 1, Value: 1.0}
	close(ch)
	wg.Wait()

	assert.True(t, mock.started)
	assert.True(t, mock.stopped)
	assert.Contains(t, out.String(), "Avg progress: 100.00%")
	assert.Contains(t, out.String(), "ETA: < 1s")
}

func TestDisplayProgressNoAssemblers(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	var wg sync.WaitGroup
	ch := make(chan polynomial.ProgressUpdate, 1)
	ch <- polynomial.ProgressUpdate{Value: 1}
	close(ch)
	wg.Add(1)
	DisplayProgress(&wg, ch, 0, &out)
	assert.Empty(t, out.String())
}

func TestDisplayReport(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	DisplayReport(scenarioReport(), ReportOptions{Details: true}, &out)
	text := testutil.StripAnsiCodes(out.String())

	assert.Contains(t, text, "--- Selected roots (k = 3) ---")
	assert.Contains(t, text, "[2] 111 (base 2) = 7")
	assert.Contains(t, text, "Ascending : [-336, 160, -23, 1]")
	assert.Contains(t, text, "Descending: [1, -23, 160, -336]")
	assert.Contains(t, text, "P(x) = 1*x^3 - 23*x^2 + 160*x - 336")
	assert.Contains(t, text, "Degree                 : 3")
	assert.Contains(t, text, "Largest coefficient    : 9 bits, 3 digits")
	assert.Contains(t, text, "Assembly time          : 1ms")
	assert.Contains(t, text, "yes (P(r) = 0 for all 3 roots)")
	assert.NotContains(t, text, "Tip:")
}

func TestDisplayReportTruncatesLongCoefficients(t *testing.T) {
	t.Parallel()
	report := scenarioReport()
	long := strings.Repeat("9", 80)
	report.Coefficients = []string{"-" + long, "1"}
	report.Descending = []string{"1", "-" + long}
	report.Warnings = []string{"keys.n declares 10 entries but the document has 4"}

	var short, full bytes.Buffer
	DisplayReport(report, ReportOptions{}, &short)
	DisplayReport(report, ReportOptions{Verbose: true}, &full)

	shortText := testutil.StripAnsiCodes(short.String())
	assert.Contains(t, shortText, "-"+strings.Repeat("9", DisplayEdges)+"..."+strings.Repeat("9", DisplayEdges)+"(80 digits)")
	assert.Contains(t, shortText, "Tip:")
	assert.Contains(t, shortText, "Warning: keys.n declares 10 entries")
	assert.Contains(t, testutil.StripAnsiCodes(full.String()), long)
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"":        "",
		"7":       "7",
		"336":     "336",
		"1234":    "1,234",
		"-123456": "-123,456",
		"1000000": "1,000,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatNumberString(in), in)
	}
}
