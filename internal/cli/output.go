package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/agbru/polyroots/internal/ui"
	"github.com/agbru/polyroots/pkg/models"
)

// OutputConfig holds configuration for report output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// Quiet prints only the rendered polynomial.
	Quiet bool
	// Verbose prints coefficients in full.
	Verbose bool
	// Details adds degree, size and timing information.
	Details bool
	// JSON prints the report as indented JSON.
	JSON bool
	// CBOR writes the report as deterministic CBOR.
	CBOR bool
}

// cborEncMode uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same report always produces identical bytes.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cli: CBOR encoder initialization failed: " + err.Error())
	}
}

// CBORRoot is a root in the CBOR report. Value is a native CBOR integer or
// bignum (tags 2 and 3).
type CBORRoot struct {
	Label   string   `cbor:"label"`
	Base    int      `cbor:"base"`
	Numeral string   `cbor:"numeral"`
	Value   *big.Int `cbor:"value"`
}

// CBORReport mirrors models.Report with exact integers instead of decimal
// strings.
type CBORReport struct {
	Algorithm    string     `cbor:"algorithm"`
	K            int        `cbor:"k"`
	Roots        []CBORRoot `cbor:"roots"`
	Coefficients []*big.Int `cbor:"coefficients"`
	Polynomial   string     `cbor:"polynomial"`
	Verified     bool       `cbor:"verified"`
}

// NewCBORReport converts the decimal strings of report to big integers.
func NewCBORReport(report models.Report) (CBORReport, error) {
	out := CBORReport{
		Algorithm:    report.Algorithm,
		K:            report.K,
		Roots:        make([]CBORRoot, len(report.Roots)),
		Coefficients: make([]*big.Int, len(report.Coefficients)),
		Polynomial:   report.Polynomial,
		Verified:     report.Verified,
	}
	for i, r := range report.Roots {
		v, ok := new(big.Int).SetString(r.Value, 10)
		if !ok {
			return CBORReport{}, fmt.Errorf("root %q: invalid value %q", r.Label, r.Value)
		}
		out.Roots[i] = CBORRoot{Label: r.Label, Base: r.Base, Numeral: r.Numeral, Value: v}
	}
	for i, c := range report.Coefficients {
		v, ok := new(big.Int).SetString(c, 10)
		if !ok {
			return CBORReport{}, fmt.Errorf("coefficient %d: invalid value %q", i, c)
		}
		out.Coefficients[i] = v
	}
	return out, nil
}

// WriteCBORReport encodes report to out in deterministic CBOR.
func WriteCBORReport(out io.Writer, report models.Report) error {
	r, err := NewCBORReport(report)
	if err != nil {
		return err
	}
	data, err := cborEncMode.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode CBOR report: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// WriteJSONReport encodes report to out as indented JSON.
func WriteJSONReport(out io.Writer, report models.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// FormatQuietResult returns the single line printed in quiet mode.
func FormatQuietResult(report models.Report) string {
	return report.Polynomial
}

// WriteReportToFile writes the report to cfg.OutputFile. The file starts
// with a commented header, followed by the JSON or CBOR encoding when one
// of those is selected (CBOR files carry no header), else plain text.
func WriteReportToFile(report models.Report, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if cfg.CBOR {
		return WriteCBORReport(file, report)
	}
	if cfg.JSON {
		return WriteJSONReport(file, report)
	}

	fmt.Fprintf(file, "# Polynomial Reconstruction Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", report.Algorithm)
	fmt.Fprintf(file, "# Roots: %s\n", strings.Join(rootValues(report.Roots), ", "))
	fmt.Fprintf(file, "# Degree: %d\n", report.Degree)
	fmt.Fprintf(file, "# Max coefficient bits: %d\n", report.MaxBitLen)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "ascending  = [%s]\n", strings.Join(report.Coefficients, ", "))
	fmt.Fprintf(file, "descending = [%s]\n", strings.Join(report.Descending, ", "))
	fmt.Fprintf(file, "P(x) = %s\n", report.Polynomial)
	return nil
}

func rootValues(views []models.RootView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Value
	}
	return out
}

// DisplayReportWithConfig prints report in the mode selected by cfg and
// saves it to cfg.OutputFile when set.
func DisplayReportWithConfig(out io.Writer, report models.Report, cfg OutputConfig) error {
	switch {
	case cfg.CBOR && cfg.OutputFile == "":
		if err := WriteCBORReport(out, report); err != nil {
			return err
		}
	case cfg.JSON:
		if err := WriteJSONReport(out, report); err != nil {
			return err
		}
	case cfg.Quiet:
		fmt.Fprintln(out, FormatQuietResult(report))
	case !cfg.CBOR:
		DisplayReport(report, ReportOptions{Verbose: cfg.Verbose, Details: cfg.Details}, out)
	}

	if cfg.OutputFile != "" {
		if err := WriteReportToFile(report, cfg); err != nil {
			return err
		}
		if !cfg.Quiet && !cfg.JSON {
			fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
