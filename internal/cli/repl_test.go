package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/testutil"
)

func runREPL(t *testing.T, script string) string {
	t.Helper()
	repl := NewREPL(polynomial.NewDefaultFactory(), REPLConfig{Timeout: 5 * time.Second})
	var out bytes.Buffer
	repl.SetInput(strings.NewReader(script))
	repl.SetOutput(&out)
	repl.Start()
	return testutil.StripAnsiCodes(out.String())
}

func TestNewREPLDefaultAlgo(t *testing.T) {
	t.Parallel()
	for _, algo := range []string{"", "all"} {
		repl := NewREPL(polynomial.NewDefaultFactory(), REPLConfig{DefaultAlgo: algo})
		assert.Equal(t, polynomial.DefaultAlgorithm, repl.currentAlgo)
	}
	repl := NewREPL(polynomial.NewDefaultFactory(), REPLConfig{DefaultAlgo: "tree"})
	assert.Equal(t, "tree", repl.currentAlgo)
}

func TestREPLSession(t *testing.T) {
	t.Parallel()
	out := runREPL(t, strings.Join([]string{
		"add 1 10 4",
		"add 2 2 111",
		"add 3 10 12",
		"add 6 4 213",
		"k 3",
		"roots",
		"solve",
		"eval 12",
		"eval 5",
		"algo tree",
		"solve",
		"status",
		"exit",
	}, "\n")+"\n")

	assert.Contains(t, out, "Entry 6 added (4 entries).")
	assert.Contains(t, out, "Selection set to: 3")
	assert.Contains(t, out, "Selected roots (3 of 4):")
	assert.Contains(t, out, "P(x) = 1*x^3 - 23*x^2 + 160*x - 336")
	assert.Contains(t, out, "P(12) = 0 (root)")
	assert.Contains(t, out, "P(5) = 14\n")
	assert.Contains(t, out, "Strategy changed to: tree")
	assert.Contains(t, out, "Algorithm              : tree")
	assert.Contains(t, out, "Strategy:   tree")
	assert.Contains(t, out, "Goodbye!")
}

func TestREPLErrors(t *testing.T) {
	t.Parallel()
	out := runREPL(t, strings.Join([]string{
		"eval 3",
		"add x 10 4",
		"add 1 37 4",
		"add 01 10 4",
		"solve",
		"reset",
		"add 1 2 12",
		"solve",
		"reset",
		"add 1 10 4",
		"k 5",
		"solve",
		"k -2",
		"algo fft",
		"decode",
		"frobnicate",
	}, "\n"))

	assert.Contains(t, out, "No polynomial yet: run solve first.")
	assert.Contains(t, out, `entry "x": unknown label`)
	assert.Contains(t, out, "invalid base 37")
	assert.Contains(t, out, "duplicate label")
	assert.Contains(t, out, "invalid digit")
	assert.Contains(t, out, "selection out of range")
	assert.Contains(t, out, "Invalid value: -2")
	assert.Contains(t, out, "Unknown strategy: fft")
	assert.Contains(t, out, "Usage: decode <numeral> <base>")
	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Contains(t, out, "Goodbye!", "EOF ends the session")
}

func TestREPLDecodeLoadAndReset(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "roots.yaml")
	doc := "keys:\n  n: 3\n  k: 2\n\"1\":\n  base: 16\n  value: ff\n\"2\":\n  base: 10\n  value: \"3\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out := runREPL(t, strings.Join([]string{
		"decode FF 16",
		"decode 2 2",
		"load " + path,
		"roots",
		"solve",
		"list",
		"reset",
		"status",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "FF (base 16) = 255")
	assert.Contains(t, out, "invalid digit")
	assert.Contains(t, out, "Loaded 2 entries from "+path)
	assert.Contains(t, out, "Warning: keys.n declares 3 entries but the document has 2")
	assert.Contains(t, out, "[1] 255")
	assert.Contains(t, out, "P(x) = 1*x^2 - 258*x + 765")
	assert.Contains(t, out, "► convolution")
	assert.Contains(t, out, "Session cleared.")
	assert.Contains(t, out, "Entries:    0")
	assert.Contains(t, out, "Polynomial: no")
}
