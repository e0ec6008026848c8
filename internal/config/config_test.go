package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/polyroots/internal/errors"
)

var availableAlgos = []string{"convolution", "synthetic", "tree"}

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("polyroots", []string{"-input", "roots.json"}, io.Discard, availableAlgos)
	require.NoError(t, err)

	assert.Equal(t, "roots.json", cfg.InputPath)
	assert.Equal(t, "auto", cfg.InputFormat)
	assert.Equal(t, DefaultSelection, cfg.K)
	assert.Equal(t, "convolution", cfg.Algo)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultMaxRoots, cfg.MaxRoots)
	assert.False(t, cfg.JSONOutput)
	assert.False(t, cfg.Quiet)
}

func TestParseConfigAllFlags(t *testing.T) {
	t.Parallel()
	args := []string{
		"-i", "-",
		"-format", "YAML",
		"-k", "3",
		"-algo", "Tree",
		"-timeout", "10s",
		"-v", "-details",
		"-cbor",
		"-o", "out.txt",
		"-q",
		"-max-roots", "50",
		"-no-color",
	}
	cfg, err := ParseConfig("polyroots", args, io.Discard, availableAlgos)
	require.NoError(t, err)

	assert.Equal(t, "-", cfg.InputPath)
	assert.Equal(t, "yaml", cfg.InputFormat)
	assert.Equal(t, 3, cfg.K)
	assert.Equal(t, "tree", cfg.Algo)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Details)
	assert.True(t, cfg.CBOROutput)
	assert.Equal(t, "out.txt", cfg.OutputFile)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, 50, cfg.MaxRoots)
	assert.True(t, cfg.NoColor)
}

func TestParseConfigModesWithoutInput(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("polyroots", []string{"-server", "-port", "9090"}, io.Discard, availableAlgos)
	require.NoError(t, err)
	assert.True(t, cfg.ServerMode)
	assert.Equal(t, "9090", cfg.Port)

	cfg, err = ParseConfig("polyroots", []string{"-interactive", "-algo", "all"}, io.Discard, availableAlgos)
	require.NoError(t, err)
	assert.True(t, cfg.Interactive)
	assert.Equal(t, CompareAllAlgo, cfg.Algo)
}

func TestParseConfigInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", nil},
		{"unknown algorithm", []string{"-i", "a.json", "-algo", "fft"}},
		{"negative k", []string{"-i", "a.json", "-k", "-2"}},
		{"zero timeout", []string{"-i", "a.json", "-timeout", "0s"}},
		{"negative max roots", []string{"-i", "a.json", "-max-roots", "-1"}},
		{"json and cbor", []string{"-i", "a.json", "-json", "-cbor"}},
		{"unknown format", []string{"-i", "a.json", "-format", "toml"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			_, err := ParseConfig("polyroots", tt.args, &buf, availableAlgos)
			require.Error(t, err)
			assert.Contains(t, buf.String(), "Configuration error:")
		})
	}
}

func TestParseConfigUnknownFlag(t *testing.T) {
	t.Parallel()
	_, err := ParseConfig("polyroots", []string{"-fft-threshold", "1"}, io.Discard, availableAlgos)
	require.Error(t, err)
}

func TestParseConfigHelp(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := ParseConfig("polyroots", []string{"-h"}, &buf, availableAlgos)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	out := buf.String()
	assert.Contains(t, out, "Polynomial Root Reconstructor")
	assert.Contains(t, out, "-max-roots")
	assert.Contains(t, out, "POLYROOTS_")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	base := AppConfig{InputPath: "a.json", InputFormat: "auto", K: -1, Algo: "convolution", Timeout: time.Second}
	require.NoError(t, base.Validate(availableAlgos))

	invalid := base
	invalid.Algo = "matrix"
	err := invalid.Validate(availableAlgos)
	var configErr apperrors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.True(t, strings.Contains(err.Error(), "convolution, synthetic, tree"))
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("POLYROOTS_INPUT", "env.yaml")
	t.Setenv("POLYROOTS_K", "4")
	t.Setenv("POLYROOTS_ALGO", "synthetic")
	t.Setenv("POLYROOTS_TIMEOUT", "90s")
	t.Setenv("POLYROOTS_JSON", "yes")
	t.Setenv("POLYROOTS_MAX_ROOTS", "7")
	t.Setenv("POLYROOTS_DETAILS", "1")

	cfg, err := ParseConfig("polyroots", nil, io.Discard, availableAlgos)
	require.NoError(t, err)
	assert.Equal(t, "env.yaml", cfg.InputPath)
	assert.Equal(t, 4, cfg.K)
	assert.Equal(t, "synthetic", cfg.Algo)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.True(t, cfg.JSONOutput)
	assert.Equal(t, 7, cfg.MaxRoots)
	assert.True(t, cfg.Details)

	// Flags beat the environment.
	cfg, err = ParseConfig("polyroots", []string{"-k", "2", "-i", "cli.json", "-algo", "tree"}, io.Discard, availableAlgos)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.K)
	assert.Equal(t, "cli.json", cfg.InputPath)
	assert.Equal(t, "tree", cfg.Algo)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("POLYROOTS_TEST_INT", "not-a-number")
	t.Setenv("POLYROOTS_TEST_BOOL", "maybe")
	t.Setenv("POLYROOTS_TEST_DUR", "soon")
	t.Setenv("POLYROOTS_TEST_STR", "value")

	assert.Equal(t, 5, getEnvInt("TEST_INT", 5))
	assert.True(t, getEnvBool("TEST_BOOL", true))
	assert.Equal(t, time.Minute, getEnvDuration("TEST_DUR", time.Minute))
	assert.Equal(t, "value", getEnvString("TEST_STR", "default"))
	assert.Equal(t, "default", getEnvString("TEST_MISSING", "default"))
}
