package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of EnvPrefix+key, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal if unset or
// invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns EnvPrefix+key parsed as bool, or defaultVal if unset.
// Accepts "true", "1", "yes" and "false", "0", "no" (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns EnvPrefix+key parsed as a duration ("30s", "2m"),
// or defaultVal if unset or invalid.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether any of the named flags was given on the command
// line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides fills every flag left unset on the command line from its
// environment variable. Priority: flags > environment > defaults.
//
// Supported environment variables:
//   - POLYROOTS_INPUT, POLYROOTS_FORMAT, POLYROOTS_ALGO, POLYROOTS_PORT,
//     POLYROOTS_OUTPUT (string)
//   - POLYROOTS_K, POLYROOTS_MAX_ROOTS (int)
//   - POLYROOTS_TIMEOUT (duration)
//   - POLYROOTS_VERBOSE, POLYROOTS_DETAILS, POLYROOTS_JSON, POLYROOTS_CBOR,
//     POLYROOTS_QUIET, POLYROOTS_SERVER, POLYROOTS_INTERACTIVE,
//     POLYROOTS_NO_COLOR (bool)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyDurationOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "k") {
		config.K = getEnvInt("K", config.K)
	}
	if !isFlagSet(fs, "max-roots") {
		config.MaxRoots = getEnvInt("MAX_ROOTS", config.MaxRoots)
	}
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "input", "i") {
		config.InputPath = getEnvString("INPUT", config.InputPath)
	}
	if !isFlagSet(fs, "format") {
		config.InputFormat = getEnvString("FORMAT", config.InputFormat)
	}
	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output", "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	overrides := []struct {
		key   string
		flags []string
		dst   *bool
	}{
		{"VERBOSE", []string{"v"}, &config.Verbose},
		{"DETAILS", []string{"d", "details"}, &config.Details},
		{"JSON", []string{"json"}, &config.JSONOutput},
		{"CBOR", []string{"cbor"}, &config.CBOROutput},
		{"QUIET", []string{"quiet", "q"}, &config.Quiet},
		{"SERVER", []string{"server"}, &config.ServerMode},
		{"INTERACTIVE", []string{"interactive"}, &config.Interactive},
		{"NO_COLOR", []string{"no-color"}, &config.NoColor},
	}
	for _, o := range overrides {
		if !isFlagSet(fs, o.flags...) {
			*o.dst = getEnvBool(o.key, *o.dst)
		}
	}
}
