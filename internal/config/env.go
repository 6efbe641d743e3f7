// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the NUMCORE_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable
// overrides, grouped by value kind (numeric, duration, string, bool).
var envOverrides = []envOverride{
	// Numeric overrides
	{"N", []string{"n"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.N = parsed
		}
	}},
	{"BASE", []string{"base"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Base = parsed
		}
	}},
	{"EXP", []string{"exp"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Exp = parsed
		}
	}},
	{"LOG2N", []string{"log2n"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.Log2N = uint(parsed)
		}
	}},
	{"THRESHOLD", []string{"threshold"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.ParallelThreshold = parsed
		}
	}},
	{"FFT_THRESHOLD", []string{"fft-threshold"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.FFTThreshold = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"OP", []string{"op"}, func(c *AppConfig, v string) {
		c.Operation = v
	}},
	{"BACKENDS", []string{"backends"}, func(c *AppConfig, v string) {
		c.Backends = v
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) {
		c.OutputFile = v
	}},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) {
		c.CalibrationProfile = v
	}},
	{"MEMORY_LIMIT", []string{"memory-limit"}, func(c *AppConfig, v string) {
		c.MemoryLimit = v
	}},
	{"ADDR", []string{"addr"}, func(c *AppConfig, v string) {
		c.ServerAddr = v
	}},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"DETAILS", []string{"d", "details"}, func(c *AppConfig, v string) {
		c.Details = parseBoolEnv(v, c.Details)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"CALIBRATE", []string{"calibrate"}, func(c *AppConfig, v string) {
		c.Calibrate = parseBoolEnv(v, c.Calibrate)
	}},
	{"AUTO_CALIBRATE", []string{"auto-calibrate"}, func(c *AppConfig, v string) {
		c.AutoCalibrate = parseBoolEnv(v, c.AutoCalibrate)
	}},
	{"PRINT", []string{"print", "c"}, func(c *AppConfig, v string) {
		c.ShowValue = parseBoolEnv(v, c.ShowValue)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"SERVER", []string{"server"}, func(c *AppConfig, v string) {
		c.Server = parseBoolEnv(v, c.Server)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with NUMCORE_):
//   - OP, N, BASE, EXP, LOG2N, BACKENDS, TIMEOUT, THRESHOLD,
//     FFT_THRESHOLD, VERBOSE, DETAILS, QUIET, CALIBRATE,
//     AUTO_CALIBRATE, PRINT, OUTPUT, CALIBRATION_PROFILE,
//     MEMORY_LIMIT, TUI, SERVER, ADDR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
