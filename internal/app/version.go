package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build metadata, overridden at link time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// HasVersionFlag reports whether args request the version banner. It is
// checked before flag parsing so -version works even alongside invalid
// flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "numcalc %s (commit %s, built %s, %s %s/%s)\n",
		Version, Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
