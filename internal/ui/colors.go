package ui

// ANSI escape codes used by the Color* accessors. Kept separate from the
// theme palettes so that basic colorization works the same under every theme.
const (
	ansiRed       = "\033[31m"
	ansiGreen     = "\033[32m"
	ansiYellow    = "\033[33m"
	ansiBlue      = "\033[34m"
	ansiMagenta   = "\033[35m"
	ansiCyan      = "\033[36m"
	ansiBold      = "\033[1m"
	ansiUnderline = "\033[4m"
	ansiReset     = "\033[0m"
)

// colorize returns the given escape code, or the empty string when colors
// are disabled (NoColorTheme is active).
func colorize(code string) string {
	if GetCurrentTheme().Name == "none" {
		return ""
	}
	return code
}

// ColorRed returns the escape code for red text, or "" when colors are disabled.
func ColorRed() string { return colorize(ansiRed) }

// ColorGreen returns the escape code for green text, or "" when colors are disabled.
func ColorGreen() string { return colorize(ansiGreen) }

// ColorYellow returns the escape code for yellow text, or "" when colors are disabled.
func ColorYellow() string { return colorize(ansiYellow) }

// ColorBlue returns the escape code for blue text, or "" when colors are disabled.
func ColorBlue() string { return colorize(ansiBlue) }

// ColorMagenta returns the escape code for magenta text, or "" when colors are disabled.
func ColorMagenta() string { return colorize(ansiMagenta) }

// ColorCyan returns the escape code for cyan text, or "" when colors are disabled.
func ColorCyan() string { return colorize(ansiCyan) }

// ColorBold returns the escape code for bold text, or "" when colors are disabled.
func ColorBold() string { return colorize(ansiBold) }

// ColorUnderline returns the escape code for underlined text, or "" when colors are disabled.
func ColorUnderline() string { return colorize(ansiUnderline) }

// ColorReset returns the escape code that clears all formatting, or "" when
// colors are disabled.
func ColorReset() string { return colorize(ansiReset) }
