package ui

import "strings"

// Color functions return escape codes from the current theme.

// ColorReset returns the reset escape code.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Paint wraps s in color and the reset code. With an empty color (no-color
// theme) s is returned unchanged.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + GetCurrentTheme().Reset
}

// Signed colors a decimal integer by its sign: negative values use the
// Negative color, everything else the Positive color.
func Signed(decimal string) string {
	t := GetCurrentTheme()
	if strings.HasPrefix(decimal, "-") {
		return Paint(t.Negative, decimal)
	}
	return Paint(t.Positive, decimal)
}
