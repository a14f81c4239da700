package ui

// Color accessors read the active theme on every call so that InitTheme
// takes effect everywhere.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorGrey() string      { return GetCurrentTheme().Secondary }
func ColorYellow() string    { return GetCurrentTheme().Value }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorOrange() string    { return GetCurrentTheme().Warning }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorMagenta() string   { return GetCurrentTheme().Info }

// Paint wraps s in color and a reset. With the colorless theme it returns s.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
