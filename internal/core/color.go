package core

// Color is a foreground color for a screen cell. The platform layer maps it
// to terminal styles.
type Color uint8

// Colors used by the escape renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorCyan
	ColorWhite
	ColorGray
	ColorDarkGray
	ColorMagenta
	ColorBrightCyan
	ColorBrightRed
	ColorAmber
)
