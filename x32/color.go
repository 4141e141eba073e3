package x32

import "strings"

// Color is the scribble-strip color enum: names 0-7, inverted variants 8-15.
type Color int

const (
	ColorOff Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite

	colorInvertBit = 8
	colorMax       = 15
)

var colorNames = [...]string{
	"off", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
}

// invSuffix marks the inverted variant of a color name, e.g. "red-inv".
const invSuffix = "-inv"

// ColorFromName maps a color name, optionally with the "-inv" suffix, to its
// wire enum value.
func ColorFromName(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	inverted := strings.HasSuffix(n, invSuffix)
	n = strings.TrimSuffix(n, invSuffix)

	for i, cn := range colorNames {
		if cn == n {
			c := Color(i)
			if inverted {
				c |= colorInvertBit
			}
			return c, nil
		}
	}
	return 0, &ValidationError{What: "color name", Input: name}
}

// ColorName maps a wire enum value 0-15 back to its name.
func ColorName(n int) (string, error) {
	if n < 0 || n > colorMax {
		return "", &RangeError{What: "color", Value: n, Min: 0, Max: colorMax}
	}
	return Color(n).String(), nil
}

// Inverted returns the inverted variant of the color.
func (c Color) Inverted() Color { return c | colorInvertBit }

// IsInverted reports whether the color is an inverted variant.
func (c Color) IsInverted() bool { return c&colorInvertBit != 0 }

// Valid reports whether the value is inside the wire enum range.
func (c Color) Valid() bool { return c >= 0 && c <= colorMax }

// String implements the fmt.Stringer interface.
func (c Color) String() string {
	if !c.Valid() {
		return "invalid"
	}
	name := colorNames[c&^colorInvertBit]
	if c.IsInverted() {
		return name + invSuffix
	}
	return name
}
