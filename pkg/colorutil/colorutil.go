// Package colorutil provides the RGB color type and its text format.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned when a color code is not 6 hex digits.
var ErrInvalidColorFormat = errors.New("invalid color format")

// Status colors used by the UI.
var (
	Success = color.NRGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF}
	Failure = color.NRGBA{R: 0xC6, G: 0x28, B: 0x28, A: 0xFF}
)

// RGB is an 8-bit per channel color sample.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" or "RRGGBB" (case-insensitive).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q needs 6 hex digits", ErrInvalidColorFormat, s)
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q is not hex", ErrInvalidColorFormat, s)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Hex returns the color as "#RRGGBB" in upper case.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return c.Hex()
}

// Vec returns the channels as floats.
func (c RGB) Vec() [3]float64 {
	return [3]float64{float64(c.R), float64(c.G), float64(c.B)}
}

// NRGBA returns the opaque image/color value.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// FromColor converts any color.Color, dropping alpha.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// FromVec rounds each channel to the nearest integer and saturates it.
// The second result reports whether any channel was saturated.
func FromVec(v [3]float64) (RGB, bool) {
	r, cr := Clamp(v[0])
	g, cg := Clamp(v[1])
	b, cb := Clamp(v[2])
	return RGB{R: r, G: g, B: b}, cr || cg || cb
}

// Clamp rounds v and saturates it to [0,255].
func Clamp(v float64) (uint8, bool) {
	r := math.Round(v)
	switch {
	case math.IsNaN(r) || r < 0:
		return 0, true
	case r > 255:
		return 255, true
	}
	return uint8(r), false
}

// ClampInt saturates an integer channel to [0,255].
func ClampInt(v int) uint8 {
	return uint8(min(255, max(0, v)))
}

// DeltaE returns the CIE76 distance between two colors.
func (c RGB) DeltaE(other RGB) float64 {
	return c.colorful().DistanceLab(other.colorful())
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
