package render

import (
	"fmt"
	"strings"
)

// DefaultRamp orders glyphs from emptiest to fullest.
const DefaultRamp = " .:-=+*#%@"

// defaultRamp is the rune form of DefaultRamp, shared read-only.
var defaultRamp = []rune(DefaultRamp)

// Luma selects the intensity formula.
type Luma uint8

const (
	// LumaReference computes 0.2989*R + 0.5870*G + (0.1140*B)/255. Only the
	// blue term is normalized; output matches the reference renderer byte
	// for byte.
	LumaReference Luma = iota
	// LumaRec601 normalizes the whole weighted sum to [0, 1].
	LumaRec601
)

func (l Luma) String() string {
	switch l {
	case LumaReference:
		return "reference"
	case LumaRec601:
		return "rec601"
	default:
		return fmt.Sprintf("Luma(%d)", uint8(l))
	}
}

// ParseLuma accepts the names used on the command line.
func ParseLuma(s string) (Luma, error) {
	switch strings.ToLower(s) {
	case "reference", "ref", "compat":
		return LumaReference, nil
	case "rec601", "601", "corrected":
		return LumaRec601, nil
	}
	return 0, fmt.Errorf("unknown luma %q", s)
}

// Intensity returns the reference intensity of p.
func Intensity(p Pixel) float64 {
	return LumaReference.intensity(p)
}

func (l Luma) intensity(p Pixel) float64 {
	r, g, b := float64(p.R), float64(p.G), float64(p.B)
	if l == LumaRec601 {
		return (r*0.2989 + g*0.5870 + b*0.1140) / 255.0
	}
	return r*0.2989 + g*0.5870 + (b*0.1140)/255.0
}

// MaxIntensity returns the largest reference intensity in buf.
func MaxIntensity(buf *PixelBuffer) float64 {
	return maxIntensity(buf, LumaReference)
}

func maxIntensity(buf *PixelBuffer, l Luma) float64 {
	var m float64
	for _, p := range buf.Pix {
		if v := l.intensity(p); v > m {
			m = v
		}
	}
	return m
}

// GlyphFor picks the default-ramp glyph for p. Pixels with alpha at or
// below threshold render as a space.
func GlyphFor(p Pixel, threshold uint8, maxIntensity float64) rune {
	return glyphFor(p, threshold, maxIntensity, LumaReference, defaultRamp)
}

func glyphFor(p Pixel, threshold uint8, maxIntensity float64, l Luma, ramp []rune) rune {
	if p.A <= threshold {
		return ' '
	}

	var g float64
	if maxIntensity > 0 {
		g = l.intensity(p) / maxIntensity
	}

	idx := int(g * float64(len(ramp)-1))
	if idx < 0 {
		idx = 0
	} else if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}
