package render

import (
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color cube levels for xterm palette indices 16-231.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

const (
	cubeStart      = 16
	grayscaleStart = 232
)

type labColor struct {
	l, a, b float64
}

// xtermLab holds Lab coordinates for palette indices 16-255. The 16 system
// colors are skipped since terminals theme them freely.
var xtermLab = sync.OnceValue(func() *[256 - cubeStart]labColor {
	out := new([256 - cubeStart]labColor)
	for i := range out {
		r, g, b := XtermRGB(uint8(i + cubeStart))
		l, a, bb := toColorful(Color{R: r, G: g, B: b}).Lab()
		out[i] = labColor{l, a, bb}
	}
	return out
})

// XtermRGB returns the RGB value of an xterm-256 palette index >= 16.
// Indices below 16 return black.
func XtermRGB(index uint8) (r, g, b uint8) {
	switch {
	case index < cubeStart:
		return 0, 0, 0
	case index < grayscaleStart:
		n := index - cubeStart
		return cubeLevels[n/36], cubeLevels[(n%36)/6], cubeLevels[n%6]
	default:
		level := 8 + 10*(index-grayscaleStart)
		return level, level, level
	}
}

// Nearest256 returns the xterm-256 index perceptually closest to c,
// measured as squared CIE76 distance in Lab space.
func Nearest256(c Color) uint8 {
	l, a, b := toColorful(c).Lab()
	pal := xtermLab()

	best := 0
	bestDist := -1.0
	for i, p := range pal {
		dl, da, db := l-p.l, a-p.a, b-p.b
		d := dl*dl + da*da + db*db
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return uint8(best + cubeStart)
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// quantizer memoizes Nearest256 for the duration of one render call.
type quantizer map[Color]uint8

func (q quantizer) index(c Color) uint8 {
	if idx, ok := q[c]; ok {
		return idx
	}
	idx := Nearest256(c)
	q[c] = idx
	return idx
}
