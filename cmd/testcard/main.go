package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

var generators = map[string]func(w, h int, seed int64) *image.NRGBA{
	"gradient": gradientCard,
	"noise":    noiseCard,
	"checker":  checkerCard,
	"alpha":    alphaCard,
}

func main() {
	genType := flag.String("type", "", "card type (gradient, noise, checker, alpha)")
	seed := flag.Int64("seed", 0, "random seed for noise (0 = random)")
	size := flag.String("size", "160x80", "image size as WxH")
	out := flag.String("out", "", "output PNG file (default: stdout)")
	flag.Parse()

	gen, ok := generators[*genType]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown or missing -type %q\n", *genType)
		fmt.Fprintln(os.Stderr, "Usage: testcard -type gradient|noise|checker|alpha [-seed N] [-size WxH] [-out file.png]")
		os.Exit(1)
	}

	w, h, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	fmt.Fprintf(os.Stderr, "Generating %dx%d %s card (seed %d)...\n", w, h, *genType, *seed)

	img := gen(w, h, *seed)

	var dst io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		dst = f
	}
	if err := png.Encode(dst, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}
	if *out != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *out)
	}
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid width %q", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid height %q", parts[1])
	}
	return w, h, nil
}

// ratio maps i in [0, n) to [0, 255].
func ratio(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(i * 255 / (n - 1))
}

// gradientCard sweeps red left to right, green top to bottom.
func gradientCard(w, h int, _ int64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: ratio(x, w), G: ratio(y, h), B: 128, A: 255})
		}
	}
	return img
}

// noiseCard is terrain-like fractal noise colored by height bands.
func noiseCard(w, h int, seed int64) *image.NRGBA {
	elevation := newSimplex(seed)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			e := elevation.fbm(float64(x), float64(y), 0.03, 5)
			img.SetNRGBA(x, y, band(e))
		}
	}
	return img
}

// band colors an elevation in [0, 1].
func band(e float64) color.NRGBA {
	shade := func(base color.NRGBA) color.NRGBA {
		k := 0.6 + 0.4*e
		return color.NRGBA{
			R: uint8(math.Min(255, float64(base.R)*k)),
			G: uint8(math.Min(255, float64(base.G)*k)),
			B: uint8(math.Min(255, float64(base.B)*k)),
			A: 255,
		}
	}
	switch {
	case e < 0.35:
		return shade(color.NRGBA{R: 30, G: 60, B: 200})
	case e < 0.42:
		return shade(color.NRGBA{R: 220, G: 200, B: 120})
	case e < 0.65:
		return shade(color.NRGBA{R: 40, G: 170, B: 60})
	case e < 0.8:
		return shade(color.NRGBA{R: 120, G: 110, B: 100})
	default:
		return shade(color.NRGBA{R: 250, G: 250, B: 250})
	}
}

// checkerCard alternates two colors in 8x8 squares, the worst case for
// escape run lengths at 1:1 sampling.
func checkerCard(w, h int, _ int64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	a := color.NRGBA{R: 230, G: 40, B: 40, A: 255}
	b := color.NRGBA{R: 40, G: 40, B: 230, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/8+y/8)%2 == 0 {
				img.SetNRGBA(x, y, a)
			} else {
				img.SetNRGBA(x, y, b)
			}
		}
	}
	return img
}

// alphaCard fades alpha from 0 at the left edge to 255 at the right, for
// exercising the alpha threshold.
func alphaCard(w, h int, _ int64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 200, B: 0, A: ratio(x, w)})
		}
	}
	return img
}
