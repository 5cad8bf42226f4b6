package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"pixelglyph/internal/gallery"
	"pixelglyph/internal/render"
)

const defaultWidth = 80

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: gallerytools validate <gallery-dir>")
			os.Exit(1)
		}
		os.Exit(runValidate(os.Stdout, args[0]))
	case "viz":
		path, width := fileArgs("viz", args)
		os.Exit(runViz(os.Stdout, path, width))
	case "stats":
		path, width := fileArgs("stats", args)
		os.Exit(runStats(os.Stdout, path, width))
	case "all":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: gallerytools all <gallery-dir>")
			os.Exit(1)
		}
		os.Exit(runAll(os.Stdout, args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: gallerytools <command> <path> [width]

Commands:
  validate <gallery-dir>        Load and check every entry in a gallery
  viz      <image-file> [width] Render an image as colored text
  stats    <image-file> [width] Show glyph distribution and escape counts
  all      <gallery-dir>        Run validate + viz + stats for all images`)
}

// fileArgs parses "<image-file> [width]" or exits with usage.
func fileArgs(cmd string, args []string) (string, int) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: gallerytools %s <image-file> [width]\n", cmd)
		os.Exit(1)
	}
	width := defaultWidth
	if len(args) == 2 {
		w, err := strconv.Atoi(args[1])
		if err != nil || w < 1 {
			fmt.Fprintf(os.Stderr, "Error: invalid width %q\n", args[1])
			os.Exit(1)
		}
		width = w
	}
	return args[0], width
}

// --- validate ---

func runValidate(out io.Writer, dir string) int {
	g, err := gallery.Load(dir)
	if err != nil {
		fmt.Fprintf(out, "FAIL: %v\n", err)
		return 1
	}
	if g.Len() == 0 {
		fmt.Fprintf(out, "FAIL: no images in %s\n", dir)
		return 1
	}

	errors := 0
	for i := 0; i < g.Len(); i++ {
		e := g.At(i)
		fmt.Fprintf(out, "Validating %q...\n", e.Name)

		b := e.Image.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			fmt.Fprintf(out, "  ERROR: image is empty (%dx%d)\n", b.Dx(), b.Dy())
			errors++
			continue
		}

		// Every entry must render at a typical width
		st, err := render.New(e.Options()...).RenderStats(io.Discard, e.Image, defaultWidth, 0)
		if err != nil {
			fmt.Fprintf(out, "  ERROR: %v\n", err)
			errors++
			continue
		}

		if e.Ramp != "" && hasDuplicateRunes(e.Ramp) {
			fmt.Fprintf(out, "  WARN: ramp %q repeats glyphs\n", e.Ramp)
		}
		fmt.Fprintf(out, "  OK (%dx%d source, %dx%d at width %d)\n", b.Dx(), b.Dy(), st.Width, st.Height, defaultWidth)
	}

	if errors > 0 {
		fmt.Fprintf(out, "\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Fprintf(out, "\nAll %d entries valid\n", g.Len())
	return 0
}

func hasDuplicateRunes(s string) bool {
	seen := make(map[rune]bool)
	for _, r := range s {
		if seen[r] {
			return true
		}
		seen[r] = true
	}
	return false
}

// --- viz ---

func runViz(out io.Writer, path string, width int) int {
	img, err := render.DecodeFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	b := img.Bounds()
	fmt.Fprintf(out, "%s (%dx%d)\n", filepath.Base(path), b.Dx(), b.Dy())
	if err := render.New().Render(out, img, width, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(out)
	return 0
}

// --- stats ---

// glyphCount is one histogram bucket.
type glyphCount struct {
	glyph rune
	count int
}

// glyphHistogram counts glyphs in plain (escape-free) output, sorted by
// count descending then glyph.
func glyphHistogram(plain string) []glyphCount {
	counts := make(map[rune]int)
	for _, r := range plain {
		if r == '\n' {
			continue
		}
		counts[r]++
	}
	var sorted []glyphCount
	for g, c := range counts {
		sorted = append(sorted, glyphCount{g, c})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].glyph < sorted[j].glyph
	})
	return sorted
}

func runStats(out io.Writer, path string, width int) int {
	img, err := render.DecodeFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var colored bytes.Buffer
	st, err := render.New().RenderStats(&colored, img, width, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	var plain strings.Builder
	if err := render.New(render.WithColorMode(render.ColorNone)).Render(&plain, img, width, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	total := st.Width * st.Height
	fmt.Fprintf(out, "%s (%dx%d = %d cells)\n\n", filepath.Base(path), st.Width, st.Height, total)

	for _, gc := range glyphHistogram(plain.String()) {
		pct := float64(gc.count) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(out, "  %q %5d (%5.1f%%) %s\n", gc.glyph, gc.count, pct, bar)
	}

	fmt.Fprintf(out, "\nMax intensity: %.4f\n", st.MaxIntensity)
	fmt.Fprintf(out, "Color sets:    %d (%.2f per cell)\n", st.ColorSets, float64(st.ColorSets)/float64(total))
	fmt.Fprintf(out, "Resets:        %d\n", st.Resets)
	fmt.Fprintf(out, "Output bytes:  %d (%d plain)\n", colored.Len(), plain.Len())
	return 0
}

// --- all ---

func runAll(out io.Writer, dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading directory: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "=== VALIDATE ===")
	if code := runValidate(out, dir); code != 0 {
		return code
	}

	for _, entry := range entries {
		if entry.IsDir() || !render.IsImageFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fmt.Fprintf(out, "\n=== VIZ: %s ===\n", entry.Name())
		if code := runViz(out, path, defaultWidth); code != 0 {
			return code
		}
		fmt.Fprintf(out, "\n=== STATS: %s ===\n", entry.Name())
		if code := runStats(out, path, defaultWidth); code != 0 {
			return code
		}
	}

	return 0
}
