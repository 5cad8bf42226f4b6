package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pixelglyph/internal/render"
)

// ManifestFile is the optional per-directory file with render defaults.
const ManifestFile = "gallery.json"

// Entry is one decoded image plus its render defaults.
type Entry struct {
	Name      string
	Path      string
	Image     image.Image
	Threshold uint8
	Luma      render.Luma
	Ramp      string
}

// Options returns the renderer options for this entry.
func (e *Entry) Options() []render.Option {
	opts := []render.Option{
		render.WithAlphaThreshold(e.Threshold),
		render.WithLuma(e.Luma),
	}
	if e.Ramp != "" {
		opts = append(opts, render.WithRamp(e.Ramp))
	}
	return opts
}

// Gallery is an ordered, read-only set of entries.
type Gallery struct {
	entries []*Entry
	byName  map[string]*Entry
}

// jsonManifest is the on-disk manifest format.
type jsonManifest struct {
	Entries []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	Threshold int    `json:"threshold"`
	Luma      string `json:"luma,omitempty"`
	Ramp      string `json:"ramp,omitempty"`
}

// Load scans dir for images and applies gallery.json if present. Entries
// are keyed by file name without extension unless the manifest renames
// them, and are ordered by name.
func Load(dir string) (*Gallery, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read gallery directory: %w", err)
	}

	byFile := make(map[string]*Entry)
	for _, de := range dirEntries {
		if de.IsDir() || !render.IsImageFile(de.Name()) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		img, err := render.DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", de.Name(), err)
		}
		byFile[de.Name()] = &Entry{
			Name:  strings.TrimSuffix(de.Name(), filepath.Ext(de.Name())),
			Path:  path,
			Image: img,
		}
	}

	if err := applyManifest(filepath.Join(dir, ManifestFile), byFile); err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(byFile))
	for _, e := range byFile {
		entries = append(entries, e)
	}
	return newGallery(entries)
}

func applyManifest(path string, byFile map[string]*Entry) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var jm jsonManifest
	if err := json.Unmarshal(data, &jm); err != nil {
		return fmt.Errorf("parse manifest JSON: %w", err)
	}

	for i, je := range jm.Entries {
		e, ok := byFile[je.File]
		if !ok {
			return fmt.Errorf("manifest entry %d references unknown file %q", i, je.File)
		}
		if je.Threshold < 0 || je.Threshold > 255 {
			return fmt.Errorf("manifest entry %q: threshold %d out of range [0..255]", je.File, je.Threshold)
		}
		if je.Name != "" {
			e.Name = je.Name
		}
		e.Threshold = uint8(je.Threshold)
		if je.Luma != "" {
			l, err := render.ParseLuma(je.Luma)
			if err != nil {
				return fmt.Errorf("manifest entry %q: %w", je.File, err)
			}
			e.Luma = l
		}
		e.Ramp = je.Ramp
	}
	return nil
}

func newGallery(entries []*Entry) (*Gallery, error) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	g := &Gallery{
		entries: entries,
		byName:  make(map[string]*Entry, len(entries)),
	}
	for _, e := range entries {
		if _, exists := g.byName[e.Name]; exists {
			return nil, fmt.Errorf("duplicate entry name %q (%s)", e.Name, e.Path)
		}
		g.byName[e.Name] = e
	}
	return g, nil
}

// Len returns the number of entries.
func (g *Gallery) Len() int {
	return len(g.entries)
}

// At returns the entry at position i, wrapping around in both directions.
// It returns nil for an empty gallery.
func (g *Gallery) At(i int) *Entry {
	n := len(g.entries)
	if n == 0 {
		return nil
	}
	return g.entries[((i%n)+n)%n]
}

// Next returns the position after i, wrapping to the first entry.
func (g *Gallery) Next(i int) int {
	if len(g.entries) == 0 {
		return 0
	}
	return (i + 1) % len(g.entries)
}

// Prev returns the position before i, wrapping to the last entry.
func (g *Gallery) Prev(i int) int {
	n := len(g.entries)
	if n == 0 {
		return 0
	}
	return ((i-1)%n + n) % n
}

// Index returns the position of the named entry, or -1.
func (g *Gallery) Index(name string) int {
	for i, e := range g.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the named entry.
func (g *Gallery) Get(name string) (*Entry, bool) {
	e, ok := g.byName[name]
	return e, ok
}

// Names returns entry names in gallery order.
func (g *Gallery) Names() []string {
	names := make([]string, len(g.entries))
	for i, e := range g.entries {
		names[i] = e.Name
	}
	return names
}

// Default returns a single-entry gallery holding a generated color ramp,
// used when no gallery directory is available.
func Default() *Gallery {
	const w, h = 96, 48
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / (w - 1)),
				G: uint8(y * 255 / (h - 1)),
				B: 160,
				A: 255,
			})
		}
	}

	g, _ := newGallery([]*Entry{{Name: "default", Image: img}})
	return g
}
