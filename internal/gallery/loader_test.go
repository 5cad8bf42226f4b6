package gallery

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"pixelglyph/internal/render"
)

// writePNG writes a solid w x h PNG into dir.
func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 200, 255
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "zebra.png", 4, 2)
	writePNG(t, dir, "apple.png", 3, 3)
	writeFile(t, dir, "notes.txt", "not an image")
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	g, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := g.Names(), []string{"apple", "zebra"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected names %v, got %v", want, got)
	}

	e, ok := g.Get("zebra")
	if !ok {
		t.Fatal("expected zebra entry")
	}
	if b := e.Image.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("expected 4x2 image, got %dx%d", b.Dx(), b.Dy())
	}
	if e.Threshold != 0 || e.Luma != render.LumaReference || e.Ramp != "" {
		t.Errorf("expected default render settings, got %+v", e)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "cat.png", 2, 2)
	writePNG(t, dir, "dog.png", 2, 2)
	writeFile(t, dir, ManifestFile, `{
		"entries": [
			{"name": "tabby", "file": "cat.png", "threshold": 40, "luma": "rec601", "ramp": " .#"}
		]
	}`)

	g, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := g.Names(), []string{"dog", "tabby"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected names %v, got %v", want, got)
	}
	e, _ := g.Get("tabby")
	if e.Threshold != 40 || e.Luma != render.LumaRec601 || e.Ramp != " .#" {
		t.Errorf("manifest settings not applied: %+v", e)
	}
	if len(e.Options()) != 3 {
		t.Errorf("expected 3 options with a ramp, got %d", len(e.Options()))
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, dir string)
		contains string
	}{
		{
			name:     "unknown file in manifest",
			setup:    func(t *testing.T, dir string) { writeFile(t, dir, ManifestFile, `{"entries":[{"file":"missing.png"}]}`) },
			contains: "unknown file",
		},
		{
			name: "duplicate names",
			setup: func(t *testing.T, dir string) {
				writePNG(t, dir, "a.png", 1, 1)
				writePNG(t, dir, "b.png", 1, 1)
				writeFile(t, dir, ManifestFile, `{"entries":[{"name":"a","file":"b.png"}]}`)
			},
			contains: "duplicate",
		},
		{
			name: "threshold out of range",
			setup: func(t *testing.T, dir string) {
				writePNG(t, dir, "a.png", 1, 1)
				writeFile(t, dir, ManifestFile, `{"entries":[{"file":"a.png","threshold":300}]}`)
			},
			contains: "out of range",
		},
		{
			name:     "corrupt image",
			setup:    func(t *testing.T, dir string) { writeFile(t, dir, "broken.png", "garbage") },
			contains: "broken.png",
		},
		{
			name:     "bad manifest JSON",
			setup:    func(t *testing.T, dir string) { writeFile(t, dir, ManifestFile, `{`) },
			contains: "parse manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestAtWraps(t *testing.T) {
	g, err := newGallery([]*Entry{{Name: "b"}, {Name: "a"}, {Name: "c"}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		i    int
		want string
	}{
		{0, "a"}, {2, "c"}, {3, "a"}, {-1, "c"}, {-4, "c"},
	}
	for _, tt := range tests {
		if got := g.At(tt.i).Name; got != tt.want {
			t.Errorf("At(%d): expected %q, got %q", tt.i, tt.want, got)
		}
	}
	if g.Next(2) != 0 || g.Prev(0) != 2 || g.Next(0) != 1 {
		t.Errorf("expected Next/Prev to wrap, got next(2)=%d prev(0)=%d", g.Next(2), g.Prev(0))
	}
	if g.Index("c") != 2 || g.Index("nope") != -1 {
		t.Errorf("unexpected Index results")
	}
}

func TestDefault(t *testing.T) {
	g := Default()
	if g.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", g.Len())
	}
	e := g.At(0)
	var sb strings.Builder
	if err := render.New(e.Options()...).Render(&sb, e.Image, 24, 0); err != nil {
		t.Fatalf("render default: %v", err)
	}
	if lines := strings.Count(sb.String(), "\n") + 1; lines != 6 {
		t.Errorf("expected 6 rows, got %d", lines)
	}
}
