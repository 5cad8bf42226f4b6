package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const redSet = "\x1b[38;2;255;0;0m"

// writeRedPNG writes a solid red w x h PNG and returns its path.
func writeRedPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "red.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func notTerminal() bool { return false }

func TestRun(t *testing.T) {
	path := writeRedPNG(t, 4, 2)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"width only", []string{"-w", "2", path}, redSet + "@@" + "\x1b[0m\n"},
		{"height only", []string{"--height", "1", path}, redSet + "@" + "\x1b[0m\n"},
		{"never color", []string{"-w", "2", "--color", "never", path}, "@@\n"},
		{"auto color on a pipe", []string{"-w", "2", "--color=auto", path}, "@@\n"},
		{"256 colors", []string{"-w", "2", "--mode", "256", path}, "\x1b[38;5;196m@@\x1b[0m\n"},
		{"reference trailer", []string{"-w", "2", "--trailer", "reference", path}, redSet + "@@" + redSet + "\n"},
		{"custom ramp", []string{"-w", "2", "--color", "never", "--ramp", "ab", path}, "bb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, nil, &stdout, &stderr, notTerminal)
			if code != 0 {
				t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
			}
			if stdout.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stdout.String())
			}
		})
	}
}

func TestRunStdin(t *testing.T) {
	data, err := os.ReadFile(writeRedPNG(t, 2, 2))
	if err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-w", "2", "--color", "never", "-"}, bytes.NewReader(data), &stdout, &stderr, notTerminal)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if stdout.String() != "@@\n" {
		t.Errorf("expected %q, got %q", "@@\n", stdout.String())
	}
}

func TestRunOutputFile(t *testing.T) {
	path := writeRedPNG(t, 2, 2)
	out := filepath.Join(t.TempDir(), "out.txt")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-w", "2", "-o", out, "--color", "never", path}, nil, &stdout, &stderr, notTerminal); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "@@\n" {
		t.Errorf("expected %q, got %q", "@@\n", got)
	}
}

func TestRunErrors(t *testing.T) {
	path := writeRedPNG(t, 2, 2)
	notImage := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(notImage, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"no size", []string{path}, "--width or --height"},
		{"missing image argument", []string{"-w", "2"}, "image"},
		{"bad mode", []string{"-w", "2", "--mode", "cga", path}, "cga"},
		{"missing file", []string{"-w", "2", "/does/not/exist.png"}, "exist.png"},
		{"not an image", []string{"-w", "2", notImage}, "decode image"},
		{"negative width", []string{"--width=-3", "-H", "2", path}, "invalid dimensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, nil, &stdout, &stderr, notTerminal)
			if code != 1 {
				t.Fatalf("expected exit 1, got %d", code)
			}
			if !strings.Contains(stderr.String(), tt.contains) {
				t.Errorf("expected stderr containing %q, got %q", tt.contains, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("expected no output, got %q", stdout.String())
			}
		})
	}
}

func TestColorMode(t *testing.T) {
	env := func(k string) string {
		if k == "COLORTERM" {
			return "truecolor"
		}
		return ""
	}

	tests := []struct {
		name  string
		color string
		mode  string
		tty   bool
		want  string
	}{
		{"always truecolor", "always", "truecolor", false, "truecolor"},
		{"auto on terminal", "auto", "256", true, "256"},
		{"auto off terminal", "auto", "truecolor", false, "none"},
		{"never", "never", "truecolor", true, "none"},
		{"detected", "always", "auto", false, "truecolor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Options{Color: tt.color, Mode: tt.mode}
			got, err := o.colorMode(tt.tty, env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
