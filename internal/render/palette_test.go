package render

import "testing"

func TestXtermRGB(t *testing.T) {
	tests := []struct {
		index   uint8
		r, g, b uint8
	}{
		{16, 0, 0, 0},
		{196, 255, 0, 0},
		{231, 255, 255, 255},
		{67, 95, 135, 175},
		{232, 8, 8, 8},
		{255, 238, 238, 238},
		{3, 0, 0, 0},
	}

	for _, tt := range tests {
		r, g, b := XtermRGB(tt.index)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("XtermRGB(%d): expected (%d,%d,%d), got (%d,%d,%d)", tt.index, tt.r, tt.g, tt.b, r, g, b)
		}
	}
}

func TestNearest256ExactPaletteColors(t *testing.T) {
	for i := 16; i < 256; i++ {
		r, g, b := XtermRGB(uint8(i))
		if got := Nearest256(Color{R: r, G: g, B: b}); got != uint8(i) {
			t.Errorf("index %d (%d,%d,%d): got %d", i, r, g, b, got)
		}
	}
}

func TestNearest256Approximate(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint8
	}{
		{"near red", Color{250, 5, 3}, 196},
		{"near black", Color{2, 1, 0}, 16},
		{"mid gray lands on the gray ramp", Color{128, 128, 128}, 244},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nearest256(tt.c); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestQuantizerMemoizes(t *testing.T) {
	q := make(quantizer)
	c := Color{10, 20, 30}
	first := q.index(c)
	if len(q) != 1 {
		t.Fatalf("expected 1 cached entry, got %d", len(q))
	}
	if again := q.index(c); again != first {
		t.Errorf("expected cached %d, got %d", first, again)
	}
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want ColorMode
	}{
		{"colorterm truecolor", map[string]string{"COLORTERM": "truecolor"}, ColorTrueColor},
		{"colorterm 24bit", map[string]string{"COLORTERM": "24bit"}, ColorTrueColor},
		{"kitty", map[string]string{"KITTY_WINDOW_ID": "1"}, ColorTrueColor},
		{"term direct", map[string]string{"TERM": "xterm-direct"}, ColorTrueColor},
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, Color256},
		{"empty env", map[string]string{}, Color256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectColorMode(func(k string) string { return tt.env[k] })
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"truecolor": ColorTrueColor, "24": ColorTrueColor, "256": Color256, "none": ColorNone} {
		got, err := ParseColorMode(in)
		if err != nil || got != want {
			t.Errorf("ParseColorMode(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseColorMode("cga"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
