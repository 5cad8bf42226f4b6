package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageExts lists the file extensions Decode understands.
var ImageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ImageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Decode reads an encoded image. Decoder failures are returned as a
// *DecodeError wrapping the decoder's error.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (image.Image, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// RenderReader decodes an image from rd and renders it to w.
func (r *Renderer) RenderReader(w io.Writer, rd io.Reader, width, height int) error {
	img, err := Decode(rd)
	if err != nil {
		return err
	}
	return r.Render(w, img, width, height)
}

// RenderBytes decodes an in-memory image and renders it to w.
func (r *Renderer) RenderBytes(w io.Writer, data []byte, width, height int) error {
	return r.RenderReader(w, bytes.NewReader(data), width, height)
}
