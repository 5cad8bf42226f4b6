package render

import "image"

// Pixel is a single sampled pixel with straight (non-premultiplied) alpha.
type Pixel struct {
	R, G, B, A uint8
}

// Color is the ink color of one glyph cell. Alpha is not part of it.
type Color struct {
	R, G, B uint8
}

// P is a shorthand to create an opaque pixel.
func P(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: 255}
}

// TransparentPixel returns a fully transparent black pixel.
func TransparentPixel() Pixel {
	return Pixel{}
}

// Color returns the pixel's RGB channels.
func (p Pixel) Color() Color {
	return Color{R: p.R, G: p.G, B: p.B}
}

// PixelBuffer is a row-major W x H grid of pixels.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewPixelBuffer allocates a zeroed (transparent) buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

// At returns the pixel at x, y. Coordinates are not bounds checked.
func (b *PixelBuffer) At(x, y int) Pixel {
	return b.Pix[y*b.Width+x]
}

// Set stores a pixel at x, y.
func (b *PixelBuffer) Set(x, y int, p Pixel) {
	b.Pix[y*b.Width+x] = p
}

// FillPixelBuffer creates a buffer filled with a single pixel.
func FillPixelBuffer(width, height int, p Pixel) *PixelBuffer {
	b := NewPixelBuffer(width, height)
	for i := range b.Pix {
		b.Pix[i] = p
	}
	return b
}

// pixelBufferFromNRGBA copies an NRGBA image into a PixelBuffer.
func pixelBufferFromNRGBA(img *image.NRGBA) *PixelBuffer {
	bounds := img.Bounds()
	b := NewPixelBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < b.Height; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < b.Width; x++ {
			o := x * 4
			b.Pix[y*b.Width+x] = Pixel{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]}
		}
	}
	return b
}
