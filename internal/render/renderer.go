package render

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strings"
)

// Trailer selects what is written after the last cell when a color is
// still open.
type Trailer uint8

const (
	// TrailerReset closes the open color with ESC[0m.
	TrailerReset Trailer = iota
	// TrailerReference re-emits the open color's set escape instead of a
	// reset, as the reference renderer does. The terminal stays colored
	// after the output ends.
	TrailerReference
)

func (t Trailer) String() string {
	switch t {
	case TrailerReset:
		return "reset"
	case TrailerReference:
		return "reference"
	default:
		return fmt.Sprintf("Trailer(%d)", uint8(t))
	}
}

// ParseTrailer accepts the names used on the command line.
func ParseTrailer(s string) (Trailer, error) {
	switch strings.ToLower(s) {
	case "reset", "":
		return TrailerReset, nil
	case "reference", "ref", "compat":
		return TrailerReference, nil
	}
	return 0, fmt.Errorf("unknown trailer %q", s)
}

// Renderer turns images into glyph text with color escapes. A Renderer is
// immutable after New; all per-render state lives on the stack of a single
// call, so one Renderer may be shared between goroutines.
type Renderer struct {
	threshold uint8
	mode      ColorMode
	luma      Luma
	trailer   Trailer
	ramp      []rune
	filter    Filter
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithAlphaThreshold renders pixels with alpha <= t as blank space.
func WithAlphaThreshold(t uint8) Option {
	return func(r *Renderer) {
		r.threshold = t
	}
}

// WithColorMode selects truecolor, 256-color or glyph-only output.
func WithColorMode(m ColorMode) Option {
	return func(r *Renderer) {
		r.mode = m
	}
}

// WithLuma selects the intensity formula.
func WithLuma(l Luma) Option {
	return func(r *Renderer) {
		r.luma = l
	}
}

// WithTrailer selects the end-of-stream behavior.
func WithTrailer(t Trailer) Option {
	return func(r *Renderer) {
		r.trailer = t
	}
}

// WithRamp replaces the glyph ramp, ordered emptiest to fullest. An empty
// ramp keeps the current one.
func WithRamp(ramp string) Option {
	return func(r *Renderer) {
		if runes := []rune(ramp); len(runes) > 0 {
			r.ramp = runes
		}
	}
}

// WithFilter selects the resampling kernel. Anything but FilterNearest
// blends neighbors and defeats most of the escape run-length savings.
func WithFilter(f Filter) Option {
	return func(r *Renderer) {
		r.filter = f
	}
}

// New builds a Renderer. Defaults: threshold 0, truecolor, reference luma,
// reset trailer, DefaultRamp, nearest-neighbor sampling.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		mode:    ColorTrueColor,
		luma:    LumaReference,
		trailer: TrailerReset,
		ramp:    defaultRamp,
		filter:  FilterNearest,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Stats describes one render pass.
type Stats struct {
	Width, Height int
	MaxIntensity  float64
	Glyphs        int
	ColorSets     int // set-foreground escapes, including a reference trailer
	Resets        int
}

// Render resolves the output size, samples img and writes the glyph text
// to w. width or height may be 0 (unset) but not both.
func (r *Renderer) Render(w io.Writer, img image.Image, width, height int) error {
	_, err := r.RenderStats(w, img, width, height)
	return err
}

// RenderStats is Render that also reports what was written.
func (r *Renderer) RenderStats(w io.Writer, img image.Image, width, height int) (Stats, error) {
	bounds := img.Bounds()
	cols, rows, err := Resolve(width, height, bounds.Dx(), bounds.Dy())
	if err != nil {
		return Stats{}, err
	}
	Logger().Debug("resolved dimensions",
		"src_w", bounds.Dx(), "src_h", bounds.Dy(), "cols", cols, "rows", rows)

	buf := resample(img, cols, rows, r.filter)
	return r.Encode(w, buf)
}

// Encode writes an already sampled buffer to w, one line per row. The
// output is flushed before Encode returns; the first write or flush error
// aborts the pass and is returned as a *WriteError.
func (r *Renderer) Encode(w io.Writer, buf *PixelBuffer) (Stats, error) {
	enc := encoder{
		r:   r,
		out: newEmitter(w),
		max: maxIntensity(buf, r.luma),
	}
	if r.mode == Color256 {
		enc.quant = make(quantizer)
	}

	for y := 0; y < buf.Height; y++ {
		if y > 0 {
			enc.endRow()
		}
		for x := 0; x < buf.Width; x++ {
			enc.cell(buf.At(x, y))
		}
		if enc.out.err != nil {
			return Stats{}, enc.out.err
		}
	}
	enc.finish()

	if err := enc.out.flush(); err != nil {
		return Stats{}, err
	}

	enc.stats.Width = buf.Width
	enc.stats.Height = buf.Height
	enc.stats.MaxIntensity = enc.max
	Logger().Debug("encoded frame",
		"cols", buf.Width, "rows", buf.Height,
		"color_sets", enc.stats.ColorSets, "resets", enc.stats.Resets)
	return enc.stats, nil
}

// encoder is the per-call render state: the open color (if any) and the
// running counts. It is never shared between calls.
type encoder struct {
	r     *Renderer
	out   *emitter
	max   float64
	quant quantizer

	open  bool
	prev  Color
	prevI uint8

	stats Stats
}

// cell writes one glyph, preceded by a set escape when the ink differs from
// the open color. Blank (transparent) cells carry no ink and leave the
// open color untouched.
func (e *encoder) cell(p Pixel) {
	ch := glyphFor(p, e.r.threshold, e.max, e.r.luma, e.r.ramp)
	if p.A > e.r.threshold {
		e.ink(p.Color())
	}
	e.out.writeRune(ch)
	e.stats.Glyphs++
}

func (e *encoder) ink(c Color) {
	switch e.r.mode {
	case ColorTrueColor:
		if e.open && c == e.prev {
			return
		}
		e.out.writeEscape(appendFgTrueColor(e.out.scratch[:0], c))
	case Color256:
		idx := e.quant.index(c)
		if e.open && idx == e.prevI {
			return
		}
		e.prevI = idx
		e.out.writeEscape(appendFg256(e.out.scratch[:0], idx))
	default:
		return
	}
	e.open = true
	e.prev = c
	e.stats.ColorSets++
}

// endRow closes an open color and starts a new line.
func (e *encoder) endRow() {
	e.closeColor()
	e.out.writeString("\n")
}

func (e *encoder) closeColor() {
	if !e.open {
		return
	}
	e.out.writeString(Reset)
	e.open = false
	e.stats.Resets++
}

func (e *encoder) finish() {
	if !e.open {
		return
	}
	if e.r.trailer == TrailerReset {
		e.closeColor()
		return
	}
	if e.r.mode == Color256 {
		e.out.writeEscape(appendFg256(e.out.scratch[:0], e.prevI))
	} else {
		e.out.writeEscape(appendFgTrueColor(e.out.scratch[:0], e.prev))
	}
	e.stats.ColorSets++
}

// emitter buffers output for the sink and keeps the first failure.
type emitter struct {
	w       *bufio.Writer
	err     error
	scratch []byte
}

func newEmitter(w io.Writer) *emitter {
	return &emitter{
		w:       bufio.NewWriter(w),
		scratch: make([]byte, 0, 24),
	}
}

func (e *emitter) writeString(s string) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(s); err != nil {
		e.err = &WriteError{Op: "write", Err: err}
	}
}

func (e *emitter) writeRune(ch rune) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteRune(ch); err != nil {
		e.err = &WriteError{Op: "write", Err: err}
	}
}

// writeEscape writes b and keeps its backing array for reuse.
func (e *emitter) writeEscape(b []byte) {
	e.scratch = b
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(b); err != nil {
		e.err = &WriteError{Op: "write", Err: err}
	}
}

func (e *emitter) flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = &WriteError{Op: "flush", Err: err}
	}
	return e.err
}
