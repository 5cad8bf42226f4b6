package server

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"pixelglyph/internal/gallery"
	"pixelglyph/internal/render"
)

const statusHelp = "n/→ next  p/← prev  q quit"

// offsetWriter turns every bare line feed into CR LF followed by a cursor
// move to col, so a multi-line frame keeps its left edge on a raw PTY.
type offsetWriter struct {
	w      io.Writer
	indent []byte
}

func newOffsetWriter(w io.Writer, col int) *offsetWriter {
	ow := &offsetWriter{w: w, indent: []byte("\r\n")}
	if col > 1 {
		ow.indent = append(ow.indent, render.CSI+strconv.Itoa(col-1)+"C"...)
	}
	return ow
}

func (o *offsetWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		nl := bytes.IndexByte(p, '\n')
		if nl < 0 {
			n, err := o.w.Write(p)
			return written + n, err
		}
		if nl > 0 {
			n, err := o.w.Write(p[:nl])
			written += n
			if err != nil {
				return written, err
			}
		}
		if _, err := o.w.Write(o.indent); err != nil {
			return written, err
		}
		written++
		p = p[nl+1:]
	}
	return written, nil
}

// frame is one screenful: the selected entry centered above a status line.
type frame struct {
	entry      *gallery.Entry
	mode       render.ColorMode
	pos, total int
	termW      int
	termH      int
}

// compose writes the full frame to w. The bottom row is reserved for the
// status line, the image is fitted into the rows above it.
func (f frame) compose(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(render.Reset)
	buf.WriteString(render.ClearScreen())

	imageRows := f.termH - 1
	if imageRows < 1 {
		imageRows = 1
	}
	b := f.entry.Image.Bounds()
	p := render.FitWindow(b.Dx(), b.Dy(), f.termW, imageRows)

	buf.WriteString(render.MoveTo(p.Row, p.Col))
	r := render.New(append(f.entry.Options(), render.WithColorMode(f.mode))...)
	if err := r.Render(newOffsetWriter(&buf, p.Col), f.entry.Image, p.Cols, p.Rows); err != nil {
		return fmt.Errorf("render %s: %w", f.entry.Name, err)
	}

	buf.WriteString(render.Reset)
	buf.WriteString(render.MoveTo(f.termH, 1))
	buf.WriteString(render.ClearLine())
	buf.WriteString(f.status())

	_, err := w.Write(buf.Bytes())
	return err
}

// status returns the status line text, cut to the window width.
func (f frame) status() string {
	s := fmt.Sprintf("[%d/%d] %s  %s", f.pos+1, f.total, f.entry.Name, statusHelp)
	if f.termW > 0 && utf8.RuneCountInString(s) > f.termW {
		s = string([]rune(s)[:f.termW])
	}
	return s
}

// sessionColorMode picks the color mode for a remote terminal. Most SSH
// clients forward only TERM, so an empty environment gets true color.
func sessionColorMode(environ []string, term string) render.ColorMode {
	env := make(map[string]string, len(environ)+1)
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	if _, ok := env["TERM"]; !ok && term != "" {
		env["TERM"] = term
	}
	if env["TERM"] == "" && env["COLORTERM"] == "" {
		return render.ColorTrueColor
	}
	return render.DetectColorMode(func(k string) string { return env[k] })
}
