package render

// Placement is the size and position of a rendered frame inside a
// terminal window.
type Placement struct {
	Cols, Rows int // frame size in cells
	Col, Row   int // top-left corner, 1-based
}

// FitWindow computes the largest aspect-correct frame for a srcW x srcH
// image that fits a termW x termH window, centered. Both Cols and Rows are
// at least 1, so the result can be passed straight to Render.
func FitWindow(srcW, srcH, termW, termH int) Placement {
	if termW < 1 {
		termW = 1
	}
	if termH < 1 {
		termH = 1
	}

	cols := termW
	rows := scaleSide(cols, srcH, srcW)
	if rows > termH || rows == 0 {
		// Height bound: invert the width-only rule, rounding down so the
		// frame stays inside the window.
		rows = termH
		if srcH > 0 {
			cols = rows * 2 * srcW / srcH
		}
	}

	// Clamp to window edges
	if cols > termW {
		cols = termW
	}
	if cols < 1 {
		cols = 1
	}
	if rows > termH {
		rows = termH
	}
	if rows < 1 {
		rows = 1
	}

	return Placement{
		Cols: cols,
		Rows: rows,
		Col:  (termW-cols)/2 + 1,
		Row:  (termH-rows)/2 + 1,
	}
}
