package render

import (
	"fmt"
	"strconv"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// ClearLine clears the line the cursor is on.
func ClearLine() string {
	return CSI + "2K"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// FgTrueColor returns the 24-bit foreground SGR for c.
func FgTrueColor(c Color) string {
	return string(appendFgTrueColor(nil, c))
}

// Fg256 returns the xterm-256 foreground SGR for a palette index.
func Fg256(index uint8) string {
	return string(appendFg256(nil, index))
}

func appendFgTrueColor(dst []byte, c Color) []byte {
	dst = append(dst, CSI+"38;2;"...)
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.B), 10)
	return append(dst, 'm')
}

func appendFg256(dst []byte, index uint8) []byte {
	dst = append(dst, CSI+"38;5;"...)
	dst = strconv.AppendUint(dst, uint64(index), 10)
	return append(dst, 'm')
}
