package server

import "unicode/utf8"

// Action is a viewer keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionQuit
	ActionRedraw
)

// parseInput converts raw bytes into viewer actions.
// Handles n/p, arrow key escape sequences, space, Ctrl-L, Q and Ctrl-C.
func parseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		// Arrow keys: ESC [ C / ESC [ D (up/down ignored)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'C':
				actions = append(actions, ActionNext)
			case 'D':
				actions = append(actions, ActionPrev)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'n', 'N', ' ', 'l':
			actions = append(actions, ActionNext)
		case 'p', 'P', 'h':
			actions = append(actions, ActionPrev)
		case 'r', 0x0c: // Ctrl-L
			actions = append(actions, ActionRedraw)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}
