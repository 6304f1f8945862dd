package display

import "github.com/tauraamui/dragoneye/pkg/viewer"

const (
	keyNone   = -1
	keyEscape = 27
	keySpace  = 32
)

// decodeKey maps a highgui key code onto a viewer command.
func decodeKey(key int) (viewer.Command, bool) {
	if key == keyNone {
		return viewer.Command{}, false
	}
	key &= 0xFF
	switch {
	case key == keySpace:
		return viewer.Command{Kind: viewer.ToggleRun}, true
	case key == 'r' || key == 'R':
		return viewer.Command{Kind: viewer.Refresh}, true
	case key == 'q' || key == 'Q' || key == keyEscape:
		return viewer.Command{Kind: viewer.Quit}, true
	case key >= '0' && key <= '9':
		return viewer.Command{Kind: viewer.Select, Index: key - '0'}, true
	}
	return viewer.Command{}, false
}
