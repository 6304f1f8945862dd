package camera

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
)

const fpsNotAvailable = "Not Available"

type Properties struct {
	Width, Height int
	FPS           float64
}

func propertiesFromRaw(raw videobackend.Properties) Properties {
	return Properties{
		Width:  int(raw.Width),
		Height: int(raw.Height),
		FPS:    raw.FPS,
	}
}

func (p Properties) Resolution() string {
	return fmt.Sprintf("%d x %d", p.Width, p.Height)
}

func (p Properties) HasFPS() bool {
	return p.FPS > 0
}

// FPSLabel renders the rate with at least one fractional digit, so 24
// reads as 24.0.
func (p Properties) FPSLabel() string {
	if !p.HasFPS() {
		return fpsNotAvailable
	}
	s := strconv.FormatFloat(p.FPS, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (p Properties) String() string {
	return fmt.Sprintf("%s @ %s fps", p.Resolution(), p.FPSLabel())
}
