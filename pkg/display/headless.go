package display

import (
	"sync"
	"time"

	"github.com/tauraamui/dragoneye/pkg/camera"
	"github.com/tauraamui/dragoneye/pkg/log"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"github.com/tauraamui/dragoneye/pkg/viewer"
)

// Headless logs streaming progress instead of drawing. With no human to
// re-toggle, any failure quits the session.
type Headless struct {
	every   int
	mu      sync.Mutex
	handler func(viewer.Command)
	label   string
	frames  int
	failed  bool
}

func NewHeadless(logEvery int) *Headless {
	if logEvery < 1 {
		logEvery = 1
	}
	return &Headless{every: logEvery}
}

func (h *Headless) Order() videoframe.ChannelOrder { return videoframe.RGB }

func (h *Headless) Render(frame videoframe.Frame) error {
	h.mu.Lock()
	h.frames++
	frames, label := h.frames, h.label
	h.mu.Unlock()

	d := frame.Dimensions()
	log.Debug("Rendered frame %d from [%s] (%dx%d)", frames, label, d.W, d.H)
	if frames%h.every == 0 {
		log.Info("Streamed %d frames from [%s]", frames, label)
	}
	return nil
}

func (h *Headless) Notify(n viewer.Notification) {
	log.Error("%s", n)
	h.mu.Lock()
	h.failed = true
	h.mu.Unlock()
	h.send(viewer.Command{Kind: viewer.Quit})
}

func (h *Headless) ShowProperties(label string, props camera.Properties) {
	h.mu.Lock()
	h.label = label
	h.frames = 0
	h.mu.Unlock()
	log.Info("Streaming [%s] %s", label, props)
}

func (h *Headless) ShowControls(devices []int, selected int) {
	log.Info("Cameras available: %v, selected [%s]", devices, camera.Label(selected))
}

func (h *Headless) OnCommand(handler func(viewer.Command)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handler = handler
}

func (h *Headless) Pump(d time.Duration) {
	time.Sleep(d)
}

func (h *Headless) Failed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failed
}

func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

func (h *Headless) send(cmd viewer.Command) {
	h.mu.Lock()
	handler := h.handler
	h.mu.Unlock()
	if handler != nil {
		handler(cmd)
	}
}
