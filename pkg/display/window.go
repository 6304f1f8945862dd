package display

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/tauraamui/dragoneye/pkg/camera"
	"github.com/tauraamui/dragoneye/pkg/log"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"github.com/tauraamui/dragoneye/pkg/viewer"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

const (
	statusWidth  = 640
	statusHeight = 360
)

var (
	statusTextColor  = color.RGBA{R: 230, G: 230, B: 230}
	statusErrorColor = color.RGBA{R: 240, G: 60, B: 60}
)

// Window is a highgui surface, it must be driven from the main goroutine.
type Window struct {
	window    *gocv.Window
	title     string
	handler   func(viewer.Command)
	devices   []int
	selected  int
	lastError string
	holding   bool
	dirty     bool
	streaming bool
}

func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title), title: title, dirty: true}
}

// highgui expects BGR.
func (w *Window) Order() videoframe.ChannelOrder { return videoframe.BGR }

func (w *Window) Render(frame videoframe.Frame) error {
	mat, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to window render")
	}
	w.streaming = true
	w.dirty = true
	w.window.IMShow(*mat)
	w.dispatch(w.window.WaitKey(1))
	if !w.window.IsOpen() {
		return xerror.New("window was closed")
	}
	return nil
}

func (w *Window) Notify(n viewer.Notification) {
	log.Error("%s", n)
	if n.Kind == viewer.DiscoveryEmpty {
		w.devices = nil
		w.selected = 0
	}
	w.lastError = n.Message
	w.dirty = true
}

func (w *Window) ShowProperties(label string, props camera.Properties) {
	w.lastError = ""
	w.window.SetWindowTitle(fmt.Sprintf("%s - %s - %s", w.title, label, props))
}

func (w *Window) ShowControls(devices []int, selected int) {
	w.devices = append([]int{}, devices...)
	w.selected = selected
	w.dirty = true
}

func (w *Window) OnCommand(handler func(viewer.Command)) {
	w.handler = handler
}

func (w *Window) Pump(d time.Duration) {
	if w.streaming {
		w.streaming = false
		w.window.SetWindowTitle(w.title)
	}
	if w.dirty {
		w.drawStatus()
		w.dirty = false
	}
	ms := int(d / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	w.dispatch(w.window.WaitKey(ms))
	if !w.window.IsOpen() {
		w.send(viewer.Command{Kind: viewer.Quit})
	}
}

// Hold draws the current status and blocks until any key is pressed.
func (w *Window) Hold() {
	w.holding = true
	w.drawStatus()
	w.window.WaitKey(0)
}

func (w *Window) Close() error {
	return w.window.Close()
}

func (w *Window) dispatch(key int) {
	if cmd, ok := decodeKey(key); ok {
		w.send(cmd)
	}
}

func (w *Window) send(cmd viewer.Command) {
	if w.handler != nil {
		w.handler(cmd)
	}
}

func (w *Window) drawStatus() {
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(32, 32, 32, 0), statusHeight, statusWidth, gocv.MatTypeCV8UC3)
	defer canvas.Close()

	y := 40
	for _, line := range statusLines(w.title, w.devices, w.selected, w.holding) {
		gocv.PutText(&canvas, line, image.Pt(20, y), gocv.FontHersheySimplex, 0.6, statusTextColor, 1)
		y += 32
	}
	if len(w.lastError) > 0 {
		gocv.PutText(&canvas, w.lastError, image.Pt(20, statusHeight-30), gocv.FontHersheySimplex, 0.6, statusErrorColor, 2)
	}
	w.window.IMShow(canvas)
}

func statusLines(title string, devices []int, selected int, holding bool) []string {
	lines := []string{title}
	if len(devices) == 0 {
		if holding {
			return append(lines, "No cameras found...", "press any key to exit")
		}
		return append(lines, "No cameras found...", "[r] refresh  [q] quit")
	}
	labels := make([]string, 0, len(devices))
	for _, d := range devices {
		l := fmt.Sprintf("%d", d)
		if d == selected {
			l = fmt.Sprintf("[%d]", d)
		}
		labels = append(labels, l)
	}
	return append(lines,
		fmt.Sprintf("Select camera: %s", strings.Join(labels, " ")),
		fmt.Sprintf("[space] run %s", camera.Label(selected)),
		"[0-9] select  [r] refresh  [q] quit",
	)
}
