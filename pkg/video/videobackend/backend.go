package videobackend

import (
	"context"

	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
)

// Properties are the raw values a driver reports for an open device.
type Properties struct {
	Width, Height, FPS float64
}

type Connection interface {
	UUID() string
	Read(videoframe.Frame) error
	IsOpen() bool
	Properties() Properties
	Close() error
}

type Backend interface {
	Open(context.Context, int) (Connection, error)
	NewFrame() videoframe.Frame
	// Convert writes src, which must be in native order, into dst using
	// the given channel order.
	Convert(src, dst videoframe.Frame, order videoframe.ChannelOrder) error
}

type MockSettings struct {
	Devices   []int
	FailAfter int
}

func Default() Backend {
	return OpenCV()
}

func OpenCV() Backend {
	return &openCVBackend{}
}

func Mock(settings MockSettings) Backend {
	devices := map[int]struct{}{}
	for _, d := range settings.Devices {
		devices[d] = struct{}{}
	}
	return &mockVideoBackend{devices: devices, failAfter: settings.FailAfter}
}

func Resolve(t string, mock MockSettings) Backend {
	switch t {
	case "mock":
		return Mock(mock)
	default:
		return Default()
	}
}
