package camera

import (
	"context"
	"fmt"
	"sync"

	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

type Connection interface {
	UUID() string
	Index() int
	Label() string
	Read() (videoframe.Frame, error)
	Properties() Properties
	IsOpen() bool
	Close() error
}

// Label is how a device index is named to a human.
func Label(index int) string {
	return fmt.Sprintf("Camera %d", index)
}

type connection struct {
	index    int
	backend  videobackend.Backend
	mu       sync.Mutex
	released bool
	vc       videobackend.Connection
}

func (c *connection) UUID() string {
	return c.vc.UUID()
}

func (c *connection) Index() int {
	return c.index
}

func (c *connection) Label() string {
	return Label(c.index)
}

func (c *connection) Read() (videoframe.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	frame := c.backend.NewFrame()
	if err := c.vc.Read(frame); err != nil {
		frame.Close()
		return nil, xerror.Errorf("%w from [%s]: %v", ErrReadFailed, c.Label(), err)
	}
	return frame, nil
}

func (c *connection) Properties() Properties {
	c.mu.Lock()
	defer c.mu.Unlock()
	return propertiesFromRaw(c.vc.Properties())
}

func (c *connection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return false
	}
	return c.vc.IsOpen()
}

// Close releases the device, only the first call reaches the backend.
func (c *connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil
	}
	c.released = true
	return c.vc.Close()
}

// Connect opens the device at index, a handle which opens but fails the
// opened-check is released before returning.
func Connect(ctx context.Context, index int, backend videobackend.Backend) (Connection, error) {
	vc, err := backend.Open(ctx, index)
	if err != nil {
		return nil, xerror.Errorf("%w [%s]: %v", ErrOpenFailed, Label(index), err)
	}
	if !vc.IsOpen() {
		vc.Close()
		return nil, xerror.Errorf("%w [%s]: device did not report open", ErrOpenFailed, Label(index))
	}
	return &connection{
		index:   index,
		backend: backend,
		vc:      vc,
	}, nil
}
