package viewer_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tauraamui/dragoneye/pkg/camera"
	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"github.com/tauraamui/dragoneye/pkg/viewer"
)

type mockFrame struct {
	data    []byte
	onClose func()
}

func (m *mockFrame) DataRef() interface{}              { return m.data }
func (m *mockFrame) Dimensions() videoframe.Dimensions { return videoframe.Dimensions{W: 2, H: 1} }
func (m *mockFrame) Close() {
	if m.onClose != nil {
		m.onClose()
	}
}

type mockBackend struct {
	mu         sync.Mutex
	openable   map[int]bool
	failReadAt int
	properties videobackend.Properties
	opens      []int
	closes     int
	reads      int
	orders     []videoframe.ChannelOrder
}

func newMockBackend(indices ...int) *mockBackend {
	b := mockBackend{openable: map[int]bool{}}
	for _, i := range indices {
		b.openable[i] = true
	}
	return &b
}

func (b *mockBackend) Open(ctx context.Context, index int) (videobackend.Connection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opens = append(b.opens, index)
	if !b.openable[index] {
		return nil, errors.New("no such device")
	}
	return &mockConnection{backend: b}, nil
}

func (b *mockBackend) NewFrame() videoframe.Frame {
	return &mockFrame{}
}

func (b *mockBackend) Convert(src, dst videoframe.Frame, order videoframe.ChannelOrder) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = append(b.orders, order)
	s := src.(*mockFrame)
	d := dst.(*mockFrame)
	d.data = append(d.data[:0], s.data...)
	return nil
}

func (b *mockBackend) setOpenable(indices ...int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openable = map[int]bool{}
	for _, i := range indices {
		b.openable[i] = true
	}
}

func (b *mockBackend) openCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.opens)
}

func (b *mockBackend) closeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closes
}

func (b *mockBackend) readCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads
}

type mockConnection struct {
	backend *mockBackend
	closed  bool
}

func (c *mockConnection) UUID() string { return "mock-uuid" }

func (c *mockConnection) Read(frame videoframe.Frame) error {
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	c.backend.reads++
	if c.backend.failReadAt > 0 && c.backend.reads >= c.backend.failReadAt {
		return errors.New("device disconnected")
	}
	frame.(*mockFrame).data = []byte{byte(c.backend.reads)}
	return nil
}

func (c *mockConnection) IsOpen() bool { return !c.closed }

func (c *mockConnection) Properties() videobackend.Properties {
	return c.backend.properties
}

func (c *mockConnection) Close() error {
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	c.closed = true
	c.backend.closes++
	return nil
}

type shownProperties struct {
	label string
	props camera.Properties
}

type mockSurface struct {
	mu            sync.Mutex
	order         videoframe.ChannelOrder
	renders       [][]byte
	notifications []viewer.Notification
	properties    []shownProperties
	controls      [][]int
	selections    []int
	pumps         int
	handler       func(viewer.Command)
	onRender      func(s *mockSurface, count int)
	onPump        func(s *mockSurface, count int)
	renderErr     error
}

func (s *mockSurface) Order() videoframe.ChannelOrder { return s.order }

func (s *mockSurface) Render(frame videoframe.Frame) error {
	s.mu.Lock()
	s.renders = append(s.renders, append([]byte{}, frame.DataRef().([]byte)...))
	count := len(s.renders)
	s.mu.Unlock()
	if s.onRender != nil {
		s.onRender(s, count)
	}
	return s.renderErr
}

func (s *mockSurface) Notify(n viewer.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *mockSurface) ShowProperties(label string, props camera.Properties) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = append(s.properties, shownProperties{label: label, props: props})
}

func (s *mockSurface) ShowControls(devices []int, selected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls = append(s.controls, devices)
	s.selections = append(s.selections, selected)
}

func (s *mockSurface) OnCommand(handler func(viewer.Command)) { s.handler = handler }

func (s *mockSurface) Pump(d time.Duration) {
	s.mu.Lock()
	s.pumps++
	count := s.pumps
	s.mu.Unlock()
	if s.onPump != nil {
		s.onPump(s, count)
	}
	time.Sleep(time.Millisecond)
}

func (s *mockSurface) send(cmd viewer.Command) {
	if s.handler != nil {
		s.handler(cmd)
	}
}

func (s *mockSurface) renderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.renders)
}

func (s *mockSurface) notified() []viewer.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]viewer.Notification{}, s.notifications...)
}
