package camera_test

import (
	"context"
	"errors"
	"sync"

	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
)

type testVideoFrame struct {
	onClose func()
}

func (tvf *testVideoFrame) DataRef() interface{}              { return nil }
func (tvf *testVideoFrame) Dimensions() videoframe.Dimensions { return videoframe.Dimensions{} }
func (tvf *testVideoFrame) Close() {
	if tvf.onClose != nil {
		tvf.onClose()
	}
}

type testVideoBackend struct {
	mu               sync.Mutex
	openable         map[int]bool
	notOpened        map[int]bool
	onConnectionRead error
	properties       videobackend.Properties
	opens            []int
	closes           []int
	frameCloses      int
}

func (tvb *testVideoBackend) Open(ctx context.Context, index int) (videobackend.Connection, error) {
	tvb.mu.Lock()
	defer tvb.mu.Unlock()
	tvb.opens = append(tvb.opens, index)
	if !tvb.openable[index] {
		return nil, errors.New("test error")
	}
	return &testVideoConnection{
		backend: tvb, index: index,
		isOpen:      !tvb.notOpened[index],
		onReadError: tvb.onConnectionRead,
	}, nil
}

func (tvb *testVideoBackend) NewFrame() videoframe.Frame {
	return &testVideoFrame{onClose: func() {
		tvb.mu.Lock()
		defer tvb.mu.Unlock()
		tvb.frameCloses++
	}}
}

func (tvb *testVideoBackend) Convert(src, dst videoframe.Frame, order videoframe.ChannelOrder) error {
	return nil
}

func (tvb *testVideoBackend) openCount() int {
	tvb.mu.Lock()
	defer tvb.mu.Unlock()
	return len(tvb.opens)
}

func (tvb *testVideoBackend) closeCount() int {
	tvb.mu.Lock()
	defer tvb.mu.Unlock()
	return len(tvb.closes)
}

type testVideoConnection struct {
	backend     *testVideoBackend
	index       int
	isOpen      bool
	onReadError error
}

func (tvc *testVideoConnection) UUID() string                       { return "test-uuid" }
func (tvc *testVideoConnection) Read(frame videoframe.Frame) error  { return tvc.onReadError }
func (tvc *testVideoConnection) IsOpen() bool                       { return tvc.isOpen }
func (tvc *testVideoConnection) Properties() videobackend.Properties { return tvc.backend.properties }

func (tvc *testVideoConnection) Close() error {
	tvc.backend.mu.Lock()
	defer tvc.backend.mu.Unlock()
	tvc.backend.closes = append(tvc.backend.closes, tvc.index)
	return nil
}

func openable(indices ...int) map[int]bool {
	m := map[int]bool{}
	for _, i := range indices {
		m[i] = true
	}
	return m
}
