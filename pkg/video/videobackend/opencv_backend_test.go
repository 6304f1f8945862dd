package videobackend_test

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"gocv.io/x/gocv"
)

type fakeFrame struct{ data []byte }

func (f fakeFrame) DataRef() interface{}              { return f.data }
func (f fakeFrame) Dimensions() videoframe.Dimensions { return videoframe.Dimensions{} }
func (f fakeFrame) Close()                            {}

// 2x2 BGR pixels: blue, green, red, white
var nativePixels = []byte{
	255, 0, 0, 0, 255, 0,
	0, 0, 255, 255, 255, 255,
}

func nativeFrame(t *testing.T, backend videobackend.Backend) videoframe.Frame {
	t.Helper()
	is := is.New(t)
	mat, err := gocv.NewMatFromBytes(2, 2, gocv.MatTypeCV8UC3, nativePixels)
	is.NoErr(err)

	frame := backend.NewFrame()
	dst, ok := frame.DataRef().(*gocv.Mat)
	is.True(ok)
	mat.CopyTo(dst)
	mat.Close()
	return frame
}

func frameBytes(t *testing.T, frame videoframe.Frame) []byte {
	t.Helper()
	mat, ok := frame.DataRef().(*gocv.Mat)
	is.New(t).True(ok)
	return mat.ToBytes()
}

func TestOpenCVConvertToRGBSwapsRedAndBlue(t *testing.T) {
	is := is.New(t)
	backend := videobackend.OpenCV()

	src := nativeFrame(t, backend)
	defer src.Close()
	dst := backend.NewFrame()
	defer dst.Close()

	is.NoErr(backend.Convert(src, dst, videoframe.RGB))
	is.Equal(frameBytes(t, dst), []byte{
		0, 0, 255, 0, 255, 0,
		255, 0, 0, 255, 255, 255,
	})
	// source is left untouched
	is.Equal(frameBytes(t, src), nativePixels)
}

func TestOpenCVConvertIsDeterministic(t *testing.T) {
	is := is.New(t)
	backend := videobackend.OpenCV()

	src := nativeFrame(t, backend)
	defer src.Close()
	first, second := backend.NewFrame(), backend.NewFrame()
	defer first.Close()
	defer second.Close()

	is.NoErr(backend.Convert(src, first, videoframe.RGB))
	is.NoErr(backend.Convert(src, second, videoframe.RGB))
	is.True(bytes.Equal(frameBytes(t, first), frameBytes(t, second)))
}

func TestOpenCVConvertToBGRCopies(t *testing.T) {
	is := is.New(t)
	backend := videobackend.OpenCV()

	src := nativeFrame(t, backend)
	defer src.Close()
	dst := backend.NewFrame()
	defer dst.Close()

	is.NoErr(backend.Convert(src, dst, videoframe.BGR))
	is.Equal(frameBytes(t, dst), nativePixels)
}

func TestOpenCVConvertRejectsEmptyFrame(t *testing.T) {
	is := is.New(t)
	backend := videobackend.OpenCV()

	src, dst := backend.NewFrame(), backend.NewFrame()
	defer src.Close()
	defer dst.Close()

	is.Equal(backend.Convert(src, dst, videoframe.RGB).Error(), "cannot convert empty frame")
}

func TestOpenCVConvertRejectsForeignFrames(t *testing.T) {
	is := is.New(t)
	backend := videobackend.OpenCV()

	dst := backend.NewFrame()
	defer dst.Close()

	is.Equal(
		backend.Convert(fakeFrame{}, dst, videoframe.RGB).Error(),
		"must pass OpenCV frame as conversion source",
	)
}
