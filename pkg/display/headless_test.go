package display_test

import (
	"fmt"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/dragoneye/pkg/camera"
	"github.com/tauraamui/dragoneye/pkg/display"
	"github.com/tauraamui/dragoneye/pkg/log"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"github.com/tauraamui/dragoneye/pkg/viewer"
)

func overloadInfoLog(overload func(string, ...interface{})) func() {
	logInfoRef := log.Info
	log.Info = overload
	return func() { log.Info = logInfoRef }
}

func overloadErrorLog(overload func(string, ...interface{})) func() {
	logErrorRef := log.Error
	log.Error = overload
	return func() { log.Error = logErrorRef }
}

type testFrame struct{}

func (testFrame) DataRef() interface{}              { return nil }
func (testFrame) Dimensions() videoframe.Dimensions { return videoframe.Dimensions{W: 640, H: 480} }
func (testFrame) Close()                            {}

func TestHeadlessExpectsDisplayOrder(t *testing.T) {
	is := is.New(t)
	is.Equal(display.NewHeadless(10).Order(), videoframe.RGB)
}

func TestHeadlessLogsEveryNthFrame(t *testing.T) {
	is := is.New(t)
	var infoLogs []string
	defer overloadInfoLog(func(format string, a ...interface{}) {
		infoLogs = append(infoLogs, fmt.Sprintf(format, a...))
	})()

	h := display.NewHeadless(2)
	h.ShowProperties("Camera 1", camera.Properties{Width: 640, Height: 480, FPS: 24})
	for i := 0; i < 5; i++ {
		is.NoErr(h.Render(testFrame{}))
	}

	is.Equal(h.Frames(), 5)
	is.Equal(infoLogs, []string{
		"Streaming [Camera 1] 640 x 480 @ 24.0 fps",
		"Streamed 2 frames from [Camera 1]",
		"Streamed 4 frames from [Camera 1]",
	})
}

func TestHeadlessFailureQuitsSession(t *testing.T) {
	is := is.New(t)
	var errorLogs []string
	defer overloadErrorLog(func(format string, a ...interface{}) {
		errorLogs = append(errorLogs, fmt.Sprintf(format, a...))
	})()

	var received []viewer.Command
	h := display.NewHeadless(0)
	h.OnCommand(func(cmd viewer.Command) { received = append(received, cmd) })
	h.Notify(viewer.Notification{Kind: viewer.ReadFailure, Message: "Unable to access the webcam [Camera 0]"})

	is.True(h.Failed())
	is.Equal(received, []viewer.Command{{Kind: viewer.Quit}})
	is.Equal(errorLogs, []string{"[ReadFailure] Unable to access the webcam [Camera 0]"})
}
