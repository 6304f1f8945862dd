package videobackend

import (
	"runtime"

	"gocv.io/x/gocv"
)

var runtimeGOOS = runtime.GOOS

// DirectShow avoids the MSMF warnings OpenCV prints on windows
// while probing absent devices.
var captureAPIs = map[string]gocv.VideoCaptureAPI{
	"windows": gocv.VideoCaptureDshow,
}

func captureAPI(goos string) gocv.VideoCaptureAPI {
	if api, ok := captureAPIs[goos]; ok {
		return api
	}
	return gocv.VideoCaptureAny
}
