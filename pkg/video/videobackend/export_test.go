package videobackend

import "gocv.io/x/gocv"

var CaptureAPI = captureAPI

func OverloadRuntimeGOOS(goos string) func() {
	ref := runtimeGOOS
	runtimeGOOS = goos
	return func() { runtimeGOOS = ref }
}

func OverloadOpenVideoCapture(overload func(int, gocv.VideoCaptureAPI) (*gocv.VideoCapture, error)) func() {
	ref := openVideoCapture
	openVideoCapture = overload
	return func() { openVideoCapture = ref }
}

func OverloadCloseVideoCapture(overload func(*gocv.VideoCapture) error) func() {
	ref := closeVideoCapture
	closeVideoCapture = overload
	return func() { closeVideoCapture = ref }
}

func OverloadReadFromVideoConnection(overload func(*gocv.VideoCapture, *gocv.Mat) bool) func() {
	ref := readFromVideoConnection
	readFromVideoConnection = overload
	return func() { readFromVideoConnection = ref }
}
