package camera

import "errors"

var (
	ErrNoDevices  = errors.New("no cameras found")
	ErrOpenFailed = errors.New("unable to open camera")
	ErrReadFailed = errors.New("unable to read frame")
)
