package configdef

import (
	"errors"
	"fmt"

	"gopkg.in/dealancer/validate.v2"
)

const (
	BackendOpenCV = "opencv"
	BackendMock   = "mock"
)

type Mock struct {
	Devices   []int `json:"devices" yaml:"devices"`
	FailAfter int   `json:"fail_after" yaml:"fail_after" validate:"gte=0"`
}

type Values struct {
	Debug            bool   `json:"debug" yaml:"debug"`
	Title            string `json:"title" yaml:"title"`
	MaxCameras       int    `json:"max_cameras" yaml:"max_cameras" validate:"gte=1 & lte=64"`
	DefaultDevice    int    `json:"default_device" yaml:"default_device" validate:"gte=-1"`
	FrameIntervalMS  int    `json:"frame_interval_ms" yaml:"frame_interval_ms" validate:"gte=1 & lte=1000"`
	Backend          string `json:"backend" yaml:"backend" validate:"one_of=opencv,mock"`
	AutoStart        bool   `json:"auto_start" yaml:"auto_start"`
	HeadlessLogEvery int    `json:"headless_log_every" yaml:"headless_log_every" validate:"gte=1"`
	Mock             Mock   `json:"mock" yaml:"mock"`
}

// RunValidate checks the field tags first, then the rules tags can't express.
func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if hasNegativeIndex(v.Mock.Devices) {
		return fmt.Errorf(validationErrorHeader, errors.New("mock device indices must not be negative"))
	}
	if hasDupIndices(v.Mock.Devices) {
		return fmt.Errorf(validationErrorHeader, errors.New("mock device indices must be unique"))
	}
	return nil
}

func hasNegativeIndex(indices []int) bool {
	for _, i := range indices {
		if i < 0 {
			return true
		}
	}
	return false
}

func hasDupIndices(indices []int) (hasDup bool) {
	seen := map[int]struct{}{}
	for _, i := range indices {
		if _, ok := seen[i]; ok {
			hasDup = true
			return
		}
		seen[i] = struct{}{}
	}
	return
}
