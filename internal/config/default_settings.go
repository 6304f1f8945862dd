package config

import "github.com/tauraamui/dragoneye/pkg/configdef"

type defaultSettingKey uint

const (
	TITLE            defaultSettingKey = 0x0
	MAXCAMERAS       defaultSettingKey = 0x1
	DEFAULTDEVICE    defaultSettingKey = 0x2
	FRAMEINTERVALMS  defaultSettingKey = 0x3
	BACKEND          defaultSettingKey = 0x4
	HEADLESSLOGEVERY defaultSettingKey = 0x5
	MOCKDEVICES      defaultSettingKey = 0x6
)

var defaultSettings = map[defaultSettingKey]interface{}{
	TITLE:            "Laptop Webcam as IP Camera",
	MAXCAMERAS:       10,
	DEFAULTDEVICE:    -1,
	FRAMEINTERVALMS:  30,
	BACKEND:          configdef.BackendOpenCV,
	HEADLESSLOGEVERY: 100,
	MOCKDEVICES:      []int{0},
}

func defaultValues() configdef.Values {
	return configdef.Values{
		Title:            defaultSettings[TITLE].(string),
		MaxCameras:       defaultSettings[MAXCAMERAS].(int),
		DefaultDevice:    defaultSettings[DEFAULTDEVICE].(int),
		FrameIntervalMS:  defaultSettings[FRAMEINTERVALMS].(int),
		Backend:          defaultSettings[BACKEND].(string),
		HeadlessLogEvery: defaultSettings[HEADLESSLOGEVERY].(int),
		Mock: configdef.Mock{
			Devices: append([]int{}, defaultSettings[MOCKDEVICES].([]int)...),
		},
	}
}

// applyDefaults fills every unset field, an explicit default_device of 0
// is indistinguishable from unset and so stays 0.
func applyDefaults(values *configdef.Values) {
	if len(values.Title) == 0 {
		values.Title = defaultSettings[TITLE].(string)
	}
	if values.MaxCameras == 0 {
		values.MaxCameras = defaultSettings[MAXCAMERAS].(int)
	}
	if values.FrameIntervalMS == 0 {
		values.FrameIntervalMS = defaultSettings[FRAMEINTERVALMS].(int)
	}
	if len(values.Backend) == 0 {
		values.Backend = defaultSettings[BACKEND].(string)
	}
	if values.HeadlessLogEvery == 0 {
		values.HeadlessLogEvery = defaultSettings[HEADLESSLOGEVERY].(int)
	}
	if values.Mock.Devices == nil {
		values.Mock.Devices = append([]int{}, defaultSettings[MOCKDEVICES].([]int)...)
	}
}
