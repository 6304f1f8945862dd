package videoframe

type Dimensions struct {
	W, H int
}

// ChannelOrder is the byte order of the colour channels within a pixel.
type ChannelOrder int

const (
	BGR ChannelOrder = iota
	RGB
)

// Native is the ordering capture drivers emit.
const Native = BGR

func (o ChannelOrder) String() string {
	switch o {
	case BGR:
		return "BGR"
	case RGB:
		return "RGB"
	default:
		return "UNKNOWN"
	}
}

type Frame interface {
	DataRef() interface{}
	Dimensions() Dimensions
	Close()
}
