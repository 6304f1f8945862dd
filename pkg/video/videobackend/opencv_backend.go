package videobackend

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type openCVFrame struct {
	isClosed bool
	mat      gocv.Mat
}

func (frame *openCVFrame) DataRef() interface{} {
	return &frame.mat
}

func (frame *openCVFrame) Dimensions() videoframe.Dimensions {
	return videoframe.Dimensions{W: frame.mat.Cols(), H: frame.mat.Rows()}
}

func (frame *openCVFrame) Close() {
	if !frame.isClosed {
		frame.mat.Close()
		frame.isClosed = true
	}
}

type openCVBackend struct{}

func (b *openCVBackend) Open(ctx context.Context, index int) (Connection, error) {
	conn := openCVConnection{index: index}
	if err := conn.open(ctx); err != nil {
		return nil, err
	}
	return &conn, nil
}

func (b *openCVBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

func (b *openCVBackend) Convert(src, dst videoframe.Frame, order videoframe.ChannelOrder) error {
	return convertMat(src, dst, order)
}

func convertMat(src, dst videoframe.Frame, order videoframe.ChannelOrder) error {
	srcMat, ok := src.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame as conversion source")
	}
	dstMat, ok := dst.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame as conversion destination")
	}
	if srcMat.Empty() {
		return xerror.New("cannot convert empty frame")
	}

	switch order {
	case videoframe.RGB:
		gocv.CvtColor(*srcMat, dstMat, gocv.ColorBGRToRGB)
	case videoframe.BGR:
		srcMat.CopyTo(dstMat)
	default:
		return xerror.Errorf("unsupported channel order: %s", order)
	}
	return nil
}

type openCVConnection struct {
	uuid   string
	index  int
	mu     sync.Mutex
	isOpen bool
	vc     *gocv.VideoCapture
}

type openVideoCaptureResult struct {
	vc  *gocv.VideoCapture
	err error
}

func (c *openCVConnection) open(ctx context.Context) error {
	results := make(chan openVideoCaptureResult, 1)
	go func(index int, api gocv.VideoCaptureAPI) {
		vc, err := openVideoCapture(index, api)
		results <- openVideoCaptureResult{vc: vc, err: err}
	}(c.index, captureAPI(runtimeGOOS))

	select {
	case r := <-results:
		if r.err != nil {
			// a failed open still allocates a native capture
			if r.vc != nil {
				closeVideoCapture(r.vc)
			}
			return r.err
		}
		c.vc = r.vc
		c.isOpen = true
		return nil
	case <-ctx.Done():
		// the open call can't be interrupted, release whatever it yields
		go func() {
			if r := <-results; r.vc != nil {
				closeVideoCapture(r.vc)
			}
		}()
		return xerror.Errorf("opening device %d cancelled: %w", c.index, ctx.Err())
	}
}

var openVideoCapture = func(index int, api gocv.VideoCaptureAPI) (*gocv.VideoCapture, error) {
	return gocv.VideoCaptureDeviceWithAPI(index, api)
}

var closeVideoCapture = func(vc *gocv.VideoCapture) error {
	return vc.Close()
}

var readFromVideoConnection = func(vc *gocv.VideoCapture, mat *gocv.Mat) bool {
	if vc.IsOpened() {
		return vc.Read(mat) && !mat.Empty()
	}
	return false
}

func (c *openCVConnection) UUID() string {
	if len(c.uuid) == 0 {
		c.uuid = uuid.NewString()
	}
	return c.uuid
}

func (c *openCVConnection) Read(frame videoframe.Frame) error {
	mat, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to OpenCV connection read")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return xerror.New("video connection is closed")
	}
	if !readFromVideoConnection(c.vc, mat) {
		return xerror.New("unable to read from video connection")
	}
	return nil
}

func (c *openCVConnection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isOpen {
		return c.vc.IsOpened()
	}
	return false
}

func (c *openCVConnection) Properties() Properties {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return Properties{}
	}
	return Properties{
		Width:  c.vc.Get(gocv.VideoCaptureFrameWidth),
		Height: c.vc.Get(gocv.VideoCaptureFrameHeight),
		FPS:    c.vc.Get(gocv.VideoCaptureFPS),
	}
}

func (c *openCVConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return nil
	}
	c.isOpen = false
	return closeVideoCapture(c.vc)
}
