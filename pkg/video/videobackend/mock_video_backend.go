package videobackend

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	mockFrameWidth  = 600
	mockFrameHeight = 400
)

type mockVideoBackend struct {
	devices   map[int]struct{}
	failAfter int
}

func (b *mockVideoBackend) Open(ctx context.Context, index int) (Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerror.Errorf("opening device %d cancelled: %w", index, err)
	}
	if _, ok := b.devices[index]; !ok {
		return nil, xerror.Errorf("no mock device at index %d", index)
	}
	return &mockVideoConnection{index: index, failAfter: b.failAfter, isOpen: true}, nil
}

func (b *mockVideoBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

func (b *mockVideoBackend) Convert(src, dst videoframe.Frame, order videoframe.ChannelOrder) error {
	return convertMat(src, dst, order)
}

type mockVideoConnection struct {
	uuid            string
	index           int
	failAfter       int
	reads           int
	isOpen          bool
	baseFrameCanvas image.Image
}

func (mvc *mockVideoConnection) UUID() string {
	if len(mvc.uuid) == 0 {
		mvc.uuid = uuid.NewString()
	}
	return mvc.uuid
}

func (mvc *mockVideoConnection) Read(frame videoframe.Frame) error {
	frameMatRef, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to MockVideo connection read")
	}

	if !mvc.isOpen {
		return xerror.New("video connection is closed")
	}

	mvc.reads++
	if mvc.failAfter > 0 && mvc.reads > mvc.failAfter {
		return xerror.Errorf("mock device %d unplugged after %d frames", mvc.index, mvc.failAfter)
	}

	if mvc.baseFrameCanvas == nil {
		mvc.baseFrameCanvas = renderBaseFrameCanvas()
	}

	img, err := drawTextLayerOntoBaseFrameClone(
		mvc.baseFrameCanvas, fmt.Sprintf("Camera %d", mvc.index),
	)
	if err != nil {
		return err
	}

	// ImageToMatRGB lays pixels out BGR, matching what a driver emits
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return xerror.Errorf("unable to convert Go image into OpenCV mat: %w", err)
	}
	defer mat.Close()

	mat.CopyTo(frameMatRef)

	return nil
}

func (mvc *mockVideoConnection) IsOpen() bool {
	return mvc.isOpen
}

func (mvc *mockVideoConnection) Properties() Properties {
	return Properties{Width: mockFrameWidth, Height: mockFrameHeight}
}

func (mvc *mockVideoConnection) Close() error {
	mvc.isOpen = false
	mvc.baseFrameCanvas = nil
	return nil
}

func drawTextLayerOntoBaseFrameClone(base image.Image, title string) (image.Image, error) {
	baseClone := cloneImage(base)
	err := drawText(baseClone, 5, 50, 48, "DRAGONEYE_MOCK")
	if err != nil {
		return nil, xerror.Errorf("unable to draw text onto in-mem image for mock stream: %w", err)
	}

	err = drawText(baseClone, 5, 180, 64, title)
	if err != nil {
		return nil, xerror.Errorf("unable to draw text onto in-mem image for mock stream: %w", err) //nolint
	}
	err = drawText(baseClone, 5, 310, 28, time.Now().Format("2006-01-02 15:04:05.000"))
	if err != nil {
		return nil, xerror.Errorf("unable to draw text onto in-mem image for mock stream: %w", err) //nolint
	}
	return baseClone, nil
}

func renderBaseFrameCanvas() image.Image {
	var w, h int = mockFrameWidth, mockFrameHeight
	var hw, hh float64 = float64(w / 2), float64(h / 2)
	r := 200.0
	θ := 2 * math.Pi / 3
	cr := &circle{hw - r*math.Sin(0), hh - r*math.Cos(0), 300}
	cg := &circle{hw - r*math.Sin(θ), hh - r*math.Cos(θ), 300}
	cb := &circle{hw - r*math.Sin(-θ), hh - r*math.Cos(-θ), 300}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c := color.RGBA{
				cr.Brightness(float64(x), float64(y)),
				cg.Brightness(float64(x), float64(y)),
				cb.Brightness(float64(x), float64(y)),
				255,
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func cloneImage(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

var (
	parseFontOnce sync.Once
	regularFont   *truetype.Font
	parseFontErr  error
)

func loadFont() (*truetype.Font, error) {
	parseFontOnce.Do(func() {
		regularFont, parseFontErr = freetype.ParseFont(goregular.TTF)
	})
	return regularFont, parseFontErr
}

func drawText(canvas *image.RGBA, x, y int, size float64, text string) error {
	fontFace, err := loadFont()
	if err != nil {
		return err
	}
	fontDrawer := &font.Drawer{
		Dst: canvas,
		Src: image.White,
		Face: truetype.NewFace(fontFace, &truetype.Options{
			Size:    size,
			Hinting: font.HintingFull,
		}),
	}
	textBounds, _ := fontDrawer.BoundString(text)
	textHeight := textBounds.Max.Y - textBounds.Min.Y
	yPosition := fixed.I((y)-textHeight.Ceil())/2 + fixed.I(textHeight.Ceil())
	fontDrawer.Dot = fixed.Point26_6{
		X: fixed.I(x),
		Y: yPosition,
	}
	fontDrawer.DrawString(text)
	return nil
}

type circle struct {
	X, Y, R float64
}

func (c *circle) Brightness(x, y float64) uint8 {
	var dx, dy float64 = c.X - x, c.Y - y
	d := math.Sqrt(dx*dx+dy*dy) / c.R
	if d > 1 {
		return 0
	}
	return 255
}
