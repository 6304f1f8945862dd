package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/tauraamui/dragoneye/pkg/camera"
	"github.com/tauraamui/dragoneye/pkg/log"
	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
	"github.com/tauraamui/dragoneye/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

const DefaultFrameInterval = 30 * time.Millisecond

type State int

const (
	Idle State = iota
	Opening
	Streaming
	Released
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Opening:
		return "Opening"
	case Streaming:
		return "Streaming"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// Renderer displays converted frames, each call replaces the previous frame.
type Renderer interface {
	Order() videoframe.ChannelOrder
	Render(videoframe.Frame) error
}

type PropertyReporter interface {
	ShowProperties(label string, props camera.Properties)
}

type LoopSettings struct {
	Backend  videobackend.Backend
	Renderer Renderer
	Reporter PropertyReporter
	Notifier Notifier
	Signal   RunSignal
	Interval time.Duration
}

// Loop streams a single device at a time from open until the run signal
// drops, the context ends or a read fails.
type Loop struct {
	backend  videobackend.Backend
	renderer Renderer
	reporter PropertyReporter
	notifier Notifier
	signal   RunSignal
	interval time.Duration
	mu       sync.Mutex
	state    State
}

func NewLoop(settings LoopSettings) *Loop {
	l := Loop{
		backend:  settings.Backend,
		renderer: settings.Renderer,
		reporter: settings.Reporter,
		notifier: settings.Notifier,
		signal:   settings.Signal,
		interval: settings.Interval,
		state:    Idle,
	}
	if l.notifier == nil {
		l.notifier = LogNotifier{}
	}
	if l.interval <= 0 {
		l.interval = DefaultFrameInterval
	}
	return &l
}

func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	log.Debug("Capture loop state %s -> %s", l.state, s)
	l.state = s
}

// Run opens the device at index and streams it. Failures are notified
// before being returned, a normal stop returns nil.
func (l *Loop) Run(ctx context.Context, index int) error {
	l.setState(Opening)
	log.Info("Connecting to camera: [%s]...", camera.Label(index))
	conn, err := camera.Connect(ctx, index, l.backend)
	if err != nil {
		l.setState(Released)
		if ctx.Err() == nil {
			log.Debug("%v", err)
			l.notifier.Notify(openFailureNotification(camera.Label(index)))
		}
		return err
	}
	defer l.release(conn)

	props := conn.Properties()
	log.Info("Connected successfully to camera: [%s] %s (%s)", conn.Label(), props, conn.UUID())
	if l.reporter != nil {
		l.reporter.ShowProperties(conn.Label(), props)
	}

	l.setState(Streaming)
	return l.stream(ctx, conn)
}

func (l *Loop) release(conn camera.Connection) {
	log.Info("Closing camera connection: [%s]...", conn.Label())
	if err := conn.Close(); err != nil {
		log.Warn("Unable to close camera [%s] cleanly: %v", conn.Label(), err)
	}
	l.setState(Released)
}

func (l *Loop) stream(ctx context.Context, conn camera.Connection) error {
	display := l.backend.NewFrame()
	defer display.Close()

	for l.running(ctx) {
		if err := l.cycle(conn, display); err != nil {
			log.Debug("%v", err)
			l.notifier.Notify(readFailureNotification(conn.Label()))
			return err
		}
		if !l.pause(ctx) {
			break
		}
	}
	return nil
}

func (l *Loop) cycle(conn camera.Connection, display videoframe.Frame) error {
	frame, err := conn.Read()
	if err != nil {
		return err
	}
	defer frame.Close()

	if err := l.backend.Convert(frame, display, l.renderer.Order()); err != nil {
		return xerror.Errorf("%w from [%s]: unable to convert: %v", camera.ErrReadFailed, conn.Label(), err)
	}
	if err := l.renderer.Render(display); err != nil {
		return xerror.Errorf("%w from [%s]: unable to render: %v", camera.ErrReadFailed, conn.Label(), err)
	}
	return nil
}

func (l *Loop) running(ctx context.Context) bool {
	return ctx.Err() == nil && l.signal.Running()
}

func (l *Loop) pause(ctx context.Context) bool {
	t := time.NewTimer(l.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
